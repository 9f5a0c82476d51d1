package export

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naito-dev/orgstats/internal/domain"
)

func TestHTMLExporter_Export(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&HTMLExporter{}).Export(&buf, sampleResult()))
	html := buf.String()

	assert.Contains(t, html, "<h2>acme/anvil</h2>")
	assert.Contains(t, html, `<span class="badge">a</span>`)
	assert.Contains(t, html, `<span class="badge">b</span>`)
	assert.Contains(t, html, "12 stars")
	assert.Contains(t, html, "Go (75.00%)")
	assert.Contains(t, html, "main <span class=\"flag\">default</span> <span class=\"flag\">protected</span>")
	assert.Contains(t, html, "wile-e (90 contributions, User)")
	assert.Contains(t, html, "mean 12.0 / median 12.0 stars")
}

func TestHTMLExporter_ShowsAtMostTenContributorsInProviderOrder(t *testing.T) {
	result := sampleResult()
	contributors := make([]domain.ContributorInfo, 0, 12)
	for i := 0; i < 12; i++ {
		// Deliberately not sorted by contribution count.
		contributors = append(contributors, domain.ContributorInfo{
			Login:         fmt.Sprintf("user-%02d", i),
			Contributions: i,
			Type:          "User",
		})
	}
	result.Repositories[0].Contributors = contributors

	var buf bytes.Buffer
	require.NoError(t, (&HTMLExporter{}).Export(&buf, result))
	html := buf.String()

	assert.Contains(t, html, "user-00", "provider order is preserved, not contribution order")
	assert.Contains(t, html, "user-09")
	assert.NotContains(t, html, "user-10")
	assert.NotContains(t, html, "user-11")
	assert.Less(t, strings.Index(html, "user-00"), strings.Index(html, "user-09"))
}

func TestHTMLExporter_EmptyOrganization(t *testing.T) {
	result := &domain.CollectionResult{
		Organization: &domain.OrganizationInfo{Login: "ghost-town"},
		Repositories: []*domain.RepositoryRecord{},
	}

	var buf bytes.Buffer
	require.NoError(t, (&HTMLExporter{}).Export(&buf, result))
	assert.Contains(t, buf.String(), "ghost-town")
	assert.Contains(t, buf.String(), "mean 0.0 / median 0.0 stars")
}
