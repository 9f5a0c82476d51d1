package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/naito-dev/orgstats/internal/domain"
)

// csvHeader is the fixed column set of the CSV report.
var csvHeader = []string{
	"Repository",
	"Private",
	"Language",
	"Stars",
	"Forks",
	"Branch Count",
	"Contributor Count",
	"Size (KB)",
	"Open Issues",
	"Topics",
	"Default Branch",
	"Created At",
	"Updated At",
}

// topicSeparator joins the topic list into a single CSV cell.
const topicSeparator = ";"

// CSVExporter writes one header row and one row per repository. Branch and
// contributor counts are derived from the collected lists.
type CSVExporter struct{}

func (e *CSVExporter) Export(w io.Writer, result *domain.CollectionResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, repo := range result.Repositories {
		row := []string{
			repo.Name,
			yesNo(repo.Private),
			repo.PrimaryLanguage(),
			strconv.Itoa(repo.Stars),
			strconv.Itoa(repo.Forks),
			strconv.Itoa(len(repo.Branches)),
			strconv.Itoa(len(repo.Contributors)),
			strconv.Itoa(repo.SizeKB),
			strconv.Itoa(repo.OpenIssues),
			strings.Join(repo.Topics, topicSeparator),
			repo.DefaultBranch,
			repo.CreatedAt.Format(time.RFC3339),
			repo.UpdatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (e *CSVExporter) Ext() string { return "csv" }

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
