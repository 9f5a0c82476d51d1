package export

import (
	"html/template"
	"io"

	"github.com/montanaflynn/stats"

	"github.com/naito-dev/orgstats/internal/domain"
)

// maxContributorsShown caps the contributor list per repository section.
// Contributors keep the provider-returned order; they are not re-sorted by
// contribution count.
const maxContributorsShown = 10

// HTMLExporter renders a human-readable report: organization summary with
// aggregate star statistics, then one section per repository.
type HTMLExporter struct{}

type htmlReport struct {
	Result      *domain.CollectionResult
	TotalStars  int
	MeanStars   float64
	MedianStars float64
}

func (e *HTMLExporter) Export(w io.Writer, result *domain.CollectionResult) error {
	report := htmlReport{Result: result}
	starCounts := make(stats.Float64Data, 0, len(result.Repositories))
	for _, repo := range result.Repositories {
		report.TotalStars += repo.Stars
		starCounts = append(starCounts, float64(repo.Stars))
	}
	if len(starCounts) > 0 {
		// Mean and Median only fail on empty input, which is guarded above.
		report.MeanStars, _ = stats.Mean(starCounts)
		report.MedianStars, _ = stats.Median(starCounts)
	}
	return reportTemplate.Execute(w, report)
}

func (e *HTMLExporter) Ext() string { return "html" }

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"topContributors": func(contributors []domain.ContributorInfo) []domain.ContributorInfo {
		if len(contributors) > maxContributorsShown {
			return contributors[:maxContributorsShown]
		}
		return contributors
	},
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Result.Organization.Login}} repository report</title>
<style>
body { font-family: sans-serif; margin: 2em; color: #24292f; }
h1 { border-bottom: 2px solid #d0d7de; padding-bottom: .3em; }
section.repo { border: 1px solid #d0d7de; border-radius: 6px; padding: 1em; margin: 1em 0; }
span.badge { background: #ddf4ff; color: #0969da; border-radius: 2em; padding: .1em .7em; margin-right: .3em; font-size: .85em; }
span.flag { color: #9a6700; font-size: .85em; margin-left: .4em; }
ul.branches, ol.contributors { margin: .3em 0; }
p.stats, p.lang { color: #57606a; font-size: .9em; }
</style>
</head>
<body>
<h1>{{.Result.Organization.Login}}</h1>
{{with .Result.Organization.Name}}<p><strong>{{.}}</strong></p>{{end}}
{{with .Result.Organization.Description}}<p>{{.}}</p>{{end}}
<p class="stats">
{{len .Result.Repositories}} repositories collected
({{.Result.Organization.PublicRepos}} public, {{.Result.Organization.TotalPrivateRepos}} private reported)
&middot; {{.TotalStars}} stars total
&middot; mean {{printf "%.1f" .MeanStars}} / median {{printf "%.1f" .MedianStars}} stars per repository
&middot; generated {{.Result.CollectedAt.Format "2006-01-02 15:04:05"}}
</p>
{{range .Result.Repositories}}
<section class="repo">
<h2>{{.FullName}}{{if .Private}} <span class="flag">private</span>{{end}}</h2>
{{with .Description}}<p>{{.}}</p>{{end}}
{{range .Topics}}<span class="badge">{{.}}</span>{{end}}
<p class="stats">{{.Stars}} stars &middot; {{.Forks}} forks &middot; {{.SizeKB}} KB &middot; {{.OpenIssues}} open issues</p>
{{if .Languages}}<p class="lang">{{range $i, $l := .Languages}}{{if $i}}, {{end}}{{$l.Name}} ({{printf "%.2f" $l.Percentage}}%){{end}}</p>
{{else if .Language}}<p class="lang">{{.Language}}</p>{{end}}
<h3>Branches ({{len .Branches}})</h3>
<ul class="branches">
{{$default := .DefaultBranch}}
{{range .Branches}}<li>{{.Name}}{{if eq .Name $default}} <span class="flag">default</span>{{end}}{{if .Protected}} <span class="flag">protected</span>{{end}}</li>
{{end}}</ul>
{{if .Contributors}}<h3>Top contributors</h3>
<ol class="contributors">
{{range topContributors .Contributors}}<li>{{.Login}} ({{.Contributions}} contributions{{if .Type}}, {{.Type}}{{end}})</li>
{{end}}</ol>
{{end}}</section>
{{end}}
</body>
</html>
`))
