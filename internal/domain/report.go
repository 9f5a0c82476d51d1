// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// OrganizationInfo is an immutable snapshot of the organization's metadata,
// fetched once at the start of a collection run.
type OrganizationInfo struct {
	Login             string    `json:"login"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	PublicRepos       int       `json:"public_repos"`
	TotalPrivateRepos int       `json:"total_private_repos"`
	CreatedAt         time.Time `json:"created_at"`
}

// ExpectedRepoCount is the repository total the provider reports for the
// organization. The collected count is verified against it after a run.
func (o *OrganizationInfo) ExpectedRepoCount() int {
	return o.PublicRepos + o.TotalPrivateRepos
}

// BranchInfo describes one branch of a repository.
type BranchInfo struct {
	Name      string `json:"name"`
	CommitSHA string `json:"commit_sha"`
	Protected bool   `json:"protected"`
}

// ContributorInfo describes one contributor to a repository.
type ContributorInfo struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
	Type          string `json:"type"`
}

// LanguageStat holds the byte count and share of one language within a
// repository, as reported by the languages endpoint.
type LanguageStat struct {
	Name       string  `json:"name"`
	Bytes      int     `json:"bytes"`
	Percentage float64 `json:"percentage"`
}

// RepositoryRecord is the full record collected for a single repository.
// Scalar fields come from the listing summary; the branch, contributor and
// language lists are filled in afterwards, in that order.
type RepositoryRecord struct {
	Name          string            `json:"name"`
	FullName      string            `json:"full_name"`
	Description   string            `json:"description"`
	Private       bool              `json:"private"`
	Language      string            `json:"language"`
	Stars         int               `json:"stars"`
	Forks         int               `json:"forks"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	DefaultBranch string            `json:"default_branch"`
	SizeKB        int               `json:"size_kb"`
	OpenIssues    int               `json:"open_issues"`
	Topics        []string          `json:"topics"`
	Branches      []BranchInfo      `json:"branches"`
	Contributors  []ContributorInfo `json:"contributors"`
	Languages     []LanguageStat    `json:"languages"`
}

// PrimaryLanguage returns the language with the highest byte count, falling
// back to the listing's language field when no language data was collected.
func (r *RepositoryRecord) PrimaryLanguage() string {
	if len(r.Languages) > 0 {
		return r.Languages[0].Name
	}
	return r.Language
}

// CollectionResult is the final dataset of one collection run, handed to
// exactly one exporter. Repositories keep the order the listing endpoint
// returned them in.
type CollectionResult struct {
	Organization *OrganizationInfo   `json:"organization"`
	Repositories []*RepositoryRecord `json:"repositories"`
	CollectedAt  time.Time           `json:"collected_at"`
}
