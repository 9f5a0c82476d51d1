// Package gateway provides a gateway to the GitHub API, wrapping every call
// with rate-limit avoidance and retry-with-backoff.
package gateway

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"sort"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/naito-dev/orgstats/internal/config"
	"github.com/naito-dev/orgstats/internal/domain"
)

// Fetcher defines the behavior of a gateway for fetching organization data
// from GitHub.
type Fetcher interface {
	// FetchOrganization returns the organization metadata snapshot.
	FetchOrganization(ctx context.Context, org string) (*domain.OrganizationInfo, error)
	// ListRepositories returns every repository of the organization, all
	// visibility levels, in listing order, with scalar fields populated.
	ListRepositories(ctx context.Context, org string) ([]*domain.RepositoryRecord, error)
	// ListBranches returns every branch of a repository in page order.
	ListBranches(ctx context.Context, org, repo string) ([]domain.BranchInfo, error)
	// ListContributors returns every contributor of a repository in page
	// order. On failure the contributors collected so far are returned
	// alongside the error.
	ListContributors(ctx context.Context, org, repo string) ([]domain.ContributorInfo, error)
	// ListLanguages returns the language byte breakdown of a repository,
	// ordered by descending byte count.
	ListLanguages(ctx context.Context, org, repo string) ([]domain.LanguageStat, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	client *github.Client
	guard  *rateLimitGuard
	sleep  sleepFunc
	logger *logrus.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of
// GitHubGateway authenticated with the given token.
func NewGitHubGateway(token string, logger *logrus.Logger) (Fetcher, error) {
	// Secondary (abuse) rate limits are absorbed at the transport; the
	// primary limit is handled by the guard before each call batch.
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
		Timeout: config.RequestTimeout,
	}

	g := &GitHubGateway{
		client: github.NewClient(httpClient),
		sleep:  time.Sleep,
		logger: logger,
	}
	g.guard = newRateLimitGuard(g.coreQuota, logger)
	return g, nil
}

// coreQuota queries the provider's rate-limit status endpoint for the core
// API resource.
func (g *GitHubGateway) coreQuota(ctx context.Context) (int, time.Time, error) {
	limits, _, err := g.client.RateLimit.Get(ctx)
	if err != nil {
		return 0, time.Time{}, err
	}
	core := limits.GetCore()
	return core.Remaining, core.Reset.Time, nil
}

func (g *GitHubGateway) FetchOrganization(ctx context.Context, org string) (*domain.OrganizationInfo, error) {
	g.guard.ensureCapacity(ctx)
	o, err := withRetry(g.logger, g.sleep, func() (*github.Organization, error) {
		o, _, err := g.client.Organizations.Get(ctx, org)
		return o, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch organization %s: %w", org, err)
	}
	return &domain.OrganizationInfo{
		Login:             o.GetLogin(),
		Name:              o.GetName(),
		Description:       o.GetDescription(),
		PublicRepos:       o.GetPublicRepos(),
		TotalPrivateRepos: int(o.GetTotalPrivateRepos()),
		CreatedAt:         o.GetCreatedAt().Time,
	}, nil
}

func (g *GitHubGateway) ListRepositories(ctx context.Context, org string) ([]*domain.RepositoryRecord, error) {
	raw, err := fetchAllPages(ctx, g.guard, g.logger, g.sleep, func(page int) ([]*github.Repository, error) {
		opts := &github.RepositoryListByOrgOptions{
			Type:        "all",
			ListOptions: github.ListOptions{Page: page, PerPage: config.PageSize},
		}
		repos, _, err := g.client.Repositories.ListByOrg(ctx, org, opts)
		return repos, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories for %s: %w", org, err)
	}

	records := make([]*domain.RepositoryRecord, 0, len(raw))
	for _, r := range raw {
		topics := r.Topics
		if topics == nil {
			topics = []string{}
		}
		records = append(records, &domain.RepositoryRecord{
			Name:          r.GetName(),
			FullName:      r.GetFullName(),
			Description:   r.GetDescription(),
			Private:       r.GetPrivate(),
			Language:      r.GetLanguage(),
			Stars:         r.GetStargazersCount(),
			Forks:         r.GetForksCount(),
			CreatedAt:     r.GetCreatedAt().Time,
			UpdatedAt:     r.GetUpdatedAt().Time,
			DefaultBranch: r.GetDefaultBranch(),
			SizeKB:        r.GetSize(),
			OpenIssues:    r.GetOpenIssuesCount(),
			Topics:        topics,
			Branches:      []domain.BranchInfo{},
			Contributors:  []domain.ContributorInfo{},
			Languages:     []domain.LanguageStat{},
		})
	}
	return records, nil
}

func (g *GitHubGateway) ListBranches(ctx context.Context, org, repo string) ([]domain.BranchInfo, error) {
	raw, err := fetchAllPages(ctx, g.guard, g.logger, g.sleep, func(page int) ([]*github.Branch, error) {
		opts := &github.BranchListOptions{
			ListOptions: github.ListOptions{Page: page, PerPage: config.PageSize},
		}
		branches, _, err := g.client.Repositories.ListBranches(ctx, org, repo, opts)
		return branches, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list branches for %s/%s: %w", org, repo, err)
	}

	branches := make([]domain.BranchInfo, 0, len(raw))
	for _, b := range raw {
		branches = append(branches, domain.BranchInfo{
			Name:      b.GetName(),
			CommitSHA: b.GetCommit().GetSHA(),
			Protected: b.GetProtected(),
		})
	}
	return branches, nil
}

func (g *GitHubGateway) ListContributors(ctx context.Context, org, repo string) ([]domain.ContributorInfo, error) {
	raw, fetchErr := fetchAllPages(ctx, g.guard, g.logger, g.sleep, func(page int) ([]*github.Contributor, error) {
		opts := &github.ListContributorsOptions{
			ListOptions: github.ListOptions{Page: page, PerPage: config.PageSize},
		}
		contributors, _, err := g.client.Repositories.ListContributors(ctx, org, repo, opts)
		return contributors, err
	})

	contributors := make([]domain.ContributorInfo, 0, len(raw))
	for _, c := range raw {
		contributors = append(contributors, domain.ContributorInfo{
			Login:         c.GetLogin(),
			Contributions: c.GetContributions(),
			Type:          c.GetType(),
		})
	}
	if fetchErr != nil {
		// Keep the partial result; the caller decides whether to accept it.
		return contributors, fmt.Errorf("failed to list contributors for %s/%s: %w", org, repo, fetchErr)
	}
	return contributors, nil
}

func (g *GitHubGateway) ListLanguages(ctx context.Context, org, repo string) ([]domain.LanguageStat, error) {
	g.guard.ensureCapacity(ctx)
	byBytes, err := withRetry(g.logger, g.sleep, func() (map[string]int, error) {
		languages, _, err := g.client.Repositories.ListLanguages(ctx, org, repo)
		return languages, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list languages for %s/%s: %w", org, repo, err)
	}

	total := 0
	for _, b := range byBytes {
		total += b
	}
	langs := make([]domain.LanguageStat, 0, len(byBytes))
	for name, b := range byBytes {
		pct := 0.0
		if total > 0 {
			pct = math.Round(float64(b)/float64(total)*100*100) / 100
		}
		langs = append(langs, domain.LanguageStat{Name: name, Bytes: b, Percentage: pct})
	}
	sort.Slice(langs, func(i, j int) bool {
		if langs[i].Bytes != langs[j].Bytes {
			return langs[i].Bytes > langs[j].Bytes
		}
		return langs[i].Name < langs[j].Name
	})
	return langs, nil
}
