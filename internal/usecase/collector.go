// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/naito-dev/orgstats/internal/domain"
	"github.com/naito-dev/orgstats/internal/gateway"
)

// Collector drives a full collection run: organization metadata, the
// repository listing, and the per-repository branch, contributor and
// language fetches.
type Collector struct {
	fetcher gateway.Fetcher
	logger  *logrus.Logger
	workers int
}

// NewCollector creates a new Collector instance. workers is the number of
// repositories processed in parallel; 1 keeps collection fully sequential.
func NewCollector(fetcher gateway.Fetcher, logger *logrus.Logger, workers int) *Collector {
	if workers < 1 {
		workers = 1
	}
	return &Collector{
		fetcher: fetcher,
		logger:  logger,
		workers: workers,
	}
}

// Collect performs the whole run for one organization. A failure fetching
// the organization, the repository listing, or any repository's branches
// aborts the run; contributor and language failures are downgraded to
// warnings inside collectRepository.
func (c *Collector) Collect(ctx context.Context, org string) (*domain.CollectionResult, error) {
	c.logger.Infof("Fetching metadata for organization %s...", org)
	info, err := c.fetcher.FetchOrganization(ctx, org)
	if err != nil {
		return nil, err
	}

	c.logger.Infof("Listing repositories for %s (all visibility levels)...", org)
	repos, err := c.fetcher.ListRepositories(ctx, org)
	if err != nil {
		return nil, err
	}
	c.logger.Infof("Found %d repositories", len(repos))

	if c.workers > 1 {
		err = c.processParallel(ctx, org, repos)
	} else {
		err = c.processSequential(ctx, org, repos)
	}
	if err != nil {
		return nil, err
	}

	c.verifyCount(info, repos)

	return &domain.CollectionResult{
		Organization: info,
		Repositories: repos,
		CollectedAt:  time.Now(),
	}, nil
}

func (c *Collector) processSequential(ctx context.Context, org string, repos []*domain.RepositoryRecord) error {
	for i, repo := range repos {
		c.logger.Infof("Processing repository %d/%d: %s", i+1, len(repos), repo.FullName)
		if err := c.collectRepository(ctx, org, repo); err != nil {
			return err
		}
	}
	return nil
}

// processParallel collects repositories with a bounded worker pool. Records
// are filled in place, so the slice keeps the listing order regardless of
// completion order, and the rate-limit guard stays a single shared gate
// inside the fetcher.
func (c *Collector) processParallel(ctx context.Context, org string, repos []*domain.RepositoryRecord) error {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(c.workers)
	for i, repo := range repos {
		i, repo := i, repo
		eg.Go(func() error {
			c.logger.Infof("Processing repository %d/%d: %s", i+1, len(repos), repo.FullName)
			return c.collectRepository(egCtx, org, repo)
		})
	}
	return eg.Wait()
}

// collectRepository fills in the branch, contributor and language lists of
// one record. Branch failures are fatal; the contributor endpoint is skipped
// outright for private repositories and its failures, like language
// failures, only cost the affected list.
func (c *Collector) collectRepository(ctx context.Context, org string, rec *domain.RepositoryRecord) error {
	branches, err := c.fetcher.ListBranches(ctx, org, rec.Name)
	if err != nil {
		return fmt.Errorf("failed to collect branches for %s: %w", rec.FullName, err)
	}
	rec.Branches = branches
	c.logger.Infof("  %s: %d branches", rec.Name, len(rec.Branches))

	if rec.Private {
		c.logger.Debugf("  %s: private repository, skipping contributor collection", rec.Name)
	} else {
		contributors, err := c.fetcher.ListContributors(ctx, org, rec.Name)
		if err != nil {
			c.logger.Warnf("  %s: contributor statistics unavailable, keeping the %d collected: %v", rec.FullName, len(contributors), err)
		}
		if contributors != nil {
			rec.Contributors = contributors
		}
		c.logger.Infof("  %s: %d contributors", rec.Name, len(rec.Contributors))
	}

	languages, err := c.fetcher.ListLanguages(ctx, org, rec.Name)
	if err != nil {
		c.logger.Warnf("  %s: language breakdown unavailable: %v", rec.FullName, err)
	} else {
		rec.Languages = languages
		c.logger.Debugf("  %s: %d languages", rec.Name, len(rec.Languages))
	}
	return nil
}

// verifyCount compares the number of collected repositories with the totals
// the organization reports. A mismatch is an anomaly worth surfacing, not an
// error: the provider's counts and its listing can disagree when the
// organization changes mid-run.
func (c *Collector) verifyCount(info *domain.OrganizationInfo, repos []*domain.RepositoryRecord) {
	expected := info.ExpectedRepoCount()
	if len(repos) == expected {
		c.logger.Infof("Collected all %d repositories reported by the organization", expected)
		return
	}
	c.logger.Warnf("Collected %d repositories but the organization reports %d (%d public + %d private)",
		len(repos), expected, info.PublicRepos, info.TotalPrivateRepos)
}
