// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/naito-dev/orgstats/internal/config"
	"github.com/naito-dev/orgstats/internal/domain"
	"github.com/naito-dev/orgstats/internal/export"
	"github.com/naito-dev/orgstats/internal/gateway"
	"github.com/naito-dev/orgstats/internal/usecase"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collects repository statistics and writes a report file",
	Long: `Collects branches, contributors, languages and metadata for every
repository of the given organization and writes a timestamped report file in
the chosen format (json, csv or html).`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// Get the verbose flag from the root command to set up the logger.
		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logger := logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.InfoLevel)
		if verbose {
			logger.SetLevel(logrus.DebugLevel)
		}

		org, _ := cmd.Flags().GetString("org")
		format, _ := cmd.Flags().GetString("format")
		token, _ := cmd.Flags().GetString("token")
		workers, _ := cmd.Flags().GetInt("workers")

		if err := checkRequiredFlags(org, format); err != nil {
			usageExit(cmd, err)
		}

		cfg := config.Load()
		if token != "" {
			cfg.GitHubToken = token
		}
		cfg.Workers = workers
		if err := cfg.Validate(); err != nil {
			usageExit(cmd, err)
		}

		exporter, err := export.ForFormat(format)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		// Inject dependencies and run the collection pipeline.
		fetcher, err := gateway.NewGitHubGateway(cfg.GitHubToken, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}
		collector := usecase.NewCollector(fetcher, logger, cfg.Workers)

		result, err := collector.Collect(ctx, org)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Collection failed: %v\n", err)
			os.Exit(1)
		}

		filename := fmt.Sprintf("%s_report_%s.%s", org, time.Now().Format("20060102_150405"), exporter.Ext())
		file, err := os.Create(filename)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create %s: %v\n", filename, err)
			os.Exit(1)
		}
		if err := exporter.Export(file, result); err != nil {
			file.Close()
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", filename, err)
			os.Exit(1)
		}
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", filename, err)
			os.Exit(1)
		}

		printSummary(result)
		fmt.Printf("Report written to %s\n", filename)
	},
}

// checkRequiredFlags validates the inputs every run needs before any
// network work starts.
func checkRequiredFlags(org, format string) error {
	if org == "" {
		return errors.New("flag --org is required")
	}
	if format == "" {
		return errors.New("flag --format is required")
	}
	return nil
}

// usageExit prints the usage on standard output and the error on standard
// error, then exits non-zero.
func usageExit(cmd *cobra.Command, err error) {
	fmt.Println(cmd.UsageString())
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// printSummary renders a short totals table on standard output after a
// successful run.
func printSummary(result *domain.CollectionResult) {
	stars, branches, contributors := 0, 0, 0
	for _, repo := range result.Repositories {
		stars += repo.Stars
		branches += len(repo.Branches)
		contributors += len(repo.Contributors)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Organization", "Repositories", "Stars", "Branches", "Contributors"})
	table.Append([]string{
		result.Organization.Login,
		strconv.Itoa(len(result.Repositories)),
		strconv.Itoa(stars),
		strconv.Itoa(branches),
		strconv.Itoa(contributors),
	})
	table.Render()
}

func init() {
	rootCmd.AddCommand(collectCmd)
	collectCmd.Flags().StringP("token", "t", "", "GitHub personal access token (defaults to GITHUB_TOKEN)")
	collectCmd.Flags().StringP("org", "o", "", "Target GitHub organization name (required)")
	collectCmd.Flags().StringP("format", "f", "", "Output format: json, csv or html (required)")
	collectCmd.Flags().IntP("workers", "w", 1, "Number of repositories processed in parallel")
}
