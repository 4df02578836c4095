package cmd

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/devmatch/internal/filtering"
	"github.com/spigell/devmatch/internal/jobs"
	"github.com/spigell/devmatch/internal/posting"
	"github.com/spigell/devmatch/internal/report"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List open developer jobs from every source",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		listJobs(cmd)
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)

	jobsCmd.Flags().StringP("location", "l", "", "location hint, e.g. \"Berlin, Germany\"")
	jobsCmd.Flags().StringP("keywords", "k", "", "search Jooble directly with these keywords")
	jobsCmd.Flags().IntP("page", "p", 1, "result page for a keyword search")
	jobsCmd.Flags().StringP("output", "o", outputText, "output format: text or json")
	jobsCmd.Flags().Bool("filters", false, "print the filter steps and exit")
	jobsCmd.Flags().StringSlice("disable-filter", nil, "filter steps to skip: active, companies or dedupe")
}

func listJobs(cmd *cobra.Command) {
	ctx := context.Background()

	d := setup()
	defer d.close()

	location, _ := cmd.Flags().GetString("location")
	keywords, _ := cmd.Flags().GetString("keywords")
	page, _ := cmd.Flags().GetInt("page")

	var postings []posting.Posting
	if keywords = strings.TrimSpace(keywords); keywords != "" {
		found, err := jobs.Search(ctx, d.jooble(ctx), keywords, location, page, time.Now())
		if err != nil {
			d.logger.Fatal("searching jobs", zap.Error(err))
		}
		postings = found
	} else {
		collector := d.collector(ctx)
		disabled, _ := cmd.Flags().GetStringSlice("disable-filter")
		for _, name := range disabled {
			if !collector.DisableFilter(strings.TrimSpace(name), "disabled with --disable-filter") {
				d.logger.Fatal("unknown filter", zap.String("name", name))
			}
		}
		if describe, _ := cmd.Flags().GetBool("filters"); describe {
			printFilters(d, collector.Filters())
			return
		}
		postings = collector.Collect(ctx, location)
	}

	output, _ := cmd.Flags().GetString("output")
	if strings.EqualFold(output, outputJSON) {
		if err := report.JSON(cmd.OutOrStdout(), postings); err != nil {
			d.logger.Fatal("writing postings", zap.Error(err))
		}
		return
	}

	d.printer.Postings(postings)
}

func printFilters(d *deps, steps []filtering.Filter) {
	var excluded []string
	if d.config.Filters != nil {
		excluded = d.config.Filters.ExcludeCompanies
	}
	for _, step := range steps {
		_ = step.Validate(&filtering.Config{ExcludedCompanies: excluded})
	}

	for _, status := range filtering.Describe(steps) {
		d.logger.Info("filter",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}
}
