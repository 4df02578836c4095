package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/devmatch/internal/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <username>",
	Short: "Analyze a GitHub profile without searching for jobs",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		analyze(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("output", "o", outputText, "output format: text or json")
}

func analyze(cmd *cobra.Command, username string) {
	ctx := context.Background()

	d := setup()
	defer d.close()

	analysis, err := d.pipeline(ctx, false).Analyze(ctx, username)
	if err != nil {
		d.logger.Fatal(failure("profile", "analysis", err), zap.String("username", username), zap.Error(err))
	}

	output, _ := cmd.Flags().GetString("output")
	if strings.EqualFold(output, outputJSON) {
		if err := report.JSON(cmd.OutOrStdout(), analysis); err != nil {
			d.logger.Fatal("writing analysis", zap.Error(err))
		}
		return
	}

	d.printer.Profile(analysis.Snapshot)
	d.printer.Assessment(analysis.Assessment)
}
