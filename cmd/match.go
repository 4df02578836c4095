package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/devmatch/internal/pipeline"
	"github.com/spigell/devmatch/internal/report"
)

const (
	PromptBack = "back"

	outputText = "text"
	outputJSON = "json"
)

var matchCmd = &cobra.Command{
	Use:   "match <username>",
	Short: "Analyze a GitHub profile and rank open jobs against it",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		match(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("output", "o", outputText, "output format: text or json")
	matchCmd.Flags().BoolP("interactive", "i", false, "choose matches to inspect after the report")
}

func match(cmd *cobra.Command, username string) {
	ctx := context.Background()

	d := setup()
	defer d.close()

	result, err := d.pipeline(ctx, true).Run(ctx, username)
	if err != nil {
		d.logger.Fatal(failure("profile", "matching", err), zap.String("username", username), zap.Error(err))
	}

	output, _ := cmd.Flags().GetString("output")
	if strings.EqualFold(output, outputJSON) {
		if err := report.JSON(cmd.OutOrStdout(), result); err != nil {
			d.logger.Fatal("writing result", zap.Error(err))
		}
		return
	}

	d.printer.Result(result)

	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive && len(result.Matches) > 0 {
		if err := inspect(d.printer, result); err != nil {
			d.logger.Fatal("exiting", zap.Error(err))
		}
	}
}

// inspect lets the user pick matches one by one until back is chosen.
func inspect(printer *report.Printer, result *pipeline.Result) error {
	items := make([]string, 0, len(result.Matches)+1)
	for _, m := range result.Matches {
		items = append(items, fmt.Sprintf("%.2f %s / %s", m.Score, m.JobTitle, m.Company))
	}
	items = append(items, PromptBack)

	for {
		matchPrompt := promptui.Select{
			Label: "Choose a match and press ENTER",
			Items: items,
			Size:  len(items),
		}

		idx, selected, err := matchPrompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return nil
			}
			return err
		}
		if selected == PromptBack {
			return nil
		}

		m := result.Matches[idx]
		printer.Match(m, result.Job(m.JobID))
	}
}
