package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var existsCmd = &cobra.Command{
	Use:   "exists <username>",
	Short: "Check that a GitHub profile exists; exits with 1 when it does not",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !exists(cmd, args[0]) {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(existsCmd)
}

func exists(cmd *cobra.Command, username string) bool {
	ctx := context.Background()

	d := setup()
	defer d.close()

	found, err := d.profiles().Exists(ctx, username)
	if err != nil {
		d.logger.Fatal(failure("profile", "existence check", err), zap.String("username", username), zap.Error(err))
	}

	if found {
		fmt.Fprintf(cmd.OutOrStdout(), "%s exists\n", username)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s not found\n", username)
	}
	return found
}
