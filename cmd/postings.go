package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/spigell/devmatch/internal/errs"
	"github.com/spigell/devmatch/internal/posting"
	"github.com/spigell/devmatch/internal/report"
	"github.com/spigell/devmatch/internal/store"
)

var postingsCmd = &cobra.Command{
	Use:   "postings",
	Short: "Manage postings kept in the configured store",
}

var postingsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a posting",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		withStore(cmd, func(ctx context.Context, s store.Store) (*posting.Posting, error) {
			in, err := postingInput(cmd.Flags())
			if err != nil {
				return nil, err
			}
			return s.Create(ctx, in)
		})
	},
}

var postingsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a posting",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withStore(cmd, func(ctx context.Context, s store.Store) (*posting.Posting, error) {
			id, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			return s.Get(ctx, id)
		})
	},
}

var postingsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace the fields of a posting",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withStore(cmd, func(ctx context.Context, s store.Store) (*posting.Posting, error) {
			id, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			in, err := postingInput(cmd.Flags())
			if err != nil {
				return nil, err
			}
			return s.Update(ctx, id, in)
		})
	},
}

var postingsDeactivateCmd = &cobra.Command{
	Use:   "deactivate <id>",
	Short: "Hide a posting from job listings",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withStore(cmd, func(ctx context.Context, s store.Store) (*posting.Posting, error) {
			id, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			if err := s.Deactivate(ctx, id); err != nil {
				return nil, err
			}
			return s.Get(ctx, id)
		})
	},
}

func init() {
	rootCmd.AddCommand(postingsCmd)
	postingsCmd.AddCommand(postingsCreateCmd, postingsGetCmd, postingsUpdateCmd, postingsDeactivateCmd)
	postingsCmd.PersistentFlags().StringP("output", "o", outputText, "output format: text or json")

	for _, c := range []*cobra.Command{postingsCreateCmd, postingsUpdateCmd} {
		f := c.Flags()
		f.String("title", "", "posting title")
		f.String("company", "", "company name")
		f.String("location", "", "location")
		f.String("description", "", "description")
		f.StringSlice("required", nil, "required skills")
		f.StringSlice("preferred", nil, "preferred skills")
		f.String("level", "", "experience level: Junior, Mid or Senior")
		f.Float64("salary-min", 0, "minimum salary")
		f.Float64("salary-max", 0, "maximum salary")
		f.String("remote", posting.OnSite, "remote options: Remote, On-site or Hybrid")
		f.String("expires", "", "expiry as RFC3339 time or a duration from now, e.g. 720h")
		f.String("url", "", "link to the posting")
	}
}

func withStore(cmd *cobra.Command, fn func(ctx context.Context, s store.Store) (*posting.Posting, error)) {
	ctx := context.Background()

	d := setup()
	defer d.close()

	s, err := d.store(ctx)
	if err != nil {
		d.logger.Fatal("opening store", zap.Error(err))
	}

	p, err := fn(ctx, s)
	if err != nil {
		d.logger.Fatal(failure("posting", cmd.CommandPath(), err), zap.Error(err))
	}

	output, _ := cmd.Flags().GetString("output")
	if strings.EqualFold(output, outputJSON) {
		if err := report.JSON(cmd.OutOrStdout(), p); err != nil {
			d.logger.Fatal("writing posting", zap.Error(err))
		}
		return
	}
	d.printer.Postings([]posting.Posting{*p})
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.Invalid("postings", "parse id", fmt.Errorf("id must be a positive number, got %q", arg))
	}
	return id, nil
}

// postingInput reads the posting flags. Flags left unset stay empty.
func postingInput(f *pflag.FlagSet) (store.PostingInput, error) {
	var in store.PostingInput

	in.Title, _ = f.GetString("title")
	in.Company, _ = f.GetString("company")
	in.RequiredSkills, _ = f.GetStringSlice("required")
	in.PreferredSkills, _ = f.GetStringSlice("preferred")
	in.RemoteOptions, _ = f.GetString("remote")
	in.URL, _ = f.GetString("url")

	optional := map[string]**string{
		"location":    &in.Location,
		"description": &in.Description,
		"level":       &in.ExperienceLevel,
	}
	for name, dst := range optional {
		if f.Changed(name) {
			v, _ := f.GetString(name)
			*dst = &v
		}
	}

	for name, dst := range map[string]**float64{"salary-min": &in.SalaryMin, "salary-max": &in.SalaryMax} {
		if f.Changed(name) {
			v, _ := f.GetFloat64(name)
			*dst = &v
		}
	}

	if f.Changed("expires") {
		raw, _ := f.GetString("expires")
		expires, err := parseExpiry(raw, time.Now())
		if err != nil {
			return in, err
		}
		in.ExpiresAt = &expires
	}

	return in, nil
}

func parseExpiry(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts, nil
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return now.Add(d), nil
	}
	return time.Time{}, errs.Invalid("postings", "parse expiry", fmt.Errorf("expected RFC3339 time or duration, got %q", raw))
}
