package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cyp0633/chronolight/calendar"
)

var ToUnixCmd = &cobra.Command{
	Use:   "to-unix <date>",
	Short: "Convert a date to epoch milliseconds",
	Long: `Convert a date to milliseconds since 1970-01-01T00:00:00.000.
Fields past their range carry over (2022-04-31 is 2022-05-01) unless --strict is set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dt, err := calendar.Parse(args[0])
		if err != nil {
			return err
		}

		if strict, _ := cmd.Flags().GetBool("strict"); strict {
			if err := calendar.Validate(dt); err != nil {
				return err
			}
		}

		ms, err := calendar.ToUnixtime(dt)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ms)
		return nil
	},
}

var FromUnixCmd = &cobra.Command{
	Use:   "from-unix <ms>",
	Short: "Convert epoch milliseconds to a date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ms, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid timestamp %q: %w", args[0], err)
		}

		dt, err := calendar.FromUnixtimeChecked(ms)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), dt)
		return nil
	},
}

var ValidateCmd = &cobra.Command{
	Use:   "validate <date>",
	Short: "Check that every field of a date is within its range",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dt, err := calendar.Parse(args[0])
		if err != nil {
			return err
		}
		if err := calendar.Validate(dt); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", dt)
		return nil
	},
}

func init() {
	ToUnixCmd.Flags().Bool("strict", false, "reject fields outside their range instead of carrying")
}
