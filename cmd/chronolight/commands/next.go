package commands

import (
	"fmt"

	"github.com/samber/mo"
	"github.com/spf13/cobra"

	"github.com/cyp0633/chronolight/calendar"
)

var NextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show when a schedule fires next",
	Long: `Show the first occurrence of a schedule at or after --now (default: the
current UTC time). With --last-run, also list the occurrences missed since then.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("schedule")
		s, err := loadSchedule(path)
		if err != nil {
			return err
		}
		now, err := parseInstant(cmd, "now")
		if err != nil {
			return err
		}

		engine, err := newEngine()
		if err != nil {
			return err
		}
		defer engine.Close()

		out := cmd.OutOrStdout()

		if lastRun, _ := cmd.Flags().GetString("last-run"); lastRun != "" {
			last, err := parseDate("--last-run", lastRun)
			if err != nil {
				return err
			}
			triggers, next := engine.PastTriggers(mo.Some(last), now, s)
			for _, ms := range triggers {
				fmt.Fprintf(out, "missed %s\n", calendar.FromUnixtime(ms))
			}
			printNext(cmd, now, next)
			return nil
		}

		next, err := engine.NextOccurrenceMsChecked(now, s)
		if err != nil {
			return err
		}
		printNext(cmd, now, next)
		return nil
	},
}

func printNext(cmd *cobra.Command, now calendar.DateTime, delay mo.Option[uint64]) {
	out := cmd.OutOrStdout()
	ms, ok := delay.Get()
	if !ok {
		fmt.Fprintln(out, "schedule has ended")
		return
	}
	at := calendar.FromUnixtime(calendar.MustToUnixtime(now) + ms)
	fmt.Fprintf(out, "next %s in %s (%d ms)\n", at, formatDelay(ms), ms)
}

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List upcoming occurrences of a schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("schedule")
		s, err := loadSchedule(path)
		if err != nil {
			return err
		}
		from, err := parseInstant(cmd, "from")
		if err != nil {
			return err
		}
		count, _ := cmd.Flags().GetInt("count")

		engine, err := newEngine()
		if err != nil {
			return err
		}
		defer engine.Close()

		for _, ms := range engine.Occurrences(s, from, count) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", calendar.FromUnixtime(ms), ms)
		}
		return nil
	},
}

func init() {
	NextCmd.Flags().StringP("schedule", "s", "", "schedule file (.yaml, .cbor or .ics)")
	NextCmd.Flags().String("now", "", "query instant (default: current time)")
	NextCmd.Flags().String("last-run", "", "list occurrences after this instant and up to --now")

	ListCmd.Flags().StringP("schedule", "s", "", "schedule file (.yaml, .cbor or .ics)")
	ListCmd.Flags().String("from", "", "first instant to consider (default: current time)")
	ListCmd.Flags().IntP("count", "n", 10, "number of occurrences")
}
