package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cyp0633/chronolight/codec"
	"github.com/cyp0633/chronolight/occurrence"
	"github.com/cyp0633/chronolight/schedule"
)

var EncodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Re-encode a schedule",
	Long: `Re-encode a schedule file. Formats:
  cbor    raw CBOR bytes
  hex     CBOR as hex
  diag    CBOR diagnostic notation
  yaml    normalized YAML
  layout  XML description of the CBOR structure (no --schedule needed)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		out := cmd.OutOrStdout()

		if format == "layout" {
			doc, err := codec.LayoutXML(schedule.Schedule{})
			if err != nil {
				return err
			}
			fmt.Fprint(out, doc)
			return nil
		}

		path, _ := cmd.Flags().GetString("schedule")
		s, err := loadSchedule(path)
		if err != nil {
			return err
		}

		if format == "yaml" {
			data, err := codec.EncodeScheduleYAML(s)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		}

		data, err := codec.MarshalSchedule(s)
		if err != nil {
			return err
		}
		switch format {
		case "cbor":
			_, err = out.Write(data)
			return err
		case "hex":
			fmt.Fprintln(out, hex.EncodeToString(data))
		case "diag":
			diag, err := codec.Diagnose(data)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, diag)
		default:
			return fmt.Errorf("unknown format %q", format)
		}
		return nil
	},
}

var IcalCmd = &cobra.Command{
	Use:   "ical",
	Short: "Export a schedule as an iCalendar event",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("schedule")
		s, err := loadSchedule(path)
		if err != nil {
			return err
		}
		summary, _ := cmd.Flags().GetString("summary")

		event, err := occurrence.ToEvent(s, summary)
		if err != nil {
			return err
		}
		return occurrence.EncodeCalendar(cmd.OutOrStdout(), event)
	},
}

func init() {
	EncodeCmd.Flags().StringP("schedule", "s", "", "schedule file (.yaml, .cbor or .ics)")
	EncodeCmd.Flags().StringP("format", "f", "hex", "output format: cbor, hex, diag, yaml or layout")

	IcalCmd.Flags().StringP("schedule", "s", "", "schedule file (.yaml, .cbor or .ics)")
	IcalCmd.Flags().String("summary", "", "event summary")
}
