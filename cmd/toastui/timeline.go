package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/toastui/internal/config"
	"github.com/jmylchreest/toastui/internal/timeline"
)

var timelineOpts struct {
	message  string
	duration string
	teardown string
	format   string
	template string
}

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Print a toast's transitions on a virtual clock",
	Long: `Mount a toast on a virtual clock, run it to completion and print every
transition with its offset from mount. No terminal or display is used.

Durations accept Go syntax ("4s") or milliseconds ("4000").

Examples:
  toastui timeline
  toastui timeline --duration 1000 --format json
  toastui timeline --teardown 2s
  toastui timeline --template '{{.AtMs}} {{.Phase}}'`,
	RunE: runTimeline,
}

func init() {
	rootCmd.AddCommand(timelineCmd)

	timelineCmd.Flags().StringVarP(&timelineOpts.message, "message", "m", "",
		"Toast message (default: from config)")
	timelineCmd.Flags().StringVarP(&timelineOpts.duration, "duration", "d", "",
		"Toast duration (default: from config)")
	timelineCmd.Flags().StringVar(&timelineOpts.teardown, "teardown", "",
		"Unmount the toast at this offset")
	timelineCmd.Flags().StringVarP(&timelineOpts.format, "format", "f", string(timeline.FormatText),
		"Output format: text, json, yaml")
	timelineCmd.Flags().StringVar(&timelineOpts.template, "template", "",
		"Go template applied to each event (text format only)")
}

func runTimeline(cmd *cobra.Command, args []string) error {
	message := timelineOpts.message
	if message == "" {
		message = cfg.Toast.Message
	}

	duration := cfg.ToastDuration()
	if timelineOpts.duration != "" {
		d, err := config.ParseDuration(timelineOpts.duration)
		if err != nil {
			return err
		}
		duration = d
	}

	opts := timeline.Options{Message: message, Duration: duration}
	if timelineOpts.teardown != "" {
		d, err := config.ParseDuration(timelineOpts.teardown)
		if err != nil {
			return err
		}
		opts.TeardownAt = d
	}

	formatter, err := timeline.NewFormatter(timeline.FormatType(timelineOpts.format), timelineOpts.template)
	if err != nil {
		return err
	}

	logger.Debug("recording timeline", "message", message, "duration", duration, "teardown", opts.TeardownAt)
	return formatter.Format(os.Stdout, timeline.Record(opts))
}
