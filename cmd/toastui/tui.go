package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/toastui/internal/tui"
)

var tuiOpts struct {
	noWatch bool
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive toast demo",
	Long: `Launch the terminal toast demo.

Press the button to mount a toast. It shows a spinner for 1.5s, then a
checkmark and the configured message, and slides out when its duration
ends. Only one toast is shown at a time.

Key bindings:
  enter, space, t   Show toast
  esc, x            Dismiss the toast early
  ?                 Toggle full help
  q                 Quit

Edits to the config file apply to the next toast.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().BoolVar(&tuiOpts.noWatch, "no-watch", false,
		"Do not reload the config file when it changes")
}

func runTUI(cmd *cobra.Command, args []string) error {
	return tui.Run(cmd.Context(), tui.RunOptions{
		Config:     cfg,
		ConfigPath: globalOpts.configPath,
		Logger:     logger,
		NoWatch:    tuiOpts.noWatch,
	})
}
