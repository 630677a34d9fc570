package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/toastui/internal/dbus"
)

var statusOpts struct {
	waybar bool
}

// WaybarStatus represents the Waybar custom module JSON format.
type WaybarStatus struct {
	Text    string `json:"text"`
	Alt     string `json:"alt,omitempty"`
	Tooltip string `json:"tooltip,omitempty"`
	Class   string `json:"class,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the toast currently on screen",
	Long: `Query toastuid for the mounted toast.

With --waybar the output is a Waybar custom module JSON object:

  "custom/toast": {
    "exec": "toastui status --waybar",
    "interval": 1,
    "return-type": "json",
    "on-click": "toastui notify"
  }`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVar(&statusOpts.waybar, "waybar", false,
		"Output Waybar-compatible JSON")
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	client, err := dbus.Connect()
	if err != nil {
		if statusOpts.waybar {
			return outputStatus(WaybarStatus{Alt: "error", Class: "error"})
		}
		return err
	}
	defer func() { _ = client.Close() }()

	st, err := client.Status(ctx)
	if err != nil {
		if statusOpts.waybar {
			return outputStatus(WaybarStatus{Alt: "error", Class: "error"})
		}
		return fmt.Errorf("failed to query toastuid: %w", err)
	}

	if statusOpts.waybar {
		return outputStatus(generateStatus(st))
	}
	fmt.Println(describeStatus(st))
	return nil
}

// generateStatus maps the host state onto Waybar fields.
func generateStatus(st dbus.Status) WaybarStatus {
	if !st.Active {
		return WaybarStatus{Alt: "empty", Class: "empty", Tooltip: "No toast showing"}
	}
	return WaybarStatus{
		Text:    st.Phase,
		Alt:     st.Phase,
		Class:   st.Phase,
		Tooltip: describeStatus(st),
	}
}

// describeStatus renders a one-line summary.
func describeStatus(st dbus.Status) string {
	if !st.Active {
		return "no toast showing"
	}
	if st.MountedAt.IsZero() {
		return fmt.Sprintf("%s %s", st.ID, st.Phase)
	}
	return fmt.Sprintf("%s %s (mounted %s)", st.ID, st.Phase, humanize.Time(st.MountedAt))
}

// outputStatus writes the status as JSON.
func outputStatus(status WaybarStatus) error {
	return json.NewEncoder(os.Stdout).Encode(status)
}
