package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/toastui/internal/config"
	"github.com/jmylchreest/toastui/internal/dbus"
	"github.com/jmylchreest/toastui/internal/toast"
)

var notifyOpts struct {
	duration string
	wait     bool
	dismiss  bool
	quiet    bool
}

var notifyCmd = &cobra.Command{
	Use:   "notify [message]",
	Short: "Show a toast through toastuid",
	Long: `Ask a running toastuid to show a toast popup.

The message and duration default to the daemon's config. If a toast is
already showing the request is ignored and the command exits non-zero.

Use --wait to block until the toast has closed, or --dismiss to tear down
the current toast early.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNotify,
}

func init() {
	rootCmd.AddCommand(notifyCmd)

	notifyCmd.Flags().StringVarP(&notifyOpts.duration, "duration", "d", "",
		"Toast duration, e.g. 4s or 4000 (default: daemon config)")
	notifyCmd.Flags().BoolVarP(&notifyOpts.wait, "wait", "w", false,
		"Wait until the toast closes")
	notifyCmd.Flags().BoolVar(&notifyOpts.dismiss, "dismiss", false,
		"Dismiss the current toast instead of showing one")
	notifyCmd.Flags().BoolVarP(&notifyOpts.quiet, "quiet", "q", false,
		"Do not print the toast ID")
}

func runNotify(cmd *cobra.Command, args []string) error {
	client, err := dbus.Connect()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	ctx := cmd.Context()

	if notifyOpts.dismiss {
		callCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		dismissed, err := client.Dismiss(callCtx)
		if err != nil {
			return fmt.Errorf("failed to dismiss: %w", err)
		}
		if !dismissed && !notifyOpts.quiet {
			fmt.Println("no toast showing")
		}
		return nil
	}

	var message string
	if len(args) == 1 {
		message = args[0]
	}
	var duration time.Duration
	if notifyOpts.duration != "" {
		duration, err = config.ParseDuration(notifyOpts.duration)
		if err != nil {
			return err
		}
	}

	var closed <-chan string
	if notifyOpts.wait {
		ch, stop, err := client.WatchClosed(ctx)
		if err != nil {
			return err
		}
		defer stop()
		closed = ch
	}

	callCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	id, err := client.Show(callCtx, message, duration)
	cancel()
	if errors.Is(err, toast.ErrAlreadyShowing) {
		return fmt.Errorf("toast not shown: %w", err)
	}
	if err != nil {
		return fmt.Errorf("failed to show toast: %w", err)
	}
	logger.Debug("toast shown", "id", id)
	if !notifyOpts.quiet {
		fmt.Println(id)
	}

	if closed == nil {
		return nil
	}
	return waitClosed(ctx, closed, id, func(ctx context.Context) (dbus.Status, error) {
		callCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return client.Status(callCtx)
	}, closedPoll)
}

const (
	// closedPoll is how often --wait checks the toast still exists.
	closedPoll = time.Second
	// closedGrace is how long the Closed signal may trail the unmount.
	closedGrace = 500 * time.Millisecond
)

var errToastGone = errors.New("toast was dismissed before it closed")

// waitClosed blocks until id arrives on closed. It returns errToastGone
// when the toast disappears without a Closed signal, and an error when
// toastuid stops answering.
func waitClosed(ctx context.Context, closed <-chan string, id string,
	status func(context.Context) (dbus.Status, error), interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case got, ok := <-closed:
			if !ok {
				return errors.New("D-Bus signal stream closed")
			}
			if got == id {
				return nil
			}
		case <-ticker.C:
			st, err := status(ctx)
			if err != nil {
				return fmt.Errorf("toastuid unavailable: %w", err)
			}
			if st.Active && st.ID == id {
				continue
			}
			return awaitClosed(ctx, closed, id)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// awaitClosed gives a just-unmounted toast closedGrace to report Closed.
func awaitClosed(ctx context.Context, closed <-chan string, id string) error {
	timer := time.NewTimer(closedGrace)
	defer timer.Stop()

	for {
		select {
		case got, ok := <-closed:
			if !ok {
				return errToastGone
			}
			if got == id {
				return nil
			}
		case <-timer.C:
			return errToastGone
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
