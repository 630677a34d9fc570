package dbus

import (
	"context"
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"
)

// Client calls a running toastuid over the session bus.
type Client struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

// Connect opens a private session bus connection.
func Connect() (*Client, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &Client{
		conn: conn,
		obj:  conn.Object(DBusBusName, DBusPath),
	}, nil
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Show asks the daemon to mount a toast. It returns toast.ErrAlreadyShowing
// when one is already mounted.
func (c *Client) Show(ctx context.Context, message string, duration time.Duration) (string, error) {
	var id string
	err := c.obj.CallWithContext(ctx, DBusInterface+".Show", 0, message, int32(duration.Milliseconds())).Store(&id)
	if err != nil {
		return "", fromDBusError(err)
	}
	return id, nil
}

// Status returns the daemon's host state.
func (c *Client) Status(ctx context.Context) (Status, error) {
	var (
		active  bool
		id      string
		phase   string
		mounted int64
	)
	err := c.obj.CallWithContext(ctx, DBusInterface+".Status", 0).Store(&active, &id, &phase, &mounted)
	if err != nil {
		return Status{}, fromDBusError(err)
	}
	return statusFromWire(active, id, phase, mounted), nil
}

// Dismiss tears down the mounted toast. It reports whether one was mounted.
func (c *Client) Dismiss(ctx context.Context) (bool, error) {
	var dismissed bool
	err := c.obj.CallWithContext(ctx, DBusInterface+".Dismiss", 0).Store(&dismissed)
	if err != nil {
		return false, fromDBusError(err)
	}
	return dismissed, nil
}

// WatchClosed subscribes to the Closed signal and delivers toast IDs
// until ctx is done or stop is called. Subscribe before calling Show so a
// short toast cannot close unseen.
func (c *Client) WatchClosed(ctx context.Context) (<-chan string, func(), error) {
	opts := []dbus.MatchOption{
		dbus.WithMatchObjectPath(DBusPath),
		dbus.WithMatchInterface(DBusInterface),
		dbus.WithMatchMember("Closed"),
	}
	if err := c.conn.AddMatchSignalContext(ctx, opts...); err != nil {
		return nil, nil, fmt.Errorf("failed to add match rule: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	sigCh := make(chan *dbus.Signal, 4)
	c.conn.Signal(sigCh)

	ids := make(chan string, 4)
	go func() {
		defer close(ids)
		defer func() { _ = c.conn.RemoveMatchSignal(opts...) }()
		defer c.conn.RemoveSignal(sigCh)
		for {
			select {
			case sig := <-sigCh:
				id := closedID(sig)
				if id == "" {
					continue
				}
				select {
				case ids <- id:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return ids, cancel, nil
}

// closedID extracts the toast ID from a Closed signal, or "".
func closedID(sig *dbus.Signal) string {
	if sig == nil || sig.Name != ClosedSignal || len(sig.Body) != 1 {
		return ""
	}
	id, _ := sig.Body[0].(string)
	return id
}
