package dbus

import (
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/marqueekit/marquee/internal/entry"
)

// Client calls the marqueed control service from another process.
type Client struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

// NewClient connects to the session bus and binds the marqueed object.
func NewClient() (*Client, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}

	return &Client{
		conn: conn,
		obj:  conn.Object(BusName, Path),
	}, nil
}

// Submit schedules a banner on the daemon and returns its entry ID.
func (c *Client) Submit(name string, priority entry.Priority, precedence, title, body, icon string) (string, error) {
	var id string
	err := c.obj.Call(Interface+".Submit", 0,
		name, uint32(priority), precedence, title, body, icon).Store(&id)
	if err != nil {
		return "", fmt.Errorf("submit failed: %w", err)
	}
	return id, nil
}

// Dismiss issues a dismissal request to the daemon.
func (c *Client) Dismiss(scope, name string, priority entry.Priority) error {
	call := c.obj.Call(Interface+".Dismiss", 0, scope, name, uint32(priority))
	if call.Err != nil {
		return fmt.Errorf("dismiss failed: %w", call.Err)
	}
	return nil
}

// Status fetches the daemon's scheduler state.
func (c *Client) Status() (Status, error) {
	var (
		id, name string
		since    int64
		queueLen uint32
		active   bool
	)
	err := c.obj.Call(Interface+".Status", 0).Store(&id, &name, &since, &queueLen, &active)
	if err != nil {
		return Status{}, fmt.Errorf("status failed: %w", err)
	}

	st := Status{
		DisplayedID:   id,
		DisplayedName: name,
		QueueLen:      int(queueLen),
		SurfaceActive: active,
	}
	if since > 0 {
		st.DisplayedSince = time.Unix(since, 0)
	}
	return st, nil
}
