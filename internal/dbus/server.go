package dbus

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"

	"github.com/marqueekit/marquee/internal/banner"
	"github.com/marqueekit/marquee/internal/entry"
	"github.com/marqueekit/marquee/internal/scheduler"
)

const (
	// Interface is the marquee control interface name.
	Interface = "io.github.marqueekit.Marquee1"
	// Path is the marquee object path.
	Path = "/io/github/marqueekit/Marquee"
	// BusName is the bus name to claim.
	BusName = "io.github.marqueekit.Marquee"
)

// Server exports the scheduler's caller-facing API on the session bus.
type Server struct {
	sched  *scheduler.Scheduler
	logger *slog.Logger

	mu      sync.Mutex
	conn    *dbus.Conn
	running bool
}

// NewServer creates a control server for the given scheduler.
func NewServer(sched *scheduler.Scheduler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		sched:  sched,
		logger: logger,
	}
}

// Start connects to the session bus and exports the control service.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return fmt.Errorf("server already running")
	}

	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	s.conn = conn

	if err := conn.Export(s, Path, Interface); err != nil {
		return fmt.Errorf("failed to export object: %w", err)
	}

	node := &introspect.Node{
		Name: Path,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name:    Interface,
				Methods: controlMethods(),
			},
		},
	}
	if err := conn.Export(introspect.NewIntrospectable(node), Path,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("failed to export introspectable: %w", err)
	}

	reply, err := conn.RequestName(BusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("bus name %s already taken", BusName)
	}

	s.running = true
	s.logger.Info("D-Bus control server started", "interface", Interface, "path", Path)
	return nil
}

// Stop releases the bus name.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	if s.conn != nil {
		if _, err := s.conn.ReleaseName(BusName); err != nil {
			s.logger.Warn("failed to release bus name", "error", err)
		}
		// Don't close the connection as it's shared (SessionBus)
	}

	s.logger.Info("D-Bus control server stopped")
	return nil
}

// Submit schedules a banner for display.
// D-Bus method: Submit(sussss) -> s
func (s *Server) Submit(name string, priority uint32, precedence, title, body, icon string) (string, *dbus.Error) {
	s.logger.Debug("Submit called",
		"name", name,
		"priority", priority,
		"precedence", precedence,
		"title", title,
	)

	prec, err := ParsePrecedence(precedence)
	if err != nil {
		return "", dbus.MakeFailedError(err)
	}

	id, err := s.sched.Submit(banner.Content{
		Title: title,
		Body:  body,
		Icon:  icon,
	}, entry.Attributes{
		Name:       name,
		Priority:   entry.Priority(priority),
		Precedence: prec,
	})
	if err != nil {
		return "", dbus.MakeFailedError(err)
	}

	return id, nil
}

// Dismiss resolves a dismissal request against the scheduler.
// D-Bus method: Dismiss(ssu) -> nothing
func (s *Server) Dismiss(scope, name string, priority uint32) *dbus.Error {
	s.logger.Debug("Dismiss called", "scope", scope, "name", name, "priority", priority)

	d, err := ParseDismissal(scope, name, priority)
	if err != nil {
		return dbus.MakeFailedError(err)
	}

	s.sched.Dismiss(d, nil)
	return nil
}

// Status reports the scheduler's current state.
// D-Bus method: Status() -> (ssxub)
func (s *Server) Status() (string, string, int64, uint32, bool, *dbus.Error) {
	st := s.sched.Snapshot()

	var id, name string
	var since int64
	if st.Displayed != nil {
		id = st.Displayed.ID
		name = st.Displayed.Name()
		since = st.DisplayedSince.Unix()
	}

	return id, name, since, uint32(st.QueueLen), st.SurfaceActive, nil
}

// controlMethods returns the D-Bus method introspection data.
func controlMethods() []introspect.Method {
	return []introspect.Method{
		{
			Name: "Submit",
			Args: []introspect.Arg{
				{Name: "name", Type: "s", Direction: "in"},
				{Name: "priority", Type: "u", Direction: "in"},
				{Name: "precedence", Type: "s", Direction: "in"},
				{Name: "title", Type: "s", Direction: "in"},
				{Name: "body", Type: "s", Direction: "in"},
				{Name: "icon", Type: "s", Direction: "in"},
				{Name: "id", Type: "s", Direction: "out"},
			},
		},
		{
			Name: "Dismiss",
			Args: []introspect.Arg{
				{Name: "scope", Type: "s", Direction: "in"},
				{Name: "name", Type: "s", Direction: "in"},
				{Name: "priority", Type: "u", Direction: "in"},
			},
		},
		{
			Name: "Status",
			Args: []introspect.Arg{
				{Name: "displayed_id", Type: "s", Direction: "out"},
				{Name: "displayed_name", Type: "s", Direction: "out"},
				{Name: "displayed_since", Type: "x", Direction: "out"},
				{Name: "queue_len", Type: "u", Direction: "out"},
				{Name: "surface_active", Type: "b", Direction: "out"},
			},
		},
	}
}
