// Package preview renders banners as styled terminal boxes. It backs the
// marquee demo mode and headless testing, where a Wayland surface is not
// available.
package preview

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/marqueekit/marquee/internal/banner"
	"github.com/marqueekit/marquee/internal/entry"
	"github.com/marqueekit/marquee/internal/scheduler"
)

// bandColors maps priority bands to ANSI colors.
var bandColors = map[string]lipgloss.Color{
	"min":    lipgloss.Color("8"),
	"low":    lipgloss.Color("8"),
	"normal": lipgloss.Color("12"),
	"high":   lipgloss.Color("11"),
	"max":    lipgloss.Color("9"),
}

// Presenter writes one styled box per shown banner. It satisfies the same
// contract as the GTK presenter: one surface at a time, exit fades honored.
type Presenter struct {
	logger   *slog.Logger
	exitFade time.Duration

	mu  sync.Mutex
	out io.Writer
}

var _ scheduler.Presenter = (*Presenter)(nil)

// NewPresenter creates a terminal presenter writing to out.
func NewPresenter(out io.Writer, exitFade time.Duration, logger *slog.Logger) *Presenter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Presenter{
		logger:   logger,
		exitFade: exitFade,
		out:      out,
	}
}

// surface is a token. The terminal has no persistent window to manage.
type surface struct{}

// PrepareSurface always succeeds.
func (p *Presenter) PrepareSurface() (scheduler.Surface, error) {
	return &surface{}, nil
}

// Show renders the entry as a bordered box.
func (p *Presenter) Show(_ scheduler.Surface, e *entry.Entry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, Render(e))
}

// AnimateOut waits out the exit fade, then signals completion. Nothing is
// drawn; the next banner simply scrolls past.
func (p *Presenter) AnimateOut(_ scheduler.Surface, e *entry.Entry, done func()) {
	if p.exitFade <= 0 {
		done()
		return
	}
	time.AfterFunc(p.exitFade, done)
}

// TeardownSurface logs that the display went idle.
func (p *Presenter) TeardownSurface(_ scheduler.Surface) {
	p.logger.Debug("preview surface torn down")
}

// Render returns the styled box for an entry.
func Render(e *entry.Entry) string {
	content, _ := banner.From(e.Payload)
	band := e.Priority().Band()

	color, ok := bandColors[band]
	if !ok {
		color = lipgloss.Color("12")
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(color)
	metaStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8"))
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Width(46)

	meta := band
	if e.Name() != "" {
		meta = fmt.Sprintf("%s · %s", band, e.Name())
	}
	lines := titleStyle.Render(content.TitleOrPlaceholder()) + "\n" + metaStyle.Render(meta)
	if body := content.BodyTruncated(120); body != "" {
		lines += "\n" + body
	}

	return boxStyle.Render(lines)
}
