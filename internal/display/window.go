package display

import (
	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/marqueekit/marquee/internal/banner"
	"github.com/marqueekit/marquee/internal/config"
	"github.com/marqueekit/marquee/internal/entry"
)

// bannerWindow is a single layer-shell surface. It is created once per
// display session and restyled for each entry shown on it.
// All methods must run on the GTK main loop.
type bannerWindow struct {
	window *gtk.Window
	box    *gtk.Box

	bandClass string
	closed    bool
}

// newBannerWindow creates an undecorated layer-shell window sized per config.
func newBannerWindow(app *gtk.Application, cfg *config.DaemonConfig) *bannerWindow {
	b := &bannerWindow{}

	b.window = gtk.NewWindow()
	if app != nil {
		b.window.SetApplication(app)
	}
	b.window.SetDecorated(false)
	b.window.SetResizable(false)
	b.window.SetDefaultSize(cfg.Display.Width, -1)
	b.window.SetSizeRequest(cfg.Display.Width, -1)

	layershell.InitForWindow(b.window)
	layershell.SetLayer(b.window, layershell.LayerShellLayerTop)
	layershell.SetExclusiveZone(b.window, 0) // Don't reserve space
	layershell.SetKeyboardMode(b.window, layershell.LayerShellKeyboardModeNone)
	layershell.SetNamespace(b.window, "marquee-banner")

	b.box = gtk.NewBox(gtk.OrientationVertical, 6)
	b.box.AddCSSClass("marquee-banner")
	b.box.AddCSSClass(colorSchemeClass())
	b.box.SetMarginTop(8)
	b.box.SetMarginBottom(8)
	b.box.SetMarginStart(12)
	b.box.SetMarginEnd(12)
	b.window.SetChild(b.box)

	return b
}

// SetEntry replaces the banner content with the given entry.
func (b *bannerWindow) SetEntry(e *entry.Entry) {
	content, _ := banner.From(e.Payload)

	// Rebuild the content rows from scratch. The container box keeps its
	// CSS classes across entries.
	for child := b.box.FirstChild(); child != nil; child = b.box.FirstChild() {
		b.box.Remove(child)
	}

	b.box.RemoveCSSClass("exiting")
	if b.bandClass != "" {
		b.box.RemoveCSSClass(b.bandClass)
	}
	b.bandClass = "band-" + e.Priority().Band()
	b.box.AddCSSClass(b.bandClass)

	header := gtk.NewBox(gtk.OrientationHorizontal, 8)

	icon := gtk.NewImage()
	icon.AddCSSClass("marquee-icon")
	icon.SetPixelSize(32)
	if content.Icon != "" {
		icon.SetFromIconName(content.Icon)
	} else {
		icon.SetFromIconName("dialog-information")
	}
	header.Append(icon)

	title := gtk.NewLabel(content.TitleOrPlaceholder())
	title.AddCSSClass("marquee-title")
	title.SetXAlign(0)
	title.SetEllipsize(3) // PANGO_ELLIPSIZE_END
	title.SetMaxWidthChars(40)
	title.SetHExpand(true)
	header.Append(title)

	b.box.Append(header)

	if content.Body != "" {
		body := gtk.NewLabel(content.Body)
		body.AddCSSClass("marquee-body")
		body.SetXAlign(0)
		body.SetWrap(true)
		body.SetWrapMode(2) // PANGO_WRAP_WORD_CHAR
		body.SetMaxWidthChars(50)
		b.box.Append(body)
	}
}

// Present anchors the window per the display config and shows it.
func (b *bannerWindow) Present(display config.DisplayConfig) {
	b.applyAnchorPosition(display)
	b.window.Present()
}

// BeginExit applies the exit styling. The actual close follows after the
// fade duration elapses.
func (b *bannerWindow) BeginExit() {
	b.box.AddCSSClass("exiting")
}

// Close destroys the window.
func (b *bannerWindow) Close() {
	if b.closed {
		return
	}
	b.closed = true
	b.window.Close()
}

// applyAnchorPosition sets the layer-shell anchors and margins for the
// configured screen position.
func (b *bannerWindow) applyAnchorPosition(display config.DisplayConfig) {
	pos := config.Position(display.Position)
	offsetX := display.OffsetX
	offsetY := display.OffsetY

	// Reset all anchors first
	layershell.SetAnchor(b.window, layershell.LayerShellEdgeTop, false)
	layershell.SetAnchor(b.window, layershell.LayerShellEdgeBottom, false)
	layershell.SetAnchor(b.window, layershell.LayerShellEdgeLeft, false)
	layershell.SetAnchor(b.window, layershell.LayerShellEdgeRight, false)

	switch pos {
	case config.PositionTopRight:
		layershell.SetAnchor(b.window, layershell.LayerShellEdgeTop, true)
		layershell.SetAnchor(b.window, layershell.LayerShellEdgeRight, true)
		layershell.SetMargin(b.window, layershell.LayerShellEdgeTop, offsetY)
		layershell.SetMargin(b.window, layershell.LayerShellEdgeRight, offsetX)

	case config.PositionTopLeft:
		layershell.SetAnchor(b.window, layershell.LayerShellEdgeTop, true)
		layershell.SetAnchor(b.window, layershell.LayerShellEdgeLeft, true)
		layershell.SetMargin(b.window, layershell.LayerShellEdgeTop, offsetY)
		layershell.SetMargin(b.window, layershell.LayerShellEdgeLeft, offsetX)

	case config.PositionBottomRight:
		layershell.SetAnchor(b.window, layershell.LayerShellEdgeBottom, true)
		layershell.SetAnchor(b.window, layershell.LayerShellEdgeRight, true)
		layershell.SetMargin(b.window, layershell.LayerShellEdgeBottom, offsetY)
		layershell.SetMargin(b.window, layershell.LayerShellEdgeRight, offsetX)

	case config.PositionBottomLeft:
		layershell.SetAnchor(b.window, layershell.LayerShellEdgeBottom, true)
		layershell.SetAnchor(b.window, layershell.LayerShellEdgeLeft, true)
		layershell.SetMargin(b.window, layershell.LayerShellEdgeBottom, offsetY)
		layershell.SetMargin(b.window, layershell.LayerShellEdgeLeft, offsetX)

	case config.PositionBottomCenter:
		layershell.SetAnchor(b.window, layershell.LayerShellEdgeBottom, true)
		layershell.SetMargin(b.window, layershell.LayerShellEdgeBottom, offsetY)

	default: // top-center
		layershell.SetAnchor(b.window, layershell.LayerShellEdgeTop, true)
		layershell.SetMargin(b.window, layershell.LayerShellEdgeTop, offsetY)
	}
}

// colorSchemeClass returns "dark" or "light" from the libadwaita style manager.
func colorSchemeClass() string {
	styleManager := adw.StyleManagerGetDefault()
	if styleManager.Dark() {
		return "dark"
	}
	return "light"
}
