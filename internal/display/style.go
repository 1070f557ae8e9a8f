package display

import (
	"os"
	"path/filepath"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// defaultCSS styles the banner window. Users can override it by placing a
// style.css in the marquee config directory.
const defaultCSS = `
.marquee-banner {
	background-color: @window_bg_color;
	border-radius: 12px;
	border: 1px solid alpha(@window_fg_color, 0.15);
	padding: 4px;
}

.marquee-banner.band-low {
	border-color: alpha(@window_fg_color, 0.08);
}

.marquee-banner.band-high,
.marquee-banner.band-max {
	border-color: @accent_color;
	border-width: 2px;
}

.marquee-title {
	font-weight: bold;
	font-size: 1.1em;
}

.marquee-body {
	opacity: 0.85;
}

.marquee-banner.exiting {
	opacity: 0;
	transition: opacity 200ms ease-out;
}
`

// StylePath returns the user CSS override location.
func StylePath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "marquee", "style.css"), nil
}

// applyStyles installs the banner stylesheet on the display. A user style.css
// takes precedence over the embedded default. Must run on the GTK main loop.
func applyStyles(display *gdk.Display) {
	provider := gtk.NewCSSProvider()

	css := defaultCSS
	if path, err := StylePath(); err == nil {
		if data, err := os.ReadFile(path); err == nil {
			css = string(data)
		}
	}
	provider.LoadFromString(css)

	gtk.StyleContextAddProviderForDisplay(
		display,
		provider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)
}
