// Package display implements the GTK4 layer-shell banner presenter.
package display
