// Package daemon wires the scheduler, GTK presenter, control bus, audio
// and config hot-reload into the marqueed process.
package daemon
