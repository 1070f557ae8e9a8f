package main

import (
	"github.com/spf13/cobra"

	"github.com/marqueekit/marquee/internal/demo"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the interactive scheduler demo",
	Long: `Run an interactive terminal demo of the banner scheduler.

The demo drives an in-process scheduler against a styled terminal
presenter, so no daemon or Wayland session is required.

Key bindings:
  1-4    enqueue a banner (low/normal/high/max priority)
  o      submit with override precedence
  O      submit with override precedence, dropping the queue
  d      dismiss the displayed banner
  e      clear the queue
  D      dismiss everything
  ?      toggle help
  q      quit`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	return demo.Run()
}
