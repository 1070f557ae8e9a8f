package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marqueekit/marquee/internal/dbus"
	"github.com/marqueekit/marquee/internal/entry"
)

var showOpts struct {
	name       string
	priority   uint32
	precedence string
	body       string
	icon       string
}

var showCmd = &cobra.Command{
	Use:   "show <title>",
	Short: "Submit a banner to the daemon",
	Long: `Submit a banner for display.

Priority selects the queue position (0-1000; 500 is normal, higher values
are shown first). Precedence decides what happens when another banner is
already on screen:

  enqueue        wait for the current banner to finish (default)
  override       replace the current banner, keep the queue
  override-drop  replace the current banner and drop the queue

Examples:
  marquee show "Build finished"
  marquee show "Disk almost full" --priority 750
  marquee show "Battery critical" --priority 1000 --precedence override-drop`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringVarP(&showOpts.name, "name", "n", "",
		"Banner name, used for named dismissal")
	showCmd.Flags().Uint32VarP(&showOpts.priority, "priority", "p", uint32(entry.PriorityNormal),
		"Priority (0-1000)")
	showCmd.Flags().StringVar(&showOpts.precedence, "precedence", dbus.PrecedenceEnqueue,
		"Admission precedence (enqueue, override, override-drop)")
	showCmd.Flags().StringVarP(&showOpts.body, "body", "b", "",
		"Banner body text")
	showCmd.Flags().StringVar(&showOpts.icon, "icon", "",
		"Icon name from the system icon theme")
}

func runShow(cmd *cobra.Command, args []string) error {
	client, err := dbus.NewClient()
	if err != nil {
		return fmt.Errorf("failed to connect to marqueed: %w", err)
	}

	id, err := client.Submit(
		showOpts.name,
		entry.Priority(showOpts.priority),
		showOpts.precedence,
		args[0],
		showOpts.body,
		showOpts.icon,
	)
	if err != nil {
		return err
	}

	fmt.Println(id)
	return nil
}
