package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marqueekit/marquee/internal/dbus"
	"github.com/marqueekit/marquee/internal/entry"
)

var dismissOpts struct {
	name     string
	priority uint32
	queue    bool
	all      bool
}

var dismissCmd = &cobra.Command{
	Use:   "dismiss",
	Short: "Dismiss banners by scope",
	Long: `Dismiss the displayed banner, or a wider scope.

With no flags the currently displayed banner is dismissed. The flags widen
or redirect the scope:

  --name <name>      dismiss every banner (displayed or queued) with the name
  --priority <n>     dismiss every banner at or below the priority
  --queue            drop queued banners, leave the displayed one alone
  --all              dismiss the displayed banner and drop the queue

Examples:
  marquee dismiss
  marquee dismiss --name ci
  marquee dismiss --priority 500
  marquee dismiss --all`,
	Args: cobra.NoArgs,
	RunE: runDismiss,
}

func init() {
	rootCmd.AddCommand(dismissCmd)

	dismissCmd.Flags().StringVarP(&dismissOpts.name, "name", "n", "",
		"Dismiss banners with this name")
	dismissCmd.Flags().Uint32VarP(&dismissOpts.priority, "priority", "p", 0,
		"Dismiss banners at or below this priority")
	dismissCmd.Flags().BoolVar(&dismissOpts.queue, "queue", false,
		"Dismiss only queued banners")
	dismissCmd.Flags().BoolVarP(&dismissOpts.all, "all", "a", false,
		"Dismiss everything")
}

// dismissScope maps the flag combination to a wire scope.
func dismissScope(cmd *cobra.Command) (scope, name string, priority entry.Priority, err error) {
	set := 0
	if dismissOpts.name != "" {
		set++
		scope, name = dbus.ScopeNamed, dismissOpts.name
	}
	if cmd.Flags().Changed("priority") {
		set++
		scope, priority = dbus.ScopePriority, entry.Priority(dismissOpts.priority)
	}
	if dismissOpts.queue {
		set++
		scope = dbus.ScopeEnqueued
	}
	if dismissOpts.all {
		set++
		scope = dbus.ScopeAll
	}

	if set > 1 {
		return "", "", 0, fmt.Errorf("--name, --priority, --queue and --all are mutually exclusive")
	}
	if set == 0 {
		scope = dbus.ScopeDisplayed
	}
	return scope, name, priority, nil
}

func runDismiss(cmd *cobra.Command, args []string) error {
	scope, name, priority, err := dismissScope(cmd)
	if err != nil {
		return err
	}

	client, err := dbus.NewClient()
	if err != nil {
		return fmt.Errorf("failed to connect to marqueed: %w", err)
	}

	return client.Dismiss(scope, name, priority)
}
