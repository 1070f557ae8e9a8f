package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/marqueekit/marquee/internal/dbus"
)

var statusOpts struct {
	jsonOutput bool
}

// statusJSON is the machine-readable status shape, suitable for status bar
// custom modules.
type statusJSON struct {
	DisplayedID    string `json:"displayed_id,omitempty"`
	DisplayedName  string `json:"displayed_name,omitempty"`
	DisplayedSince int64  `json:"displayed_since,omitempty"`
	QueueLen       int    `json:"queue_len"`
	SurfaceActive  bool   `json:"surface_active"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report what the daemon is showing",
	Long: `Report the daemon's current state: the displayed banner (if any),
how long it has been up, and how many banners are queued behind it.

Use --json for machine-readable output.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVar(&statusOpts.jsonOutput, "json", false,
		"Output as JSON")
}

func runStatus(cmd *cobra.Command, args []string) error {
	client, err := dbus.NewClient()
	if err != nil {
		return fmt.Errorf("failed to connect to marqueed: %w", err)
	}

	st, err := client.Status()
	if err != nil {
		return err
	}

	if statusOpts.jsonOutput {
		out := statusJSON{
			DisplayedID:   st.DisplayedID,
			DisplayedName: st.DisplayedName,
			QueueLen:      st.QueueLen,
			SurfaceActive: st.SurfaceActive,
		}
		if !st.DisplayedSince.IsZero() {
			out.DisplayedSince = st.DisplayedSince.Unix()
		}
		return json.NewEncoder(os.Stdout).Encode(out)
	}

	if st.DisplayedID == "" {
		fmt.Println("Displayed: none")
	} else {
		name := st.DisplayedName
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Printf("Displayed: %s [%s], shown %s\n",
			name, st.DisplayedID, humanize.Time(st.DisplayedSince))
	}
	fmt.Printf("Queued:    %d\n", st.QueueLen)
	fmt.Printf("Surface:   active=%v\n", st.SurfaceActive)
	return nil
}
