package stats

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"
	"github.com/steviee/go-bstats/internal/brawlstars"
)

// RotationItem is one rotation slot in JSON output.
type RotationItem struct {
	brawlstars.Rotation
	EndsIn string `json:"ends_in"`
}

// NewRotationCommand creates the rotation command
func NewRotationCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rotation",
		Short:   "Show the current event rotation",
		Aliases: []string{"events"},
		Example: `  # Current events
  bstats rotation`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRotation(cmd.Context(), cmd.OutOrStdout(), time.Now())
		},
	}

	return cmd
}

func runRotation(ctx context.Context, stdout io.Writer, now time.Time) error {
	jsonMode := isJSONMode()

	api, err := Connect(ctx)
	if err != nil {
		return outputError(stdout, jsonMode, err)
	}
	defer func() { _ = api.Close() }()

	rotation, err := api.GetEventRotation(ctx, callOptions()...)
	if err != nil {
		return outputError(stdout, jsonMode, fmt.Errorf("failed to get event rotation: %w", err))
	}

	if jsonMode {
		items := make([]RotationItem, 0, len(rotation))
		for _, r := range rotation {
			items = append(items, RotationItem{Rotation: r, EndsIn: EndsIn(r, now)})
		}
		return writeJSON(stdout, items)
	}

	if len(rotation) == 0 {
		_, _ = fmt.Fprintln(stdout, "No events in rotation.")
		return nil
	}

	rows := make([][]string, 0, len(rotation))
	for _, r := range rotation {
		modifiers := "-"
		if len(r.Event.Modifiers) > 0 {
			names := make([]string, len(r.Event.Modifiers))
			for i, m := range r.Event.Modifiers {
				names[i] = brawlstars.HumanizeKey(m)
			}
			modifiers = strings.Join(names, ", ")
		}

		rows = append(rows, []string{
			strconv.Itoa(r.SlotID),
			r.Event.ModeName(),
			r.Event.Map,
			modifiers,
			EndsIn(r, now),
		})
	}

	_, _ = fmt.Fprint(stdout, renderTable([]string{"SLOT", "MODE", "MAP", "MODIFIERS", "ENDS IN"}, rows, 0))
	return nil
}

// EndsIn describes when a rotation slot ends, e.g. "3 hours".
func EndsIn(r brawlstars.Rotation, now time.Time) string {
	if r.EndTime.IsZero() {
		return "-"
	}
	remaining := r.Remaining(now)
	if remaining <= 0 {
		return "ended"
	}
	return units.HumanDuration(remaining)
}
