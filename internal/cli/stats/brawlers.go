package stats

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/steviee/go-bstats/internal/brawlstars"
)

// NewBrawlersCommand creates the brawlers command
func NewBrawlersCommand() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "brawlers",
		Short: "List every brawler in the game",
		Long: `List the brawler catalogue with IDs, star powers and gadgets.

The IDs shown here are accepted by 'bstats leaderboard brawlers --brawler'.`,
		Example: `  # All brawlers
  bstats brawlers

  # Brawlers whose name contains "pri"
  bstats brawlers --filter pri`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrawlers(cmd.Context(), cmd.OutOrStdout(), filter)
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "Only show brawlers whose name contains this text")

	return cmd
}

func runBrawlers(ctx context.Context, stdout io.Writer, filter string) error {
	jsonMode := isJSONMode()

	api, err := Connect(ctx)
	if err != nil {
		return outputError(stdout, jsonMode, err)
	}
	defer func() { _ = api.Close() }()

	brawlers, err := api.GetBrawlers(ctx, callOptions()...)
	if err != nil {
		return outputError(stdout, jsonMode, fmt.Errorf("failed to get brawlers: %w", err))
	}

	brawlers = filterBrawlers(brawlers, filter)

	if jsonMode {
		return writeJSON(stdout, brawlers)
	}

	if len(brawlers) == 0 {
		_, _ = fmt.Fprintln(stdout, "No brawlers match the filter.")
		return nil
	}

	rows := make([][]string, 0, len(brawlers))
	for _, b := range brawlers {
		rows = append(rows, []string{
			strconv.Itoa(b.ID),
			b.DisplayName(),
			itemNames(b.StarPowers, func(s brawlstars.StarPower) string { return s.Name }),
			itemNames(b.Gadgets, func(g brawlstars.Gadget) string { return g.Name }),
		})
	}

	_, _ = fmt.Fprint(stdout, renderTable([]string{"ID", "NAME", "STAR POWERS", "GADGETS"}, rows))
	return nil
}

func filterBrawlers(brawlers []brawlstars.Brawler, filter string) []brawlstars.Brawler {
	if filter == "" {
		return brawlers
	}

	filter = strings.ToUpper(filter)
	filtered := make([]brawlstars.Brawler, 0, len(brawlers))
	for _, b := range brawlers {
		if strings.Contains(strings.ToUpper(b.Name), filter) {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

func itemNames[T any](items []T, name func(T) string) string {
	if len(items) == 0 {
		return "-"
	}
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = brawlstars.TitleCase(name(item))
	}
	return strings.Join(names, ", ")
}
