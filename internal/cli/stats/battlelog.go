package stats

import (
	"context"
	"fmt"
	"io"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"
	"github.com/steviee/go-bstats/internal/brawlstars"
)

// NewBattlelogCommand creates the battlelog command
func NewBattlelogCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "battlelog <tag>",
		Short:   "Show a player's recent battles",
		Aliases: []string{"battles"},
		Example: `  # Recent battles
  bstats battlelog '#2PP'

  # Only the last five
  bstats battlelog 2PP --limit 5`,
		Args: requireTag,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBattlelog(cmd.Context(), cmd.OutOrStdout(), args[0], limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many battles (0 for all)")

	return cmd
}

func runBattlelog(ctx context.Context, stdout io.Writer, tag string, limit int) error {
	jsonMode := isJSONMode()

	api, err := Connect(ctx)
	if err != nil {
		return outputError(stdout, jsonMode, err)
	}
	defer func() { _ = api.Close() }()

	entries, err := api.GetBattlelog(ctx, tag, callOptions()...)
	if err != nil {
		return outputError(stdout, jsonMode, fmt.Errorf("failed to get battlelog: %w", err))
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	if jsonMode {
		return writeJSON(stdout, entries)
	}

	if len(entries) == 0 {
		_, _ = fmt.Fprintln(stdout, "No battles found.")
		return nil
	}

	_, _ = fmt.Fprint(stdout, battlelogTable(entries))
	return nil
}

func battlelogTable(entries []brawlstars.BattlelogEntry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.BattleTime.Local().Format("2006-01-02 15:04"),
			e.ModeName(),
			e.MapName(),
			resultStyle(e.Battle.Result).Render(e.ResultText()),
			fmt.Sprintf("%+d", e.Battle.TrophyChange),
			battleDuration(e),
		})
	}

	return renderTable([]string{"TIME", "MODE", "MAP", "RESULT", "TROPHIES", "DURATION"}, rows, 4)
}

func battleDuration(e brawlstars.BattlelogEntry) string {
	if e.Battle.Duration == 0 {
		return "-"
	}
	return units.HumanDuration(e.Duration())
}
