package stats

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/steviee/go-bstats/internal/brawlstars"
)

// LeaderboardFlags holds all flags for the leaderboard command
type LeaderboardFlags struct {
	Region  string
	Limit   int
	Brawler string
}

// NewLeaderboardCommand creates the leaderboard command
func NewLeaderboardCommand() *cobra.Command {
	flags := &LeaderboardFlags{}

	cmd := &cobra.Command{
		Use:   "leaderboard <players|clubs|brawlers>",
		Short: "Show trophy rankings",
		Long: `Show the top players, clubs or players of one brawler.

Region is "global" or a two-letter country code. Brawlers can be named or
given by ID; see 'bstats brawlers'.`,
		Example: `  # Global top 200 players
  bstats leaderboard players

  # Top 10 clubs in Germany
  bstats leaderboard clubs --region de --limit 10

  # Best Shelly players
  bstats leaderboard brawlers --brawler shelly`,
		Aliases: []string{"rankings", "top"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLeaderboard(cmd.Context(), cmd.OutOrStdout(), args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.Region, "region", "r", brawlstars.GlobalRegion, "Region code or \"global\"")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "n", brawlstars.MaxLeaderboardLimit, "Number of entries (1-200)")
	cmd.Flags().StringVar(&flags.Brawler, "brawler", "", "Brawler name or ID (required for brawlers)")

	return cmd
}

func runLeaderboard(ctx context.Context, stdout io.Writer, mode string, flags *LeaderboardFlags) error {
	jsonMode := isJSONMode()

	api, err := Connect(ctx)
	if err != nil {
		return outputError(stdout, jsonMode, err)
	}
	defer func() { _ = api.Close() }()

	opts := brawlstars.LeaderboardOptions{
		Mode:    mode,
		Region:  flags.Region,
		Limit:   flags.Limit,
		Brawler: flags.Brawler,
		NoCache: len(callOptions()) > 0,
	}

	entries, err := api.GetLeaderboard(ctx, opts)
	if err != nil {
		return outputError(stdout, jsonMode, fmt.Errorf("failed to get leaderboard: %w", err))
	}

	if jsonMode {
		return writeJSON(stdout, entries)
	}

	if len(entries) == 0 {
		_, _ = fmt.Fprintln(stdout, "No rankings found.")
		return nil
	}

	_, _ = fmt.Fprint(stdout, leaderboardTable(entries))
	return nil
}

func leaderboardTable(entries []brawlstars.LeaderboardEntry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		extra := "-"
		switch {
		case e.Club != nil && e.Club.Name != "":
			extra = e.Club.Name
		case e.MemberCount > 0:
			extra = fmt.Sprintf("%d members", e.MemberCount)
		}

		rows = append(rows, []string{
			strconv.Itoa(e.Rank),
			e.Name,
			e.Tag,
			strconv.Itoa(e.Trophies),
			extra,
		})
	}

	return renderTable([]string{"RANK", "NAME", "TAG", "TROPHIES", "CLUB"}, rows, 0, 3)
}
