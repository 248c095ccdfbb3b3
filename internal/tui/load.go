package tui

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/steviee/go-bstats/internal/brawlstars"
	"golang.org/x/sync/errgroup"
)

// loadDashboard fetches the event rotation and the player rankings in
// parallel. force bypasses the response cache.
func loadDashboard(ctx context.Context, source Source, opts Options, force bool) ([]brawlstars.Rotation, []brawlstars.LeaderboardEntry, error) {
	var (
		rotation []brawlstars.Rotation
		leaders  []brawlstars.LeaderboardEntry
	)

	var callOpts []brawlstars.CallOption
	if force {
		callOpts = append(callOpts, brawlstars.NoCache())
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r, err := source.GetEventRotation(gctx, callOpts...)
		if err != nil {
			return fmt.Errorf("failed to load event rotation: %w", err)
		}
		rotation = r
		return nil
	})

	g.Go(func() error {
		l, err := source.GetLeaderboard(gctx, brawlstars.LeaderboardOptions{
			Mode:    brawlstars.ModePlayers,
			Region:  opts.Region,
			Limit:   opts.Limit,
			NoCache: force,
		})
		if err != nil {
			return fmt.Errorf("failed to load rankings: %w", err)
		}
		leaders = l
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	// Slots sorted by end time, soonest first.
	sort.SliceStable(rotation, func(i, j int) bool {
		return rotation[i].EndTime.Before(rotation[j].EndTime.Time)
	})

	slog.Debug("dashboard loaded", "events", len(rotation), "rankings", len(leaders))
	return rotation, leaders, nil
}
