package stats

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/viper"
	"github.com/steviee/go-bstats/internal/brawlstars"
	"github.com/steviee/go-bstats/internal/config"
)

// API is the set of client operations the commands use. *brawlstars.Client
// implements it directly; an AsyncClient is adapted by asyncAPI.
type API interface {
	GetPlayer(ctx context.Context, tag string, opts ...brawlstars.CallOption) (*brawlstars.Profile, error)
	GetBattlelog(ctx context.Context, tag string, opts ...brawlstars.CallOption) ([]brawlstars.BattlelogEntry, error)
	GetClub(ctx context.Context, tag string, opts ...brawlstars.CallOption) (*brawlstars.Club, error)
	GetClubMembers(ctx context.Context, tag string, opts ...brawlstars.CallOption) ([]brawlstars.ClubMember, error)
	GetBrawlers(ctx context.Context, opts ...brawlstars.CallOption) ([]brawlstars.Brawler, error)
	GetLeaderboard(ctx context.Context, opts brawlstars.LeaderboardOptions) ([]brawlstars.LeaderboardEntry, error)
	GetEventRotation(ctx context.Context, opts ...brawlstars.CallOption) ([]brawlstars.Rotation, error)
	GetPlayerClub(ctx context.Context, profile *brawlstars.Profile, opts ...brawlstars.CallOption) (*brawlstars.Club, error)
	Close() error
}

var _ API = (*brawlstars.Client)(nil)

// asyncAPI runs every call on an AsyncClient and waits for its future.
type asyncAPI struct {
	c *brawlstars.AsyncClient
}

func (a asyncAPI) GetPlayer(ctx context.Context, tag string, opts ...brawlstars.CallOption) (*brawlstars.Profile, error) {
	return a.c.GetPlayer(ctx, tag, opts...).Wait(ctx)
}

func (a asyncAPI) GetBattlelog(ctx context.Context, tag string, opts ...brawlstars.CallOption) ([]brawlstars.BattlelogEntry, error) {
	return a.c.GetBattlelog(ctx, tag, opts...).Wait(ctx)
}

func (a asyncAPI) GetClub(ctx context.Context, tag string, opts ...brawlstars.CallOption) (*brawlstars.Club, error) {
	return a.c.GetClub(ctx, tag, opts...).Wait(ctx)
}

func (a asyncAPI) GetClubMembers(ctx context.Context, tag string, opts ...brawlstars.CallOption) ([]brawlstars.ClubMember, error) {
	return a.c.GetClubMembers(ctx, tag, opts...).Wait(ctx)
}

func (a asyncAPI) GetBrawlers(ctx context.Context, opts ...brawlstars.CallOption) ([]brawlstars.Brawler, error) {
	return a.c.GetBrawlers(ctx, opts...).Wait(ctx)
}

func (a asyncAPI) GetLeaderboard(ctx context.Context, opts brawlstars.LeaderboardOptions) ([]brawlstars.LeaderboardEntry, error) {
	return a.c.GetLeaderboard(ctx, opts).Wait(ctx)
}

func (a asyncAPI) GetEventRotation(ctx context.Context, opts ...brawlstars.CallOption) ([]brawlstars.Rotation, error) {
	return a.c.GetEventRotation(ctx, opts...).Wait(ctx)
}

func (a asyncAPI) GetPlayerClub(ctx context.Context, profile *brawlstars.Profile, opts ...brawlstars.CallOption) (*brawlstars.Club, error) {
	return a.c.GetPlayerClub(ctx, profile, opts...).Wait(ctx)
}

func (a asyncAPI) Close() error {
	return a.c.Close()
}

// Connect builds a client from the merged configuration. The asynchronous
// setting picks the client type.
func Connect(ctx context.Context) (API, error) {
	cfg, err := config.FromViper(viper.GetViper())
	if err != nil {
		return nil, err
	}

	clientCfg := cfg.ClientConfig()

	if cfg.Asynchronous {
		slog.Debug("creating asynchronous client", "max_in_flight", clientCfg.MaxInFlight)
		c, err := brawlstars.NewAsync(ctx, clientCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create client: %w", err)
		}
		return asyncAPI{c: c}, nil
	}

	c, err := brawlstars.New(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return c, nil
}

// Settings returns the merged configuration.
func Settings() (*config.Config, error) {
	return config.FromViper(viper.GetViper())
}

// callOptions returns the per-call options selected by global flags.
func callOptions() []brawlstars.CallOption {
	if viper.GetBool("no_cache") {
		return []brawlstars.CallOption{brawlstars.NoCache()}
	}
	return nil
}

func isJSONMode() bool {
	return viper.GetBool("json")
}
