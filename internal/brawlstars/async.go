package brawlstars

import "context"

// AsyncClient is a non-blocking Brawl Stars API client. Every call returns
// immediately with a Future; requests run on background goroutines, at most
// Config.MaxInFlight at a time.
type AsyncClient struct {
	s *session
}

// NewAsync creates a non-blocking client. Like New, it waits for the brawler
// catalogue before returning.
func NewAsync(ctx context.Context, config *Config) (*AsyncClient, error) {
	limit := 0
	if config != nil {
		limit = config.MaxInFlight
	}

	s, err := newSession(config, newGoroutineExecutor(limit))
	if err != nil {
		return nil, err
	}
	if err := s.loadBrawlers(ctx); err != nil {
		_ = s.close()
		return nil, err
	}
	return &AsyncClient{s: s}, nil
}

// GetPlayer fetches a player's profile.
func (c *AsyncClient) GetPlayer(ctx context.Context, tag string, opts ...CallOption) *Future[*Profile] {
	o := resolveCallOptions(opts)
	return submit(ctx, c.s.exec, func(ctx context.Context) (*Profile, error) {
		return c.s.getPlayer(ctx, tag, o)
	})
}

// GetBattlelog fetches a player's recent battles.
func (c *AsyncClient) GetBattlelog(ctx context.Context, tag string, opts ...CallOption) *Future[[]BattlelogEntry] {
	o := resolveCallOptions(opts)
	return submit(ctx, c.s.exec, func(ctx context.Context) ([]BattlelogEntry, error) {
		return c.s.getBattlelog(ctx, tag, o)
	})
}

// GetClub fetches a club.
func (c *AsyncClient) GetClub(ctx context.Context, tag string, opts ...CallOption) *Future[*Club] {
	o := resolveCallOptions(opts)
	return submit(ctx, c.s.exec, func(ctx context.Context) (*Club, error) {
		return c.s.getClub(ctx, tag, o)
	})
}

// GetClubMembers fetches a club's members.
func (c *AsyncClient) GetClubMembers(ctx context.Context, tag string, opts ...CallOption) *Future[[]ClubMember] {
	o := resolveCallOptions(opts)
	return submit(ctx, c.s.exec, func(ctx context.Context) ([]ClubMember, error) {
		return c.s.getClubMembers(ctx, tag, o)
	})
}

// GetBrawlers fetches the brawler catalogue.
func (c *AsyncClient) GetBrawlers(ctx context.Context, opts ...CallOption) *Future[[]Brawler] {
	o := resolveCallOptions(opts)
	return submit(ctx, c.s.exec, func(ctx context.Context) ([]Brawler, error) {
		return c.s.getBrawlers(ctx, o)
	})
}

// GetLeaderboard fetches leaderboard rankings. Invalid options resolve the
// future with a *ValidationError without sending a request.
func (c *AsyncClient) GetLeaderboard(ctx context.Context, opts LeaderboardOptions) *Future[[]LeaderboardEntry] {
	return submit(ctx, c.s.exec, func(ctx context.Context) ([]LeaderboardEntry, error) {
		return c.s.getLeaderboard(ctx, opts)
	})
}

// GetEventRotation fetches the current event rotation.
func (c *AsyncClient) GetEventRotation(ctx context.Context, opts ...CallOption) *Future[[]Rotation] {
	o := resolveCallOptions(opts)
	return submit(ctx, c.s.exec, func(ctx context.Context) ([]Rotation, error) {
		return c.s.getEventRotation(ctx, o)
	})
}

// GetPlayerClub fetches the club of the given player.
func (c *AsyncClient) GetPlayerClub(ctx context.Context, profile *Profile, opts ...CallOption) *Future[*Club] {
	o := resolveCallOptions(opts)
	return submit(ctx, c.s.exec, func(ctx context.Context) (*Club, error) {
		return c.s.getPlayerClub(ctx, profile, o)
	})
}

// BrawlerIDs returns a copy of the brawler name→ID table.
func (c *AsyncClient) BrawlerIDs() map[string]int {
	return c.s.brawlerIDs()
}

// ClearCache clears the response cache.
func (c *AsyncClient) ClearCache() {
	if c.s.cache != nil {
		c.s.cache.Clear()
	}
}

// CacheSize returns the current number of entries in the cache.
func (c *AsyncClient) CacheSize() int {
	if c.s.cache == nil {
		return 0
	}
	return c.s.cache.Len()
}

// Close releases idle connections. In-flight requests are not cancelled.
// It is safe to call more than once.
func (c *AsyncClient) Close() error {
	return c.s.close()
}
