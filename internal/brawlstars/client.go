package brawlstars

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

const (
	// DefaultBaseURL is the default Brawl Stars API base URL.
	DefaultBaseURL = "https://api.brawlstars.com/v1"

	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 45 * time.Second

	// Version is the client version reported in the User-Agent header.
	Version = "1.1.0"
)

// UserAgent is the user agent string sent with API requests.
var UserAgent = fmt.Sprintf("go-bstats/%s (Go %s)", Version, runtime.Version())

// Config holds client configuration.
type Config struct {
	// Token is the API token from the developer portal. Required.
	Token string

	BaseURL   string
	Timeout   time.Duration
	UserAgent string

	CacheSize    int
	CacheTTL     time.Duration
	DisableCache bool

	// StrictTags restricts tags to the game's tag alphabet.
	StrictTags bool

	// MaxInFlight bounds concurrent requests of an AsyncClient.
	MaxInFlight int

	// HTTPClient replaces the default HTTP client. Timeout is ignored when set.
	HTTPClient *http.Client
}

// CallOption adjusts a single API call.
type CallOption func(*callOptions)

type callOptions struct {
	useCache bool
}

// NoCache makes the call bypass the response cache.
func NoCache() CallOption {
	return func(o *callOptions) {
		o.useCache = false
	}
}

func resolveCallOptions(opts []CallOption) callOptions {
	o := callOptions{useCache: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// session is the state shared by Client and AsyncClient. Every endpoint is
// implemented here once; the clients only differ in their executor.
type session struct {
	base       Route
	httpClient *http.Client
	cache      *Cache
	transport  *Transport
	strictTags bool
	exec       executor

	// brawlers is filled once during construction and read-only afterwards.
	brawlers brawlerTable

	closeOnce sync.Once
	closed    atomic.Bool
}

func newSession(config *Config, exec executor) (*session, error) {
	if config == nil {
		return nil, ErrMissingToken
	}
	cfg := *config

	if cfg.Token == "" {
		return nil, ErrMissingToken
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidTimeout, cfg.Timeout)
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.UserAgent == "" {
		cfg.UserAgent = UserAgent
	}

	var cache *Cache
	if !cfg.DisableCache {
		cache = NewCache(cfg.CacheSize, cfg.CacheTTL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	slog.Debug("creating Brawl Stars API client",
		"base_url", cfg.BaseURL,
		"timeout", cfg.Timeout,
		"cache_enabled", !cfg.DisableCache)

	return &session{
		base:       NewRoute(cfg.BaseURL, "/", nil),
		httpClient: httpClient,
		cache:      cache,
		transport:  NewTransport(httpClient, cfg.Token, cfg.UserAgent, cache),
		strictTags: cfg.StrictTags,
		exec:       exec,
	}, nil
}

// loadBrawlers fetches the brawler catalogue and builds the name→ID table
// used by leaderboard validation.
func (s *session) loadBrawlers(ctx context.Context) error {
	brawlers, err := await(ctx, s.exec, func(ctx context.Context) ([]Brawler, error) {
		return s.getBrawlers(ctx, callOptions{useCache: true})
	})
	if err != nil {
		return fmt.Errorf("load brawler catalogue: %w", err)
	}

	table := make(brawlerTable, len(brawlers))
	for _, b := range brawlers {
		table[TitleCase(b.Name)] = b.ID
	}
	s.brawlers = table

	slog.Debug("loaded brawler catalogue", "count", len(table))
	return nil
}

func (s *session) request(ctx context.Context, route Route, useCache bool) (Payload, error) {
	if s.closed.Load() {
		return Payload{}, ErrClientClosed
	}
	return s.transport.Request(ctx, route.URL(), useCache)
}

func (s *session) tagRoute(tag, format string) (Route, error) {
	if err := ValidateTag(tag, s.strictTags); err != nil {
		return Route{}, err
	}
	return s.base.WithPath(fmt.Sprintf(format, FormatTag(tag))), nil
}

func (s *session) getPlayer(ctx context.Context, tag string, o callOptions) (*Profile, error) {
	route, err := s.tagRoute(tag, "/players/%s")
	if err != nil {
		return nil, err
	}
	payload, err := s.request(ctx, route, o.useCache)
	if err != nil {
		return nil, err
	}
	return decodeOne[Profile](payload)
}

func (s *session) getBattlelog(ctx context.Context, tag string, o callOptions) ([]BattlelogEntry, error) {
	route, err := s.tagRoute(tag, "/players/%s/battlelog")
	if err != nil {
		return nil, err
	}
	payload, err := s.request(ctx, route, o.useCache)
	if err != nil {
		return nil, err
	}
	return decodeItems[BattlelogEntry](payload)
}

func (s *session) getClub(ctx context.Context, tag string, o callOptions) (*Club, error) {
	route, err := s.tagRoute(tag, "/clubs/%s")
	if err != nil {
		return nil, err
	}
	payload, err := s.request(ctx, route, o.useCache)
	if err != nil {
		return nil, err
	}
	return decodeOne[Club](payload)
}

func (s *session) getClubMembers(ctx context.Context, tag string, o callOptions) ([]ClubMember, error) {
	route, err := s.tagRoute(tag, "/clubs/%s/members")
	if err != nil {
		return nil, err
	}
	payload, err := s.request(ctx, route, o.useCache)
	if err != nil {
		return nil, err
	}
	return decodeItems[ClubMember](payload)
}

func (s *session) getBrawlers(ctx context.Context, o callOptions) ([]Brawler, error) {
	payload, err := s.request(ctx, s.base.WithPath("/brawlers"), o.useCache)
	if err != nil {
		return nil, err
	}
	return decodeItems[Brawler](payload)
}

func (s *session) getLeaderboard(ctx context.Context, opts LeaderboardOptions) ([]LeaderboardEntry, error) {
	q, err := validateLeaderboard(opts, s.brawlers)
	if err != nil {
		return nil, err
	}
	payload, err := s.request(ctx, q.route(s.base), q.useCache)
	if err != nil {
		return nil, err
	}
	return decodeItems[LeaderboardEntry](payload)
}

func (s *session) getEventRotation(ctx context.Context, o callOptions) ([]Rotation, error) {
	payload, err := s.request(ctx, s.base.WithPath("/events/rotation"), o.useCache)
	if err != nil {
		return nil, err
	}
	return decodeItems[Rotation](payload)
}

func (s *session) getPlayerClub(ctx context.Context, profile *Profile, o callOptions) (*Club, error) {
	if profile == nil || !profile.InClub() {
		return nil, ErrNotInClub
	}
	return s.getClub(ctx, profile.Club.Tag, o)
}

func (s *session) brawlerIDs() map[string]int {
	out := make(map[string]int, len(s.brawlers))
	for name, id := range s.brawlers {
		out[name] = id
	}
	return out
}

func (s *session) close() error {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		s.httpClient.CloseIdleConnections()
		slog.Debug("closed Brawl Stars API client")
	})
	return nil
}

// decodeOne decodes a bare object response.
func decodeOne[T any](p Payload) (*T, error) {
	var v T
	if err := p.Decode(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

// decodeItems decodes a paged {"items": [...]} response. A payload without
// an items key is decoded as a single element; "items": null is an empty page.
func decodeItems[T any](p Payload) ([]T, error) {
	var page map[string]json.RawMessage
	if err := p.Decode(&page); err != nil {
		// Bare arrays are accepted as-is.
		var list []T
		if listErr := p.Decode(&list); listErr == nil {
			return list, nil
		}
		return nil, err
	}

	raw, ok := page["items"]
	if !ok {
		one, err := decodeOne[T](p)
		if err != nil {
			return nil, err
		}
		return []T{*one}, nil
	}

	items := []T{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Client is a blocking Brawl Stars API client.
type Client struct {
	s *session
}

// New creates a blocking client. It fetches the brawler catalogue before
// returning, so the client is ready for leaderboard queries.
func New(ctx context.Context, config *Config) (*Client, error) {
	s, err := newSession(config, inlineExecutor{})
	if err != nil {
		return nil, err
	}
	if err := s.loadBrawlers(ctx); err != nil {
		_ = s.close()
		return nil, err
	}
	return &Client{s: s}, nil
}

// GetPlayer returns a player's profile.
func (c *Client) GetPlayer(ctx context.Context, tag string, opts ...CallOption) (*Profile, error) {
	o := resolveCallOptions(opts)
	return await(ctx, c.s.exec, func(ctx context.Context) (*Profile, error) {
		return c.s.getPlayer(ctx, tag, o)
	})
}

// GetBattlelog returns a player's recent battles.
func (c *Client) GetBattlelog(ctx context.Context, tag string, opts ...CallOption) ([]BattlelogEntry, error) {
	o := resolveCallOptions(opts)
	return await(ctx, c.s.exec, func(ctx context.Context) ([]BattlelogEntry, error) {
		return c.s.getBattlelog(ctx, tag, o)
	})
}

// GetClub returns a club.
func (c *Client) GetClub(ctx context.Context, tag string, opts ...CallOption) (*Club, error) {
	o := resolveCallOptions(opts)
	return await(ctx, c.s.exec, func(ctx context.Context) (*Club, error) {
		return c.s.getClub(ctx, tag, o)
	})
}

// GetClubMembers returns a club's members.
func (c *Client) GetClubMembers(ctx context.Context, tag string, opts ...CallOption) ([]ClubMember, error) {
	o := resolveCallOptions(opts)
	return await(ctx, c.s.exec, func(ctx context.Context) ([]ClubMember, error) {
		return c.s.getClubMembers(ctx, tag, o)
	})
}

// GetBrawlers returns the brawler catalogue. These are all brawlers in the
// game, not the ones a player owns.
func (c *Client) GetBrawlers(ctx context.Context, opts ...CallOption) ([]Brawler, error) {
	o := resolveCallOptions(opts)
	return await(ctx, c.s.exec, func(ctx context.Context) ([]Brawler, error) {
		return c.s.getBrawlers(ctx, o)
	})
}

// GetLeaderboard returns leaderboard rankings. Options are validated before
// any request is sent.
func (c *Client) GetLeaderboard(ctx context.Context, opts LeaderboardOptions) ([]LeaderboardEntry, error) {
	return await(ctx, c.s.exec, func(ctx context.Context) ([]LeaderboardEntry, error) {
		return c.s.getLeaderboard(ctx, opts)
	})
}

// GetEventRotation returns the current event rotation.
func (c *Client) GetEventRotation(ctx context.Context, opts ...CallOption) ([]Rotation, error) {
	o := resolveCallOptions(opts)
	return await(ctx, c.s.exec, func(ctx context.Context) ([]Rotation, error) {
		return c.s.getEventRotation(ctx, o)
	})
}

// GetPlayerClub returns the club of the given player, or ErrNotInClub.
func (c *Client) GetPlayerClub(ctx context.Context, profile *Profile, opts ...CallOption) (*Club, error) {
	o := resolveCallOptions(opts)
	return await(ctx, c.s.exec, func(ctx context.Context) (*Club, error) {
		return c.s.getPlayerClub(ctx, profile, o)
	})
}

// BrawlerIDs returns a copy of the brawler name→ID table.
func (c *Client) BrawlerIDs() map[string]int {
	return c.s.brawlerIDs()
}

// ClearCache clears the response cache.
func (c *Client) ClearCache() {
	if c.s.cache != nil {
		c.s.cache.Clear()
	}
}

// CacheSize returns the current number of entries in the cache.
func (c *Client) CacheSize() int {
	if c.s.cache == nil {
		return 0
	}
	return c.s.cache.Len()
}

// Close releases idle connections. It is safe to call more than once.
func (c *Client) Close() error {
	return c.s.close()
}
