package brawlstars

import (
	"fmt"
	"strconv"
	"strings"
)

// Leaderboard modes.
const (
	ModePlayers  = "players"
	ModeClubs    = "clubs"
	ModeBrawlers = "brawlers"
)

const (
	// GlobalRegion selects the worldwide leaderboard.
	GlobalRegion = "global"

	// MaxLeaderboardLimit is the largest page the API returns, and its default.
	MaxLeaderboardLimit = 200
)

// LeaderboardOptions selects a leaderboard.
type LeaderboardOptions struct {
	// Mode is one of "players", "clubs" or "brawlers".
	Mode string

	// Region is a two-letter country code or "global" (the default).
	Region string

	// Limit is the number of rankings to fetch, 1-200. Zero means 200.
	Limit int

	// Brawler is a brawler name or numeric ID. Required for the brawlers
	// mode. Other modes still reject an unknown brawler but do not use it.
	Brawler string

	// BrawlerID may be used instead of Brawler.
	BrawlerID int

	// NoCache bypasses the response cache.
	NoCache bool
}

// leaderboardQuery is a validated leaderboard request.
type leaderboardQuery struct {
	mode      string
	region    string
	limit     int
	brawlerID int
	useCache  bool
}

// path returns the endpoint path for the query.
func (q leaderboardQuery) path() string {
	path := fmt.Sprintf("/rankings/%s/%s", q.region, q.mode)
	if q.mode == ModeBrawlers {
		path += "/" + strconv.Itoa(q.brawlerID)
	}
	return path
}

// route builds the request route on base.
func (q leaderboardQuery) route(base Route) Route {
	r := base.WithPath(q.path())
	if q.limit < MaxLeaderboardLimit {
		r = r.WithQuery("limit", strconv.Itoa(q.limit))
	}
	return r
}

// brawlerTable maps title-cased brawler names to IDs.
type brawlerTable map[string]int

func (t brawlerTable) hasID(id int) bool {
	for _, known := range t {
		if known == id {
			return true
		}
	}
	return false
}

// validateLeaderboard checks and normalizes leaderboard options.
func validateLeaderboard(opts LeaderboardOptions, brawlers brawlerTable) (leaderboardQuery, error) {
	q := leaderboardQuery{useCache: !opts.NoCache}

	q.mode = strings.ToLower(strings.TrimSpace(opts.Mode))
	switch q.mode {
	case ModePlayers, ModeClubs, ModeBrawlers:
	default:
		return q, newValidationError("mode", "%q is not a valid choice, use players, clubs or brawlers", opts.Mode)
	}

	q.limit = opts.Limit
	if q.limit == 0 {
		q.limit = MaxLeaderboardLimit
	}
	if q.limit < 1 || q.limit > MaxLeaderboardLimit {
		return q, newValidationError("limit", "%d is not between 1 and %d", opts.Limit, MaxLeaderboardLimit)
	}

	q.region = strings.ToLower(strings.TrimSpace(opts.Region))
	if q.region == "" {
		q.region = GlobalRegion
	}
	if q.region != GlobalRegion && len(q.region) != 2 {
		return q, newValidationError("region", "%q must be a two-letter country code or %q", opts.Region, GlobalRegion)
	}

	hasBrawler := strings.TrimSpace(opts.Brawler) != "" || opts.BrawlerID != 0
	if !hasBrawler && q.mode != ModeBrawlers {
		return q, nil
	}

	// A supplied brawler must resolve in every mode; only the brawlers
	// leaderboard puts it in the path.
	id, err := resolveBrawler(opts, brawlers)
	if err != nil {
		return q, err
	}
	if q.mode == ModeBrawlers {
		q.brawlerID = id
	}

	return q, nil
}

// resolveBrawler turns the brawler option into a known brawler ID.
func resolveBrawler(opts LeaderboardOptions, brawlers brawlerTable) (int, error) {
	name := strings.TrimSpace(opts.Brawler)

	switch {
	case name == "" && opts.BrawlerID == 0:
		return 0, newValidationError("brawler", "a brawler name or ID is required for the brawlers leaderboard")
	case name != "" && opts.BrawlerID != 0:
		return 0, newValidationError("brawler", "set either a brawler name or an ID, not both")
	}

	id := opts.BrawlerID
	if name != "" {
		parsed, err := strconv.Atoi(name)
		if err != nil {
			title := TitleCase(name)
			known, ok := brawlers[title]
			if !ok {
				return 0, newValidationError("brawler", "%q is not a valid brawler", title)
			}
			return known, nil
		}
		id = parsed
	}

	if !brawlers.hasID(id) {
		return 0, newValidationError("brawler", "brawler with ID %d is not a valid brawler", id)
	}
	return id, nil
}
