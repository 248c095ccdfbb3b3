package brawlstars

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the timestamp format used by the API.
const TimeLayout = "20060102T150405.000Z"

// Timestamp is an API timestamp such as "20240101T120000.000Z".
type Timestamp struct {
	time.Time
}

// UnmarshalJSON parses the API timestamp format.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(TimeLayout, s)
	if err != nil {
		return fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

// MarshalJSON writes the API timestamp format.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(t.UTC().Format(TimeLayout))
}

// Icon is a player icon reference.
type Icon struct {
	ID int `json:"id"`
}

// Profile is a player's profile and statistics.
type Profile struct {
	Tag                  string      `json:"tag"`
	Name                 string      `json:"name"`
	NameColor            string      `json:"nameColor"`
	Icon                 Icon        `json:"icon"`
	Trophies             int         `json:"trophies"`
	HighestTrophies      int         `json:"highestTrophies"`
	ExpLevel             int         `json:"expLevel"`
	ExpPoints            int         `json:"expPoints"`
	QualifiedFromCC      bool        `json:"isQualifiedFromChampionshipChallenge"`
	TeamVictories        int         `json:"3vs3Victories"`
	SoloVictories        int         `json:"soloVictories"`
	DuoVictories         int         `json:"duoVictories"`
	BestRoboRumbleTime   int         `json:"bestRoboRumbleTime"`
	BestTimeAsBigBrawler int         `json:"bestTimeAsBigBrawler"`
	Club                 ProfileClub `json:"club"`
	Brawlers             []Brawler   `json:"brawlers"`
}

// ProfileClub is the club reference embedded in a profile. Tag is empty for
// players without a club.
type ProfileClub struct {
	Tag  string `json:"tag"`
	Name string `json:"name"`
}

// InClub reports whether the player belongs to a club.
func (p Profile) InClub() bool {
	return p.Club.Tag != ""
}

func (p Profile) String() string {
	return fmt.Sprintf("%s (%s)", p.Name, p.Tag)
}

// Club is a club and its members.
type Club struct {
	Tag              string       `json:"tag"`
	Name             string       `json:"name"`
	Description      string       `json:"description"`
	Type             string       `json:"type"`
	BadgeID          int          `json:"badgeId"`
	RequiredTrophies int          `json:"requiredTrophies"`
	Trophies         int          `json:"trophies"`
	Members          []ClubMember `json:"members"`
}

// TypeName returns the club type for display: "Open", "Invite Only" or
// "Closed".
func (c Club) TypeName() string {
	if strings.EqualFold(c.Type, "inviteOnly") {
		return "Invite Only"
	}
	return TitleCase(c.Type)
}

// President returns the club president, if the member list has one.
func (c Club) President() (ClubMember, bool) {
	for _, m := range c.Members {
		if strings.EqualFold(m.Role, "president") {
			return m, true
		}
	}
	return ClubMember{}, false
}

func (c Club) String() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.Tag)
}

// ClubMember is a member as listed in the club tab.
type ClubMember struct {
	Tag       string `json:"tag"`
	Name      string `json:"name"`
	NameColor string `json:"nameColor"`
	Role      string `json:"role"`
	Trophies  int    `json:"trophies"`
	Icon      Icon   `json:"icon"`
}

// RoleName returns the member role for display, e.g. "Vice President".
func (m ClubMember) RoleName() string {
	return HumanizeKey(m.Role)
}

// Brawler is either a catalogue entry (from /brawlers) or a brawler owned by
// a player. Power, rank and trophies are zero for catalogue entries.
type Brawler struct {
	ID              int         `json:"id"`
	Name            string      `json:"name"`
	Power           int         `json:"power"`
	Rank            int         `json:"rank"`
	Trophies        int         `json:"trophies"`
	HighestTrophies int         `json:"highestTrophies"`
	Gadgets         []Gadget    `json:"gadgets"`
	StarPowers      []StarPower `json:"starPowers"`
	Gears           []Gear      `json:"gears"`
}

// DisplayName returns the brawler name in title case ("SHELLY" → "Shelly").
func (b Brawler) DisplayName() string {
	return TitleCase(b.Name)
}

func (b Brawler) String() string {
	return fmt.Sprintf("Rank %d %s (Power %02d)", b.Rank, b.DisplayName(), b.Power)
}

// Gadget is a brawler gadget.
type Gadget struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// StarPower is a brawler star power.
type StarPower struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Gear is a brawler gear.
type Gear struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// BattlelogEntry is a single battle from a player's battle log.
type BattlelogEntry struct {
	BattleTime Timestamp   `json:"battleTime"`
	Event      BattleEvent `json:"event"`
	Battle     Battle      `json:"battle"`
}

// BattleEvent identifies the event a battle was played in.
type BattleEvent struct {
	ID   int    `json:"id"`
	Mode string `json:"mode"`
	Map  string `json:"map"`
}

// Battle holds the outcome of a battle. Team modes fill Teams; solo
// showdown fills Players and Rank.
type Battle struct {
	Mode         string           `json:"mode"`
	Type         string           `json:"type"`
	Result       string           `json:"result"`
	Rank         int              `json:"rank"`
	Duration     int              `json:"duration"`
	TrophyChange int              `json:"trophyChange"`
	StarPlayer   *BattlePlayer    `json:"starPlayer"`
	Teams        [][]BattlePlayer `json:"teams"`
	Players      []BattlePlayer   `json:"players"`
}

// BattlePlayer is a participant of a battle.
type BattlePlayer struct {
	Tag     string        `json:"tag"`
	Name    string        `json:"name"`
	Brawler BattleBrawler `json:"brawler"`
}

func (p BattlePlayer) String() string {
	return fmt.Sprintf("%s (%s)", p.Name, p.Tag)
}

// BattleBrawler is the brawler a participant played.
type BattleBrawler struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Power    int    `json:"power"`
	Trophies int    `json:"trophies"`
}

// ModeName returns the game mode for display, e.g. "Brawl Ball".
func (e BattlelogEntry) ModeName() string {
	mode := e.Event.Mode
	if mode == "" {
		mode = e.Battle.Mode
	}
	return HumanizeKey(mode)
}

// MapName returns the map name, or "Community Map" when the API omits it.
func (e BattlelogEntry) MapName() string {
	if e.Event.Map == "" {
		return "Community Map"
	}
	return e.Event.Map
}

// ResultText returns "Victory", "Defeat" or "Draw" for team modes and
// "Rank N" for showdown.
func (e BattlelogEntry) ResultText() string {
	if e.Battle.Result != "" {
		return TitleCase(e.Battle.Result)
	}
	return fmt.Sprintf("Rank %d", e.Battle.Rank)
}

// Duration returns how long the battle lasted.
func (e BattlelogEntry) Duration() time.Duration {
	return time.Duration(e.Battle.Duration) * time.Second
}

// AllPlayers returns every participant, flattening teams.
func (e BattlelogEntry) AllPlayers() []BattlePlayer {
	if len(e.Battle.Teams) == 0 {
		return e.Battle.Players
	}

	var players []BattlePlayer
	for _, team := range e.Battle.Teams {
		players = append(players, team...)
	}
	return players
}

// LeaderboardEntry is one ranking row. Player rankings fill NameColor, Icon
// and Club; club rankings fill BadgeID and MemberCount.
type LeaderboardEntry struct {
	Tag         string       `json:"tag"`
	Name        string       `json:"name"`
	Trophies    int          `json:"trophies"`
	Rank        int          `json:"rank"`
	NameColor   string       `json:"nameColor,omitempty"`
	Icon        *Icon        `json:"icon,omitempty"`
	Club        *ProfileClub `json:"club,omitempty"`
	BadgeID     int          `json:"badgeId,omitempty"`
	MemberCount int          `json:"memberCount,omitempty"`
}

func (e LeaderboardEntry) String() string {
	return fmt.Sprintf("Rank %d: %s (%s)", e.Rank, e.Name, e.Tag)
}

// Rotation is one slot of the current event rotation.
type Rotation struct {
	StartTime Timestamp `json:"startTime"`
	EndTime   Timestamp `json:"endTime"`
	SlotID    int       `json:"slotId"`
	Event     Event     `json:"event"`
}

// Event is the event shown in a rotation slot.
type Event struct {
	ID        int      `json:"id"`
	Mode      string   `json:"mode"`
	Modifiers []string `json:"modifiers,omitempty"`
	Map       string   `json:"map"`
}

// ModeName returns the event's mode for display.
func (e Event) ModeName() string {
	return HumanizeKey(e.Mode)
}

// Remaining returns how long the rotation slot stays active after now.
func (r Rotation) Remaining(now time.Time) time.Duration {
	if r.EndTime.IsZero() || !now.Before(r.EndTime.Time) {
		return 0
	}
	return r.EndTime.Sub(now)
}

// Active reports whether the slot is running at now.
func (r Rotation) Active(now time.Time) bool {
	return !now.Before(r.StartTime.Time) && r.Remaining(now) > 0
}
