package stats

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/steviee/go-bstats/internal/brawlstars"
)

// PlayerFlags holds all flags for the player command
type PlayerFlags struct {
	Brawlers bool
	Club     bool
}

// PlayerResult is the JSON payload of the player command
type PlayerResult struct {
	Profile *brawlstars.Profile `json:"profile"`
	Club    *brawlstars.Club    `json:"club,omitempty"`
}

// NewPlayerCommand creates the player command
func NewPlayerCommand() *cobra.Command {
	flags := &PlayerFlags{}

	cmd := &cobra.Command{
		Use:   "player <tag>",
		Short: "Show a player's profile",
		Long: `Show a player's profile: trophies, experience, victories and club.

Tags are accepted with or without the leading '#'. The letter O is read as
the digit 0.`,
		Example: `  # Show a profile
  bstats player '#2PP'

  # Include owned brawlers
  bstats player 2PP --brawlers

  # Also fetch the player's club
  bstats player 2PP --club --json`,
		Args: requireTag,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlayer(cmd.Context(), cmd.OutOrStdout(), args[0], flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.Brawlers, "brawlers", "b", false, "List the player's brawlers")
	cmd.Flags().BoolVar(&flags.Club, "club", false, "Fetch the player's club")

	return cmd
}

func runPlayer(ctx context.Context, stdout io.Writer, tag string, flags *PlayerFlags) error {
	jsonMode := isJSONMode()

	api, err := Connect(ctx)
	if err != nil {
		return outputError(stdout, jsonMode, err)
	}
	defer func() { _ = api.Close() }()

	opts := callOptions()

	profile, err := api.GetPlayer(ctx, tag, opts...)
	if err != nil {
		return outputError(stdout, jsonMode, fmt.Errorf("failed to get player: %w", err))
	}

	result := PlayerResult{Profile: profile}
	if flags.Club && profile.InClub() {
		club, err := api.GetPlayerClub(ctx, profile, opts...)
		if err != nil {
			return outputError(stdout, jsonMode, fmt.Errorf("failed to get club: %w", err))
		}
		result.Club = club
	}

	if jsonMode {
		return writeJSON(stdout, result)
	}

	_, _ = fmt.Fprintln(stdout, titleStyle.Render(profile.String()))
	_, _ = fmt.Fprint(stdout, renderFields(profileFields(profile, result.Club)))

	if flags.Brawlers && len(profile.Brawlers) > 0 {
		_, _ = fmt.Fprintln(stdout)
		_, _ = fmt.Fprint(stdout, brawlerTable(profile.Brawlers))
	}

	return nil
}

func profileFields(p *brawlstars.Profile, club *brawlstars.Club) [][2]string {
	clubName := "-"
	if p.InClub() {
		clubName = fmt.Sprintf("%s (%s)", p.Club.Name, p.Club.Tag)
	}

	fields := [][2]string{
		{"Trophies", fmt.Sprintf("%d (highest %d)", p.Trophies, p.HighestTrophies)},
		{"Level", strconv.Itoa(p.ExpLevel)},
		{"3v3 Victories", strconv.Itoa(p.TeamVictories)},
		{"Solo Victories", strconv.Itoa(p.SoloVictories)},
		{"Duo Victories", strconv.Itoa(p.DuoVictories)},
		{"Brawlers", strconv.Itoa(len(p.Brawlers))},
		{"Club", clubName},
	}

	if club != nil {
		fields = append(fields,
			[2]string{"Club Type", club.TypeName()},
			[2]string{"Club Members", strconv.Itoa(len(club.Members))},
		)
	}

	return fields
}

// brawlerTable lists owned brawlers, highest trophies first.
func brawlerTable(brawlers []brawlstars.Brawler) string {
	sorted := make([]brawlstars.Brawler, len(brawlers))
	copy(sorted, brawlers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Trophies > sorted[j].Trophies
	})

	rows := make([][]string, 0, len(sorted))
	for _, b := range sorted {
		rows = append(rows, []string{
			b.DisplayName(),
			strconv.Itoa(b.Power),
			strconv.Itoa(b.Rank),
			strconv.Itoa(b.Trophies),
			strconv.Itoa(len(b.Gadgets) + len(b.StarPowers) + len(b.Gears)),
		})
	}

	return renderTable([]string{"BRAWLER", "POWER", "RANK", "TROPHIES", "ITEMS"}, rows, 1, 2, 3, 4)
}

// requireTag validates that exactly one tag is provided
func requireTag(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("tag is required\nUsage: %s\n\nRun '%s --help' for more information", cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("only one tag allowed, got: %v\nUsage: %s\n\nRun '%s --help' for more information", args, cmd.UseLine(), cmd.CommandPath())
	}
	return nil
}
