// Package stats implements the bstats commands that query the game API.
package stats

import "github.com/spf13/cobra"

// NewCommands creates the top-level API commands
func NewCommands() []*cobra.Command {
	return []*cobra.Command{
		NewPlayerCommand(),
		NewBattlelogCommand(),
		NewClubCommand(),
		NewMembersCommand(),
		NewBrawlersCommand(),
		NewLeaderboardCommand(),
		NewRotationCommand(),
		NewDashboardCommand(),
	}
}
