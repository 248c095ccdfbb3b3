package stats

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/steviee/go-bstats/internal/brawlstars"
)

// NewClubCommand creates the club command
func NewClubCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "club <tag>",
		Short: "Show a club and its members",
		Example: `  # Show a club
  bstats club '#8UUJ'`,
		Args: requireTag,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClub(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}

	return cmd
}

// NewMembersCommand creates the members command
func NewMembersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members <tag>",
		Short: "List the members of a club",
		Example: `  # List members
  bstats members '#8UUJ'

  # As JSON
  bstats members 8UUJ --json`,
		Args: requireTag,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMembers(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}

	return cmd
}

func runClub(ctx context.Context, stdout io.Writer, tag string) error {
	jsonMode := isJSONMode()

	api, err := Connect(ctx)
	if err != nil {
		return outputError(stdout, jsonMode, err)
	}
	defer func() { _ = api.Close() }()

	club, err := api.GetClub(ctx, tag, callOptions()...)
	if err != nil {
		return outputError(stdout, jsonMode, fmt.Errorf("failed to get club: %w", err))
	}

	if jsonMode {
		return writeJSON(stdout, club)
	}

	president := "-"
	if p, ok := club.President(); ok {
		president = p.Name
	}

	_, _ = fmt.Fprintln(stdout, titleStyle.Render(club.String()))
	_, _ = fmt.Fprint(stdout, renderFields([][2]string{
		{"Type", club.TypeName()},
		{"Trophies", strconv.Itoa(club.Trophies)},
		{"Required", strconv.Itoa(club.RequiredTrophies)},
		{"President", president},
		{"Members", strconv.Itoa(len(club.Members))},
		{"Description", club.Description},
	}))

	if len(club.Members) > 0 {
		_, _ = fmt.Fprintln(stdout)
		_, _ = fmt.Fprint(stdout, memberTable(club.Members))
	}

	return nil
}

func runMembers(ctx context.Context, stdout io.Writer, tag string) error {
	jsonMode := isJSONMode()

	api, err := Connect(ctx)
	if err != nil {
		return outputError(stdout, jsonMode, err)
	}
	defer func() { _ = api.Close() }()

	members, err := api.GetClubMembers(ctx, tag, callOptions()...)
	if err != nil {
		return outputError(stdout, jsonMode, fmt.Errorf("failed to get club members: %w", err))
	}

	if jsonMode {
		return writeJSON(stdout, members)
	}

	if len(members) == 0 {
		_, _ = fmt.Fprintln(stdout, "No members found.")
		return nil
	}

	_, _ = fmt.Fprint(stdout, memberTable(members))
	return nil
}

func memberTable(members []brawlstars.ClubMember) string {
	rows := make([][]string, 0, len(members))
	for i, m := range members {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			m.Name,
			m.Tag,
			m.RoleName(),
			strconv.Itoa(m.Trophies),
		})
	}

	return renderTable([]string{"#", "NAME", "TAG", "ROLE", "TROPHIES"}, rows, 0, 4)
}
