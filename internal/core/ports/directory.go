package ports

import (
	"context"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/domain"
)

// PlayerDirectory resolves player ids into their current valuation.
type PlayerDirectory interface {
	ResolvePlayer(ctx context.Context, playerID string) (*domain.Player, error)
}

// TeamInfo is what the trade desk needs to know about a team.
type TeamInfo struct {
	ID      string
	League  string
	OwnerID string
	Name    string
}

// TeamDirectory resolves teams and applies the roster changes of accepted
// trades.
type TeamDirectory interface {
	ResolveTeam(ctx context.Context, teamID string) (*TeamInfo, error)
	// ApplyRosterTrade moves the players of an accepted trade between the
	// two rosters. It either applies every change or none, returning
	// domain.ErrCapacityExceeded or domain.ErrPlayerNotOnRoster. If ctx
	// carries a database transaction the changes are part of it.
	ApplyRosterTrade(ctx context.Context, trade domain.RosterTrade) error
}
