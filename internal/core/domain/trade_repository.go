package domain

import (
	"context"
	"sort"
	"time"
)

// TradeFilter selects trades. Empty fields match everything.
type TradeFilter struct {
	League string
	Status TradeStatus
	// TeamID matches trades where the team is either initiator or recipient.
	TeamID string
	// DeadlineBefore matches trades whose deadline is strictly before the
	// given time.
	DeadlineBefore time.Time
	// ProcessedSince matches trades processed at or after the given time.
	ProcessedSince time.Time
}

// Matches returns whether the trade satisfies every condition of the filter.
func (f TradeFilter) Matches(t *Trade) bool {
	if f.League != "" && t.League != f.League {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.TeamID != "" && !t.InvolvesTeam(f.TeamID) {
		return false
	}
	if !f.DeadlineBefore.IsZero() && !t.Deadline.Before(f.DeadlineBefore) {
		return false
	}
	if !f.ProcessedSince.IsZero() &&
		(t.ProcessedAt.IsZero() || t.ProcessedAt.Before(f.ProcessedSince)) {
		return false
	}
	return true
}

// SortTrades orders trades from the newest to the oldest, breaking ties by
// id.
func SortTrades(trades []*Trade) {
	sort.SliceStable(trades, func(i, j int) bool {
		if !trades[i].CreatedAt.Equal(trades[j].CreatedAt) {
			return trades[i].CreatedAt.After(trades[j].CreatedAt)
		}
		return trades[i].ID < trades[j].ID
	})
}

// TradeRepository is the abstraction for any kind of database intended to
// persist Trades.
type TradeRepository interface {
	// AddTrade stores a new trade. It fails with ErrTradeAlreadyExists if the
	// id is taken.
	AddTrade(ctx context.Context, trade *Trade) error
	// GetTrade returns the trade with the given id or ErrTradeNotFound.
	GetTrade(ctx context.Context, tradeID string) (*Trade, error)
	// GetTrades returns the page of trades matching the filter, sorted newest
	// first, along with the total number of matches. A nil page returns all
	// matches.
	GetTrades(ctx context.Context, filter TradeFilter, page *Page) ([]*Trade, int, error)
	// UpdateTrade allows to commit multiple changes to the same trade in a
	// transactional way.
	UpdateTrade(
		ctx context.Context,
		tradeID string,
		updateFn func(t *Trade) (*Trade, error),
	) error
}

// TeamRepository persists teams and their rosters.
type TeamRepository interface {
	SaveTeam(ctx context.Context, team *Team) error
	GetTeam(ctx context.Context, teamID string) (*Team, error)
	UpdateTeam(
		ctx context.Context,
		teamID string,
		updateFn func(t *Team) (*Team, error),
	) error
}

// PlayerRepository persists player valuations.
type PlayerRepository interface {
	SavePlayer(ctx context.Context, player *Player) error
	GetPlayer(ctx context.Context, playerID string) (*Player, error)
}
