package domain

import (
	"errors"
	"fmt"
)

// Error categories. Every sentinel below wraps exactly one of them so that
// callers can branch with errors.Is(err, ErrNotFound) and friends.
var (
	// ErrNotFound is the category of missing trades, teams and players.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is the category of actors not allowed to perform a
	// transition.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidTrade is the category of malformed trade proposals.
	ErrInvalidTrade = errors.New("invalid trade")
	// ErrInvalidState is the category of transitions attempted on a trade that
	// is not pending anymore.
	ErrInvalidState = errors.New("invalid state")
	// ErrCapacityExceeded is returned when a roster would exceed its maximum
	// size.
	ErrCapacityExceeded = errors.New("roster capacity exceeded")
	// ErrPlayerNotOnRoster is returned when a player to move is not on the
	// expected roster.
	ErrPlayerNotOnRoster = errors.New("player not on roster")
	// ErrPlayerAlreadyOnRoster is returned when a player would be added twice
	// to the same roster.
	ErrPlayerAlreadyOnRoster = errors.New("player already on roster")
)

// Trade errors
var (
	// ErrTradeNotFound ...
	ErrTradeNotFound = fmt.Errorf("trade %w", ErrNotFound)
	// ErrTradeAlreadyExists ...
	ErrTradeAlreadyExists = errors.New("trade already exists")
	// ErrTradeEmptyOffer is returned when the initiator offers no players.
	ErrTradeEmptyOffer = fmt.Errorf("%w: offered players must not be empty", ErrInvalidTrade)
	// ErrTradeEmptyRequest is returned when the initiator requests no players.
	ErrTradeEmptyRequest = fmt.Errorf("%w: requested players must not be empty", ErrInvalidTrade)
	// ErrTradeSelfTrade is returned when initiator and recipient are the same
	// team.
	ErrTradeSelfTrade = fmt.Errorf("%w: a team cannot trade with itself", ErrInvalidTrade)
	// ErrTradeLeagueMismatch is returned when a team does not belong to the
	// league of the trade.
	ErrTradeLeagueMismatch = fmt.Errorf("%w: teams must belong to the trade league", ErrInvalidTrade)
	// ErrTradeDuplicatePlayer is returned when a player shows up more than once
	// across the two sides of a trade.
	ErrTradeDuplicatePlayer = fmt.Errorf("%w: a player can appear only once in a trade", ErrInvalidTrade)
	// ErrTradeNegativeValue is returned when a player valuation is below zero.
	ErrTradeNegativeValue = fmt.Errorf("%w: fantasy values must not be negative", ErrInvalidTrade)
	// ErrTradeInvalidDeadline ...
	ErrTradeInvalidDeadline = fmt.Errorf("%w: deadline must be in the future", ErrInvalidTrade)
	// ErrTradeMissingLeague ...
	ErrTradeMissingLeague = fmt.Errorf("%w: missing league", ErrInvalidTrade)
	// ErrTradeInvalidAction is returned for a response other than accept or
	// reject.
	ErrTradeInvalidAction = fmt.Errorf("%w: action must be either accept or reject", ErrInvalidTrade)

	// ErrTradeNotRecipient is returned when someone other than the recipient
	// tries to respond to a trade.
	ErrTradeNotRecipient = fmt.Errorf("%w: only the recipient can respond to the trade", ErrForbidden)
	// ErrTradeNotInitiator is returned when someone other than the initiator
	// tries to cancel a trade.
	ErrTradeNotInitiator = fmt.Errorf("%w: only the initiator can cancel the trade", ErrForbidden)
	// ErrTeamNotOwned is returned when the proposer does not own the initiator
	// team.
	ErrTeamNotOwned = fmt.Errorf("%w: team is not owned by user", ErrForbidden)

	// ErrTradeMustBePending ...
	ErrTradeMustBePending = fmt.Errorf("%w: trade is no longer pending", ErrInvalidState)
	// ErrTradeExpired is returned when the trade deadline has passed.
	ErrTradeExpired = fmt.Errorf("%w: trade has expired", ErrInvalidState)
	// ErrTradeDeadlineNotReached is returned when trying to expire a trade
	// before its deadline.
	ErrTradeDeadlineNotReached = fmt.Errorf("%w: trade deadline not reached", ErrInvalidState)
)

// Team and player errors
var (
	// ErrTeamNotFound ...
	ErrTeamNotFound = fmt.Errorf("team %w", ErrNotFound)
	// ErrPlayerNotFound ...
	ErrPlayerNotFound = fmt.Errorf("player %w", ErrNotFound)
	// ErrTeamInvalidRosterSize ...
	ErrTeamInvalidRosterSize = fmt.Errorf("max roster size must be in range [%d, %d]", MinRosterSize, MaxRosterSize)
	// ErrTeamInvalidBudget ...
	ErrTeamInvalidBudget = errors.New("budget must not be negative")
	// ErrPlayerUnknownSport ...
	ErrPlayerUnknownSport = errors.New("unknown sport")
	// ErrPlayerUnknownStat is returned when a stat line carries a key that does
	// not belong to the player's sport.
	ErrPlayerUnknownStat = errors.New("stat not tracked for sport")
)

// IsNotFound returns whether err is, or wraps, a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsForbidden returns whether err is, or wraps, an authorization error.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsInvalidTrade returns whether err is, or wraps, a proposal validation
// error.
func IsInvalidTrade(err error) bool {
	return errors.Is(err, ErrInvalidTrade)
}

// IsInvalidState returns whether err is, or wraps, an invalid transition error.
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}

// IsRosterError returns whether err is a roster mutation failure.
func IsRosterError(err error) bool {
	return errors.Is(err, ErrCapacityExceeded) ||
		errors.Is(err, ErrPlayerNotOnRoster) ||
		errors.Is(err, ErrPlayerAlreadyOnRoster)
}

// IsDomainError returns whether err belongs to any of the known categories.
func IsDomainError(err error) bool {
	return IsNotFound(err) || IsForbidden(err) || IsInvalidTrade(err) ||
		IsInvalidState(err) || IsRosterError(err)
}
