package ports

import (
	"context"
	"errors"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/domain"
)

// MaxTxRetries is the number of times a RepoManager runs a transaction
// handler again after a write conflict.
const MaxTxRetries = 5

// ErrTxConflict is returned when a transaction keeps conflicting with
// concurrent ones after MaxTxRetries attempts.
var ErrTxConflict = errors.New("transaction conflict, retry later")

// RepoManager interface defines the methods for trades, teams and players.
type RepoManager interface {
	TradeRepository() domain.TradeRepository
	TeamRepository() domain.TeamRepository
	PlayerRepository() domain.PlayerRepository

	// RunTransaction runs handler in a single database transaction that is
	// committed if handler returns no error, and discarded otherwise. The
	// transaction travels in the handler's context, so every repository call
	// using it takes part in the same transaction. Calling RunTransaction with
	// a context already carrying a transaction runs handler within the outer
	// one. Handlers may be run more than once in case of write conflicts and
	// must not have side effects other than repository calls.
	RunTransaction(
		ctx context.Context,
		readOnly bool,
		handler func(ctx context.Context) (interface{}, error),
	) (interface{}, error)

	Close()
}
