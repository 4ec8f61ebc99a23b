package inmemory

import (
	"context"
	"sync"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/domain"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/ports"
)

type txKey struct{}

// inmemoryStore holds every collection behind a single lock. Transactions
// hold the lock for their whole duration, which makes them serializable.
type inmemoryStore struct {
	locker  *sync.RWMutex
	trades  map[string]*domain.Trade
	teams   map[string]*domain.Team
	players map[string]*domain.Player
}

type snapshot struct {
	trades  map[string]*domain.Trade
	teams   map[string]*domain.Team
	players map[string]*domain.Player
}

func (s *inmemoryStore) snapshot() snapshot {
	snap := snapshot{
		trades:  make(map[string]*domain.Trade, len(s.trades)),
		teams:   make(map[string]*domain.Team, len(s.teams)),
		players: make(map[string]*domain.Player, len(s.players)),
	}
	for k, v := range s.trades {
		snap.trades[k] = v
	}
	for k, v := range s.teams {
		snap.teams[k] = v
	}
	for k, v := range s.players {
		snap.players[k] = v
	}
	return snap
}

func (s *inmemoryStore) restore(snap snapshot) {
	s.trades = snap.trades
	s.teams = snap.teams
	s.players = snap.players
}

// withTx runs fn with the store lock held, unless ctx carries a transaction
// that already holds it.
func (s *inmemoryStore) withTx(ctx context.Context, write bool, fn func()) {
	if tx, ok := ctx.Value(txKey{}).(*inmemoryStore); ok && tx == s {
		fn()
		return
	}
	if write {
		s.locker.Lock()
		defer s.locker.Unlock()
	} else {
		s.locker.RLock()
		defer s.locker.RUnlock()
	}
	fn()
}

type repoManager struct {
	store *inmemoryStore

	tradeRepository  domain.TradeRepository
	teamRepository   domain.TeamRepository
	playerRepository domain.PlayerRepository
}

// NewRepoManager returns a RepoManager keeping everything in memory.
func NewRepoManager() ports.RepoManager {
	store := &inmemoryStore{
		locker:  &sync.RWMutex{},
		trades:  make(map[string]*domain.Trade),
		teams:   make(map[string]*domain.Team),
		players: make(map[string]*domain.Player),
	}

	return &repoManager{
		store:            store,
		tradeRepository:  NewTradeRepositoryImpl(store),
		teamRepository:   NewTeamRepositoryImpl(store),
		playerRepository: NewPlayerRepositoryImpl(store),
	}
}

func (d *repoManager) TradeRepository() domain.TradeRepository {
	return d.tradeRepository
}

func (d *repoManager) TeamRepository() domain.TeamRepository {
	return d.teamRepository
}

func (d *repoManager) PlayerRepository() domain.PlayerRepository {
	return d.playerRepository
}

// RunTransaction holds the store lock while running handler and restores
// the state of the store as it was before if handler fails.
func (d *repoManager) RunTransaction(
	ctx context.Context,
	readOnly bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	if tx, ok := ctx.Value(txKey{}).(*inmemoryStore); ok && tx == d.store {
		return handler(ctx)
	}

	if readOnly {
		d.store.locker.RLock()
		defer d.store.locker.RUnlock()
		return handler(context.WithValue(ctx, txKey{}, d.store))
	}

	d.store.locker.Lock()
	defer d.store.locker.Unlock()

	snap := d.store.snapshot()
	res, err := handler(context.WithValue(ctx, txKey{}, d.store))
	if err != nil {
		d.store.restore(snap)
		return nil, err
	}
	return res, nil
}

func (d *repoManager) Close() {}
