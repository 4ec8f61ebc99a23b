package inmemory

import (
	"context"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/domain"
)

type playerRepositoryImpl struct {
	store *inmemoryStore
}

// NewPlayerRepositoryImpl returns a new inmemory PlayerRepository
// implementation.
func NewPlayerRepositoryImpl(store *inmemoryStore) domain.PlayerRepository {
	return &playerRepositoryImpl{store}
}

func (r playerRepositoryImpl) SavePlayer(ctx context.Context, player *domain.Player) error {
	r.store.withTx(ctx, true, func() {
		p := *player
		r.store.players[player.ID] = &p
	})
	return nil
}

func (r playerRepositoryImpl) GetPlayer(ctx context.Context, playerID string) (player *domain.Player, err error) {
	r.store.withTx(ctx, false, func() {
		p, ok := r.store.players[playerID]
		if !ok {
			err = domain.ErrPlayerNotFound
			return
		}
		cp := *p
		player = &cp
	})
	return
}
