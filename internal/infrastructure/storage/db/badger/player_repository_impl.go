package dbbadger

import (
	"context"
	"errors"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type playerRepositoryImpl struct {
	store *badgerhold.Store
}

// NewPlayerRepositoryImpl returns a new badger PlayerRepository
// implementation.
func NewPlayerRepositoryImpl(store *badgerhold.Store) domain.PlayerRepository {
	return playerRepositoryImpl{store}
}

func (r playerRepositoryImpl) SavePlayer(ctx context.Context, player *domain.Player) error {
	if tx := txFromContext(ctx); tx != nil {
		return r.store.TxUpsert(tx, player.ID, *player)
	}
	return r.store.Upsert(player.ID, *player)
}

func (r playerRepositoryImpl) GetPlayer(ctx context.Context, playerID string) (*domain.Player, error) {
	var player domain.Player
	var err error
	if tx := txFromContext(ctx); tx != nil {
		err = r.store.TxGet(tx, playerID, &player)
	} else {
		err = r.store.Get(playerID, &player)
	}
	if err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, err
	}
	return &player, nil
}
