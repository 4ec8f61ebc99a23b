package postgresdb

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/domain"
	"github.com/uptrace/bun"
)

type playerRepositoryImpl struct {
	db *bun.DB
}

// NewPlayerRepositoryImpl returns a new postgres PlayerRepository
// implementation.
func NewPlayerRepositoryImpl(db *bun.DB) domain.PlayerRepository {
	return &playerRepositoryImpl{db}
}

func (r *playerRepositoryImpl) SavePlayer(ctx context.Context, player *domain.Player) error {
	_, err := idb(ctx, r.db).NewInsert().
		Model(&playerRow{ID: player.ID, Payload: player}).
		On("CONFLICT (id) DO UPDATE").
		Set("payload = EXCLUDED.payload").
		Exec(ctx)
	return err
}

func (r *playerRepositoryImpl) GetPlayer(ctx context.Context, playerID string) (*domain.Player, error) {
	row := new(playerRow)
	err := idb(ctx, r.db).NewSelect().
		Model(row).
		Where("id = ?", playerID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, err
	}
	return row.Payload, nil
}
