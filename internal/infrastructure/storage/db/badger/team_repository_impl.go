package dbbadger

import (
	"context"
	"errors"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type teamRepositoryImpl struct {
	store *badgerhold.Store
}

// NewTeamRepositoryImpl returns a new badger TeamRepository implementation.
func NewTeamRepositoryImpl(store *badgerhold.Store) domain.TeamRepository {
	return teamRepositoryImpl{store}
}

func (r teamRepositoryImpl) SaveTeam(ctx context.Context, team *domain.Team) error {
	if tx := txFromContext(ctx); tx != nil {
		return r.store.TxUpsert(tx, team.ID, *team)
	}
	return r.store.Upsert(team.ID, *team)
}

func (r teamRepositoryImpl) GetTeam(ctx context.Context, teamID string) (*domain.Team, error) {
	var team domain.Team
	var err error
	if tx := txFromContext(ctx); tx != nil {
		err = r.store.TxGet(tx, teamID, &team)
	} else {
		err = r.store.Get(teamID, &team)
	}
	if err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

func (r teamRepositoryImpl) UpdateTeam(
	ctx context.Context,
	teamID string,
	updateFn func(t *domain.Team) (*domain.Team, error),
) error {
	current, err := r.GetTeam(ctx, teamID)
	if err != nil {
		return err
	}

	updated, err := updateFn(current)
	if err != nil {
		return err
	}

	if tx := txFromContext(ctx); tx != nil {
		return r.store.TxUpdate(tx, teamID, *updated)
	}
	return r.store.Update(teamID, *updated)
}
