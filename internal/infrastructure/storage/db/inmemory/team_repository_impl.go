package inmemory

import (
	"context"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/domain"
)

type teamRepositoryImpl struct {
	store *inmemoryStore
}

// NewTeamRepositoryImpl returns a new inmemory TeamRepository implementation.
func NewTeamRepositoryImpl(store *inmemoryStore) domain.TeamRepository {
	return &teamRepositoryImpl{store}
}

func (r teamRepositoryImpl) SaveTeam(ctx context.Context, team *domain.Team) error {
	r.store.withTx(ctx, true, func() {
		r.store.teams[team.ID] = team.Clone()
	})
	return nil
}

func (r teamRepositoryImpl) GetTeam(ctx context.Context, teamID string) (team *domain.Team, err error) {
	r.store.withTx(ctx, false, func() {
		t, ok := r.store.teams[teamID]
		if !ok {
			err = domain.ErrTeamNotFound
			return
		}
		team = t.Clone()
	})
	return
}

func (r teamRepositoryImpl) UpdateTeam(
	ctx context.Context,
	teamID string,
	updateFn func(t *domain.Team) (*domain.Team, error),
) (err error) {
	r.store.withTx(ctx, true, func() {
		current, ok := r.store.teams[teamID]
		if !ok {
			err = domain.ErrTeamNotFound
			return
		}

		var updated *domain.Team
		updated, err = updateFn(current.Clone())
		if err != nil {
			return
		}
		r.store.teams[teamID] = updated.Clone()
	})
	return
}
