package postgresdb

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/domain"
	"github.com/uptrace/bun"
)

type teamRepositoryImpl struct {
	db *bun.DB
}

// NewTeamRepositoryImpl returns a new postgres TeamRepository
// implementation.
func NewTeamRepositoryImpl(db *bun.DB) domain.TeamRepository {
	return &teamRepositoryImpl{db}
}

func (r *teamRepositoryImpl) SaveTeam(ctx context.Context, team *domain.Team) error {
	_, err := idb(ctx, r.db).NewInsert().
		Model(&teamRow{ID: team.ID, League: team.League, Payload: team}).
		On("CONFLICT (id) DO UPDATE").
		Set("league = EXCLUDED.league").
		Set("payload = EXCLUDED.payload").
		Exec(ctx)
	return err
}

func (r *teamRepositoryImpl) GetTeam(ctx context.Context, teamID string) (*domain.Team, error) {
	return r.getTeam(ctx, idb(ctx, r.db), teamID, false)
}

func (r *teamRepositoryImpl) UpdateTeam(
	ctx context.Context,
	teamID string,
	updateFn func(t *domain.Team) (*domain.Team, error),
) error {
	db := idb(ctx, r.db)

	current, err := r.getTeam(ctx, db, teamID, true)
	if err != nil {
		return err
	}
	updated, err := updateFn(current)
	if err != nil {
		return err
	}

	_, err = db.NewUpdate().
		Model(&teamRow{ID: teamID, League: updated.League, Payload: updated}).
		WherePK().
		Exec(ctx)
	return err
}

func (r *teamRepositoryImpl) getTeam(
	ctx context.Context, db bun.IDB, teamID string, forUpdate bool,
) (*domain.Team, error) {
	row := new(teamRow)
	query := db.NewSelect().Model(row).Where("id = ?", teamID)
	if forUpdate {
		query = query.For("UPDATE")
	}
	if err := query.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, err
	}
	return row.Payload, nil
}
