package mongodb

import (
	"context"
	"errors"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type teamRepositoryImpl struct {
	collection *mongo.Collection
}

// NewTeamRepositoryImpl returns a new mongo TeamRepository implementation.
func NewTeamRepositoryImpl(collection *mongo.Collection) domain.TeamRepository {
	return &teamRepositoryImpl{collection}
}

func (r *teamRepositoryImpl) SaveTeam(ctx context.Context, team *domain.Team) error {
	_, err := r.collection.ReplaceOne(
		ctx,
		bson.M{"_id": team.ID},
		teamDocument{ID: team.ID, League: team.League, Team: team},
		options.Replace().SetUpsert(true),
	)
	return err
}

func (r *teamRepositoryImpl) GetTeam(ctx context.Context, teamID string) (*domain.Team, error) {
	var doc teamDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": teamID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, err
	}
	return doc.Team, nil
}

func (r *teamRepositoryImpl) UpdateTeam(
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

	_, err = r.collection.ReplaceOne(
		ctx,
		bson.M{"_id": teamID},
		teamDocument{ID: teamID, League: updated.League, Team: updated},
	)
	return err
}
