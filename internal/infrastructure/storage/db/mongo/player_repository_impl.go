package mongodb

import (
	"context"
	"errors"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type playerRepositoryImpl struct {
	collection *mongo.Collection
}

// NewPlayerRepositoryImpl returns a new mongo PlayerRepository
// implementation.
func NewPlayerRepositoryImpl(collection *mongo.Collection) domain.PlayerRepository {
	return &playerRepositoryImpl{collection}
}

func (r *playerRepositoryImpl) SavePlayer(ctx context.Context, player *domain.Player) error {
	_, err := r.collection.ReplaceOne(
		ctx,
		bson.M{"_id": player.ID},
		playerDocument{ID: player.ID, Player: player},
		options.Replace().SetUpsert(true),
	)
	return err
}

func (r *playerRepositoryImpl) GetPlayer(ctx context.Context, playerID string) (*domain.Player, error) {
	var doc playerDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": playerID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, err
	}
	return doc.Player, nil
}
