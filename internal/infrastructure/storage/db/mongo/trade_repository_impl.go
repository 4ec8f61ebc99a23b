package mongodb

import (
	"context"
	"errors"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type tradeRepositoryImpl struct {
	collection *mongo.Collection
}

// NewTradeRepositoryImpl returns a new mongo TradeRepository implementation.
func NewTradeRepositoryImpl(collection *mongo.Collection) domain.TradeRepository {
	return &tradeRepositoryImpl{collection}
}

func (r *tradeRepositoryImpl) AddTrade(ctx context.Context, trade *domain.Trade) error {
	_, err := r.collection.InsertOne(ctx, toTradeDocument(trade))
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrTradeAlreadyExists
	}
	return err
}

func (r *tradeRepositoryImpl) GetTrade(ctx context.Context, tradeID string) (*domain.Trade, error) {
	var doc tradeDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": tradeID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTradeNotFound
		}
		return nil, err
	}
	return doc.Trade, nil
}

func (r *tradeRepositoryImpl) GetTrades(
	ctx context.Context, filter domain.TradeFilter, page *domain.Page,
) ([]*domain.Trade, int, error) {
	query := tradeQuery(filter)

	opts := options.Find().SetSort(bson.D{
		{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1},
	})
	if page != nil {
		opts = opts.SetSkip(int64(page.Offset())).SetLimit(int64(page.Size))
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	var docs []tradeDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, err
	}

	total := len(docs)
	if page != nil {
		count, err := r.collection.CountDocuments(ctx, query)
		if err != nil {
			return nil, 0, err
		}
		total = int(count)
	}

	trades := make([]*domain.Trade, 0, len(docs))
	for _, doc := range docs {
		trades = append(trades, doc.Trade)
	}
	return trades, total, nil
}

func (r *tradeRepositoryImpl) UpdateTrade(
	ctx context.Context,
	tradeID string,
	updateFn func(t *domain.Trade) (*domain.Trade, error),
) error {
	current, err := r.GetTrade(ctx, tradeID)
	if err != nil {
		return err
	}

	updated, err := updateFn(current)
	if err != nil {
		return err
	}

	_, err = r.collection.ReplaceOne(
		ctx, bson.M{"_id": tradeID}, toTradeDocument(updated),
	)
	return err
}

func tradeQuery(filter domain.TradeFilter) bson.M {
	query := bson.M{}
	if filter.League != "" {
		query["league"] = filter.League
	}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	if filter.TeamID != "" {
		query["$or"] = bson.A{
			bson.M{"initiatorTeamId": filter.TeamID},
			bson.M{"recipientTeamId": filter.TeamID},
		}
	}
	if !filter.DeadlineBefore.IsZero() {
		query["tradeDeadline"] = bson.M{"$lt": filter.DeadlineBefore}
	}
	if !filter.ProcessedSince.IsZero() {
		query["processedAt"] = bson.M{"$gte": filter.ProcessedSince}
	}
	return query
}
