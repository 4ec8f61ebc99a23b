package mongodb

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/domain"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/ports"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

const (
	tradesCollection  = "trades"
	teamsCollection   = "teams"
	playersCollection = "players"

	connectTimeout = 10 * time.Second
)

type txKey struct{}

var decimalType = reflect.TypeOf(decimal.Decimal{})

type repoManager struct {
	client *mongo.Client
	db     *mongo.Database

	tradeRepository  domain.TradeRepository
	teamRepository   domain.TeamRepository
	playerRepository domain.PlayerRepository
}

// NewRepoManager connects to the mongo deployment at uri and uses the given
// database. Transactions require the deployment to be a replica set.
func NewRepoManager(uri, database string) (ports.RepoManager, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetRegistry(newRegistry())
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo unreachable: %w", err)
	}

	db := client.Database(database)
	if err := createIndexes(ctx, db); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return &repoManager{
		client:           client,
		db:               db,
		tradeRepository:  NewTradeRepositoryImpl(db.Collection(tradesCollection)),
		teamRepository:   NewTeamRepositoryImpl(db.Collection(teamsCollection)),
		playerRepository: NewPlayerRepositoryImpl(db.Collection(playersCollection)),
	}, nil
}

func (r *repoManager) TradeRepository() domain.TradeRepository {
	return r.tradeRepository
}

func (r *repoManager) TeamRepository() domain.TeamRepository {
	return r.teamRepository
}

func (r *repoManager) PlayerRepository() domain.PlayerRepository {
	return r.playerRepository
}

func (r *repoManager) Close() {
	if err := r.client.Disconnect(context.Background()); err != nil {
		log.WithError(err).Warn("mongo: failed to disconnect")
	}
}

// RunTransaction runs handler in a multi-document transaction. The driver
// retries the whole handler on transient errors like write conflicts, and
// the commit on unknown commit results.
func (r *repoManager) RunTransaction(
	ctx context.Context,
	readOnly bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	if ctx.Value(txKey{}) != nil {
		return handler(ctx)
	}

	session, err := r.client.StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(context.Background())

	txOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	attempts := 0
	res, err := session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		attempts++
		if attempts > ports.MaxTxRetries+1 {
			return nil, ports.ErrTxConflict
		}
		return handler(context.WithValue(sessCtx, txKey{}, readOnly))
	}, txOpts)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func createIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(tradesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "league", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "initiatorTeamId", Value: 1}}},
		{Keys: bson.D{{Key: "recipientTeamId", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}},
	})
	return err
}

// newRegistry returns the default bson registry extended to store decimals
// as strings, which keeps them exact.
func newRegistry() *bsoncodec.Registry {
	reg := bson.NewRegistry()
	reg.RegisterTypeEncoder(decimalType, bsoncodec.ValueEncoderFunc(encodeDecimal))
	reg.RegisterTypeDecoder(decimalType, bsoncodec.ValueDecoderFunc(decodeDecimal))
	return reg
}

func encodeDecimal(
	_ bsoncodec.EncodeContext, vw bsonrw.ValueWriter, val reflect.Value,
) error {
	if !val.IsValid() || val.Type() != decimalType {
		return bsoncodec.ValueEncoderError{
			Name: "DecimalEncodeValue", Types: []reflect.Type{decimalType}, Received: val,
		}
	}
	return vw.WriteString(val.Interface().(decimal.Decimal).String())
}

func decodeDecimal(
	_ bsoncodec.DecodeContext, vr bsonrw.ValueReader, val reflect.Value,
) error {
	if !val.CanSet() || val.Type() != decimalType {
		return bsoncodec.ValueDecoderError{
			Name: "DecimalDecodeValue", Types: []reflect.Type{decimalType}, Received: val,
		}
	}
	str, err := vr.ReadString()
	if err != nil {
		return err
	}
	d, err := decimal.NewFromString(str)
	if err != nil {
		return err
	}
	val.Set(reflect.ValueOf(d))
	return nil
}
