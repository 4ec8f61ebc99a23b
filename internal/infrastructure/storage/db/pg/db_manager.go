package postgresdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/domain"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/ports"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	log "github.com/sirupsen/logrus"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

const (
	uniqueViolation      = "23505"
	serializationFailure = "40001"
	deadlockDetected     = "40P01"

	connectTimeout = 5 * time.Second
)

type txKey struct{}

type repoManager struct {
	pool *pgxpool.Pool
	db   *bun.DB

	tradeRepository  domain.TradeRepository
	teamRepository   domain.TeamRepository
	playerRepository domain.PlayerRepository
}

// NewRepoManager connects to the postgres instance at the given connection
// string and creates the tables if missing.
func NewRepoManager(connString string) (ports.RepoManager, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	db := bun.NewDB(stdlib.OpenDBFromPool(pool), pgdialect.New())
	if err := createSchema(ctx, db); err != nil {
		db.Close()
		pool.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &repoManager{
		pool:             pool,
		db:               db,
		tradeRepository:  NewTradeRepositoryImpl(db),
		teamRepository:   NewTeamRepositoryImpl(db),
		playerRepository: NewPlayerRepositoryImpl(db),
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
	if err := r.db.Close(); err != nil {
		log.WithError(err).Warn("postgres: failed to close db")
	}
	r.pool.Close()
}

// RunTransaction runs handler in a SERIALIZABLE transaction, retrying it
// when postgres aborts it because of a serialization failure or a
// deadlock.
func (r *repoManager) RunTransaction(
	ctx context.Context,
	readOnly bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	if _, ok := ctx.Value(txKey{}).(bun.Tx); ok {
		return handler(ctx)
	}

	opts := &sql.TxOptions{Isolation: sql.LevelSerializable, ReadOnly: readOnly}
	for attempt := 0; attempt <= ports.MaxTxRetries; attempt++ {
		var res interface{}
		err := r.db.RunInTx(ctx, opts, func(ctx context.Context, tx bun.Tx) error {
			var err error
			res, err = handler(context.WithValue(ctx, txKey{}, tx))
			return err
		})
		if isRetryable(err) {
			log.Debugf("postgres: tx conflict, attempt %d", attempt+1)
			continue
		}
		if err != nil {
			return nil, err
		}
		return res, nil
	}
	return nil, ports.ErrTxConflict
}

// idb returns the transaction carried by ctx, if any, or the db itself.
func idb(ctx context.Context, db *bun.DB) bun.IDB {
	if tx, ok := ctx.Value(txKey{}).(bun.Tx); ok {
		return tx
	}
	return db
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == serializationFailure || pgErr.Code == deadlockDetected
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func createSchema(ctx context.Context, db *bun.DB) error {
	models := []interface{}{
		(*tradeRow)(nil),
		(*teamRow)(nil),
		(*playerRow)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
	}

	indexes := []struct {
		name    string
		columns []string
	}{
		{"trades_league_status_idx", []string{"league", "status"}},
		{"trades_initiator_team_idx", []string{"initiator_team_id"}},
		{"trades_recipient_team_idx", []string{"recipient_team_id"}},
	}
	for _, idx := range indexes {
		if _, err := db.NewCreateIndex().
			Model((*tradeRow)(nil)).
			Index(idx.name).
			Column(idx.columns...).
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}
