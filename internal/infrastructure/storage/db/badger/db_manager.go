package dbbadger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/domain"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/ports"
	"github.com/dgraph-io/badger/v3"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"
)

const tradedeskDir = "tradedesk"

type txKey struct{}

type repoManager struct {
	store *badgerhold.Store

	tradeRepository  domain.TradeRepository
	teamRepository   domain.TeamRepository
	playerRepository domain.PlayerRepository
}

// NewRepoManager opens (or creates if not exists) the badger store under
// the given base dir. An empty baseDbDir opens an in-memory store, mainly
// useful for testing. logger is optional.
func NewRepoManager(baseDbDir string, logger badger.Logger) (ports.RepoManager, error) {
	var dbDir string
	if len(baseDbDir) > 0 {
		dbDir = filepath.Join(baseDbDir, tradedeskDir)
	}

	store, err := createDb(dbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening tradedesk db: %w", err)
	}

	return &repoManager{
		store:            store,
		tradeRepository:  NewTradeRepositoryImpl(store),
		teamRepository:   NewTeamRepositoryImpl(store),
		playerRepository: NewPlayerRepositoryImpl(store),
	}, nil
}

func (d *repoManager) TradeRepository() domain.TradeRepository {
	return d.tradeRepository
}

func (d *repoManager) TeamRepository() domain.TeamRepository {
	return d.teamRepository
}

func (d *repoManager) PlayerRepository() domain.PlayerRepository {
	return d.playerRepository
}

func (d *repoManager) Close() {
	d.store.Close()
}

// RunTransaction runs handler in a badger transaction. Write transactions
// failing to commit because of a conflict with a concurrent one are retried
// from scratch, so that the handler sees the data committed by the other
// one.
func (d *repoManager) RunTransaction(
	ctx context.Context,
	readOnly bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	if _, ok := ctx.Value(txKey{}).(*badger.Txn); ok {
		return handler(ctx)
	}

	for attempt := 0; attempt <= ports.MaxTxRetries; attempt++ {
		res, err := d.runTransaction(ctx, readOnly, handler)
		if errors.Is(err, badger.ErrConflict) {
			log.Debugf("badger: tx conflict, attempt %d", attempt+1)
			continue
		}
		return res, err
	}
	return nil, ports.ErrTxConflict
}

func (d *repoManager) runTransaction(
	ctx context.Context,
	readOnly bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	tx := d.store.Badger().NewTransaction(!readOnly)
	defer tx.Discard()

	res, err := handler(context.WithValue(ctx, txKey{}, tx))
	if err != nil {
		return nil, err
	}
	if readOnly {
		return res, nil
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return res, nil
}

func txFromContext(ctx context.Context) *badger.Txn {
	tx, _ := ctx.Value(txKey{}).(*badger.Txn)
	return tx
}

// JSONEncode is a custom JSON based encoder for badger
func JSONEncode(value interface{}) ([]byte, error) {
	var buff bytes.Buffer

	en := json.NewEncoder(&buff)

	err := en.Encode(value)
	if err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

// JSONDecode is a custom JSON based decoder for badger
func JSONDecode(data []byte, value interface{}) error {
	return json.NewDecoder(bytes.NewReader(data)).Decode(value)
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger
	opts.InMemory = len(dbDir) <= 0

	return badgerhold.Open(badgerhold.Options{
		Encoder:          JSONEncode,
		Decoder:          JSONDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}
