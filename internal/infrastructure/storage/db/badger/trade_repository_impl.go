package dbbadger

import (
	"context"
	"errors"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type tradeRepositoryImpl struct {
	store *badgerhold.Store
}

// NewTradeRepositoryImpl returns a new badger TradeRepository implementation.
func NewTradeRepositoryImpl(store *badgerhold.Store) domain.TradeRepository {
	return tradeRepositoryImpl{store}
}

func (r tradeRepositoryImpl) AddTrade(ctx context.Context, trade *domain.Trade) error {
	var err error
	if tx := txFromContext(ctx); tx != nil {
		err = r.store.TxInsert(tx, trade.ID, *trade)
	} else {
		err = r.store.Insert(trade.ID, *trade)
	}
	if errors.Is(err, badgerhold.ErrKeyExists) {
		return domain.ErrTradeAlreadyExists
	}
	return err
}

func (r tradeRepositoryImpl) GetTrade(ctx context.Context, tradeID string) (*domain.Trade, error) {
	return r.getTrade(ctx, tradeID)
}

func (r tradeRepositoryImpl) GetTrades(
	ctx context.Context, filter domain.TradeFilter, page *domain.Page,
) ([]*domain.Trade, int, error) {
	found, err := r.findTrades(ctx, tradeQuery(filter))
	if err != nil {
		return nil, 0, err
	}

	trades := make([]*domain.Trade, 0, len(found))
	for i := range found {
		if filter.Matches(&found[i]) {
			trades = append(trades, &found[i])
		}
	}
	domain.SortTrades(trades)

	total := len(trades)
	if page == nil {
		return trades, total, nil
	}
	start, end := page.Slice(total)
	return trades[start:end], total, nil
}

func (r tradeRepositoryImpl) UpdateTrade(
	ctx context.Context,
	tradeID string,
	updateFn func(t *domain.Trade) (*domain.Trade, error),
) error {
	currentTrade, err := r.getTrade(ctx, tradeID)
	if err != nil {
		return err
	}

	updatedTrade, err := updateFn(currentTrade)
	if err != nil {
		return err
	}

	if tx := txFromContext(ctx); tx != nil {
		return r.store.TxUpdate(tx, tradeID, *updatedTrade)
	}
	return r.store.Update(tradeID, *updatedTrade)
}

func (r tradeRepositoryImpl) getTrade(ctx context.Context, tradeID string) (*domain.Trade, error) {
	var trade domain.Trade
	var err error
	if tx := txFromContext(ctx); tx != nil {
		err = r.store.TxGet(tx, tradeID, &trade)
	} else {
		err = r.store.Get(tradeID, &trade)
	}
	if err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrTradeNotFound
		}
		return nil, err
	}
	return &trade, nil
}

func (r tradeRepositoryImpl) findTrades(
	ctx context.Context, query *badgerhold.Query,
) ([]domain.Trade, error) {
	var trades []domain.Trade
	var err error
	if tx := txFromContext(ctx); tx != nil {
		err = r.store.TxFind(tx, &trades, query)
	} else {
		err = r.store.Find(&trades, query)
	}
	return trades, err
}

// tradeQuery narrows the scan by the indexed-like fields, the rest of the
// filter is applied in memory.
func tradeQuery(filter domain.TradeFilter) *badgerhold.Query {
	var query *badgerhold.Query
	if filter.League != "" {
		query = badgerhold.Where("League").Eq(filter.League)
	}
	if filter.Status != "" {
		if query == nil {
			query = badgerhold.Where("Status").Eq(filter.Status)
		} else {
			query = query.And("Status").Eq(filter.Status)
		}
	}
	return query
}
