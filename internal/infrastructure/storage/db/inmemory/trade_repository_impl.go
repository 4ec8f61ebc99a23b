package inmemory

import (
	"context"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/domain"
)

type tradeRepositoryImpl struct {
	store *inmemoryStore
}

// NewTradeRepositoryImpl returns a new inmemory TradeRepository implementation.
func NewTradeRepositoryImpl(store *inmemoryStore) domain.TradeRepository {
	return &tradeRepositoryImpl{store}
}

func (r tradeRepositoryImpl) AddTrade(ctx context.Context, trade *domain.Trade) (err error) {
	r.store.withTx(ctx, true, func() {
		if _, ok := r.store.trades[trade.ID]; ok {
			err = domain.ErrTradeAlreadyExists
			return
		}
		r.store.trades[trade.ID] = trade.Clone()
	})
	return
}

func (r tradeRepositoryImpl) GetTrade(ctx context.Context, tradeID string) (trade *domain.Trade, err error) {
	r.store.withTx(ctx, false, func() {
		t, ok := r.store.trades[tradeID]
		if !ok {
			err = domain.ErrTradeNotFound
			return
		}
		trade = t.Clone()
	})
	return
}

func (r tradeRepositoryImpl) GetTrades(
	ctx context.Context, filter domain.TradeFilter, page *domain.Page,
) (trades []*domain.Trade, total int, err error) {
	r.store.withTx(ctx, false, func() {
		matches := make([]*domain.Trade, 0)
		for _, t := range r.store.trades {
			if filter.Matches(t) {
				matches = append(matches, t.Clone())
			}
		}
		domain.SortTrades(matches)

		total = len(matches)
		if page == nil {
			trades = matches
			return
		}
		start, end := page.Slice(total)
		trades = matches[start:end]
	})
	return
}

func (r tradeRepositoryImpl) UpdateTrade(
	ctx context.Context,
	tradeID string,
	updateFn func(t *domain.Trade) (*domain.Trade, error),
) (err error) {
	r.store.withTx(ctx, true, func() {
		current, ok := r.store.trades[tradeID]
		if !ok {
			err = domain.ErrTradeNotFound
			return
		}

		var updated *domain.Trade
		updated, err = updateFn(current.Clone())
		if err != nil {
			return
		}
		r.store.trades[tradeID] = updated.Clone()
	})
	return
}
