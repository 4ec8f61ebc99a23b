package postgresdb

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/domain"
	"github.com/uptrace/bun"
)

type tradeRepositoryImpl struct {
	db *bun.DB
}

// NewTradeRepositoryImpl returns a new postgres TradeRepository
// implementation.
func NewTradeRepositoryImpl(db *bun.DB) domain.TradeRepository {
	return &tradeRepositoryImpl{db}
}

func (r *tradeRepositoryImpl) AddTrade(ctx context.Context, trade *domain.Trade) error {
	_, err := idb(ctx, r.db).NewInsert().Model(toTradeRow(trade)).Exec(ctx)
	if isUniqueViolation(err) {
		return domain.ErrTradeAlreadyExists
	}
	return err
}

func (r *tradeRepositoryImpl) GetTrade(ctx context.Context, tradeID string) (*domain.Trade, error) {
	row := new(tradeRow)
	err := idb(ctx, r.db).NewSelect().
		Model(row).
		Where("id = ?", tradeID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTradeNotFound
		}
		return nil, err
	}
	return row.Payload, nil
}

func (r *tradeRepositoryImpl) GetTrades(
	ctx context.Context, filter domain.TradeFilter, page *domain.Page,
) ([]*domain.Trade, int, error) {
	var rows []tradeRow
	query := idb(ctx, r.db).NewSelect().Model(&rows)

	if filter.League != "" {
		query = query.Where("league = ?", filter.League)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.TeamID != "" {
		query = query.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("initiator_team_id = ?", filter.TeamID).
				WhereOr("recipient_team_id = ?", filter.TeamID)
		})
	}
	if !filter.DeadlineBefore.IsZero() {
		query = query.Where("trade_deadline < ?", filter.DeadlineBefore)
	}
	if !filter.ProcessedSince.IsZero() {
		query = query.Where("processed_at >= ?", filter.ProcessedSince)
	}
	query = query.Order("created_at DESC", "id ASC")

	var total int
	var err error
	if page != nil {
		total, err = query.Limit(page.Size).Offset(page.Offset()).ScanAndCount(ctx)
	} else {
		err = query.Scan(ctx)
		total = len(rows)
	}
	if err != nil {
		return nil, 0, err
	}

	trades := make([]*domain.Trade, 0, len(rows))
	for _, row := range rows {
		trades = append(trades, row.Payload)
	}
	return trades, total, nil
}

func (r *tradeRepositoryImpl) UpdateTrade(
	ctx context.Context,
	tradeID string,
	updateFn func(t *domain.Trade) (*domain.Trade, error),
) error {
	db := idb(ctx, r.db)

	row := new(tradeRow)
	err := db.NewSelect().
		Model(row).
		Where("id = ?", tradeID).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrTradeNotFound
		}
		return err
	}

	updated, err := updateFn(row.Payload)
	if err != nil {
		return err
	}

	_, err = db.NewUpdate().Model(toTradeRow(updated)).WherePK().Exec(ctx)
	return err
}
