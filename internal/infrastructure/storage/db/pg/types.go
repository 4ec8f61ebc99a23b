package postgresdb

import (
	"time"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/domain"
	"github.com/uptrace/bun"
)

// tradeRow mirrors the fields trades are queried by, the whole trade is
// stored in the payload column.
type tradeRow struct {
	bun.BaseModel `bun:"table:trades"`

	ID              string        `bun:"id,pk"`
	League          string        `bun:"league,notnull"`
	Status          string        `bun:"status,notnull"`
	InitiatorTeamID string        `bun:"initiator_team_id,notnull"`
	RecipientTeamID string        `bun:"recipient_team_id,notnull"`
	Deadline        time.Time     `bun:"trade_deadline,notnull"`
	ProcessedAt     time.Time     `bun:"processed_at,nullzero"`
	CreatedAt       time.Time     `bun:"created_at,notnull"`
	Payload         *domain.Trade `bun:"payload,type:jsonb,notnull"`
}

func toTradeRow(t *domain.Trade) *tradeRow {
	return &tradeRow{
		ID:              t.ID,
		League:          t.League,
		Status:          string(t.Status),
		InitiatorTeamID: t.Initiator.TeamID,
		RecipientTeamID: t.Recipient.TeamID,
		Deadline:        t.Deadline,
		ProcessedAt:     t.ProcessedAt,
		CreatedAt:       t.CreatedAt,
		Payload:         t,
	}
}

type teamRow struct {
	bun.BaseModel `bun:"table:teams"`

	ID      string       `bun:"id,pk"`
	League  string       `bun:"league,notnull"`
	Payload *domain.Team `bun:"payload,type:jsonb,notnull"`
}

type playerRow struct {
	bun.BaseModel `bun:"table:players"`

	ID      string         `bun:"id,pk"`
	Payload *domain.Player `bun:"payload,type:jsonb,notnull"`
}
