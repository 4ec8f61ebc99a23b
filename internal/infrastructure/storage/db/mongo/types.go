package mongodb

import (
	"time"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/domain"
)

// tradeDocument mirrors the fields trades are queried by at the top level,
// the whole trade is embedded.
type tradeDocument struct {
	ID              string        `bson:"_id"`
	League          string        `bson:"league"`
	Status          string        `bson:"status"`
	InitiatorTeamID string        `bson:"initiatorTeamId"`
	RecipientTeamID string        `bson:"recipientTeamId"`
	Deadline        time.Time     `bson:"tradeDeadline"`
	ProcessedAt     *time.Time    `bson:"processedAt,omitempty"`
	CreatedAt       time.Time     `bson:"createdAt"`
	Trade           *domain.Trade `bson:"trade"`
}

func toTradeDocument(t *domain.Trade) tradeDocument {
	doc := tradeDocument{
		ID:              t.ID,
		League:          t.League,
		Status:          string(t.Status),
		InitiatorTeamID: t.Initiator.TeamID,
		RecipientTeamID: t.Recipient.TeamID,
		Deadline:        t.Deadline,
		CreatedAt:       t.CreatedAt,
		Trade:           t,
	}
	if !t.ProcessedAt.IsZero() {
		processedAt := t.ProcessedAt
		doc.ProcessedAt = &processedAt
	}
	return doc
}

type teamDocument struct {
	ID     string       `bson:"_id"`
	League string       `bson:"league"`
	Team   *domain.Team `bson:"team"`
}

type playerDocument struct {
	ID     string         `bson:"_id"`
	Player *domain.Player `bson:"player"`
}
