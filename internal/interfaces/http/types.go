package httpinterface

import (
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/application/pubsub"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/domain"
)

type proposeTradeRequest struct {
	LeagueID           string   `json:"leagueId" binding:"required"`
	InitiatorTeamID    string   `json:"initiatorTeamId" binding:"required"`
	RecipientTeamID    string   `json:"recipientTeamId" binding:"required"`
	OfferedPlayerIDs   []string `json:"offeredPlayerIds"`
	RequestedPlayerIDs []string `json:"requestedPlayerIds"`
	Message            string   `json:"message" binding:"max=500"`
}

type respondToTradeRequest struct {
	Action          string `json:"action" binding:"required,oneof=accept reject"`
	RejectionReason string `json:"rejectionReason" binding:"max=500"`
}

type addWebhookRequest struct {
	Event    string `json:"topic" binding:"required"`
	Endpoint string `json:"endpoint" binding:"required"`
	Secret   string `json:"secret"`
}

type addWebhookResponse struct {
	ID string `json:"id"`
}

type listWebhooksResponse struct {
	Webhooks []pubsub.WebhookInfo `json:"webhooks"`
}

type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type listTradesResponse struct {
	Trades     []*domain.Trade `json:"trades"`
	Pagination pagination      `json:"pagination"`
}

type tradesResponse struct {
	Trades []*domain.Trade `json:"trades"`
}
