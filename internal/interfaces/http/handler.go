package httpinterface

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/application/pubsub"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/application/trade"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

type TradeService interface {
	ProposeTrade(ctx context.Context, userID string, req trade.ProposeTradeRequest) (*domain.Trade, error)
	RespondToTrade(ctx context.Context, tradeID, userID string, action domain.ResponseAction, reason string) (*domain.Trade, error)
	CancelTrade(ctx context.Context, tradeID, userID string) (*domain.Trade, error)
	GetTrade(ctx context.Context, tradeID string) (*domain.Trade, error)
	ListTrades(ctx context.Context, filter trade.ListTradesFilter, page domain.Page) ([]*domain.Trade, int, error)
	ListTeamTrades(ctx context.Context, teamID string) ([]*domain.Trade, error)
	SweepExpiredTrades(ctx context.Context, league string) ([]*domain.Trade, error)
}

type AnalyticsService interface {
	GetLeagueTradeStats(ctx context.Context, league string) (*domain.TradeStats, error)
	GetTeamTradeStats(ctx context.Context, teamID string) (*domain.TradeStats, error)
	GetTrends(ctx context.Context, league string) (*domain.TradeTrends, error)
}

type TeamService interface {
	GetTeam(ctx context.Context, teamID string) (*domain.Team, error)
}

type WebhookService interface {
	AddWebhook(ctx context.Context, event, endpoint, secret string) (string, error)
	RemoveWebhook(ctx context.Context, id string) error
	ListWebhooks(ctx context.Context, event string) ([]pubsub.WebhookInfo, error)
}

type handler struct {
	tradeSvc     TradeService
	analyticsSvc AnalyticsService
	teamSvc      TeamService
	webhookSvc   WebhookService
}

func (h *handler) proposeTrade(c *gin.Context) {
	var req proposeTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}

	t, err := h.tradeSvc.ProposeTrade(c.Request.Context(), userID(c), trade.ProposeTradeRequest{
		League:             req.LeagueID,
		InitiatorTeamID:    req.InitiatorTeamID,
		RecipientTeamID:    req.RecipientTeamID,
		OfferedPlayerIDs:   req.OfferedPlayerIDs,
		RequestedPlayerIDs: req.RequestedPlayerIDs,
		Message:            req.Message,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *handler) getTrade(c *gin.Context) {
	t, err := h.tradeSvc.GetTrade(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *handler) respondToTrade(c *gin.Context) {
	var req respondToTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}

	t, err := h.tradeSvc.RespondToTrade(
		c.Request.Context(), c.Param("id"), userID(c),
		domain.ResponseAction(req.Action), req.RejectionReason,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *handler) cancelTrade(c *gin.Context) {
	t, err := h.tradeSvc.CancelTrade(c.Request.Context(), c.Param("id"), userID(c))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *handler) listLeagueTrades(c *gin.Context) {
	page, err := parsePage(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}

	trades, total, err := h.tradeSvc.ListTrades(c.Request.Context(), trade.ListTradesFilter{
		League: c.Param("id"),
		Status: domain.TradeStatus(c.Query("status")),
		TeamID: c.Query("team"),
	}, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, listTradesResponse{
		Trades: nonNil(trades),
		Pagination: pagination{
			Page:  page.Number,
			Limit: page.Size,
			Total: total,
			Pages: (total + page.Size - 1) / page.Size,
		},
	})
}

func (h *handler) listTeamTrades(c *gin.Context) {
	trades, err := h.tradeSvc.ListTeamTrades(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, tradesResponse{nonNil(trades)})
}

// sweepTrades serves both the sweep of one league and that of every league.
func (h *handler) sweepTrades(c *gin.Context) {
	trades, err := h.tradeSvc.SweepExpiredTrades(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, tradesResponse{nonNil(trades)})
}

func (h *handler) getLeagueTradeStats(c *gin.Context) {
	stats, err := h.analyticsSvc.GetLeagueTradeStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *handler) getTeamTradeStats(c *gin.Context) {
	stats, err := h.analyticsSvc.GetTeamTradeStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *handler) getTrends(c *gin.Context) {
	trends, err := h.analyticsSvc.GetTrends(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, trends)
}

func (h *handler) getTeam(c *gin.Context) {
	team, err := h.teamSvc.GetTeam(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, team)
}

func (h *handler) addWebhook(c *gin.Context) {
	var req addWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}

	id, err := h.webhookSvc.AddWebhook(c.Request.Context(), req.Event, req.Endpoint, req.Secret)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, addWebhookResponse{id})
}

func (h *handler) removeWebhook(c *gin.Context) {
	if err := h.webhookSvc.RemoveWebhook(c.Request.Context(), c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) listWebhooks(c *gin.Context) {
	webhooks, err := h.webhookSvc.ListWebhooks(c.Request.Context(), c.Query("topic"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, listWebhooksResponse{webhooks})
}

func parsePage(c *gin.Context) (domain.Page, error) {
	number, size := 0, 0
	var err error
	if s := c.Query("page"); s != "" {
		if number, err = strconv.Atoi(s); err != nil || number < 1 {
			return domain.Page{}, fmt.Errorf("invalid page %q", s)
		}
	}
	if s := c.Query("limit"); s != "" {
		if size, err = strconv.Atoi(s); err != nil || size < 1 || size > domain.MaxPageSize {
			return domain.Page{}, fmt.Errorf("limit must be in range [1, %d]", domain.MaxPageSize)
		}
	}
	return domain.NewPage(number, size), nil
}

func nonNil(trades []*domain.Trade) []*domain.Trade {
	if trades == nil {
		return []*domain.Trade{}
	}
	return trades
}
