package httpinterface

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	interfaces "github.com/Ayushgangwar02/fantasy-Sports-app/internal/interfaces"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

type ServiceOpts struct {
	Port int
	// AuthSecret is the HS256 key verifying the bearer tokens.
	AuthSecret string
	// NoAuth makes the acting user be read from the X-User-Id header.
	NoAuth bool

	TradeSvc     TradeService
	AnalyticsSvc AnalyticsService
	TeamSvc      TeamService
	WebhookSvc   WebhookService
}

func (o ServiceOpts) validate() error {
	if o.Port <= 0 {
		return fmt.Errorf("invalid listening port %d", o.Port)
	}
	if !o.NoAuth && o.AuthSecret == "" {
		return fmt.Errorf("missing auth secret")
	}
	if o.TradeSvc == nil {
		return fmt.Errorf("missing trade service")
	}
	if o.AnalyticsSvc == nil {
		return fmt.Errorf("missing analytics service")
	}
	if o.TeamSvc == nil {
		return fmt.Errorf("missing team service")
	}
	return nil
}

type service struct {
	opts   ServiceOpts
	server *http.Server
}

// NewService returns the REST interface of the trade desk.
func NewService(opts ServiceOpts) (interfaces.Service, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("invalid opts: %w", err)
	}

	return &service{
		opts: opts,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

func (s *service) Start() error {
	go func() {
		if err := s.server.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http: failed to serve")
		}
	}()
	log.Infof("http: listening on %s", s.server.Addr)
	return nil
}

func (s *service) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("http: failed to shutdown gracefully")
		return
	}
	log.Info("http: stopped")
}

// NewRouter returns the gin engine serving every route of the REST
// interface.
func NewRouter(opts ServiceOpts) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := &handler{opts.TradeSvc, opts.AnalyticsSvc, opts.TeamSvc, opts.WebhookSvc}

	v1 := r.Group("/v1", authenticate(opts.AuthSecret, opts.NoAuth))

	trades := v1.Group("/trades")
	trades.POST("", h.proposeTrade)
	trades.POST("/sweep", h.sweepTrades)
	trades.GET("/:id", h.getTrade)
	trades.PUT("/:id/respond", h.respondToTrade)
	trades.PUT("/:id/cancel", h.cancelTrade)

	leagues := v1.Group("/leagues/:id")
	leagues.GET("/trades", h.listLeagueTrades)
	leagues.POST("/trades/sweep", h.sweepTrades)
	leagues.GET("/trades/stats", h.getLeagueTradeStats)
	leagues.GET("/trends", h.getTrends)

	teams := v1.Group("/teams/:id")
	teams.GET("", h.getTeam)
	teams.GET("/trades", h.listTeamTrades)
	teams.GET("/trades/stats", h.getTeamTradeStats)

	if opts.WebhookSvc != nil {
		webhooks := v1.Group("/webhooks")
		webhooks.POST("", h.addWebhook)
		webhooks.GET("", h.listWebhooks)
		webhooks.DELETE("/:id", h.removeWebhook)
	}

	return r
}
