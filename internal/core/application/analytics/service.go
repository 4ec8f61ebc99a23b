package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/application"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/domain"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/ports"
)

const (
	DefaultTrendsWindow = 30 * 24 * time.Hour
	DefaultTrendsLimit  = 10
)

// Service derives league and team insights from the stored trades. It never
// writes: overdue trades still pending in the store are counted as not
// active without being expired.
type Service struct {
	repoManager ports.RepoManager
	clock       ports.Clock
	window      time.Duration
	limit       int
}

func NewService(
	repoManager ports.RepoManager, clock ports.Clock, window time.Duration, limit int,
) (*Service, error) {
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}
	if clock == nil {
		clock = ports.SystemClock
	}
	if window <= 0 {
		window = DefaultTrendsWindow
	}
	if limit <= 0 {
		limit = DefaultTrendsLimit
	}
	return &Service{repoManager, clock, window, limit}, nil
}

// GetLeagueTradeStats ...
func (s *Service) GetLeagueTradeStats(ctx context.Context, league string) (*domain.TradeStats, error) {
	if league == "" {
		return nil, application.ErrMissingLeague
	}
	return s.tradeStats(ctx, domain.TradeFilter{League: league})
}

// GetTeamTradeStats ...
func (s *Service) GetTeamTradeStats(ctx context.Context, teamID string) (*domain.TradeStats, error) {
	if _, err := s.repoManager.TeamRepository().GetTeam(ctx, teamID); err != nil {
		return nil, application.MapError(err, "analytics: failed to get team")
	}
	return s.tradeStats(ctx, domain.TradeFilter{TeamID: teamID})
}

// GetTrends returns the most traded players and the trade activity of the
// league computed over the accepted trades processed within the trends
// window.
func (s *Service) GetTrends(ctx context.Context, league string) (*domain.TradeTrends, error) {
	if league == "" {
		return nil, application.ErrMissingLeague
	}

	since := s.clock.Now().Add(-s.window)
	trades, _, err := s.repoManager.TradeRepository().GetTrades(ctx, domain.TradeFilter{
		League:         league,
		Status:         domain.TradeAccepted,
		ProcessedSince: since,
	}, nil)
	if err != nil {
		return nil, application.MapError(err, "analytics: failed to get trades")
	}

	return &domain.TradeTrends{
		MostTradedPlayers: domain.MostTradedPlayers(trades, since, s.limit),
		TradeActivity:     domain.SummarizeActivity(trades),
	}, nil
}

func (s *Service) tradeStats(ctx context.Context, filter domain.TradeFilter) (*domain.TradeStats, error) {
	trades, total, err := s.repoManager.TradeRepository().GetTrades(ctx, filter, nil)
	if err != nil {
		return nil, application.MapError(err, "analytics: failed to get trades")
	}

	now := s.clock.Now()
	active := 0
	for _, t := range trades {
		if t.IsPending() && !t.IsOverdue(now) {
			active++
		}
	}
	return &domain.TradeStats{TotalTrades: total, ActiveTrades: active}, nil
}
