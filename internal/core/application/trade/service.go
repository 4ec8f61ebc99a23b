package trade

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/application"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/application/pubsub"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/domain"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/ports"
	"github.com/Ayushgangwar02/fantasy-Sports-app/pkg/stats"
	log "github.com/sirupsen/logrus"
)

// errTradeUnchanged makes UpdateTrade skip the write when there is nothing
// to persist.
var errTradeUnchanged = errors.New("trade unchanged")

// ProposeTradeRequest ...
type ProposeTradeRequest struct {
	League             string
	InitiatorTeamID    string
	RecipientTeamID    string
	OfferedPlayerIDs   []string
	RequestedPlayerIDs []string
	Message            string
}

// ListTradesFilter ...
type ListTradesFilter struct {
	League string
	Status domain.TradeStatus
	TeamID string
}

// Service is the trade lifecycle engine: it owns every transition of trades
// and applies them in a single database transaction each.
type Service struct {
	repoManager ports.RepoManager
	players     ports.PlayerDirectory
	teams       ports.TeamDirectory
	pubsub      *pubsub.Service
	clock       ports.Clock
	deadline    time.Duration
}

// NewService returns a trade service. pubsubSvc is optional, clock defaults
// to the system one and a zero deadline defaults to
// domain.DefaultTradeDeadline.
func NewService(
	repoManager ports.RepoManager,
	players ports.PlayerDirectory,
	teams ports.TeamDirectory,
	pubsubSvc *pubsub.Service,
	clock ports.Clock,
	deadline time.Duration,
) (*Service, error) {
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}
	if players == nil {
		return nil, fmt.Errorf("missing player directory")
	}
	if teams == nil {
		return nil, fmt.Errorf("missing team directory")
	}
	if clock == nil {
		clock = ports.SystemClock
	}
	if deadline == 0 {
		deadline = domain.DefaultTradeDeadline
	}
	if deadline < 0 {
		return nil, fmt.Errorf("trade deadline must be positive")
	}

	return &Service{repoManager, players, teams, pubsubSvc, clock, deadline}, nil
}

// ProposeTrade creates a new pending trade on behalf of userID, who must own
// the initiator team.
func (s *Service) ProposeTrade(
	ctx context.Context, userID string, req ProposeTradeRequest,
) (*domain.Trade, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	now := s.clock.Now()

	res, err := s.repoManager.RunTransaction(ctx, false, func(ctx context.Context) (interface{}, error) {
		initiator, err := s.teams.ResolveTeam(ctx, req.InitiatorTeamID)
		if err != nil {
			return nil, err
		}
		if initiator.OwnerID != userID {
			return nil, domain.ErrTeamNotOwned
		}
		recipient, err := s.teams.ResolveTeam(ctx, req.RecipientTeamID)
		if err != nil {
			return nil, err
		}
		if initiator.League != req.League || recipient.League != req.League {
			return nil, domain.ErrTradeLeagueMismatch
		}

		offered, err := s.resolvePlayers(ctx, req.OfferedPlayerIDs)
		if err != nil {
			return nil, err
		}
		requested, err := s.resolvePlayers(ctx, req.RequestedPlayerIDs)
		if err != nil {
			return nil, err
		}

		trade, err := domain.NewTrade(domain.TradeProposal{
			League:           req.League,
			ProposerID:       userID,
			Initiator:        party(initiator),
			Recipient:        party(recipient),
			OfferedPlayers:   offered,
			RequestedPlayers: requested,
			Message:          req.Message,
		}, now, s.deadline)
		if err != nil {
			return nil, err
		}

		if err := s.repoManager.TradeRepository().AddTrade(ctx, trade); err != nil {
			return nil, err
		}
		return trade, nil
	})
	if err != nil {
		return nil, application.MapError(err, "trade: failed to propose trade")
	}

	trade := res.(*domain.Trade)
	score, _ := trade.Value.FairnessScore.Float64()
	stats.RecordTradeFairness(score)
	s.afterTransition(trade)

	log.Debugf("trade %s proposed in league %s", trade.ID, trade.League)
	return trade, nil
}

// RespondToTrade lets the recipient accept or reject a pending trade.
// Accepting moves the players between the two rosters in the same
// transaction, so that if the roster mutation fails the trade stays pending.
// Responding after the deadline expires the trade and returns
// domain.ErrTradeExpired.
func (s *Service) RespondToTrade(
	ctx context.Context,
	tradeID, userID string,
	action domain.ResponseAction,
	rejectionReason string,
) (*domain.Trade, error) {
	if !action.IsValid() {
		return nil, domain.ErrTradeInvalidAction
	}

	return s.transition(ctx, tradeID, func(ctx context.Context, t *domain.Trade, now time.Time) error {
		if err := t.Respond(userID, action, rejectionReason, now); err != nil {
			return err
		}
		if t.Status != domain.TradeAccepted {
			return nil
		}

		if err := s.teams.ApplyRosterTrade(ctx, domain.RosterTradeFromTrade(t, now)); err != nil {
			if domain.IsRosterError(err) {
				stats.RecordRosterFailure(rosterFailureReason(err))
			}
			return err
		}
		return nil
	})
}

// CancelTrade lets the initiator withdraw a pending trade.
func (s *Service) CancelTrade(
	ctx context.Context, tradeID, userID string,
) (*domain.Trade, error) {
	return s.transition(ctx, tradeID, func(_ context.Context, t *domain.Trade, now time.Time) error {
		return t.Cancel(userID, now)
	})
}

// GetTrade returns the trade with the given id, expiring it first if its
// deadline has passed.
func (s *Service) GetTrade(ctx context.Context, tradeID string) (*domain.Trade, error) {
	trade, err := s.repoManager.TradeRepository().GetTrade(ctx, tradeID)
	if err != nil {
		return nil, application.MapError(err, "trade: failed to get trade")
	}
	if !trade.IsOverdue(s.clock.Now()) {
		return trade, nil
	}

	expired, err := s.expireTrade(ctx, tradeID, s.clock.Now())
	if err != nil {
		return nil, application.MapError(err, "trade: failed to expire trade")
	}
	if expired != nil {
		s.afterTransition(expired)
		return expired, nil
	}
	// Somebody else closed the trade in the meantime.
	trade, err = s.repoManager.TradeRepository().GetTrade(ctx, tradeID)
	if err != nil {
		return nil, application.MapError(err, "trade: failed to get trade")
	}
	return trade, nil
}

// ListTrades returns a page of the trades of a league, newest first, along
// with the total number of matching trades. Overdue trades are expired
// before listing.
func (s *Service) ListTrades(
	ctx context.Context, filter ListTradesFilter, page domain.Page,
) ([]*domain.Trade, int, error) {
	if filter.League == "" {
		return nil, 0, application.ErrMissingLeague
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, 0, fmt.Errorf("%w: unknown status %s", domain.ErrInvalidTrade, filter.Status)
	}
	if _, err := s.sweep(ctx, domain.TradeFilter{League: filter.League}); err != nil {
		return nil, 0, application.MapError(err, "trade: failed to sweep trades")
	}

	trades, total, err := s.repoManager.TradeRepository().GetTrades(ctx, domain.TradeFilter{
		League: filter.League,
		Status: filter.Status,
		TeamID: filter.TeamID,
	}, &page)
	if err != nil {
		return nil, 0, application.MapError(err, "trade: failed to list trades")
	}
	return trades, total, nil
}

// ListTeamTrades returns all the trades where the team is either side,
// newest first.
func (s *Service) ListTeamTrades(ctx context.Context, teamID string) ([]*domain.Trade, error) {
	if _, err := s.teams.ResolveTeam(ctx, teamID); err != nil {
		return nil, application.MapError(err, "trade: failed to resolve team")
	}
	if _, err := s.sweep(ctx, domain.TradeFilter{TeamID: teamID}); err != nil {
		return nil, application.MapError(err, "trade: failed to sweep trades")
	}

	trades, _, err := s.repoManager.TradeRepository().GetTrades(
		ctx, domain.TradeFilter{TeamID: teamID}, nil,
	)
	if err != nil {
		return nil, application.MapError(err, "trade: failed to list trades")
	}
	return trades, nil
}

// SweepExpiredTrades expires every pending trade of the league whose
// deadline has passed, or of any league if league is empty, and returns
// them. Running it again right after returns no trades.
func (s *Service) SweepExpiredTrades(ctx context.Context, league string) ([]*domain.Trade, error) {
	expired, err := s.sweep(ctx, domain.TradeFilter{League: league})
	if err != nil {
		return nil, application.MapError(err, "trade: failed to sweep trades")
	}
	if len(expired) > 0 {
		log.Infof("trade: expired %d trades", len(expired))
	}
	return expired, nil
}

// transition applies fn to the trade in a single transaction. If fn returns
// domain.ErrTradeExpired, the expiration is committed anyway and the error
// is returned to the caller. Any other error discards the transaction.
func (s *Service) transition(
	ctx context.Context,
	tradeID string,
	fn func(ctx context.Context, t *domain.Trade, now time.Time) error,
) (*domain.Trade, error) {
	now := s.clock.Now()

	var expired bool
	res, err := s.repoManager.RunTransaction(ctx, false, func(ctx context.Context) (interface{}, error) {
		expired = false
		var updated *domain.Trade
		if err := s.repoManager.TradeRepository().UpdateTrade(
			ctx, tradeID, func(t *domain.Trade) (*domain.Trade, error) {
				if err := fn(ctx, t, now); err != nil {
					if !errors.Is(err, domain.ErrTradeExpired) {
						return nil, err
					}
					expired = true
				}
				updated = t
				return t, nil
			},
		); err != nil {
			return nil, err
		}
		return updated, nil
	})
	if err != nil {
		return nil, application.MapError(err, "trade: failed to update trade")
	}

	trade := res.(*domain.Trade)
	s.afterTransition(trade)
	if expired {
		return nil, domain.ErrTradeExpired
	}

	log.Debugf("trade %s %s", trade.ID, trade.Status)
	return trade, nil
}

// sweep expires the overdue pending trades matching filter, one transaction
// per trade.
func (s *Service) sweep(ctx context.Context, filter domain.TradeFilter) ([]*domain.Trade, error) {
	now := s.clock.Now()
	filter.Status = domain.TradePending
	filter.DeadlineBefore = now

	overdue, _, err := s.repoManager.TradeRepository().GetTrades(ctx, filter, nil)
	if err != nil {
		return nil, err
	}

	expired := make([]*domain.Trade, 0, len(overdue))
	for _, t := range overdue {
		trade, err := s.expireTrade(ctx, t.ID, now)
		if err != nil {
			return expired, err
		}
		if trade != nil {
			expired = append(expired, trade)
		}
	}

	stats.RecordSweptTrades(len(expired))
	s.afterTransition(expired...)
	return expired, nil
}

// expireTrade expires the trade if still overdue and returns it, or returns
// nil if there was nothing to do.
func (s *Service) expireTrade(
	ctx context.Context, tradeID string, now time.Time,
) (*domain.Trade, error) {
	res, err := s.repoManager.RunTransaction(ctx, false, func(ctx context.Context) (interface{}, error) {
		var expired *domain.Trade
		err := s.repoManager.TradeRepository().UpdateTrade(
			ctx, tradeID, func(t *domain.Trade) (*domain.Trade, error) {
				if !t.ExpireIfOverdue(now) {
					return nil, errTradeUnchanged
				}
				expired = t
				return t, nil
			},
		)
		return expired, err
	})
	if errors.Is(err, errTradeUnchanged) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return res.(*domain.Trade), nil
}

func (s *Service) afterTransition(trades ...*domain.Trade) {
	for _, t := range trades {
		stats.RecordTradeTransition(t.Status.String())
	}
	s.pubsub.PublishTradeEvents(trades...)
}

func (s *Service) resolvePlayers(
	ctx context.Context, playerIDs []string,
) ([]domain.TradedPlayer, error) {
	players := make([]domain.TradedPlayer, 0, len(playerIDs))
	for _, id := range playerIDs {
		p, err := s.players.ResolvePlayer(ctx, id)
		if err != nil {
			return nil, err
		}
		players = append(players, p.Snapshot())
	}
	return players, nil
}

func (r ProposeTradeRequest) validate() error {
	if r.League == "" {
		return domain.ErrTradeMissingLeague
	}
	if len(r.OfferedPlayerIDs) == 0 {
		return domain.ErrTradeEmptyOffer
	}
	if len(r.RequestedPlayerIDs) == 0 {
		return domain.ErrTradeEmptyRequest
	}
	if r.InitiatorTeamID == r.RecipientTeamID {
		return domain.ErrTradeSelfTrade
	}
	return nil
}

func party(team *ports.TeamInfo) domain.TradeParty {
	return domain.TradeParty{
		UserID:   team.OwnerID,
		TeamID:   team.ID,
		TeamName: team.Name,
	}
}

func rosterFailureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, domain.ErrPlayerAlreadyOnRoster):
		return "player_already_on_roster"
	default:
		return "player_not_on_roster"
	}
}
