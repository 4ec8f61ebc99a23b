package domain

import (
	"time"

	"github.com/google/uuid"
)

// NewTrade validates the given proposal and returns a new pending trade that
// the recipient can answer until now+deadline.
func NewTrade(p TradeProposal, now time.Time, deadline time.Duration) (*Trade, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if deadline <= 0 {
		return nil, ErrTradeInvalidDeadline
	}

	now = now.UTC()
	return &Trade{
		ID:               uuid.New().String(),
		League:           p.League,
		Initiator:        p.Initiator,
		Recipient:        p.Recipient,
		OfferedPlayers:   append([]TradedPlayer(nil), p.OfferedPlayers...),
		RequestedPlayers: append([]TradedPlayer(nil), p.RequestedPlayers...),
		Status:           TradePending,
		Value:            CalculateTradeValue(p.OfferedPlayers, p.RequestedPlayers),
		Deadline:         now.Add(deadline),
		Message:          p.Message,
		History: []HistoryEntry{{
			Action:    ActionCreated,
			UserID:    p.ProposerID,
			Timestamp: now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (p TradeProposal) validate() error {
	if p.League == "" {
		return ErrTradeMissingLeague
	}
	if len(p.OfferedPlayers) == 0 {
		return ErrTradeEmptyOffer
	}
	if len(p.RequestedPlayers) == 0 {
		return ErrTradeEmptyRequest
	}
	if p.Initiator.TeamID == p.Recipient.TeamID {
		return ErrTradeSelfTrade
	}

	seen := make(map[string]struct{})
	for _, list := range [][]TradedPlayer{p.OfferedPlayers, p.RequestedPlayers} {
		for _, player := range list {
			if _, ok := seen[player.PlayerID]; ok {
				return ErrTradeDuplicatePlayer
			}
			seen[player.PlayerID] = struct{}{}
			if player.FantasyValue.IsNegative() {
				return ErrTradeNegativeValue
			}
		}
	}
	return nil
}

// IsPending ...
func (t *Trade) IsPending() bool {
	return t.Status == TradePending
}

// IsOverdue returns whether the deadline of the trade has passed at the given
// time. Only pending trades can be overdue.
func (t *Trade) IsOverdue(now time.Time) bool {
	return t.IsPending() && now.After(t.Deadline)
}

// InvolvesTeam returns whether the given team is either side of the trade.
func (t *Trade) InvolvesTeam(teamID string) bool {
	return t.Initiator.TeamID == teamID || t.Recipient.TeamID == teamID
}

// PlayerIDs returns the ids of the offered and requested players, in this
// order.
func (t *Trade) PlayerIDs() (offered, requested []string) {
	for _, p := range t.OfferedPlayers {
		offered = append(offered, p.PlayerID)
	}
	for _, p := range t.RequestedPlayers {
		requested = append(requested, p.PlayerID)
	}
	return
}

// Respond dispatches the recipient's answer to either Accept or Reject.
func (t *Trade) Respond(
	userID string, action ResponseAction, reason string, now time.Time,
) error {
	switch action {
	case ResponseAccept:
		return t.Accept(userID, now)
	case ResponseReject:
		return t.Reject(userID, reason, now)
	default:
		return ErrTradeInvalidAction
	}
}

// Accept brings a pending trade to the accepted status. Only the recipient can
// accept. If the deadline has passed the trade is expired instead and
// ErrTradeExpired is returned.
func (t *Trade) Accept(userID string, now time.Time) error {
	if userID != t.Recipient.UserID {
		return ErrTradeNotRecipient
	}
	if err := t.checkPending(now); err != nil {
		return err
	}

	t.close(TradeAccepted, ActionAccepted, userID, "", now)
	return nil
}

// Reject brings a pending trade to the rejected status with an optional
// reason. Only the recipient can reject.
func (t *Trade) Reject(userID, reason string, now time.Time) error {
	if userID != t.Recipient.UserID {
		return ErrTradeNotRecipient
	}
	if err := t.checkPending(now); err != nil {
		return err
	}

	t.RejectionReason = reason
	t.close(TradeRejected, ActionRejected, userID, reason, now)
	return nil
}

// Cancel brings a pending trade to the cancelled status. Only the initiator
// can cancel.
func (t *Trade) Cancel(userID string, now time.Time) error {
	if userID != t.Initiator.UserID {
		return ErrTradeNotInitiator
	}
	if err := t.checkPending(now); err != nil {
		return err
	}

	t.close(TradeCancelled, ActionCancelled, userID, "", now)
	return nil
}

// Expire brings an overdue pending trade to the expired status.
// Expiring an already expired trade is a no-op and returns false.
func (t *Trade) Expire(now time.Time) (bool, error) {
	if t.Status == TradeExpired {
		return false, nil
	}
	if !t.IsPending() {
		return false, ErrTradeMustBePending
	}
	if !now.After(t.Deadline) {
		return false, ErrTradeDeadlineNotReached
	}

	t.close(TradeExpired, ActionExpired, SystemActor, "", now)
	return true, nil
}

// ExpireIfOverdue expires the trade if its deadline has passed and reports
// whether the trade changed.
func (t *Trade) ExpireIfOverdue(now time.Time) bool {
	if !t.IsOverdue(now) {
		return false
	}
	changed, _ := t.Expire(now)
	return changed
}

// Clone returns a deep copy of the trade.
func (t *Trade) Clone() *Trade {
	if t == nil {
		return nil
	}
	c := *t
	c.OfferedPlayers = append([]TradedPlayer(nil), t.OfferedPlayers...)
	c.RequestedPlayers = append([]TradedPlayer(nil), t.RequestedPlayers...)
	c.History = append([]HistoryEntry(nil), t.History...)
	return &c
}

func (t *Trade) checkPending(now time.Time) error {
	if !t.IsPending() {
		return ErrTradeMustBePending
	}
	if t.ExpireIfOverdue(now) {
		return ErrTradeExpired
	}
	return nil
}

func (t *Trade) close(
	status TradeStatus, action TradeAction, userID, notes string, now time.Time,
) {
	now = now.UTC()
	t.Status = status
	t.ProcessedAt = now
	t.UpdatedAt = now
	t.History = append(t.History, HistoryEntry{
		Action:    action,
		UserID:    userID,
		Timestamp: now,
		Notes:     notes,
	})
}
