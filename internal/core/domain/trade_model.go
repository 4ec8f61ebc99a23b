package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SystemActor is the user id recorded in the history of transitions that are
// not triggered by any user, like expiration.
const SystemActor = "system"

// DefaultTradeDeadline is the time window a recipient has to respond to a
// trade.
const DefaultTradeDeadline = 7 * 24 * time.Hour

// TradeStatus ...
type TradeStatus string

const (
	TradePending   TradeStatus = "pending"
	TradeAccepted  TradeStatus = "accepted"
	TradeRejected  TradeStatus = "rejected"
	TradeCancelled TradeStatus = "cancelled"
	TradeExpired   TradeStatus = "expired"
)

// IsTerminal returns whether no transition is allowed out of the status.
func (s TradeStatus) IsTerminal() bool {
	switch s {
	case TradeAccepted, TradeRejected, TradeCancelled, TradeExpired:
		return true
	default:
		return false
	}
}

func (s TradeStatus) IsValid() bool {
	return s == TradePending || s.IsTerminal()
}

func (s TradeStatus) String() string {
	return string(s)
}

// TradeAction is the kind of a trade history entry.
type TradeAction string

const (
	ActionCreated   TradeAction = "created"
	ActionAccepted  TradeAction = "accepted"
	ActionRejected  TradeAction = "rejected"
	ActionCancelled TradeAction = "cancelled"
	ActionExpired   TradeAction = "expired"
)

// ResponseAction is what a recipient can do with a pending trade.
type ResponseAction string

const (
	ResponseAccept ResponseAction = "accept"
	ResponseReject ResponseAction = "reject"
)

func (a ResponseAction) IsValid() bool {
	return a == ResponseAccept || a == ResponseReject
}

// TradeParty is the snapshot of one side of a trade taken at proposal time.
// The team name is not kept in sync with the live team.
type TradeParty struct {
	UserID   string `json:"userId"`
	TeamID   string `json:"teamId"`
	TeamName string `json:"teamName"`
}

// TradedPlayer is the valuation snapshot of a player taken at proposal time.
type TradedPlayer struct {
	PlayerID     string          `json:"playerId"`
	PlayerName   string          `json:"playerName"`
	Position     string          `json:"position"`
	Team         string          `json:"team"`
	FantasyValue decimal.Decimal `json:"fantasyValue"`
}

// TradeValue holds the valuation of both sides of a trade.
type TradeValue struct {
	InitiatorValue decimal.Decimal `json:"initiatorValue"`
	RecipientValue decimal.Decimal `json:"recipientValue"`
	FairnessScore  decimal.Decimal `json:"fairnessScore"`
}

// Average returns the mean value of the two sides.
func (v TradeValue) Average() decimal.Decimal {
	return v.InitiatorValue.Add(v.RecipientValue).Div(decimal.NewFromInt(2))
}

// HistoryEntry records a single transition of a trade and who caused it.
type HistoryEntry struct {
	Action    TradeAction `json:"action"`
	UserID    string      `json:"userId"`
	Timestamp time.Time   `json:"timestamp"`
	Notes     string      `json:"notes,omitempty"`
}

// Trade is a proposed exchange of players between two teams of the same
// league.
type Trade struct {
	ID               string         `json:"id"`
	League           string         `json:"league"`
	Initiator        TradeParty     `json:"initiator"`
	Recipient        TradeParty     `json:"recipient"`
	OfferedPlayers   []TradedPlayer `json:"offeredPlayers"`
	RequestedPlayers []TradedPlayer `json:"requestedPlayers"`
	Status           TradeStatus    `json:"status"`
	Value            TradeValue     `json:"tradeValue"`
	Deadline         time.Time      `json:"tradeDeadline"`
	Message          string         `json:"message,omitempty"`
	RejectionReason  string         `json:"rejectionReason,omitempty"`
	History          []HistoryEntry `json:"history"`
	// ProcessedAt is the zero time while the trade is pending.
	ProcessedAt time.Time `json:"processedAt,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TradeProposal carries the already resolved arguments to create a trade.
type TradeProposal struct {
	League           string
	ProposerID       string
	Initiator        TradeParty
	Recipient        TradeParty
	OfferedPlayers   []TradedPlayer
	RequestedPlayers []TradedPlayer
	Message          string
}
