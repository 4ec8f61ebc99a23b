package domain_test

import (
	"time"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	initiatorUser = "user-alice"
	recipientUser = "user-bob"
	strangerUser  = "user-eve"
	league        = "league-1"
	t0            = time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)
)

func player(id string, value int64) domain.TradedPlayer {
	return domain.TradedPlayer{
		PlayerID:     id,
		PlayerName:   "Player " + id,
		Position:     "QB",
		Team:         "NFL",
		FantasyValue: decimal.NewFromInt(value),
	}
}

func newProposal() domain.TradeProposal {
	return domain.TradeProposal{
		League:     league,
		ProposerID: initiatorUser,
		Initiator: domain.TradeParty{
			UserID: initiatorUser, TeamID: "team-a", TeamName: "Alpha",
		},
		Recipient: domain.TradeParty{
			UserID: recipientUser, TeamID: "team-b", TeamName: "Bravo",
		},
		OfferedPlayers:   []domain.TradedPlayer{player("p1", 50)},
		RequestedPlayers: []domain.TradedPlayer{player("p2", 100)},
		Message:          "deal?",
	}
}

func newTradePending() *domain.Trade {
	trade, err := domain.NewTrade(newProposal(), t0, domain.DefaultTradeDeadline)
	if err != nil {
		panic(err)
	}
	return trade
}

func newTradeAccepted() *domain.Trade {
	trade := newTradePending()
	if err := trade.Accept(recipientUser, t0.Add(time.Hour)); err != nil {
		panic(err)
	}
	return trade
}

func newTradeRejected() *domain.Trade {
	trade := newTradePending()
	if err := trade.Reject(recipientUser, "no", t0.Add(time.Hour)); err != nil {
		panic(err)
	}
	return trade
}

func newTradeCancelled() *domain.Trade {
	trade := newTradePending()
	if err := trade.Cancel(initiatorUser, t0.Add(time.Hour)); err != nil {
		panic(err)
	}
	return trade
}

func newTradeExpired() *domain.Trade {
	trade := newTradePending()
	if _, err := trade.Expire(trade.Deadline.Add(time.Second)); err != nil {
		panic(err)
	}
	return trade
}
