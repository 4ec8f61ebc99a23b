package domain_test

import (
	"math"
	"testing"
	"time"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/domain"
	"github.com/stretchr/testify/require"
)

func acceptedTrade(
	t *testing.T, at time.Time, offered, requested []domain.TradedPlayer,
) *domain.Trade {
	p := newProposal()
	p.OfferedPlayers = offered
	p.RequestedPlayers = requested
	trade, err := domain.NewTrade(p, at.Add(-time.Hour), domain.DefaultTradeDeadline)
	require.NoError(t, err)
	require.NoError(t, trade.Accept(recipientUser, at))
	return trade
}

func TestMostTradedPlayers(t *testing.T) {
	since := t0
	trades := []*domain.Trade{
		acceptedTrade(t, t0.Add(time.Hour),
			[]domain.TradedPlayer{player("P", 10)}, []domain.TradedPlayer{player("b", 10)}),
		acceptedTrade(t, t0.Add(2*time.Hour),
			[]domain.TradedPlayer{player("a", 10)}, []domain.TradedPlayer{player("P", 10)}),
		// Outside of the window.
		acceptedTrade(t, t0.Add(-time.Hour),
			[]domain.TradedPlayer{player("a", 10)}, []domain.TradedPlayer{player("P", 10)}),
		newTradePending(),
		newTradeRejected(),
	}

	counts := domain.MostTradedPlayers(trades, since, 0)
	require.Equal(t, []domain.PlayerTradeCount{
		{PlayerID: "P", PlayerName: "Player P", Count: 2},
		{PlayerID: "a", PlayerName: "Player a", Count: 1},
		{PlayerID: "b", PlayerName: "Player b", Count: 1},
	}, counts)

	top := domain.MostTradedPlayers(trades, since, 1)
	require.Len(t, top, 1)
	require.Equal(t, "P", top[0].PlayerID)

	require.Empty(t, domain.MostTradedPlayers(nil, since, 10))
}

func TestAverageTradeValue(t *testing.T) {
	require.True(t, domain.AverageTradeValue(nil).IsZero())

	trades := []*domain.Trade{
		acceptedTrade(t, t0,
			[]domain.TradedPlayer{player("a", 50)}, []domain.TradedPlayer{player("b", 100)}),
		acceptedTrade(t, t0,
			[]domain.TradedPlayer{player("c", 10)}, []domain.TradedPlayer{player("d", 30)}),
	}
	// (75 + 20) / 2
	require.Equal(t, "47.5", domain.AverageTradeValue(trades).String())

	activity := domain.SummarizeActivity(trades)
	require.Equal(t, 2, activity.TotalTrades)
	require.Equal(t, "47.5", activity.AverageTradeValue.String())
}

func TestTradeFilterMatches(t *testing.T) {
	trade := newTradePending()

	require.True(t, domain.TradeFilter{}.Matches(trade))
	require.True(t, domain.TradeFilter{League: league, TeamID: "team-b"}.Matches(trade))
	require.False(t, domain.TradeFilter{League: "other"}.Matches(trade))
	require.False(t, domain.TradeFilter{TeamID: "team-z"}.Matches(trade))
	require.False(t, domain.TradeFilter{Status: domain.TradeAccepted}.Matches(trade))
	require.True(t, domain.TradeFilter{DeadlineBefore: trade.Deadline.Add(time.Second)}.Matches(trade))
	require.False(t, domain.TradeFilter{DeadlineBefore: trade.Deadline}.Matches(trade))
	require.False(t, domain.TradeFilter{ProcessedSince: t0}.Matches(trade))
}

func TestNewPage(t *testing.T) {
	require.Equal(t, domain.Page{Number: 1, Size: domain.DefaultPageSize}, domain.NewPage(0, 0))
	require.Equal(t, domain.Page{Number: 3, Size: domain.MaxPageSize}, domain.NewPage(3, 1000))

	start, end := domain.NewPage(2, 10).Slice(15)
	require.Equal(t, 10, start)
	require.Equal(t, 15, end)

	start, end = domain.NewPage(5, 10).Slice(15)
	require.Equal(t, 15, start)
	require.Equal(t, 15, end)

	huge := domain.NewPage(math.MaxInt, domain.MaxPageSize)
	require.Equal(t, math.MaxInt, huge.Offset())
	start, end = huge.Slice(15)
	require.Equal(t, 15, start)
	require.Equal(t, 15, end)
}
