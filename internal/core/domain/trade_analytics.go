package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// PlayerTradeCount is how many accepted trades a player took part in.
type PlayerTradeCount struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Count      int    `json:"count"`
}

// TradeActivity summarizes a set of trades.
type TradeActivity struct {
	TotalTrades       int             `json:"totalTrades"`
	AverageTradeValue decimal.Decimal `json:"averageTradeValue"`
}

// TradeStats counts the trades of a league or a team.
type TradeStats struct {
	TotalTrades  int `json:"totalTrades"`
	ActiveTrades int `json:"activeTrades"`
}

// TradeTrends are the insights derived from the recent accepted trades of a
// league.
type TradeTrends struct {
	MostTradedPlayers []PlayerTradeCount `json:"mostTradedPlayers"`
	TradeActivity     TradeActivity      `json:"tradeActivity"`
}

// MostTradedPlayers counts the appearances of every player in the accepted
// trades processed at or after since, and returns at most limit of them
// sorted by count descending and player id ascending. A non-positive limit
// returns all of them.
func MostTradedPlayers(trades []*Trade, since time.Time, limit int) []PlayerTradeCount {
	counts := make(map[string]*PlayerTradeCount)
	for _, t := range trades {
		if t.Status != TradeAccepted || t.ProcessedAt.IsZero() ||
			t.ProcessedAt.Before(since) {
			continue
		}
		for _, list := range [][]TradedPlayer{t.OfferedPlayers, t.RequestedPlayers} {
			for _, p := range list {
				c, ok := counts[p.PlayerID]
				if !ok {
					c = &PlayerTradeCount{PlayerID: p.PlayerID, PlayerName: p.PlayerName}
					counts[p.PlayerID] = c
				}
				c.Count++
			}
		}
	}

	result := make([]PlayerTradeCount, 0, len(counts))
	for _, c := range counts {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].PlayerID < result[j].PlayerID
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// AverageTradeValue returns the mean of the average side value of the given
// trades, or zero for no trades.
func AverageTradeValue(trades []*Trade) decimal.Decimal {
	if len(trades) == 0 {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, t := range trades {
		total = total.Add(t.Value.Average())
	}
	return total.DivRound(decimal.NewFromInt(int64(len(trades))), FairnessPrecision)
}

// SummarizeActivity ...
func SummarizeActivity(trades []*Trade) TradeActivity {
	return TradeActivity{
		TotalTrades:       len(trades),
		AverageTradeValue: AverageTradeValue(trades),
	}
}
