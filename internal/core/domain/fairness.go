package domain

import "github.com/shopspring/decimal"

// FairnessPrecision is the number of decimal places a fairness score is
// truncated to.
const FairnessPrecision = 8

var (
	hundred      = decimal.NewFromInt(100)
	MaxFairness  = hundred
	zeroFairness = decimal.Zero
)

// CalculateTradeValue sums the fantasy value of both sides of a trade and
// computes their fairness score. It does not mutate its arguments.
func CalculateTradeValue(offered, requested []TradedPlayer) TradeValue {
	initiatorValue := sumFantasyValue(offered)
	recipientValue := sumFantasyValue(requested)

	return TradeValue{
		InitiatorValue: initiatorValue,
		RecipientValue: recipientValue,
		FairnessScore:  FairnessScore(initiatorValue, recipientValue),
	}
}

// FairnessScore returns 100 * min(a, b) / max(a, b), truncated to
// FairnessPrecision decimal places. Two valueless sides are perfectly fair.
// Negative values are clamped to zero.
func FairnessScore(a, b decimal.Decimal) decimal.Decimal {
	if a.IsNegative() {
		a = decimal.Zero
	}
	if b.IsNegative() {
		b = decimal.Zero
	}

	hi, lo := decimal.Max(a, b), decimal.Min(a, b)
	if hi.IsZero() {
		return MaxFairness
	}
	if lo.IsZero() {
		return zeroFairness
	}

	return hundred.Mul(lo).DivRound(hi, FairnessPrecision+2).
		Truncate(FairnessPrecision)
}

func sumFantasyValue(players []TradedPlayer) decimal.Decimal {
	total := decimal.Zero
	for _, p := range players {
		total = total.Add(p.FantasyValue)
	}
	return total
}
