package domain_test

import (
	"testing"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCalculateTradeValue(t *testing.T) {
	tests := []struct {
		name              string
		offered           []domain.TradedPlayer
		requested         []domain.TradedPlayer
		expectedInitiator string
		expectedRecipient string
		expectedFairness  string
	}{
		{
			name:              "half_value",
			offered:           []domain.TradedPlayer{player("a", 50)},
			requested:         []domain.TradedPlayer{player("b", 100)},
			expectedInitiator: "50",
			expectedRecipient: "100",
			expectedFairness:  "50",
		},
		{
			name:              "equal_value",
			offered:           []domain.TradedPlayer{player("a", 30), player("b", 20)},
			requested:         []domain.TradedPlayer{player("c", 50)},
			expectedInitiator: "50",
			expectedRecipient: "50",
			expectedFairness:  "100",
		},
		{
			name:              "recipient_side_smaller",
			offered:           []domain.TradedPlayer{player("a", 200)},
			requested:         []domain.TradedPlayer{player("b", 50)},
			expectedInitiator: "200",
			expectedRecipient: "50",
			expectedFairness:  "25",
		},
		{
			name:              "both_sides_valueless",
			offered:           []domain.TradedPlayer{player("a", 0)},
			requested:         []domain.TradedPlayer{player("b", 0)},
			expectedInitiator: "0",
			expectedRecipient: "0",
			expectedFairness:  "100",
		},
		{
			name:              "one_side_valueless",
			offered:           []domain.TradedPlayer{player("a", 0)},
			requested:         []domain.TradedPlayer{player("b", 10)},
			expectedInitiator: "0",
			expectedRecipient: "10",
			expectedFairness:  "0",
		},
		{
			name:              "periodic_ratio_is_truncated",
			offered:           []domain.TradedPlayer{player("a", 1)},
			requested:         []domain.TradedPlayer{player("b", 3)},
			expectedInitiator: "1",
			expectedRecipient: "3",
			expectedFairness:  "33.33333333",
		},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			offeredBefore := append([]domain.TradedPlayer(nil), tt.offered...)
			value := domain.CalculateTradeValue(tt.offered, tt.requested)

			require.Equal(t, tt.expectedInitiator, value.InitiatorValue.String())
			require.Equal(t, tt.expectedRecipient, value.RecipientValue.String())
			require.Equal(t, tt.expectedFairness, value.FairnessScore.String())
			require.Equal(t, offeredBefore, tt.offered)
		})
	}
}

func TestFairnessScoreBounds(t *testing.T) {
	values := []int64{0, 1, 7, 50, 99, 100, 1000, 123456}
	for _, a := range values {
		for _, b := range values {
			score := domain.FairnessScore(decimal.NewFromInt(a), decimal.NewFromInt(b))
			require.False(t, score.IsNegative())
			require.True(t, score.LessThanOrEqual(domain.MaxFairness))
			require.True(t, score.Equal(
				domain.FairnessScore(decimal.NewFromInt(b), decimal.NewFromInt(a)),
			))
		}
	}
}
