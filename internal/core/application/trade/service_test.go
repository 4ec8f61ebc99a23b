package trade_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/application/pubsub"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/application/roster"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/application/trade"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/domain"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/ports"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/infrastructure/directory"
	dbbadger "github.com/Ayushgangwar02/fantasy-Sports-app/internal/infrastructure/storage/db/badger"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/infrastructure/storage/db/inmemory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	league        = "league-1"
	aliceID       = "user-alice"
	bobID         = "user-bob"
	eveID         = "user-eve"
	teamAlpha     = "team-alpha"
	teamBravo     = "team-bravo"
	teamElsewhere = "team-elsewhere"
)

var t0 = time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)

func TestProposeTrade(t *testing.T) {
	f := newFixture(t, 4)
	f.pubsub.On("Publish", pubsub.EventTradeProposed, mock.Anything).Return(nil).Once()

	tr, err := f.svc.ProposeTrade(context.Background(), aliceID, f.request([]string{"a1"}, []string{"b1", "b2"}))
	require.NoError(t, err)
	require.NotNil(t, tr)

	require.Equal(t, domain.TradePending, tr.Status)
	require.True(t, decimal.NewFromInt(50).Equal(tr.Value.InitiatorValue))
	require.True(t, decimal.NewFromInt(100).Equal(tr.Value.RecipientValue))
	require.True(t, decimal.NewFromInt(50).Equal(tr.Value.FairnessScore))
	require.Equal(t, t0.Add(domain.DefaultTradeDeadline), tr.Deadline)
	require.Equal(t, domain.TradeParty{UserID: aliceID, TeamID: teamAlpha, TeamName: "Alpha"}, tr.Initiator)
	require.Equal(t, domain.TradeParty{UserID: bobID, TeamID: teamBravo, TeamName: "Bravo"}, tr.Recipient)
	require.Len(t, tr.History, 1)
	require.Equal(t, domain.ActionCreated, tr.History[0].Action)
	require.Equal(t, aliceID, tr.History[0].UserID)
	require.True(t, tr.ProcessedAt.IsZero())

	stored, err := f.svc.GetTrade(context.Background(), tr.ID)
	require.NoError(t, err)
	require.Equal(t, tr.ID, stored.ID)

	f.assertPublished(t)
}

func TestFailingProposeTrade(t *testing.T) {
	f := newFixture(t, 4)

	tests := []struct {
		name          string
		userID        string
		req           trade.ProposeTradeRequest
		expectedError error
	}{
		{
			name:          "empty offer",
			userID:        aliceID,
			req:           f.request(nil, []string{"b1"}),
			expectedError: domain.ErrInvalidTrade,
		},
		{
			name:          "empty request",
			userID:        aliceID,
			req:           f.request([]string{"a1"}, nil),
			expectedError: domain.ErrInvalidTrade,
		},
		{
			name:   "self trade",
			userID: aliceID,
			req: trade.ProposeTradeRequest{
				League:             league,
				InitiatorTeamID:    teamAlpha,
				RecipientTeamID:    teamAlpha,
				OfferedPlayerIDs:   []string{"a1"},
				RequestedPlayerIDs: []string{"a2"},
			},
			expectedError: domain.ErrInvalidTrade,
		},
		{
			name:   "unknown recipient team",
			userID: aliceID,
			req: trade.ProposeTradeRequest{
				League:             league,
				InitiatorTeamID:    teamAlpha,
				RecipientTeamID:    "team-ghost",
				OfferedPlayerIDs:   []string{"a1"},
				RequestedPlayerIDs: []string{"b1"},
			},
			expectedError: domain.ErrNotFound,
		},
		{
			name:          "unknown player",
			userID:        aliceID,
			req:           f.request([]string{"a1"}, []string{"ghost"}),
			expectedError: domain.ErrNotFound,
		},
		{
			name:          "initiator team not owned",
			userID:        eveID,
			req:           f.request([]string{"a1"}, []string{"b1"}),
			expectedError: domain.ErrForbidden,
		},
		{
			name:   "team of another league",
			userID: aliceID,
			req: trade.ProposeTradeRequest{
				League:             league,
				InitiatorTeamID:    teamAlpha,
				RecipientTeamID:    teamElsewhere,
				OfferedPlayerIDs:   []string{"a1"},
				RequestedPlayerIDs: []string{"e1"},
			},
			expectedError: domain.ErrInvalidTrade,
		},
		{
			name:          "duplicate player",
			userID:        aliceID,
			req:           f.request([]string{"a1", "a1"}, []string{"b1"}),
			expectedError: domain.ErrInvalidTrade,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tr, err := f.svc.ProposeTrade(context.Background(), tt.userID, tt.req)
			require.ErrorIs(t, err, tt.expectedError)
			require.Nil(t, tr)
		})
	}

	trades, total, err := f.svc.ListTrades(
		context.Background(), trade.ListTradesFilter{League: league}, domain.NewPage(1, 10),
	)
	require.NoError(t, err)
	require.Zero(t, total)
	require.Empty(t, trades)
}

func TestAcceptTrade(t *testing.T) {
	f := newFixture(t, 4)
	tr := f.propose(t, []string{"a1"}, []string{"b1", "b2"})

	f.clock.Advance(time.Hour)
	f.pubsub.On("Publish", pubsub.EventTradeAccepted, mock.Anything).Return(nil).Once()

	accepted, err := f.svc.RespondToTrade(context.Background(), tr.ID, bobID, domain.ResponseAccept, "")
	require.NoError(t, err)
	require.Equal(t, domain.TradeAccepted, accepted.Status)
	require.Equal(t, t0.Add(time.Hour), accepted.ProcessedAt)
	requireHistory(t, accepted, domain.ActionCreated, domain.ActionAccepted)

	alpha := f.team(t, teamAlpha)
	bravo := f.team(t, teamBravo)
	require.ElementsMatch(t, []string{"a2", "b1", "b2"}, rosterIDs(alpha))
	require.ElementsMatch(t, []string{"a1", "b3"}, rosterIDs(bravo))
	require.True(t, decimal.NewFromInt(30).Equal(alpha.SalaryCapUsed))
	require.True(t, decimal.NewFromInt(170).Equal(alpha.RemainingBudget))

	for _, e := range alpha.Roster {
		if e.PlayerID == "b1" {
			require.Equal(t, domain.AcquisitionTrade, e.AcquisitionType)
			require.False(t, e.IsStarter)
			require.Equal(t, t0.Add(time.Hour), e.AcquisitionDate)
		}
	}

	f.assertPublished(t)
}

func TestRejectTrade(t *testing.T) {
	f := newFixture(t, 4)
	tr := f.propose(t, []string{"a1"}, []string{"b1"})
	f.pubsub.On("Publish", pubsub.EventTradeRejected, mock.Anything).Return(nil).Once()

	rejected, err := f.svc.RespondToTrade(
		context.Background(), tr.ID, bobID, domain.ResponseReject, "not enough",
	)
	require.NoError(t, err)
	require.Equal(t, domain.TradeRejected, rejected.Status)
	require.Equal(t, "not enough", rejected.RejectionReason)
	require.False(t, rejected.ProcessedAt.IsZero())
	requireHistory(t, rejected, domain.ActionCreated, domain.ActionRejected)

	require.ElementsMatch(t, []string{"a1", "a2"}, rosterIDs(f.team(t, teamAlpha)))
	f.assertPublished(t)
}

func TestCancelTrade(t *testing.T) {
	f := newFixture(t, 4)
	tr := f.propose(t, []string{"a1"}, []string{"b1"})
	f.pubsub.On("Publish", pubsub.EventTradeCancelled, mock.Anything).Return(nil).Once()

	cancelled, err := f.svc.CancelTrade(context.Background(), tr.ID, aliceID)
	require.NoError(t, err)
	require.Equal(t, domain.TradeCancelled, cancelled.Status)
	require.False(t, cancelled.ProcessedAt.IsZero())
	requireHistory(t, cancelled, domain.ActionCreated, domain.ActionCancelled)

	f.assertPublished(t)
}

func TestCancelTradeWithSlowSubscriber(t *testing.T) {
	f := newFixture(t, 4)
	tr := f.propose(t, []string{"a1"}, []string{"b1"})

	release := make(chan struct{})
	f.pubsub.On("Publish", pubsub.EventTradeCancelled, mock.Anything).
		Run(func(mock.Arguments) { <-release }).Return(nil).Once()

	errc := make(chan error, 1)
	go func() {
		_, err := f.svc.CancelTrade(context.Background(), tr.ID, aliceID)
		errc <- err
	}()

	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(time.Second):
		close(release)
		t.Fatal("cancel waited for webhook delivery")
	}

	close(release)
	f.assertPublished(t)
}

func TestFailingTransitions(t *testing.T) {
	t.Run("unknown trade", func(t *testing.T) {
		f := newFixture(t, 4)

		_, err := f.svc.RespondToTrade(context.Background(), "ghost", bobID, domain.ResponseAccept, "")
		require.ErrorIs(t, err, domain.ErrNotFound)
		_, err = f.svc.CancelTrade(context.Background(), "ghost", aliceID)
		require.ErrorIs(t, err, domain.ErrNotFound)
		_, err = f.svc.GetTrade(context.Background(), "ghost")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("wrong actors", func(t *testing.T) {
		f := newFixture(t, 4)
		tr := f.propose(t, []string{"a1"}, []string{"b1"})

		for _, userID := range []string{aliceID, eveID} {
			_, err := f.svc.RespondToTrade(context.Background(), tr.ID, userID, domain.ResponseAccept, "")
			require.ErrorIs(t, err, domain.ErrForbidden)
		}
		for _, userID := range []string{bobID, eveID} {
			_, err := f.svc.CancelTrade(context.Background(), tr.ID, userID)
			require.ErrorIs(t, err, domain.ErrForbidden)
		}

		stored, err := f.svc.GetTrade(context.Background(), tr.ID)
		require.NoError(t, err)
		require.Equal(t, domain.TradePending, stored.Status)
		require.Len(t, stored.History, 1)
	})

	t.Run("invalid action", func(t *testing.T) {
		f := newFixture(t, 4)
		tr := f.propose(t, []string{"a1"}, []string{"b1"})

		_, err := f.svc.RespondToTrade(context.Background(), tr.ID, bobID, "maybe", "")
		require.ErrorIs(t, err, domain.ErrInvalidTrade)
	})
}

func TestTerminalTradesAreFinal(t *testing.T) {
	tests := []struct {
		name  string
		close func(t *testing.T, f *fixture, tradeID string)
	}{
		{
			name: "accepted",
			close: func(t *testing.T, f *fixture, tradeID string) {
				_, err := f.svc.RespondToTrade(context.Background(), tradeID, bobID, domain.ResponseAccept, "")
				require.NoError(t, err)
			},
		},
		{
			name: "rejected",
			close: func(t *testing.T, f *fixture, tradeID string) {
				_, err := f.svc.RespondToTrade(context.Background(), tradeID, bobID, domain.ResponseReject, "")
				require.NoError(t, err)
			},
		},
		{
			name: "cancelled",
			close: func(t *testing.T, f *fixture, tradeID string) {
				_, err := f.svc.CancelTrade(context.Background(), tradeID, aliceID)
				require.NoError(t, err)
			},
		},
		{
			name: "expired",
			close: func(t *testing.T, f *fixture, tradeID string) {
				f.clock.Advance(domain.DefaultTradeDeadline + time.Second)
				expired, err := f.svc.SweepExpiredTrades(context.Background(), league)
				require.NoError(t, err)
				require.Len(t, expired, 1)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, 4)
			f.pubsub.On("Publish", mock.Anything, mock.Anything).Return(nil)
			tr := f.propose(t, []string{"a1"}, []string{"b1"})
			tt.close(t, f, tr.ID)

			before, err := f.svc.GetTrade(context.Background(), tr.ID)
			require.NoError(t, err)

			_, err = f.svc.RespondToTrade(context.Background(), tr.ID, bobID, domain.ResponseAccept, "")
			require.ErrorIs(t, err, domain.ErrInvalidState)
			_, err = f.svc.RespondToTrade(context.Background(), tr.ID, bobID, domain.ResponseReject, "")
			require.ErrorIs(t, err, domain.ErrInvalidState)
			_, err = f.svc.CancelTrade(context.Background(), tr.ID, aliceID)
			require.ErrorIs(t, err, domain.ErrInvalidState)
			expired, err := f.svc.SweepExpiredTrades(context.Background(), league)
			require.NoError(t, err)
			require.Empty(t, expired)

			after, err := f.svc.GetTrade(context.Background(), tr.ID)
			require.NoError(t, err)
			require.Equal(t, before, after)
		})
	}
}

func TestRespondToExpiredTrade(t *testing.T) {
	f := newFixture(t, 4)
	tr := f.propose(t, []string{"a1"}, []string{"b1"})

	f.clock.Advance(domain.DefaultTradeDeadline + time.Minute)
	f.pubsub.On("Publish", pubsub.EventTradeExpired, mock.Anything).Return(nil).Once()

	res, err := f.svc.RespondToTrade(context.Background(), tr.ID, bobID, domain.ResponseAccept, "")
	require.ErrorIs(t, err, domain.ErrTradeExpired)
	require.ErrorIs(t, err, domain.ErrInvalidState)
	require.Nil(t, res)

	stored, err := f.svc.GetTrade(context.Background(), tr.ID)
	require.NoError(t, err)
	require.Equal(t, domain.TradeExpired, stored.Status)
	requireHistory(t, stored, domain.ActionCreated, domain.ActionExpired)
	require.Equal(t, domain.SystemActor, stored.History[1].UserID)

	// Rosters are untouched.
	require.ElementsMatch(t, []string{"a1", "a2"}, rosterIDs(f.team(t, teamAlpha)))
	f.assertPublished(t)
}

func TestAcceptOverCapacityLeavesTradePending(t *testing.T) {
	// Bravo holds 3 players out of 3 and would receive 2 while giving 1.
	f := newFixture(t, 3)
	tr := f.propose(t, []string{"a1", "a2"}, []string{"b1"})

	alphaBefore := f.team(t, teamAlpha)
	bravoBefore := f.team(t, teamBravo)

	_, err := f.svc.RespondToTrade(context.Background(), tr.ID, bobID, domain.ResponseAccept, "")
	require.ErrorIs(t, err, domain.ErrCapacityExceeded)

	stored, err := f.svc.GetTrade(context.Background(), tr.ID)
	require.NoError(t, err)
	require.Equal(t, domain.TradePending, stored.Status)
	require.True(t, stored.ProcessedAt.IsZero())
	requireHistory(t, stored, domain.ActionCreated)

	require.Equal(t, alphaBefore, f.team(t, teamAlpha))
	require.Equal(t, bravoBefore, f.team(t, teamBravo))
}

func TestAcceptWithPlayerNoLongerOnRoster(t *testing.T) {
	f := newFixture(t, 4)
	tr := f.propose(t, []string{"a1"}, []string{"b1"})
	other := f.propose(t, []string{"a2"}, []string{"b1"})

	f.pubsub.On("Publish", pubsub.EventTradeAccepted, mock.Anything).Return(nil).Once()
	_, err := f.svc.RespondToTrade(context.Background(), tr.ID, bobID, domain.ResponseAccept, "")
	require.NoError(t, err)

	_, err = f.svc.RespondToTrade(context.Background(), other.ID, bobID, domain.ResponseAccept, "")
	require.ErrorIs(t, err, domain.ErrPlayerNotOnRoster)

	stored, err := f.svc.GetTrade(context.Background(), other.ID)
	require.NoError(t, err)
	require.Equal(t, domain.TradePending, stored.Status)
}

func TestAcceptWithIncomingPlayerAlreadyOnRoster(t *testing.T) {
	f := newFixture(t, 4)
	tr := f.propose(t, []string{"a1"}, []string{"b1"})

	ctx := context.Background()
	bravo := f.team(t, teamBravo)
	require.NoError(t, bravo.AddPlayer(domain.RosterEntry{
		PlayerID: "a1", Position: "RB", Salary: decimal.NewFromInt(10),
	}, t0))
	require.NoError(t, f.repoManager.TeamRepository().SaveTeam(ctx, bravo))

	_, err := f.svc.RespondToTrade(ctx, tr.ID, bobID, domain.ResponseAccept, "")
	require.ErrorIs(t, err, domain.ErrPlayerAlreadyOnRoster)
	require.True(t, domain.IsRosterError(err))
	require.False(t, domain.IsInvalidTrade(err))

	stored, err := f.svc.GetTrade(ctx, tr.ID)
	require.NoError(t, err)
	require.Equal(t, domain.TradePending, stored.Status)
	require.Equal(t, bravo, f.team(t, teamBravo))
}

func TestSweepExpiredTrades(t *testing.T) {
	f := newFixture(t, 4)
	first := f.propose(t, []string{"a1"}, []string{"b1"})
	f.clock.Advance(24 * time.Hour)
	second := f.propose(t, []string{"a2"}, []string{"b2"})
	cancelled := f.propose(t, []string{"a1"}, []string{"b3"})

	f.pubsub.On("Publish", mock.Anything, mock.Anything).Return(nil)
	_, err := f.svc.CancelTrade(context.Background(), cancelled.ID, aliceID)
	require.NoError(t, err)

	// Only the first trade is overdue.
	f.clock.Advance(domain.DefaultTradeDeadline - time.Hour)
	expired, err := f.svc.SweepExpiredTrades(context.Background(), league)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	require.Equal(t, first.ID, expired[0].ID)
	require.Equal(t, domain.TradeExpired, expired[0].Status)

	expired, err = f.svc.SweepExpiredTrades(context.Background(), league)
	require.NoError(t, err)
	require.Empty(t, expired)

	stored, err := f.svc.GetTrade(context.Background(), first.ID)
	require.NoError(t, err)
	requireHistory(t, stored, domain.ActionCreated, domain.ActionExpired)

	stored, err = f.svc.GetTrade(context.Background(), second.ID)
	require.NoError(t, err)
	require.Equal(t, domain.TradePending, stored.Status)

	// Sweeping another league leaves these trades alone.
	f.clock.Advance(2 * time.Hour)
	expired, err = f.svc.SweepExpiredTrades(context.Background(), "league-2")
	require.NoError(t, err)
	require.Empty(t, expired)

	expired, err = f.svc.SweepExpiredTrades(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, expired, 1)
	require.Equal(t, second.ID, expired[0].ID)
}

func TestGetTradeExpiresOverdueTrade(t *testing.T) {
	f := newFixture(t, 4)
	tr := f.propose(t, []string{"a1"}, []string{"b1"})
	f.pubsub.On("Publish", pubsub.EventTradeExpired, mock.Anything).Return(nil).Once()

	f.clock.Set(tr.Deadline)
	stored, err := f.svc.GetTrade(context.Background(), tr.ID)
	require.NoError(t, err)
	require.Equal(t, domain.TradePending, stored.Status)

	f.clock.Advance(time.Nanosecond)
	stored, err = f.svc.GetTrade(context.Background(), tr.ID)
	require.NoError(t, err)
	require.Equal(t, domain.TradeExpired, stored.Status)

	f.assertPublished(t)
}

func TestListTrades(t *testing.T) {
	f := newFixture(t, 4)
	f.pubsub.On("Publish", mock.Anything, mock.Anything).Return(nil)

	ids := make([]string, 0)
	for i := 0; i < 5; i++ {
		tr := f.propose(t, []string{"a1"}, []string{"b1"})
		ids = append(ids, tr.ID)
		f.clock.Advance(time.Minute)
	}
	_, err := f.svc.CancelTrade(context.Background(), ids[0], aliceID)
	require.NoError(t, err)

	trades, total, err := f.svc.ListTrades(
		context.Background(), trade.ListTradesFilter{League: league}, domain.NewPage(1, 2),
	)
	require.NoError(t, err)
	require.Equal(t, 5, total)
	require.Len(t, trades, 2)
	require.Equal(t, ids[4], trades[0].ID)
	require.Equal(t, ids[3], trades[1].ID)

	trades, total, err = f.svc.ListTrades(
		context.Background(), trade.ListTradesFilter{League: league}, domain.NewPage(3, 2),
	)
	require.NoError(t, err)
	require.Equal(t, 5, total)
	require.Len(t, trades, 1)
	require.Equal(t, ids[0], trades[0].ID)

	trades, total, err = f.svc.ListTrades(context.Background(), trade.ListTradesFilter{
		League: league, Status: domain.TradeCancelled,
	}, domain.NewPage(1, 10))
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, ids[0], trades[0].ID)

	_, _, err = f.svc.ListTrades(context.Background(), trade.ListTradesFilter{}, domain.NewPage(1, 10))
	require.Error(t, err)

	_, _, err = f.svc.ListTrades(context.Background(), trade.ListTradesFilter{
		League: league, Status: "lost",
	}, domain.NewPage(1, 10))
	require.ErrorIs(t, err, domain.ErrInvalidTrade)

	teamTrades, err := f.svc.ListTeamTrades(context.Background(), teamBravo)
	require.NoError(t, err)
	require.Len(t, teamTrades, 5)

	teamTrades, err = f.svc.ListTeamTrades(context.Background(), teamElsewhere)
	require.NoError(t, err)
	require.Empty(t, teamTrades)

	_, err = f.svc.ListTeamTrades(context.Background(), "team-ghost")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConcurrentResponses(t *testing.T) {
	t.Parallel()

	badgerRepoManager, err := dbbadger.NewRepoManager("", nil)
	require.NoError(t, err)
	t.Cleanup(badgerRepoManager.Close)

	tests := []struct {
		name        string
		repoManager ports.RepoManager
	}{
		{"inmemory", inmemory.NewRepoManager()},
		{"badger", badgerRepoManager},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			testConcurrentResponses(t, newFixtureWithRepo(t, 4, tt.repoManager))
		})
	}
}

func testConcurrentResponses(t *testing.T, f *fixture) {
	f.pubsub.On("Publish", mock.Anything, mock.Anything).Return(nil)
	tr := f.propose(t, []string{"a1"}, []string{"b1"})

	actions := []func() (*domain.Trade, error){
		func() (*domain.Trade, error) {
			return f.svc.RespondToTrade(context.Background(), tr.ID, bobID, domain.ResponseAccept, "")
		},
		func() (*domain.Trade, error) {
			return f.svc.RespondToTrade(context.Background(), tr.ID, bobID, domain.ResponseReject, "")
		},
		func() (*domain.Trade, error) {
			return f.svc.CancelTrade(context.Background(), tr.ID, aliceID)
		},
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes []*domain.Trade
		failures  []error
	)
	for i := 0; i < 4; i++ {
		for _, action := range actions {
			wg.Add(1)
			go func(action func() (*domain.Trade, error)) {
				defer wg.Done()
				res, err := action()
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					failures = append(failures, err)
					return
				}
				successes = append(successes, res)
			}(action)
		}
	}
	wg.Wait()

	require.Len(t, successes, 1)
	require.Len(t, failures, 11)
	for _, err := range failures {
		require.ErrorIs(t, err, domain.ErrInvalidState)
	}

	stored, err := f.svc.GetTrade(context.Background(), tr.ID)
	require.NoError(t, err)
	require.Equal(t, successes[0].Status, stored.Status)
	require.Len(t, stored.History, 2)

	// Players moved at most once.
	alpha := f.team(t, teamAlpha)
	if stored.Status == domain.TradeAccepted {
		require.ElementsMatch(t, []string{"a2", "b1"}, rosterIDs(alpha))
	} else {
		require.ElementsMatch(t, []string{"a1", "a2"}, rosterIDs(alpha))
	}
}

func TestNewService(t *testing.T) {
	repoManager := inmemory.NewRepoManager()
	teams, err := roster.NewService(repoManager)
	require.NoError(t, err)
	players := directory.NewPlayerDirectory(repoManager.PlayerRepository())

	_, err = trade.NewService(nil, players, teams, nil, nil, 0)
	require.Error(t, err)
	_, err = trade.NewService(repoManager, nil, teams, nil, nil, 0)
	require.Error(t, err)
	_, err = trade.NewService(repoManager, players, nil, nil, nil, 0)
	require.Error(t, err)
	_, err = trade.NewService(repoManager, players, teams, nil, nil, -time.Hour)
	require.Error(t, err)

	svc, err := trade.NewService(repoManager, players, teams, nil, nil, 0)
	require.NoError(t, err)
	require.NotNil(t, svc)
}

type fixture struct {
	svc         *trade.Service
	repoManager ports.RepoManager
	clock       *fakeClock
	pubsub      *mockSecurePubSub
	events      *pubsub.Service
}

// newFixture seeds two teams of one league, alpha (a1, a2) owned by alice
// and bravo (b1, b2, b3) owned by bob, plus a team of another league. Every
// team holds at most maxRosterSize players.
func newFixture(t *testing.T, maxRosterSize int) *fixture {
	t.Helper()
	return newFixtureWithRepo(t, maxRosterSize, inmemory.NewRepoManager())
}

func newFixtureWithRepo(
	t *testing.T, maxRosterSize int, repoManager ports.RepoManager,
) *fixture {
	t.Helper()

	ctx := context.Background()
	clock := &fakeClock{now: t0}

	players := map[string]int64{
		"a1": 50, "a2": 20, "b1": 60, "b2": 40, "b3": 10, "e1": 30,
	}
	for id, value := range players {
		require.NoError(t, repoManager.PlayerRepository().SavePlayer(ctx, &domain.Player{
			ID:           id,
			Name:         "Player " + strings.ToUpper(id),
			Position:     "RB",
			Team:         "NFL",
			Sport:        domain.SportFootball,
			FantasyValue: decimal.NewFromInt(value),
			Salary:       decimal.NewFromInt(10),
		}))
	}

	teams := []struct {
		id, league, owner, name string
		players                 []string
	}{
		{teamAlpha, league, aliceID, "Alpha", []string{"a1", "a2"}},
		{teamBravo, league, bobID, "Bravo", []string{"b1", "b2", "b3"}},
		{teamElsewhere, "league-2", eveID, "Elsewhere", []string{"e1"}},
	}
	for _, tm := range teams {
		team, err := domain.NewTeam(tm.id, tm.league, tm.owner, tm.name, maxRosterSize, decimal.Zero)
		require.NoError(t, err)
		for i, id := range tm.players {
			require.NoError(t, team.AddPlayer(domain.RosterEntry{
				PlayerID:        id,
				Position:        "RB",
				IsStarter:       i == 0,
				AcquisitionType: domain.AcquisitionDraft,
				Salary:          decimal.NewFromInt(10),
			}, t0.Add(-time.Hour)))
		}
		require.NoError(t, repoManager.TeamRepository().SaveTeam(ctx, team))
	}

	teamDirectory, err := roster.NewService(repoManager)
	require.NoError(t, err)
	ps := &mockSecurePubSub{}
	events := pubsub.NewService(ps)

	svc, err := trade.NewService(
		repoManager,
		directory.NewPlayerDirectory(repoManager.PlayerRepository()),
		teamDirectory,
		events,
		clock,
		domain.DefaultTradeDeadline,
	)
	require.NoError(t, err)

	t.Cleanup(events.Wait)

	return &fixture{svc, repoManager, clock, ps, events}
}

// assertPublished waits for pending deliveries and checks the expected
// events went out.
func (f *fixture) assertPublished(t *testing.T) {
	t.Helper()
	f.events.Wait()
	f.pubsub.AssertExpectations(t)
}

func (f *fixture) request(offered, requested []string) trade.ProposeTradeRequest {
	return trade.ProposeTradeRequest{
		League:             league,
		InitiatorTeamID:    teamAlpha,
		RecipientTeamID:    teamBravo,
		OfferedPlayerIDs:   offered,
		RequestedPlayerIDs: requested,
		Message:            "deal?",
	}
}

func (f *fixture) propose(t *testing.T, offered, requested []string) *domain.Trade {
	t.Helper()
	f.pubsub.On("Publish", pubsub.EventTradeProposed, mock.Anything).Return(nil).Once()
	tr, err := f.svc.ProposeTrade(context.Background(), aliceID, f.request(offered, requested))
	require.NoError(t, err)
	return tr
}

func (f *fixture) team(t *testing.T, id string) *domain.Team {
	t.Helper()
	team, err := f.repoManager.TeamRepository().GetTeam(context.Background(), id)
	require.NoError(t, err)
	return team
}

func rosterIDs(team *domain.Team) []string {
	ids := make([]string, 0, len(team.Roster))
	for _, e := range team.Roster {
		ids = append(ids, e.PlayerID)
	}
	return ids
}

func requireHistory(t *testing.T, tr *domain.Trade, actions ...domain.TradeAction) {
	t.Helper()
	got := make([]domain.TradeAction, 0, len(tr.History))
	for _, h := range tr.History {
		got = append(got, h.Action)
	}
	require.Equal(t, actions, got)
}

type fakeClock struct {
	lock sync.Mutex
	now  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.now = c.now.Add(d)
}

func (c *fakeClock) Set(now time.Time) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.now = now
}

type mockSecurePubSub struct {
	mock.Mock
}

func (m *mockSecurePubSub) Store() ports.PubSubStore {
	return nil
}

func (m *mockSecurePubSub) Subscribe(topic, endpoint, secret string) (string, error) {
	args := m.Called(topic, endpoint, secret)
	return args.String(0), args.Error(1)
}

func (m *mockSecurePubSub) Unsubscribe(topic, id string) error {
	args := m.Called(topic, id)
	return args.Error(0)
}

func (m *mockSecurePubSub) ListSubscriptionsForTopic(topic string) []ports.Subscription {
	args := m.Called(topic)
	if a := args.Get(0); a != nil {
		return a.([]ports.Subscription)
	}
	return nil
}

func (m *mockSecurePubSub) Publish(topic string, message string) error {
	args := m.Called(topic, message)
	return args.Error(0)
}
