package db_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/domain"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/ports"
	dbbadger "github.com/Ayushgangwar02/fantasy-Sports-app/internal/infrastructure/storage/db/badger"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/infrastructure/storage/db/inmemory"
	mongodb "github.com/Ayushgangwar02/fantasy-Sports-app/internal/infrastructure/storage/db/mongo"
	postgresdb "github.com/Ayushgangwar02/fantasy-Sports-app/internal/infrastructure/storage/db/pg"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/thanhpk/randstr"
)

const (
	pgAddrEnv   = "TRADEDESK_TEST_PG_ADDR"
	mongoURIEnv = "TRADEDESK_TEST_MONGO_URI"
)

type repoManager struct {
	Name      string
	DBManager ports.RepoManager
}

func (r repoManager) read(query func(context.Context) (interface{}, error)) (interface{}, error) {
	return r.DBManager.RunTransaction(context.Background(), true, query)
}

func (r repoManager) write(query func(context.Context) (interface{}, error)) (interface{}, error) {
	return r.DBManager.RunTransaction(context.Background(), false, query)
}

// createRepoManagers returns every RepoManager to run the suite against.
// Postgres and mongo ones are included only if the respective env var
// points to a running instance.
func createRepoManagers(t *testing.T) []repoManager {
	badgerDBManager, err := dbbadger.NewRepoManager("", nil)
	require.NoError(t, err)

	managers := []repoManager{
		{
			Name:      "badger",
			DBManager: badgerDBManager,
		},
		{
			Name:      "inmemory",
			DBManager: inmemory.NewRepoManager(),
		},
	}

	if addr := os.Getenv(pgAddrEnv); addr != "" {
		pgDBManager, err := postgresdb.NewRepoManager(addr)
		require.NoError(t, err)
		managers = append(managers, repoManager{"postgres", pgDBManager})
	}
	if uri := os.Getenv(mongoURIEnv); uri != "" {
		mongoDBManager, err := mongodb.NewRepoManager(uri, "tradedesk-test-"+randstr.Hex(4))
		require.NoError(t, err)
		managers = append(managers, repoManager{"mongo", mongoDBManager})
	}

	t.Cleanup(func() {
		for _, m := range managers {
			m.DBManager.Close()
		}
	})
	return managers
}

// makeRandomTrade returns a pending trade of a fresh league, created at the
// given time truncated to milliseconds, the precision every store keeps.
func makeRandomTrade(league string, createdAt time.Time) *domain.Trade {
	trade, err := domain.NewTrade(domain.TradeProposal{
		League:     league,
		ProposerID: randstr.Hex(8),
		Initiator: domain.TradeParty{
			UserID: randstr.Hex(8), TeamID: randstr.Hex(8), TeamName: randstr.String(10),
		},
		Recipient: domain.TradeParty{
			UserID: randstr.Hex(8), TeamID: randstr.Hex(8), TeamName: randstr.String(10),
		},
		OfferedPlayers:   []domain.TradedPlayer{randomPlayer()},
		RequestedPlayers: []domain.TradedPlayer{randomPlayer(), randomPlayer()},
	}, createdAt.Truncate(time.Millisecond), domain.DefaultTradeDeadline)
	if err != nil {
		panic(err)
	}
	return trade
}

func randomPlayer() domain.TradedPlayer {
	return domain.TradedPlayer{
		PlayerID:     randstr.Hex(8),
		PlayerName:   randstr.String(12),
		Position:     "WR",
		Team:         randstr.String(3),
		FantasyValue: decimal.NewFromFloat(12.5),
	}
}

func makeRandomTeam(league string, playerIDs ...string) *domain.Team {
	team, err := domain.NewTeam(
		randstr.Hex(8), league, randstr.Hex(8), randstr.String(10), 4, decimal.Zero,
	)
	if err != nil {
		panic(err)
	}
	for _, id := range playerIDs {
		if err := team.AddPlayer(domain.RosterEntry{
			PlayerID:        id,
			Position:        "QB",
			AcquisitionType: domain.AcquisitionDraft,
			Salary:          decimal.NewFromInt(15),
		}, time.Now().Truncate(time.Millisecond)); err != nil {
			panic(err)
		}
	}
	return team
}

func randomLeague() string {
	return "league-" + randstr.Hex(6)
}
