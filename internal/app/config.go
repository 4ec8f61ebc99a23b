package app

import (
	"fmt"
	"time"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/application/analytics"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/application/pubsub"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/application/roster"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/application/seed"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/application/trade"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/ports"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/infrastructure/directory"
	dbbadger "github.com/Ayushgangwar02/fantasy-Sports-app/internal/infrastructure/storage/db/badger"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/infrastructure/storage/db/inmemory"
	mongodb "github.com/Ayushgangwar02/fantasy-Sports-app/internal/infrastructure/storage/db/mongo"
	postgresdb "github.com/Ayushgangwar02/fantasy-Sports-app/internal/infrastructure/storage/db/pg"
	log "github.com/sirupsen/logrus"
)

const (
	DBBadger   = "badger"
	DBInmemory = "inmemory"
	DBPostgres = "postgres"
	DBMongo    = "mongo"
)

var (
	SupportedDBType = map[string]struct{}{
		DBBadger:   {},
		DBInmemory: {},
		DBPostgres: {},
		DBMongo:    {},
	}
)

// MongoConfig is the DBConfig of the mongo db type.
type MongoConfig struct {
	URI      string
	Database string
}

// Config builds, lazily and only once, every service of the trade desk.
// DBConfig is the datadir for badger, the connection string for postgres, a
// MongoConfig for mongo and nothing for inmemory.
type Config struct {
	DBType   string
	DBConfig interface{}

	SecurePubSub    ports.SecurePubSub
	Clock           ports.Clock
	TradeDeadline   time.Duration
	TrendsWindow    time.Duration
	TrendsLimit     int
	PlayerCacheSize int
	PlayerCacheTTL  time.Duration

	repo      ports.RepoManager
	pubsub    *pubsub.Service
	roster    *roster.Service
	trade     *trade.Service
	analytics *analytics.Service
	seed      *seed.Service
}

func (c *Config) Validate() error {
	if _, ok := SupportedDBType[c.DBType]; !ok {
		return fmt.Errorf("unsupported db type %s", c.DBType)
	}
	if c.TradeDeadline < 0 {
		return fmt.Errorf("trade deadline must not be negative")
	}
	if _, err := c.repoManager(); err != nil {
		return err
	}
	if _, err := c.tradeService(); err != nil {
		return err
	}
	if _, err := c.analyticsService(); err != nil {
		return err
	}
	return nil
}

func (c *Config) RepoManager() ports.RepoManager {
	svc, _ := c.repoManager()
	return svc
}

func (c *Config) PubSubService() *pubsub.Service {
	return c.pubsubService()
}

func (c *Config) RosterService() *roster.Service {
	svc, _ := c.rosterService()
	return svc
}

func (c *Config) TradeService() *trade.Service {
	svc, _ := c.tradeService()
	return svc
}

func (c *Config) AnalyticsService() *analytics.Service {
	svc, _ := c.analyticsService()
	return svc
}

func (c *Config) SeedService() *seed.Service {
	svc, _ := c.seedService()
	return svc
}

// Close releases the db and pubsub store connections.
func (c *Config) Close() {
	if c.pubsub != nil {
		c.pubsub.Close()
	}
	if c.repo != nil {
		c.repo.Close()
	}
}

func (c *Config) repoManager() (ports.RepoManager, error) {
	if c.repo != nil {
		return c.repo, nil
	}

	var (
		repoManager ports.RepoManager
		err         error
	)
	switch c.DBType {
	case DBBadger:
		datadir, _ := c.DBConfig.(string)
		repoManager, err = dbbadger.NewRepoManager(datadir, log.New())
	case DBInmemory:
		repoManager = inmemory.NewRepoManager()
	case DBPostgres:
		connString, ok := c.DBConfig.(string)
		if !ok || connString == "" {
			return nil, fmt.Errorf("missing postgres connection string")
		}
		repoManager, err = postgresdb.NewRepoManager(connString)
	case DBMongo:
		cfg, ok := c.DBConfig.(MongoConfig)
		if !ok || cfg.URI == "" {
			return nil, fmt.Errorf("missing mongodb config")
		}
		repoManager, err = mongodb.NewRepoManager(cfg.URI, cfg.Database)
	default:
		return nil, fmt.Errorf("unsupported db type %s", c.DBType)
	}
	if err != nil {
		return nil, err
	}

	c.repo = repoManager
	return c.repo, nil
}

func (c *Config) pubsubService() *pubsub.Service {
	if c.pubsub == nil && c.SecurePubSub != nil {
		c.pubsub = pubsub.NewService(c.SecurePubSub)
	}
	return c.pubsub
}

func (c *Config) rosterService() (*roster.Service, error) {
	if c.roster == nil {
		repo, err := c.repoManager()
		if err != nil {
			return nil, err
		}
		svc, err := roster.NewService(repo)
		if err != nil {
			return nil, err
		}
		c.roster = svc
	}
	return c.roster, nil
}

func (c *Config) tradeService() (*trade.Service, error) {
	if c.trade == nil {
		repo, err := c.repoManager()
		if err != nil {
			return nil, err
		}
		teams, err := c.rosterService()
		if err != nil {
			return nil, err
		}
		players, err := directory.NewCachedPlayerDirectory(
			directory.NewPlayerDirectory(repo.PlayerRepository()),
			c.PlayerCacheSize, c.PlayerCacheTTL, c.Clock,
		)
		if err != nil {
			return nil, err
		}
		svc, err := trade.NewService(
			repo, players, teams, c.pubsubService(), c.Clock, c.TradeDeadline,
		)
		if err != nil {
			return nil, err
		}
		c.trade = svc
	}
	return c.trade, nil
}

func (c *Config) analyticsService() (*analytics.Service, error) {
	if c.analytics == nil {
		repo, err := c.repoManager()
		if err != nil {
			return nil, err
		}
		svc, err := analytics.NewService(repo, c.Clock, c.TrendsWindow, c.TrendsLimit)
		if err != nil {
			return nil, err
		}
		c.analytics = svc
	}
	return c.analytics, nil
}

func (c *Config) seedService() (*seed.Service, error) {
	if c.seed == nil {
		repo, err := c.repoManager()
		if err != nil {
			return nil, err
		}
		svc, err := seed.NewService(repo, c.Clock)
		if err != nil {
			return nil, err
		}
		c.seed = svc
	}
	return c.seed, nil
}
