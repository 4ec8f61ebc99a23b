package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/app"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/config"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/application/seed"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/ports"
	pubsubinfra "github.com/Ayushgangwar02/fantasy-Sports-app/internal/infrastructure/pubsub"
	httpinterface "github.com/Ayushgangwar02/fantasy-Sports-app/internal/interfaces/http"
	"github.com/Ayushgangwar02/fantasy-Sports-app/pkg/logger"
	"github.com/Ayushgangwar02/fantasy-Sports-app/pkg/stats"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("failed to load .env file")
	}

	if err := config.InitConfig(); err != nil {
		log.Fatal(err)
	}

	closeLogger, err := logger.Init(logger.Config{
		Level:      config.GetInt(config.LogLevelKey),
		OutputFile: config.GetString(config.LogFileKey),
	})
	if err != nil {
		log.WithError(err).Fatal("failed to init logger")
	}
	defer closeLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if config.GetBool(config.EnableProfilerKey) {
		interval := time.Duration(config.GetInt(config.StatsIntervalKey)) * time.Second
		stats.EnableMemoryStatistics(
			ctx, interval, filepath.Join(config.GetDatadir(), config.ProfilerLocation),
		)
	}

	pubsubStore, err := newPubSubStore()
	if err != nil {
		log.WithError(err).Fatal("failed to open webhooks store")
	}
	securePubSub, err := pubsubinfra.NewService(
		pubsubStore, config.GetInt(config.WebhookRateLimitKey),
	)
	if err != nil {
		log.WithError(err).Fatal("failed to init webhooks publisher")
	}

	appConfig := &app.Config{
		DBType:          config.GetString(config.DBTypeKey),
		DBConfig:        dbConfig(),
		SecurePubSub:    securePubSub,
		TradeDeadline:   config.GetDuration(config.TradeDeadlineKey),
		TrendsWindow:    config.GetDuration(config.TrendsWindowKey),
		TrendsLimit:     config.GetInt(config.TrendsLimitKey),
		PlayerCacheSize: config.GetInt(config.PlayerCacheSizeKey),
		PlayerCacheTTL:  config.GetDuration(config.PlayerCacheTTLKey),
	}
	if err := appConfig.Validate(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}
	defer appConfig.Close()

	if seedFile := config.GetString(config.SeedFileKey); seedFile != "" {
		if err := loadSeed(ctx, appConfig.SeedService(), seedFile); err != nil {
			log.WithError(err).Fatal("failed to load seed file")
		}
	}

	svc, err := httpinterface.NewService(httpinterface.ServiceOpts{
		Port:         config.GetInt(config.ListeningPortKey),
		AuthSecret:   config.GetString(config.AuthSecretKey),
		NoAuth:       config.GetBool(config.NoAuthKey),
		TradeSvc:     appConfig.TradeService(),
		AnalyticsSvc: appConfig.AnalyticsService(),
		TeamSvc:      appConfig.RosterService(),
		WebhookSvc:   appConfig.PubSubService(),
	})
	if err != nil {
		log.WithError(err).Fatal("failed to init http interface")
	}

	if err := svc.Start(); err != nil {
		log.WithError(err).Fatal("failed to start daemon")
	}
	defer svc.Stop()

	if interval := config.GetDuration(config.SweepIntervalKey); interval > 0 {
		go sweepPeriodically(ctx, appConfig.TradeService(), interval)
	}

	log.Info("trade desk daemon started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)
	<-sigChan

	log.Info("shutting down daemon")
}

func dbConfig() interface{} {
	switch config.GetString(config.DBTypeKey) {
	case app.DBBadger:
		return config.GetDbDir()
	case app.DBPostgres:
		return config.GetString(config.PgConnectAddrKey)
	case app.DBMongo:
		return app.MongoConfig{
			URI:      config.GetString(config.MongoURIKey),
			Database: config.GetString(config.MongoDBKey),
		}
	default:
		return nil
	}
}

// newPubSubStore persists webhooks in badger, unless the whole daemon runs
// in memory.
func newPubSubStore() (ports.PubSubStore, error) {
	if config.GetString(config.DBTypeKey) == app.DBInmemory {
		return pubsubinfra.NewInmemoryStore(), nil
	}
	return pubsubinfra.NewBadgerStore(config.GetDbDir(), nil)
}

func loadSeed(ctx context.Context, svc *seed.Service, path string) error {
	fixture, err := seed.ReadFixture(path)
	if err != nil {
		return err
	}
	result, err := svc.Load(ctx, fixture)
	if err != nil {
		return err
	}
	log.Infof("seeded %d players and %d teams from %s", result.Players, result.Teams, path)
	return nil
}
