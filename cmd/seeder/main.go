package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/app"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/config"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/application/seed"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	fileFlag     = "file"
	dbTypeFlag   = "db-type"
	datadirFlag  = "datadir"
	pgAddrFlag   = "pg-connect-addr"
	mongoURIFlag = "mongo-uri"
	mongoDBFlag  = "mongo-db"
	dryRunFlag   = "dry-run"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	vip = viper.New()

	cmd = &cobra.Command{
		Use:   "seeder",
		Short: "seeder loads players and teams into the tradedesk store",
		Long: "seeder reads a YAML file of players and teams and stores them in the " +
			"database of the trade desk daemon in a single transaction",
		Version:       formatVersion(),
		RunE:          action,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	flags := cmd.Flags()
	flags.StringP(fileFlag, "f", "", "the YAML seed file")
	flags.String(dbTypeFlag, app.DBBadger, "the database type: badger, postgres or mongo")
	flags.String(datadirFlag, config.DefaultDatadir, "the datadir of the daemon, for badger")
	flags.String(pgAddrFlag, "", "the postgres connection string")
	flags.String(mongoURIFlag, "", "the mongodb connection uri")
	flags.String(mongoDBFlag, "tradedesk", "the mongodb database")
	flags.Bool(dryRunFlag, false, "validate the seed file against an in-memory store only")
	_ = cmd.MarkFlagRequired(fileFlag)

	// Flags not given fall back to the env vars of the daemon.
	vip.SetEnvPrefix("TRADEDESK")
	_ = vip.BindPFlags(flags)
	_ = vip.BindEnv(dbTypeFlag, "TRADEDESK_"+config.DBTypeKey)
	_ = vip.BindEnv(datadirFlag, "TRADEDESK_"+config.DatadirKey)
	_ = vip.BindEnv(pgAddrFlag, "TRADEDESK_"+config.PgConnectAddrKey)
	_ = vip.BindEnv(mongoURIFlag, "TRADEDESK_"+config.MongoURIKey)
	_ = vip.BindEnv(mongoDBFlag, "TRADEDESK_"+config.MongoDBKey)
}

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func action(_ *cobra.Command, _ []string) (err error) {
	fixture, err := seed.ReadFixture(vip.GetString(fileFlag))
	if err != nil {
		return err
	}

	appConfig, err := newAppConfig()
	if err != nil {
		return err
	}
	if err := appConfig.Validate(); err != nil {
		return err
	}
	defer appConfig.Close()

	start := time.Now()
	log.Infof("seeding %s store...", appConfig.DBType)

	result, err := appConfig.SeedService().Load(context.Background(), fixture)
	if err != nil {
		return err
	}

	log.Infof(
		"seeded %d players and %d teams in %fs",
		result.Players, result.Teams, time.Since(start).Seconds(),
	)
	return nil
}

func newAppConfig() (*app.Config, error) {
	if vip.GetBool(dryRunFlag) {
		return &app.Config{DBType: app.DBInmemory}, nil
	}

	dbType := vip.GetString(dbTypeFlag)
	switch dbType {
	case app.DBBadger:
		return &app.Config{
			DBType:   dbType,
			DBConfig: filepath.Join(vip.GetString(datadirFlag), config.DbLocation),
		}, nil
	case app.DBPostgres:
		return &app.Config{DBType: dbType, DBConfig: vip.GetString(pgAddrFlag)}, nil
	case app.DBMongo:
		return &app.Config{
			DBType: dbType,
			DBConfig: app.MongoConfig{
				URI:      vip.GetString(mongoURIFlag),
				Database: vip.GetString(mongoDBFlag),
			},
		}, nil
	default:
		return nil, fmt.Errorf("db type %s cannot be seeded", dbType)
	}
}

func formatVersion() string {
	return fmt.Sprintf(
		"Version: %s\nCommit: %s\nDate: %s",
		version, commit, date,
	)
}
