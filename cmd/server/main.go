package main

import (
	"context"
	"os"

	"schemata/internal/api"
	"schemata/internal/config"
	"schemata/internal/database"
	"schemata/internal/logging"
	"schemata/internal/meta"
	"schemata/internal/models"

	"github.com/alecthomas/kong"
)

type cli struct {
	Port     string `help:"HTTP port." default:"${port}"`
	DBType   string `name:"db-type" help:"Database vendor (postgres, sqlite)." default:"${dbType}"`
	DB       string `name:"db" help:"Database connection string (empty = none)." default:"${dbUrl}"`
	LogLevel string `name:"log-level" help:"debug, info, warn or error." default:"${logLevel}"`
	SeqURL   string `name:"seq-url" help:"Seq server URL (empty = console only)." default:"${seqUrl}"`
}

func main() {
	configPath := os.Getenv("SCHEMATA_CONFIG")
	if configPath == "" {
		configPath = "schemata.yaml"
	}
	cfg, err := config.LoadWithPath(configPath)
	if err != nil {
		// the logger is not configured yet
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	var flags cli
	kong.Parse(&flags,
		kong.Name("schemata"),
		kong.Description("Serves storage metadata derived from record types."),
		kong.Vars(cfg.Vars()),
	)

	logger, closeFn := logging.Setup(flags.LogLevel, flags.SeqURL)
	defer closeFn()

	cache := meta.New(meta.WithLogger(logger))

	var db *database.Database
	if flags.DB != "" {
		dbType, err := database.ParseType(flags.DBType)
		if err != nil {
			logger.Error("invalid database type", "error", err)
			closeFn()
			os.Exit(1)
		}
		h, err := database.Open(context.Background(), dbType, flags.DB)
		if err != nil {
			logger.Error("failed to open database", "type", dbType, "error", err)
			closeFn()
			os.Exit(1)
		}
		defer h.Close()
		db = database.New(dbType, h)
		logger.Info("database connected", "type", db.Type, "name", db.Name, "owner", db.Owner)
	}

	storage := api.NewStorage(cache, models.All(), db)
	logger.Info("tables registered", "tables", storage.Tables())

	logger.Info("starting server", "port", flags.Port)
	if err := api.RunServer(":"+flags.Port, storage, logger); err != nil {
		logger.Error("server stopped", "error", err)
		closeFn()
		os.Exit(1)
	}
}
