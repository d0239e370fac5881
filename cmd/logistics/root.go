package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/afjrotc/logistics/internal/config"
	"github.com/afjrotc/logistics/internal/db"
	"github.com/afjrotc/logistics/internal/kv"
	"github.com/afjrotc/logistics/internal/logging"
)

// app is the state shared by every command: configuration, logger and the
// resources to release on exit.
type app struct {
	v       *viper.Viper
	cfg     config.Config
	log     *zap.Logger
	closers []func()
}

func newApp() *app {
	return &app{v: viper.New(), log: zap.NewNop()}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "logistics",
		Short:         "AFJROTC logistics inventory",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.setup()
		},
	}

	flags := root.PersistentFlags()
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log encoding (console or json)")
	flags.String("log-file", "", "also append logs to this file")
	flags.String("storage", config.StorageSQLite, "storage driver (sqlite, postgres, s3, memory)")
	flags.String("dsn", "logistics.sqlite3", "database path or connection string")
	flags.String("s3-bucket", "", "S3 bucket for s3 storage")
	flags.String("s3-region", "us-east-1", "S3 region")
	flags.String("s3-endpoint", "", "S3 endpoint override, e.g. a MinIO URL")
	flags.String("s3-prefix", "", "prefix for every object key")
	flags.Bool("s3-path-style", false, "use path-style S3 addressing")

	bindFlags(a.v, flags, map[string]string{
		"log.level":             "log-level",
		"log.format":            "log-format",
		"log.file":              "log-file",
		"storage.driver":        "storage",
		"storage.dsn":           "dsn",
		"storage.s3.bucket":     "s3-bucket",
		"storage.s3.region":     "s3-region",
		"storage.s3.endpoint":   "s3-endpoint",
		"storage.s3.prefix":     "s3-prefix",
		"storage.s3.path_style": "s3-path-style",
	})

	root.AddCommand(newServeCmd(a), newUsersCmd(a), newSeedCmd(a))
	return root
}

// bindFlags binds each config key to the flag of the given name.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", name, err))
		}
	}
}

// setup loads the configuration and builds the logger.
func (a *app) setup() error {
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logger
	a.closers = append(a.closers, closeLog)
	zap.ReplaceGlobals(logger)
	return nil
}

// close releases resources in reverse order of acquisition. It is safe to
// call more than once.
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// openStore opens the configured key-value backend. When ops is non-nil,
// every operation is counted on it.
func (a *app) openStore(ctx context.Context, ops *prometheus.CounterVec) (kv.Store, error) {
	s, err := a.openBackend(ctx)
	if err != nil {
		return nil, err
	}
	if ops != nil {
		return kv.Instrument(s, ops), nil
	}
	return s, nil
}

func (a *app) openBackend(ctx context.Context) (kv.Store, error) {
	storage := a.cfg.Storage

	switch storage.Driver {
	case config.StorageSQLite, config.StoragePostgres:
		database, err := db.Open(storage.Driver, storage.DSN)
		if err != nil {
			return nil, err
		}
		if err := db.EnsureSchema(database); err != nil {
			database.Close()
			return nil, fmt.Errorf("ensuring database schema: %w", err)
		}
		a.closers = append(a.closers, func() { database.Close() })
		a.log.Info("database ready", zap.String("driver", storage.Driver))
		return kv.NewSQL(database, db.Dialect(storage.Driver)), nil

	case config.StorageS3:
		s, err := kv.NewS3(ctx, kv.S3Config{
			Bucket:    storage.S3.Bucket,
			Region:    storage.S3.Region,
			Endpoint:  storage.S3.Endpoint,
			Prefix:    storage.S3.Prefix,
			PathStyle: storage.S3.PathStyle,
		})
		if err != nil {
			return nil, err
		}
		a.log.Info("object storage ready", zap.String("bucket", storage.S3.Bucket))
		return s, nil

	case config.StorageMemory:
		a.log.Warn("using in-memory storage, nothing survives a restart")
		return kv.NewMemory(), nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", storage.Driver)
	}
}
