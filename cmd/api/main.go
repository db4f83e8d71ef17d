package main

import (
	"errors"
	"expvar"
	"fmt"
	"io/fs"
	"log"
	"os"
	"runtime"

	"qna/internal/db"
	"qna/internal/domain/storage"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a new zap logger with color.
func NewLogger(env string) (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)

	level := zapcore.InfoLevel
	if env == "development" {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(consoleEncoder, zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout)), level)

	return zap.New(core).Sugar(), nil
}

// openStorage connects to the configured database and brings its schema up to date.
func openStorage(cfg dbConfig, logger *zap.SugaredLogger) (*storage.Container, error) {
	switch cfg.Driver {
	case driverPostgres:
		if err := db.MigratePostgres(cfg.Addr); err != nil {
			return nil, err
		}
		pool, err := db.New(cfg.Addr, cfg.MaxConns, cfg.MaxIdleTime)
		if err != nil {
			return nil, err
		}
		logger.Infow("database connection pool established", "driver", cfg.Driver)
		return storage.NewContainer(pool), nil

	case driverSQLite:
		sqlDB, err := db.NewSQLite(cfg.Path)
		if err != nil {
			return nil, err
		}
		if err := db.MigrateSQLite(sqlDB); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		logger.Infow("database opened", "driver", cfg.Driver, "path", cfg.Path)
		return storage.NewSQLiteContainer(sqlDB), nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

var version = "1.0.0"

//	@title			QnA API
//	@description	Ask questions, answer them, vote on the answers.

//	@license.name	MIT

//	@BasePath	/api

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := NewLogger(cfg.Env)
	if err != nil {
		fmt.Println("Error creating logger:", err)
		return
	}
	defer logger.Sync()

	store, err := openStorage(cfg.DB, logger)
	if err != nil {
		logger.Fatal(err)
	}
	defer store.Close()

	app := &application{
		config: cfg,
		logger: logger,
		store:  store,
	}

	// Metrics collected at http://localhost:8000/debug/vars
	expvar.NewString("version").Set(version)
	expvar.Publish("database", expvar.Func(store.Stats))
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.mount()

	if err := app.run(mux); err != nil {
		logger.Errorw("server stopped with error", "error", err)
	}
}
