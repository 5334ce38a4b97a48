package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	filestore "github.com/bnema/slotbot/internal/adapters/document/file"
	redisstore "github.com/bnema/slotbot/internal/adapters/document/redis"
	ledgerrender "github.com/bnema/slotbot/internal/adapters/render/ledger"
	"github.com/bnema/slotbot/internal/adapters/reply"
	tomlrepo "github.com/bnema/slotbot/internal/adapters/repo/toml"
	"github.com/bnema/slotbot/internal/application"
	"github.com/bnema/slotbot/internal/domain"
	"github.com/bnema/slotbot/internal/observability"
	"github.com/bnema/slotbot/internal/ports"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".slotbot"
	envPrefix  = "SLOTBOT"

	documentsBackendKey     = "documents.backend"
	collectionWindowKey     = "session.collection_window"
	maxWriteAttemptsKey     = "session.max_write_attempts"
	retryInitialIntervalKey = "session.retry_initial_interval"
	logLevelKey             = "log.level"

	backendFile  = "file"
	backendRedis = "redis"
)

type app struct {
	logger       zerolog.Logger
	ledgers      *application.LedgerService
	events       *application.EventService
	gate         ports.AccessGate
	batch        application.BatchConfig
	ledgerRender func(domain.Ledger, ledgerrender.RenderOptions) string
	now          func() time.Time
	closers      []io.Closer
}

func wireApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := observability.InitLogger("slotbot", cfg.GetString(logLevelKey), os.Stderr)
	if err != nil {
		return nil, err
	}

	docs, closers, err := wireDocumentStore(cfg)
	if err != nil {
		return nil, err
	}

	settings, err := tomlrepo.NewRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire settings repository: %w", err)
	}

	clock := ports.SystemClock{}
	retry := application.RetryPolicy{
		MaxAttempts:     cfg.GetInt(maxWriteAttemptsKey),
		InitialInterval: cfg.GetDuration(retryInitialIntervalKey),
	}

	return &app{
		logger:       logger,
		ledgers:      application.NewLedgerService(docs, retry),
		events:       application.NewEventService(docs, settings, clock),
		gate:         application.NewRoleGate(settings, logger),
		batch:        application.BatchConfig{Window: cfg.GetDuration(collectionWindowKey), Clock: clock},
		ledgerRender: ledgerrender.Render,
		now:          time.Now,
		closers:      closers,
	}, nil
}

func loadConfig() (*viper.Viper, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg := viper.New()
	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDir))
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault(documentsBackendKey, backendFile)
	cfg.SetDefault(collectionWindowKey, application.DefaultCollectionWindow)
	cfg.SetDefault(maxWriteAttemptsKey, application.DefaultRetryPolicy().MaxAttempts)
	cfg.SetDefault(retryInitialIntervalKey, application.DefaultRetryPolicy().InitialInterval)
	cfg.SetDefault(logLevelKey, "info")

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return cfg, nil
}

func wireDocumentStore(cfg *viper.Viper) (ports.DocumentStore, []io.Closer, error) {
	switch backend := strings.ToLower(strings.TrimSpace(cfg.GetString(documentsBackendKey))); backend {
	case backendFile:
		store, err := filestore.NewStore(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("wire file document store: %w", err)
		}
		return store, nil, nil
	case backendRedis:
		client := redisstore.NewClient(cfg)
		return redisstore.NewStore(client, cfg), []io.Closer{client}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported documents backend %q", backend)
	}
}

func (a *app) dispatcher(chooser ports.Chooser, out io.Writer) *application.Dispatcher {
	return application.NewDispatcher(application.DispatcherDeps{
		Ledgers: a.ledgers,
		Events:  a.events,
		Gate:    a.gate,
		Chooser: chooser,
		Replier: reply.NewWriter(out),
		Batch:   a.batch,
		Logger:  a.logger,
	})
}

func (a *app) Close() error {
	var errs []error
	for _, closer := range a.closers {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
