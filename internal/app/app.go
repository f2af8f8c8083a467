package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"docqa/config"
	"docqa/internal/adapter/answer"
	"docqa/internal/adapter/cache"
	"docqa/internal/adapter/chunker"
	"docqa/internal/adapter/embedding"
	"docqa/internal/adapter/extractor"
	"docqa/internal/adapter/memstore"
	"docqa/internal/adapter/retriever"
	"docqa/internal/adapter/store"
	"docqa/internal/adapter/vectorindex"
	"docqa/internal/port"
	"docqa/internal/usecase"
)

// App holds the services shared by the HTTP server and the CLI. The
// embedder and extractor are built once and reused for all requests.
type App struct {
	Docs    *usecase.DocumentService
	Answers *usecase.AskUseCase

	bolt *store.BoltStore
}

// Open wires the services for cfg. The "memory" storage backend keeps
// everything in process and is lost on exit.
func Open(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Storage.Backend == config.BackendMemory {
		return wire(memstore.NewMemoryStore(), cfg, logger)
	}

	if err := config.EnsureDataDir(cfg.Storage.DataDir); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	st, err := store.NewBoltStore(config.DBPath(cfg.Storage.DataDir))
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	if err := checkSchema(st, cfg, logger); err != nil {
		st.Close()
		return nil, err
	}

	a, err := wire(st, cfg, logger)
	if err != nil {
		st.Close()
		return nil, err
	}
	a.bolt = st
	return a, nil
}

// checkSchema upgrades an old schema in place. A changed index
// configuration is only reported; indexes are rebuilt by reindex --all.
func checkSchema(st *store.BoltStore, cfg *config.Config, logger *zap.Logger) error {
	result, err := st.CheckMigration(cfg)
	if err != nil {
		return fmt.Errorf("failed to check migration: %w", err)
	}

	switch {
	case result.NeedsRebuild:
		logger.Warn("stored indexes may be built with different settings; run `docqa reindex --all`",
			zap.String("reason", result.Reason))
	case result.NeedsMigration:
		logger.Info("running schema migration", zap.String("reason", result.Reason))
		if err := st.Migrate(cfg); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

func wire(st port.ArtifactStore, cfg *config.Config, logger *zap.Logger) (*App, error) {
	embedder, err := embedding.FromConfig(cfg.Embedding)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	metric, err := vectorindex.ParseMetric(cfg.Retrieve.Metric)
	if err != nil {
		return nil, err
	}

	mode, err := answer.ParseMode(cfg.Answer.Mode)
	if err != nil {
		return nil, err
	}

	diversifier, err := retriever.NewDiversifier(cfg.Retrieve.Diversifier, cfg.Retrieve.MMRLambda, cfg.Retrieve.DedupJaccard)
	if err != nil {
		return nil, err
	}

	var answerCache *cache.AnswerCache
	var invalidator usecase.Invalidator
	if cfg.Cache.Enabled {
		answerCache = cache.NewAnswerCache(cfg.Cache.MaxEntries, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
		invalidator = answerCache
	}

	chk := chunker.NewWindowChunker(cfg.Chunking.Size, cfg.Chunking.Overlap)
	index := usecase.NewIndexManager(st, chk, embedder, metric, invalidator, logger)
	docs := usecase.NewDocumentService(st, extractor.NewRegistry(), index, cfg.Storage.MaxDocuments, logger)
	ret := retriever.NewRetriever(embedder, index, diversifier, cfg.Retrieve.MaxFetch, cfg.Retrieve.PreviewLen)
	answers := usecase.NewAskUseCase(ret, answer.NewSynthesizer(mode), answerCache, cfg.Retrieve.MaxTopK, logger)

	return &App{Docs: docs, Answers: answers}, nil
}

// RecordSettings marks the stored indexes as built with cfg, clearing the
// rebuild warning. It is a no-op for the memory backend.
func (a *App) RecordSettings(cfg *config.Config) error {
	if a.bolt == nil {
		return nil
	}
	if err := a.bolt.Migrate(cfg); err != nil {
		return fmt.Errorf("failed to update schema info: %w", err)
	}
	return nil
}

func (a *App) Close() error {
	if a.bolt == nil {
		return nil
	}
	return a.bolt.Close()
}

