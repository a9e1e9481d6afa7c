package app

import (
	"context"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/docuassist/internal/common"
	"github.com/ternarybob/docuassist/internal/handlers"
	"github.com/ternarybob/docuassist/internal/interfaces"
	"github.com/ternarybob/docuassist/internal/services/documents"
	"github.com/ternarybob/docuassist/internal/services/embeddings"
	"github.com/ternarybob/docuassist/internal/services/feedback"
	"github.com/ternarybob/docuassist/internal/services/history"
	"github.com/ternarybob/docuassist/internal/services/llm"
	"github.com/ternarybob/docuassist/internal/services/pipeline"
	"github.com/ternarybob/docuassist/internal/services/vectorindex"
	"github.com/ternarybob/docuassist/internal/storage/badger"
)

// App is the dependency container: storage, services, and handlers wired
// together from configuration. Provider init failures degrade to demo mode
// instead of aborting startup.
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Storage
	BadgerDB        *badger.BadgerDB
	FeedbackStorage interfaces.FeedbackStorage

	// Services
	Embedder        interfaces.EmbeddingService
	VectorIndex     interfaces.VectorIndex
	LLMService      interfaces.LLMService
	HistoryStore    interfaces.HistoryStore
	ChatService     interfaces.ChatService
	DocumentService interfaces.DocumentService
	FeedbackService interfaces.FeedbackService

	// Handlers
	ChatHandler     *handlers.ChatHandler
	DocumentHandler *handlers.DocumentHandler
	FeedbackHandler *handlers.FeedbackHandler
	PageHandler     *handlers.PageHandler
}

// New creates the application container from configuration.
func New(config *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: config,
		Logger: logger,
	}

	if err := app.initStorage(); err != nil {
		return nil, err
	}
	app.initServices()
	app.initHandlers()

	return app, nil
}

// initStorage opens the feedback database. A working feedback log is
// required even in demo mode.
func (a *App) initStorage() error {
	db, err := badger.NewBadgerDB(a.Logger, &a.Config.Storage.Badger)
	if err != nil {
		return err
	}
	a.BadgerDB = db
	a.FeedbackStorage = badger.NewFeedbackStorage(db, a.Logger)
	return nil
}

// initServices constructs providers and the pipeline. Any provider that
// fails to initialize is logged and left nil; the pipeline then serves
// queries from the built-in knowledge base.
func (a *App) initServices() {
	if !a.Config.App.DemoMode {
		embedder, err := embeddings.NewOpenAIEmbedder(&a.Config.Embeddings, &a.Config.LLM, a.Logger)
		if err != nil {
			a.Logger.Warn().Err(err).Msg("Embedding service unavailable, falling back to demo mode")
		} else {
			a.Embedder = embedder
		}

		if a.Embedder != nil {
			index, err := vectorindex.NewVectorIndex(&a.Config.Storage, a.Embedder.Dimension(), a.Logger)
			if err != nil {
				a.Logger.Warn().Err(err).Msg("Vector index unavailable, falling back to demo mode")
			} else {
				a.VectorIndex = index
			}
		}

		llmService, err := llm.NewLLMService(&a.Config.LLM, a.Logger)
		if err != nil {
			a.Logger.Warn().Err(err).Msg("LLM service unavailable, falling back to demo mode")
		} else {
			a.LLMService = llmService
		}
	}

	a.HistoryStore = history.NewStore(0, a.Logger)

	a.ChatService = pipeline.New(pipeline.Options{
		Embedder:        a.Embedder,
		Index:           a.VectorIndex,
		LLM:             a.LLMService,
		History:         a.HistoryStore,
		TopK:            a.Config.Retrieval.TopK,
		MaxDocumentSize: a.Config.Retrieval.MaxDocumentSize,
		DemoMode:        a.Config.App.DemoMode,
	}, a.Logger)

	a.DocumentService = documents.NewService(a.Embedder, a.VectorIndex, a.Logger)
	a.FeedbackService = feedback.NewService(a.FeedbackStorage, a.Logger)
}

func (a *App) initHandlers() {
	a.ChatHandler = handlers.NewChatHandler(a.ChatService, a.Logger)
	a.DocumentHandler = handlers.NewDocumentHandler(a.DocumentService, a.Logger)
	a.FeedbackHandler = handlers.NewFeedbackHandler(a.FeedbackService, a.Logger)
	a.PageHandler = handlers.NewPageHandler(a.Logger)
}

// HealthCheck probes the external providers at startup. Failures are
// logged, not fatal; the service keeps running in a degraded state.
func (a *App) HealthCheck(ctx context.Context) {
	checkCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if a.Embedder != nil {
		if err := a.Embedder.HealthCheck(checkCtx); err != nil {
			a.Logger.Warn().Err(err).Msg("Embedding provider health check failed")
		}
	}
	if a.VectorIndex != nil {
		if health, err := a.VectorIndex.Health(checkCtx); err != nil {
			a.Logger.Warn().Err(err).Msg("Vector index health check failed")
		} else {
			a.Logger.Info().
				Str("index", health.IndexName).
				Int("total_vectors", health.TotalVectors).
				Msg("Vector index healthy")
		}
	}
	if a.LLMService != nil {
		if err := a.LLMService.HealthCheck(checkCtx); err != nil {
			a.Logger.Warn().Err(err).Msg("LLM provider health check failed")
		}
	}
}

// Close releases storage and provider resources.
func (a *App) Close() {
	if a.LLMService != nil {
		if err := a.LLMService.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close LLM service")
		}
	}
	if a.VectorIndex != nil {
		if err := a.VectorIndex.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close vector index")
		}
	}
	if a.BadgerDB != nil {
		if err := a.BadgerDB.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close feedback database")
		}
	}
}
