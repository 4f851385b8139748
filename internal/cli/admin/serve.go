package admin

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"

	"github.com/lakeworks/ragline/internal/api/handlers"
	"github.com/lakeworks/ragline/internal/config"
	"github.com/lakeworks/ragline/internal/database"
	"github.com/lakeworks/ragline/internal/lake"
	"github.com/lakeworks/ragline/internal/openai"
	"github.com/lakeworks/ragline/internal/registry"
	"github.com/lakeworks/ragline/internal/repository"
	"github.com/lakeworks/ragline/internal/server"
	"github.com/lakeworks/ragline/internal/service"
	"github.com/lakeworks/ragline/internal/source"
	"github.com/lakeworks/ragline/internal/telemetry"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the ragline API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	cmd.Flags().Bool("no-migrate", false, "Skip automatic database migrations on startup")

	return cmd
}

// backends bundles the pipeline dependencies one backend flavor provides.
type backends struct {
	registry   *registry.Registry
	source     service.ChunkSource
	embedder   service.EmbeddingClient
	index      service.VectorIndexClient
	completion service.CompletionClient
	cleanup    func()
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.SentryDSN != "" {
		// Default to 10% sampling in production, 100% in development
		sampleRate := 0.1
		if cfg.Environment == "development" {
			sampleRate = 1.0
		}

		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			TracesSampleRate: sampleRate,
			Debug:            cfg.Debug,
		})
		if err != nil {
			log.Printf("telemetry init failed (continuing without tracing): %v", err)
		} else {
			defer shutdownTelemetry()
		}
	}

	portFlag, _ := cmd.Flags().GetString("port")
	if portFlag != "" && portFlag != "8080" {
		cfg.Port = portFlag
	}

	noMigrate, _ := cmd.Flags().GetBool("no-migrate")

	var b *backends
	switch {
	case cfg.HasLake():
		b, err = lakeBackends(cfg)
	case cfg.HasOpenAI() && cfg.HasDatabase():
		b, err = localBackends(ctx, cfg, noMigrate)
	default:
		return fmt.Errorf("no backend configured: set RAGLINE_LAKE_API_URL/RAGLINE_LAKE_API_KEY, or RAGLINE_OPENAI_API_KEY with RAGLINE_DATABASE_URL")
	}
	if err != nil {
		return err
	}
	defer b.cleanup()

	embedder := service.NewThrottledEmbedder(b.embedder, cfg.EmbedRateLimit, cfg.EmbedRateBurst)

	ingestSvc := service.NewIngestServiceWithConfig(b.registry, b.source, embedder, b.index, service.IngestConfig{
		ChunkSize: cfg.ChunkSize,
		Workers:   cfg.IngestWorkers,
	})
	answerSvc := service.NewAnswerServiceWithConfig(b.registry, embedder, b.index, b.completion, service.AnswerConfig{
		TopK: cfg.SearchTopK,
	})

	router := server.NewRouter(server.RouterConfig{
		IngestHandler: handlers.NewIngestHandler(ingestSvc),
		QueryHandler:  handlers.NewQueryHandler(answerSvc),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}

// lakeBackends wires every pipeline stage to the remote lake API.
func lakeBackends(cfg *config.Config) (*backends, error) {
	client := lake.NewClient(lake.Config{
		BaseURL:   cfg.LakeAPIURL,
		APIKey:    cfg.LakeAPIKey,
		AccountID: cfg.LakeAccountID,
	})

	store := lake.NewDocumentStore(client)
	index := lake.NewVectorIndex(client)
	completion := lake.NewCompletion(client)

	reg := registry.New()
	reg.Register(registry.KindDocumentStore, store.Create)
	reg.Register(registry.KindVectorIndex, index.Create)

	log.Printf("using lake backend at %s", cfg.LakeAPIURL)
	return &backends{
		registry:   reg,
		source:     &lakeChunkSource{store: store},
		embedder:   index,
		index:      index,
		completion: completion,
		cleanup:    func() {},
	}, nil
}

// localBackends wires the pipeline to OpenAI, Postgres+pgvector, and
// HTTP/S3 document fetching.
func localBackends(ctx context.Context, cfg *config.Config, noMigrate bool) (*backends, error) {
	pool, err := database.NewPool(ctx, database.Config{DSN: cfg.DatabaseURL})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("connected to database")

	if !noMigrate {
		if err := runMigrations(cfg.DatabaseURL); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	var s3Fetcher source.Fetcher
	if cfg.HasS3() {
		f, err := source.NewS3Fetcher(ctx, source.S3Config{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
			UsePathStyle:    true,
		})
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to create S3 fetcher: %w", err)
		}
		s3Fetcher = f
		log.Println("s3 document fetching enabled")
	}

	docSource := source.NewLocalSource(source.NewHTTPFetcher(), s3Fetcher)
	vectorStore := repository.NewVectorStore(pool)
	openaiClient := openai.NewClient(cfg.OpenAIAPIKey)

	reg := registry.New()
	reg.Register(registry.KindDocumentStore, docSource.CreateNamespace)
	reg.Register(registry.KindVectorIndex, vectorStore.CreateNamespace)

	log.Println("using local backend (openai + pgvector)")
	return &backends{
		registry:   reg,
		source:     docSource,
		embedder:   openaiClient,
		index:      vectorStore,
		completion: openaiClient,
		cleanup:    pool.Close,
	}, nil
}

// lakeChunkSource adapts the lake's two-step document flow (push, then
// fetch chunks) to the single-call ChunkSource contract.
type lakeChunkSource struct {
	store *lake.DocumentStore
}

func (s *lakeChunkSource) FetchChunks(ctx context.Context, storeID, reference string, chunkSize int) ([]string, error) {
	documentID, err := s.store.PushDocument(ctx, storeID, reference)
	if err != nil {
		return nil, err
	}
	return s.store.FetchChunks(ctx, storeID, documentID, chunkSize)
}

func runMigrations(databaseURL string) error {
	// golang-migrate needs a database/sql handle
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database for migrations: %w", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("database migrations applied")
	return nil
}
