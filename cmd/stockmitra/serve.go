package main

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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/nikhilpatel/stockmitra/internal/ai"
	"github.com/nikhilpatel/stockmitra/internal/analysis"
	"github.com/nikhilpatel/stockmitra/internal/bot"
	"github.com/nikhilpatel/stockmitra/internal/config"
	"github.com/nikhilpatel/stockmitra/internal/market"
	"github.com/nikhilpatel/stockmitra/internal/prefs"
	"github.com/nikhilpatel/stockmitra/internal/whatsapp"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the webhook server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func serve() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// --- DB ---
	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("db open: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}
	if err := prefs.EnsureSchema(ctx, db); err != nil {
		return err
	}

	// --- Module wiring ---
	resolver := prefs.NewResolver(prefs.NewPostgresStore(db))

	var screener *market.Screener
	if cfg.Market.ScreenerFallback {
		screener = market.NewScreener()
	}
	markets := market.NewService(
		market.NewFMPClient(cfg.Market.FMPAPIKey),
		screener,
		market.NewNewsFetcher(cfg.Market.NewsFeeds),
	)

	model := ai.NewOpenAIClient(cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.Temperature, cfg.LLM.MaxTokens)
	strategy, err := analysis.NewStrategy(cfg.Analysis.Strategy, model)
	if err != nil {
		return err
	}

	sender := whatsapp.NewTwilioSender(
		cfg.Transport.TwilioAccountSID,
		cfg.Transport.TwilioAuthToken,
		cfg.Transport.From,
		time.Duration(cfg.Transport.ChunkDelayMS)*time.Millisecond,
	)

	svc := bot.NewService(resolver, markets, strategy, sender, cfg.Transport.MaxChunk, cfg.Market.MaxSymbols)
	queue := bot.NewQueue(svc, cfg.Queue.Workers, cfg.Queue.Buffer, time.Duration(cfg.Queue.JobTimeoutSec)*time.Second)
	queue.Start()

	// --- Router ---
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	whatsapp.RegisterRoutes(r, whatsapp.NewHandler(queue))

	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s (strategy=%s)", srv.Addr, strategy.Name())
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		queue.Stop()
		return err
	case sig := <-stop:
		log.Printf("received %s, shutting down", sig)
	}

	// Server first so nothing enqueues after the queue closes.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	queue.Stop()
	return nil
}
