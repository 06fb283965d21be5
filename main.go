package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/examwatch/examwatch/cliparse"
	"github.com/examwatch/examwatch/generator"
	"github.com/examwatch/examwatch/middleware"
	"github.com/examwatch/examwatch/realtime"
	"github.com/examwatch/examwatch/router"
	"github.com/examwatch/examwatch/store"
	"github.com/examwatch/examwatch/violations"
)

func main() {
	var err error

	// Load .env if present; deployment keeps connection strings there
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded .env")
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	driver := "postgres"
	if cfg.DatabaseType == "sqlite" {
		driver = "sqlite"
	}
	dbConn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := store.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	st := store.NewSQLClient(dbConn)

	// Wire the violation pipeline into the realtime hub
	hub := realtime.NewHub(nil)
	pipeline := violations.NewPipeline(violations.NewReconciler(st), hub)
	hub.SetHandler(pipeline.HandleEvent)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	gen := generator.NewHTTPGenerator(cfg.GeneratorURL)

	// Create router
	mux := router.NewRouter(st, gen, hub, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		cancel()
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
