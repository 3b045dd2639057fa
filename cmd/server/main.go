/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the shift pay and compliance server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load environment configuration (.env honored in development)
  2. Parse command-line flags (flags override environment)
  3. Load jurisdiction (JSON file or built-in Australian preset)
  4. Initialize SQLite store
  5. Configure HTTP router
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port          HTTP server port (default: SERVER_PORT or 8080)
  -db            SQLite database path (default: DATABASE_PATH or shiftpay.db)
                 Use ":memory:" for an in-memory database
  -jurisdiction  JSON jurisdiction file (default: built-in AU 2024-25)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/shiftpay.db"

  # Run with a custom jurisdiction
  ./server -jurisdiction="./jurisdictions/nz.json"

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Environment configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/shiftpay-engine/api"
	"github.com/warp/shiftpay-engine/config"
	"github.com/warp/shiftpay-engine/factory"
	"github.com/warp/shiftpay-engine/store/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Flags override environment configuration.
	port := flag.Int("port", cfg.Server.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.Database.Path, "SQLite database path")
	jurisFile := flag.String("jurisdiction", cfg.Jurisdiction.File, "JSON jurisdiction file")
	flag.Parse()

	juris, err := loadJurisdiction(*jurisFile)
	if err != nil {
		log.Fatalf("Failed to load jurisdiction: %v", err)
	}

	// Initialize store
	st, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer st.Close()

	// Create router
	router := api.NewRouter(api.NewHandler(st, juris))

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on http://localhost:%d (jurisdiction %s)", *port, juris.Code)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

func loadJurisdiction(path string) (*factory.Jurisdiction, error) {
	if path == "" {
		return factory.Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return factory.ParseJurisdiction(data)
}
