package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/optionedge/analyzer/internal/analysis"
	"github.com/optionedge/analyzer/internal/config"
	"github.com/optionedge/analyzer/internal/handlers"
	"github.com/optionedge/analyzer/internal/logger"

	"github.com/gorilla/mux"
)

func main() {
	cfg := config.Load()

	// Initialize proper logging with config level and file path
	if err := logger.InitWithConfig(cfg.Logging.LogLevel, cfg.Logging.LogFile); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	logger.Always.Printf("Option Edge Analyzer starting - Port: %s", cfg.Port)

	// The evaluator gets its diagnostic logger explicitly - no package
	// globals inside the calculation path.
	evaluator := analysis.NewEvaluator(logger.Error)
	optionsHandler := handlers.NewOptionsHandler(cfg, evaluator)

	// Setup router
	r := mux.NewRouter()

	// Serve static files (CSS, JS) - NO REBUILD NEEDED
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("web/static/"))))

	// Main application endpoints
	r.HandleFunc("/", optionsHandler.HomeHandler).Methods("GET", "POST")
	r.HandleFunc("/api/evaluate", optionsHandler.EvaluateHandler).Methods("POST", "OPTIONS")

	// Start server
	fmt.Printf("Server starting on http://localhost:%s\n", cfg.Port)
	logger.Info.Printf("HTTP server started on port %s", cfg.Port)

	if err := http.ListenAndServe("0.0.0.0:"+cfg.Port, r); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
