package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pdf-edit-automation/internal/config"
	"pdf-edit-automation/internal/domain"
	"pdf-edit-automation/internal/handler"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}
	// Wiring
	container, err := config.NewContainer()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Without a model the crew passes requests straight to the modify tool
	var llm domain.LLM
	if aiService, err := container.NewLLM(ctx); err != nil {
		container.Logger.Warn("Language model unavailable; crew runs without analysis", "error", err.Error())
	} else {
		defer aiService.Close()
		llm = aiService
	}

	// Handlers
	files := handler.NewFileStore(container.Config, container.Storage, container.Logger)
	history := handler.NewHistory(container.Runs, container.Logger)
	pdfHandler := handler.NewPDFHandler(container.Extractor, container.PDFService, files, history, container.Logger)
	crewHandler := handler.NewCrewHandler(container.NewCrew(llm), files, history, container.Logger)

	// Router
	router := handler.NewRouter(pdfHandler, crewHandler, history, container.Logger)

	// start server
	server := &http.Server{
		Addr:              ":" + container.Config.GetServerPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		container.Logger.Info("Server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		container.Logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		container.Logger.Error("Server failed", err)
		os.Exit(1)
	}
	container.Logger.Info("Server exited")
}
