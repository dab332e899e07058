package config

import (
	"context"
	"errors"
	"os"

	"pdf-edit-automation/internal/crew"
	"pdf-edit-automation/internal/domain"
	"pdf-edit-automation/internal/infra/supabase"
	"pdf-edit-automation/internal/repository"
	"pdf-edit-automation/internal/service"
	"pdf-edit-automation/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config         domain.Config
	Logger         domain.Logger
	SupabaseClient domain.SupabaseClient
	Storage        domain.StorageService
	Runs           domain.RunRepository
	Extractor      *service.PDFProcessor
	Parser         *service.InstructionParser
	PDFService     *service.PDFService
	CrewConfig     *crew.Config
}

// NewContainer creates a new dependency injection container
func NewContainer() (*Container, error) {
	config := NewConfig()
	appLogger := logger.NewLoggerWithOutput(config.GetLogLevel(), config.GetLogFormat(), os.Stdout)
	return NewContainerWith(config, appLogger)
}

// NewContainerWith wires the services around an existing config and logger
func NewContainerWith(config domain.Config, appLogger domain.Logger) (*Container, error) {
	crewConfig, err := crew.LoadConfig(config.GetCrewConfigDir())
	if err != nil {
		return nil, err
	}

	parser := service.NewInstructionParser(appLogger)
	pdfService := service.NewPDFService(
		parser,
		service.NewPDFDocumentOpener(),
		service.NewReconciler(appLogger),
		service.NewOutputWriter(appLogger),
		appLogger,
	)

	c := &Container{
		Config:     config,
		Logger:     appLogger,
		Extractor:  service.NewPDFProcessor(appLogger),
		Parser:     parser,
		PDFService: pdfService,
		CrewConfig: crewConfig,
	}

	// Remote storage and run history are optional
	supabaseClient := supabase.NewSupabaseClient(config, appLogger)
	if err := supabaseClient.Initialize(); err != nil {
		if errors.Is(err, domain.ErrStorageDisabled) {
			appLogger.Debug("Supabase storage not configured; outputs stay local")
		} else {
			appLogger.Warn("Supabase storage unavailable; outputs stay local", "error", err.Error())
		}
		return c, nil
	}
	c.SupabaseClient = supabaseClient
	c.Storage = service.NewStorageService(supabaseClient, config.GetSupabaseBucket(), appLogger)
	c.Runs = repository.NewSupabaseRunRepository(supabaseClient, appLogger)
	return c, nil
}

// NewLLM creates the Gemini client from the configuration
func (c *Container) NewLLM(ctx context.Context) (*service.AIService, error) {
	return service.NewAIService(ctx, service.AIConfig{
		ProjectID:   c.Config.GetGoogleProject(),
		Location:    c.Config.GetGoogleLocation(),
		Model:       c.Config.GetModel(),
		APIKey:      c.Config.GetGeminiAPIKey(),
		Temperature: c.Config.GetTemperature(),
	}, c.Logger)
}

// NewCrew creates a crew backed by llm. A nil llm runs the crew without a model.
func (c *Container) NewCrew(llm domain.LLM) *crew.Crew {
	return crew.New(c.CrewConfig, llm, c.Extractor, c.PDFService, c.Parser, c.Logger)
}
