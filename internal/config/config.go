package config

import (
	"os"
	"strconv"

	"pdf-edit-automation/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort        string
	UploadPath        string
	OutputPath        string
	MaxFileSize       int64
	LogLevel          string
	LogFormat         string
	GeminiAPIKey      string
	Model             string
	Temperature       float64
	GoogleProject     string
	GoogleLocation    string
	SupabaseURL       string
	SupabaseKey       string
	SupabaseBucket    string
	CrewConfigDir     string
	DefaultPDFPath    string
	DefaultOutputPath string
}

// NewConfig creates a new configuration instance from the environment with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:        getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		UploadPath:        getEnvOrDefault("UPLOAD_PATH", "./uploads"),
		OutputPath:        getEnvOrDefault("OUTPUT_PATH", "./outputs"),
		MaxFileSize:       getEnvInt64OrDefault("MAX_FILE_SIZE", 50*1024*1024), // 50MB default
		LogLevel:          getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:         getEnvOrDefault("LOG_FORMAT", "console"),
		GeminiAPIKey:      getEnvOrDefault("GEMINI_API_KEY", ""),
		Model:             getEnvOrDefault("MODEL", DefaultModel),
		Temperature:       getEnvFloatOrDefault("TEMPERATURE", 0.7),
		GoogleProject:     getEnvOrDefault("GOOGLE_CLOUD_PROJECT", ""),
		GoogleLocation:    getEnvOrDefault("GOOGLE_CLOUD_LOCATION", "us-central1"),
		SupabaseURL:       getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey:       getEnvOrDefault("SUPABASE_ANON_KEY", ""),
		SupabaseBucket:    getEnvOrDefault("SUPABASE_BUCKET", "pdf-outputs"),
		CrewConfigDir:     getEnvOrDefault("CREW_CONFIG_DIR", ""),
		DefaultPDFPath:    getEnvOrDefault("PDF_PATH", "word-file.pdf"),
		DefaultOutputPath: getEnvOrDefault("OUTPUT_FILE", "modified_output.pdf"),
	}
}

// DefaultModel is the Gemini model used when MODEL is unset
const DefaultModel = "gemini-2.5-pro-exp-03-25"

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetUploadPath returns the upload directory path
func (c *AppConfig) GetUploadPath() string {
	return c.UploadPath
}

// GetOutputPath returns the directory modified PDFs are written to by the HTTP API
func (c *AppConfig) GetOutputPath() string {
	return c.OutputPath
}

// GetMaxFileSize returns the maximum allowed file size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetLogFormat returns the log output format
func (c *AppConfig) GetLogFormat() string {
	return c.LogFormat
}

// GetGeminiAPIKey returns the Gemini API key
func (c *AppConfig) GetGeminiAPIKey() string {
	return c.GeminiAPIKey
}

// GetModel returns the configured model name
func (c *AppConfig) GetModel() string {
	return c.Model
}

// GetTemperature returns the sampling temperature
func (c *AppConfig) GetTemperature() float64 {
	return c.Temperature
}

// GetGoogleProject returns the Google Cloud project ID
func (c *AppConfig) GetGoogleProject() string {
	return c.GoogleProject
}

// GetGoogleLocation returns the Vertex AI location
func (c *AppConfig) GetGoogleLocation() string {
	return c.GoogleLocation
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase anon key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// GetSupabaseBucket returns the storage bucket outputs are published to
func (c *AppConfig) GetSupabaseBucket() string {
	return c.SupabaseBucket
}

// GetCrewConfigDir returns the directory overriding the embedded agent and task definitions
func (c *AppConfig) GetCrewConfigDir() string {
	return c.CrewConfigDir
}

// GetDefaultPDFPath returns the input PDF used by the CLI when none is given
func (c *AppConfig) GetDefaultPDFPath() string {
	return c.DefaultPDFPath
}

// GetDefaultOutputPath returns the output PDF used by the CLI when none is given
func (c *AppConfig) GetDefaultOutputPath() string {
	return c.DefaultOutputPath
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
