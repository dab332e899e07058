package service

import (
	"context"
	"fmt"
	"strings"

	"pdf-edit-automation/internal/domain"
	apperrors "pdf-edit-automation/pkg/errors"

	"cloud.google.com/go/vertexai/genai"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// AIConfig is the explicit configuration of the Gemini client
type AIConfig struct {
	ProjectID   string
	Location    string
	Model       string
	APIKey      string
	Temperature float64
}

// AIService generates completions with Gemini on Vertex AI.
// It implements domain.LLM.
type AIService struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
	logger    domain.Logger
}

// NewAIService creates a Gemini client. When no project is configured it is
// taken from Application Default Credentials.
func NewAIService(ctx context.Context, cfg AIConfig, logger domain.Logger) (*AIService, error) {
	projectID := cfg.ProjectID
	if projectID == "" {
		creds, err := google.FindDefaultCredentials(ctx, cloudPlatformScope)
		if err != nil {
			return nil, apperrors.NewLLMError("failed to get default credentials", fmt.Errorf("%w: %v", domain.ErrLLMNotConfigured, err))
		}
		projectID = creds.ProjectID
	}
	if projectID == "" {
		return nil, apperrors.NewLLMError("Google Cloud project is not configured", domain.ErrLLMNotConfigured)
	}

	var opts []option.ClientOption
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}

	client, err := genai.NewClient(ctx, projectID, cfg.Location, opts...)
	if err != nil {
		return nil, apperrors.NewLLMError("failed to create vertex ai client", err)
	}

	modelName := NormalizeModelName(cfg.Model)
	model := client.GenerativeModel(modelName)
	model.SetTemperature(float32(cfg.Temperature))

	logger.Info("Gemini client initialized", "project", projectID, "location", cfg.Location, "model", modelName)
	return &AIService{
		client:    client,
		model:     model,
		modelName: modelName,
		logger:    logger,
	}, nil
}

// NormalizeModelName strips a provider prefix such as "gemini/" from model names
func NormalizeModelName(name string) string {
	return strings.TrimPrefix(strings.TrimSpace(name), "gemini/")
}

// Model returns the model name requests are sent to
func (s *AIService) Model() string {
	return s.modelName
}

// Generate sends a single-turn prompt and returns the concatenated text parts of the first candidate
func (s *AIService) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", apperrors.NewLLMError("gemini call failed", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return "", apperrors.NewLLMError("gemini returned no content", err)
	}
	if resp.UsageMetadata != nil {
		s.logger.Debug("Gemini call completed", "model", s.modelName, "tokens", int(resp.UsageMetadata.TotalTokenCount))
	}
	return text, nil
}

// Close releases the underlying client
func (s *AIService) Close() error {
	return s.client.Close()
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", domain.ErrEmptyModelResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", domain.ErrEmptyModelResponse
	}
	return sb.String(), nil
}
