package handler

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"

	"pdf-edit-automation/internal/domain"
)

// MockHandlerLogger records messages logged by handlers under test
type MockHandlerLogger struct {
	mu       sync.Mutex
	messages []string
}

func NewMockHandlerLogger() *MockHandlerLogger {
	return &MockHandlerLogger{}
}

func (l *MockHandlerLogger) record(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msg)
}

func (l *MockHandlerLogger) Messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.messages...)
}

func (l *MockHandlerLogger) Info(msg string, fields ...interface{})             { l.record(msg) }
func (l *MockHandlerLogger) Error(msg string, err error, fields ...interface{}) { l.record(msg) }
func (l *MockHandlerLogger) Debug(msg string, fields ...interface{})            { l.record(msg) }
func (l *MockHandlerLogger) Warn(msg string, fields ...interface{})             { l.record(msg) }

type stubConfig struct {
	domain.Config
	uploadPath  string
	outputPath  string
	maxFileSize int64
}

func (c stubConfig) GetUploadPath() string { return c.uploadPath }
func (c stubConfig) GetOutputPath() string { return c.outputPath }
func (c stubConfig) GetMaxFileSize() int64 { return c.maxFileSize }

type mockExtractor struct {
	doc      *domain.Document
	err      error
	lastPath string
}

func (m *mockExtractor) Extract(path string) (*domain.Document, error) {
	m.lastPath = path
	return m.doc, m.err
}

func (m *mockExtractor) ReadContent(path string) (string, error) {
	return "", errors.New("not used")
}

// mockModifier copies the source to the output path like a modify run without matches
type mockModifier struct {
	err     error
	lastReq domain.ModifyRequest
}

func (m *mockModifier) Modify(_ context.Context, req domain.ModifyRequest) (*domain.ModifyResult, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	if err := copyFile(req.SourcePath, req.OutputPath); err != nil {
		return nil, err
	}
	return &domain.ModifyResult{
		OutputPath:   req.OutputPath,
		Replacements: domain.NewReplacementMap(),
		PagesIn:      1,
		PagesOut:     1,
		Message:      "PDF processing completed. Output saved to " + req.OutputPath + ".",
	}, nil
}

type mockCrew struct {
	modifier   *mockModifier
	lastInputs domain.CrewInputs
}

func (m *mockCrew) Kickoff(ctx context.Context, inputs domain.CrewInputs) (*domain.CrewResult, error) {
	m.lastInputs = inputs
	res, err := m.modifier.Modify(ctx, domain.ModifyRequest{
		SourcePath:  inputs.PDFPath,
		Instruction: inputs.UserRequest,
		OutputPath:  inputs.OutputPath,
	})
	if err != nil {
		return nil, err
	}
	return &domain.CrewResult{
		Analysis:     inputs.UserRequest,
		Instruction:  inputs.UserRequest,
		Modification: res,
		Tasks:        []domain.TaskOutput{{Task: "modify_pdf_task", Output: res.Message}},
	}, nil
}

type mockStorage struct {
	err      error
	uploaded map[string][]byte
}

func (m *mockStorage) Upload(_ context.Context, path string, file io.Reader) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	if m.uploaded == nil {
		m.uploaded = make(map[string][]byte)
	}
	m.uploaded[path] = data
	return "https://storage.example.com/pdf-outputs/" + path, nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}

type mockRuns struct {
	mu    sync.Mutex
	saved []*domain.RunRecord
	err   error
}

func (m *mockRuns) Save(_ context.Context, run *domain.RunRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, run)
	return nil
}

func (m *mockRuns) List(_ context.Context, limit int) ([]*domain.RunRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if limit < len(m.saved) {
		return m.saved[:limit], nil
	}
	return m.saved, nil
}
