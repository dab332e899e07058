package domain

import (
	"context"
	"io"
)

// ContentExtractor reads text and tables out of a PDF on disk
type ContentExtractor interface {
	Extract(path string) (*Document, error)
	ReadContent(path string) (string, error)
}

// InstructionParser turns a free-text edit request into replacement pairs
type InstructionParser interface {
	Parse(description string) (*ReplacementMap, []Diagnostic)
}

// PageObject is a handle on one page of a SourceDocument
type PageObject interface {
	Number() int
}

// SourceDocument is an opened, read-only input PDF
type SourceDocument interface {
	PageCount() int
	Page(pageNr int) (PageObject, error)
	PageText(pageNr int) (string, error)
	Close() error
}

// OutputDocument accumulates pages and serializes them
type OutputDocument interface {
	AddPage(page PageObject) error
	PageCount() int
	Write(w io.Writer) error
}

// DocumentOpener opens a source document together with an empty output document
type DocumentOpener interface {
	Open(path string) (SourceDocument, OutputDocument, error)
}

// PDFModifier is the modify-and-save operation
type PDFModifier interface {
	Modify(ctx context.Context, req ModifyRequest) (*ModifyResult, error)
}

// LLM generates text completions
type LLM interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetUploadPath() string
	GetOutputPath() string
	GetMaxFileSize() int64
	GetLogLevel() string
	GetLogFormat() string
	GetGeminiAPIKey() string
	GetModel() string
	GetTemperature() float64
	GetGoogleProject() string
	GetGoogleLocation() string
	GetSupabaseURL() string
	GetSupabaseKey() string
	GetSupabaseBucket() string
	GetCrewConfigDir() string
	GetDefaultPDFPath() string
	GetDefaultOutputPath() string
}

// CrewRunner runs the analyze-then-modify crew for one request
type CrewRunner interface {
	Kickoff(ctx context.Context, inputs CrewInputs) (*CrewResult, error)
}
