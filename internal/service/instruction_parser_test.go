package service

import (
	"strings"
	"testing"

	"pdf-edit-automation/internal/domain"

	"github.com/google/go-cmp/cmp"
)

func TestInstructionParser_Parse(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        []domain.Replacement
	}{
		{
			name:        "single quotes",
			description: "Replace 'Alpha' with 'Beta'",
			want:        []domain.Replacement{{Old: "Alpha", New: "Beta"}},
		},
		{
			name:        "double quotes",
			description: `Please Replace "Total due" with "Amount payable" on page 1`,
			want:        []domain.Replacement{{Old: "Total due", New: "Amount payable"}},
		},
		{
			name:        "mixed quote styles",
			description: `replace "Alpha" with 'Beta'`,
			want:        []domain.Replacement{{Old: "Alpha", New: "Beta"}},
		},
		{
			name:        "bare values",
			description: "Replace Alpha with Beta",
			want:        []domain.Replacement{{Old: "Alpha", New: "Beta"}},
		},
		{
			name:        "bare replacement stops at sentence end",
			description: "Replace 1.5 with 2.0. Keep everything else.",
			want:        []domain.Replacement{{Old: "1.5", New: "2.0"}},
		},
		{
			name:        "two instructions in order",
			description: "Replace 'Alpha' with 'Beta' and replace 'Gamma' with 'Delta'",
			want: []domain.Replacement{
				{Old: "Alpha", New: "Beta"},
				{Old: "Gamma", New: "Delta"},
			},
		},
		{
			name:        "two bare instructions",
			description: "Replace Alpha with Beta and replace Gamma with Delta",
			want: []domain.Replacement{
				{Old: "Alpha", New: "Beta"},
				{Old: "Gamma", New: "Delta"},
			},
		},
		{
			name:        "instructions on separate lines",
			description: "Replace Alpha with Beta\nReplace 'Gamma' with Delta;",
			want: []domain.Replacement{
				{Old: "Alpha", New: "Beta"},
				{Old: "Gamma", New: "Delta"},
			},
		},
		{
			name:        "values are trimmed",
			description: "Replace ' Alpha ' with '  Beta'",
			want:        []domain.Replacement{{Old: "Alpha", New: "Beta"}},
		},
		{
			name:        "duplicate key overwrites in place",
			description: "Replace 'A' with 'B', replace 'C' with 'D', replace 'A' with 'E'",
			want: []domain.Replacement{
				{Old: "A", New: "E"},
				{Old: "C", New: "D"},
			},
		},
		{
			name:        "empty replacement is kept",
			description: "Replace 'Draft' with ''",
			want:        []domain.Replacement{{Old: "Draft", New: ""}},
		},
	}

	parser := NewInstructionParser(NewMockLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, diags := parser.Parse(tt.description)
			if len(diags) != 0 {
				t.Fatalf("unexpected diagnostics: %+v", diags)
			}
			if diff := cmp.Diff(tt.want, got.Pairs()); diff != "" {
				t.Fatalf("unexpected pairs (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInstructionParser_MismatchedQuotes(t *testing.T) {
	parser := NewInstructionParser(NewMockLogger())

	got, diags := parser.Parse(`Replace "Alpha' with "Beta"`)
	if got.Len() != 0 {
		t.Fatalf("expected zero pairs, got %v", got)
	}
	if len(diags) != 1 || diags[0].Kind != domain.DiagnosticParseEmpty {
		t.Fatalf("expected one parse_empty diagnostic, got %+v", diags)
	}
}

func TestInstructionParser_NoInstructions(t *testing.T) {
	parser := NewInstructionParser(NewMockLogger())

	desc := "Make the title bold"
	got, diags := parser.Parse(desc)
	if got == nil || got.Len() != 0 {
		t.Fatalf("expected an empty map, got %v", got)
	}
	want := "Could not parse any 'Replace X with Y' instructions from description: 'Make the title bold'"
	if len(diags) != 1 || diags[0].Message != want {
		t.Fatalf("unexpected diagnostics %+v", diags)
	}
}

func TestInstructionParser_OnlyEmptyTargets(t *testing.T) {
	parser := NewInstructionParser(NewMockLogger())

	got, diags := parser.Parse("Replace '' with 'Beta'")
	if got.Len() != 0 {
		t.Fatalf("expected empty map, got %v", got)
	}
	if len(diags) != 1 || !strings.HasPrefix(diags[0].Message, "No specific text replacements identified") {
		t.Fatalf("unexpected diagnostics %+v", diags)
	}
}
