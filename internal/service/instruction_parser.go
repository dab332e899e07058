package service

import (
	"fmt"
	"strings"
	"time"

	"pdf-edit-automation/internal/domain"

	"github.com/dlclark/regexp2"
)

const (
	quotedOld = `(?<oq>["'])(?<old>.*?)\k<oq>`
	bareOld   = `(?!["'])(?<bold>.*?)(?<!["'])`
	quotedNew = `(?<nq>["'])(?<new>.*?)\k<nq>`
	// A bare replacement runs up to the next instruction, a line or clause end, or the end of input.
	bareNew = `(?!["'])(?<bnew>.*?)(?<!["'])(?=\s+(?:and\s+)?replace\s|\s*[;\n]|[.,](?:\s|$)|\s*$)`

	instructionPattern = `\breplace\s+(?:` + quotedOld + `|` + bareOld + `)\s+with\s+(?:` + quotedNew + `|` + bareNew + `)`
)

// InstructionParser extracts "Replace X with Y" instructions from free text.
// It implements domain.InstructionParser and is safe for concurrent use.
type InstructionParser struct {
	pattern *regexp2.Regexp
	logger  domain.Logger
}

// NewInstructionParser creates a parser
func NewInstructionParser(logger domain.Logger) *InstructionParser {
	re := regexp2.MustCompile(instructionPattern, regexp2.IgnoreCase)
	re.MatchTimeout = time.Second
	return &InstructionParser{
		pattern: re,
		logger:  logger,
	}
}

// Parse scans description left to right for non-overlapping instructions.
// An empty map is always returned alongside diagnostics, never nil.
func (p *InstructionParser) Parse(description string) (*domain.ReplacementMap, []domain.Diagnostic) {
	replacements := domain.NewReplacementMap()

	matches := 0
	m, err := p.pattern.FindStringMatch(description)
	for err == nil && m != nil {
		matches++
		old := strings.TrimSpace(groupValue(m, "old", "bold"))
		replacement := strings.TrimSpace(groupValue(m, "new", "bnew"))
		if old != "" {
			replacements.Set(old, replacement)
		}
		m, err = p.pattern.FindNextMatch(m)
	}
	if err != nil {
		p.logger.Warn("Instruction matching aborted", "error", err, "matches", matches)
	}

	var diags []domain.Diagnostic
	switch {
	case matches == 0:
		diags = append(diags, domain.Diagnostic{
			Kind:    domain.DiagnosticParseEmpty,
			Message: fmt.Sprintf("Could not parse any 'Replace X with Y' instructions from description: '%s'", description),
		})
	case replacements.Len() == 0:
		diags = append(diags, domain.Diagnostic{
			Kind:    domain.DiagnosticParseEmpty,
			Message: "No specific text replacements identified from the description.",
		})
	}

	p.logger.Debug("Parsed modification request", "matches", matches, "replacements", replacements.Len())
	return replacements, diags
}

// groupValue returns the quoted group when it participated in the match, else the bare one
func groupValue(m *regexp2.Match, quoted, bare string) string {
	if g := m.GroupByName(quoted); g != nil && len(g.Captures) > 0 {
		return g.String()
	}
	if g := m.GroupByName(bare); g != nil && len(g.Captures) > 0 {
		return g.String()
	}
	return ""
}
