package domain

// DiagnosticKind classifies a processing diagnostic
type DiagnosticKind string

const (
	DiagnosticParseEmpty              DiagnosticKind = "parse_empty"
	DiagnosticPageExtraction          DiagnosticKind = "page_extraction"
	DiagnosticPageAppend              DiagnosticKind = "page_append"
	DiagnosticPageAppendAfterRecovery DiagnosticKind = "page_append_after_recovery"
	DiagnosticReplacementNotApplied   DiagnosticKind = "replacement_not_applied"
)

// Diagnostic is one informational entry of a ProcessingReport.
// Page is 0 for document-level diagnostics.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	Page    int            `json:"page,omitempty"`
	Message string         `json:"message"`
}

// ProcessingReport accumulates diagnostics in the order they were raised.
// It never affects document content.
type ProcessingReport struct {
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// Add appends a diagnostic
func (r *ProcessingReport) Add(kind DiagnosticKind, page int, message string) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Kind: kind, Page: page, Message: message})
}

// Append appends already built diagnostics
func (r *ProcessingReport) Append(diags ...Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, diags...)
}

// Len returns the number of diagnostics
func (r *ProcessingReport) Len() int {
	return len(r.Diagnostics)
}

// Messages returns the diagnostic messages in order
func (r *ProcessingReport) Messages() []string {
	msgs := make([]string, 0, len(r.Diagnostics))
	for _, d := range r.Diagnostics {
		msgs = append(msgs, d.Message)
	}
	return msgs
}

// Count returns how many diagnostics of the given kind were recorded
func (r *ProcessingReport) Count(kind DiagnosticKind) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Kind == kind {
			n++
		}
	}
	return n
}
