package domain

// Table is an ordered grid of cells; a nil cell means the extractor found no value for it
type Table struct {
	Rows [][]*string `json:"rows"`
}

// Page represents one page of a source document
type Page struct {
	Number int     `json:"number"` // 1-based
	Text   string  `json:"text"`
	Tables []Table `json:"tables,omitempty"`
}

// HasContent reports whether the page produced any text or tables
func (p Page) HasContent() bool {
	return p.Text != "" || len(p.Tables) > 0
}

// DocumentMetadata contains information about the PDF document
type DocumentMetadata struct {
	Title     string `json:"title,omitempty"`
	Author    string `json:"author,omitempty"`
	PageCount int    `json:"page_count"`
}

// Document is the extracted view of a PDF, created per request and discarded afterwards
type Document struct {
	Path     string           `json:"path"`
	Pages    []Page           `json:"pages"`
	Metadata DocumentMetadata `json:"metadata"`
}

// HasContent reports whether any page yielded text or tables
func (d *Document) HasContent() bool {
	for _, p := range d.Pages {
		if p.HasContent() {
			return true
		}
	}
	return false
}

// PageStatus is the outcome of carrying one page into the output document
type PageStatus string

const (
	PageAdded              PageStatus = "added"
	PageAddedAfterRecovery PageStatus = "added_after_recovery"
	PageNotAdded           PageStatus = "not_added"
)

// PageOutcome records what happened to a single page during reconciliation
type PageOutcome struct {
	Page    int        `json:"page"`
	Status  PageStatus `json:"status"`
	Matched string     `json:"matched,omitempty"`
}

// ModifyRequest is the input of the modify-and-save operation
type ModifyRequest struct {
	SourcePath  string `json:"source_path"`
	Instruction string `json:"instruction"`
	OutputPath  string `json:"output_path"`
}

// ModifyResult is the structured outcome of the modify-and-save operation
type ModifyResult struct {
	OutputPath   string           `json:"output_path"`
	Replacements *ReplacementMap  `json:"replacements"`
	PagesIn      int              `json:"pages_in"`
	PagesOut     int              `json:"pages_out"`
	Pages        []PageOutcome    `json:"pages"`
	Report       ProcessingReport `json:"report"`
	Message      string           `json:"message"`
	PublicURL    string           `json:"public_url,omitempty"`
}
