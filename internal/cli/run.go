package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"pdf-edit-automation/internal/domain"

	"github.com/spf13/cobra"
)

const requestPrompt = "Please enter the modification you want to make to the PDF: "

// runOptions holds options for the run command.
type runOptions struct {
	pdfPath    string
	outputPath string
	request    string
	noLLM      bool
	jsonOutput bool
}

// newRunCmd creates the run command.
func (a *App) newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the analyze and modify crew on a PDF",
		Long: `Run the PDF modification crew.

The analyzer reads the PDF and turns the request into replacement
instructions; the modifier copies every page into the output file and
reports which replacements were identified.

Examples:
  # Prompt for the request, using PDF_PATH and OUTPUT_FILE
  pdf-automation run

  # Provide everything on the command line
  pdf-automation run --pdf contract.pdf --output contract-v2.pdf \
    --request "Replace 'ACME Ltd' with 'ACME Inc'"

  # Skip the language model and use the request as instructions
  pdf-automation run --no-llm --request "Replace 'draft' with 'final'"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCrew(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.pdfPath, "pdf", "", "PDF to modify (defaults to PDF_PATH or word-file.pdf)")
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "Output PDF (defaults to OUTPUT_FILE or modified_output.pdf)")
	cmd.Flags().StringVarP(&opts.request, "request", "r", "", "Modification request; prompted for when omitted")
	cmd.Flags().BoolVar(&opts.noLLM, "no-llm", false, "Use the request as instructions without a language model")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output results as JSON")

	return cmd
}

// runCrew executes the crew with the given options.
func (a *App) runCrew(ctx context.Context, opts *runOptions) error {
	c, err := a.loadContainer()
	if err != nil {
		return err
	}

	pdfPath := absPath(firstNonEmpty(opts.pdfPath, c.Config.GetDefaultPDFPath()))
	if _, err := os.Stat(pdfPath); err != nil {
		return fmt.Errorf("PDF file not found at expected location: %s", pdfPath)
	}
	outputPath := absPath(firstNonEmpty(opts.outputPath, c.Config.GetDefaultOutputPath()))

	request := strings.TrimSpace(opts.request)
	if request == "" {
		request, err = a.prompt(requestPrompt)
		if err != nil {
			return err
		}
	}
	if request == "" {
		return domain.ErrEmptyRequest
	}

	fmt.Fprintf(a.stdout, "\nStarting PDF modification crew for file: %s\n", pdfPath)
	fmt.Fprintf(a.stdout, "User request: %s\n\n", request)

	var llm domain.LLM
	if !opts.noLLM {
		llm, err = a.newLLM(ctx, c)
		if err != nil {
			return fmt.Errorf("failed to create language model: %w", err)
		}
		if closer, ok := llm.(io.Closer); ok {
			defer closer.Close()
		}
	}

	result, err := c.NewCrew(llm).Kickoff(ctx, domain.CrewInputs{
		PDFPath:     pdfPath,
		UserRequest: request,
		OutputPath:  outputPath,
	})
	if err != nil {
		return fmt.Errorf("an error occurred while running the crew: %w", err)
	}

	if opts.jsonOutput {
		return a.printJSON(result)
	}
	fmt.Fprintln(a.stdout, "Crew finished execution.")
	fmt.Fprintln(a.stdout, "Result:")
	fmt.Fprintln(a.stdout, result.Final())
	fmt.Fprintf(a.stdout, "\nCheck for the modified file at: %s\n", result.Modification.OutputPath)
	return nil
}

// prompt writes question and reads one line of input
func (a *App) prompt(question string) (string, error) {
	fmt.Fprint(a.stdout, question)
	line, err := bufio.NewReader(a.stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read request: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
