package cli

import (
	"fmt"

	"pdf-edit-automation/internal/domain"

	"github.com/spf13/cobra"
)

// modifyOptions holds options for the modify command.
type modifyOptions struct {
	request    string
	outputPath string
	jsonOutput bool
}

// newModifyCmd creates the modify command.
func (a *App) newModifyCmd() *cobra.Command {
	opts := &modifyOptions{}

	cmd := &cobra.Command{
		Use:   "modify <pdf>",
		Short: "Run the modify-and-save tool without the crew",
		Long: `Parse "Replace X with Y" instructions from --request and copy every page
of the PDF into --output, reporting identified replacements.

Example:
  pdf-automation modify invoice.pdf -r "Replace '2023' with '2024'" -o invoice-2024.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadContainer()
			if err != nil {
				return err
			}

			result, err := c.PDFService.Modify(cmd.Context(), domain.ModifyRequest{
				SourcePath:  args[0],
				Instruction: opts.request,
				OutputPath:  firstNonEmpty(opts.outputPath, c.Config.GetDefaultOutputPath()),
			})
			if err != nil {
				return err
			}

			if opts.jsonOutput {
				return a.printJSON(result)
			}
			fmt.Fprintln(a.stdout, result.Message)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.request, "request", "r", "", "Modification description, e.g. \"Replace 'a' with 'b'\"")
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "Output PDF (defaults to OUTPUT_FILE or modified_output.pdf)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output the result as JSON")

	return cmd
}
