package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newExtractCmd creates the extract command.
func (a *App) newExtractCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "extract <pdf>",
		Short: "Print the text and tables of a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadContainer()
			if err != nil {
				return err
			}

			if jsonOutput {
				doc, err := c.Extractor.Extract(args[0])
				if err != nil {
					return err
				}
				return a.printJSON(doc)
			}

			content, err := c.Extractor.ReadContent(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(a.stdout, content)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the extracted document as JSON")
	return cmd
}
