package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rezonia/avalara-go/internal/model"
)

var commitFlags documentFlags

var commitCmd = &cobra.Command{
	Use:   "commit <file|->",
	Short: "Commit a document as a sales invoice",
	Long: `Build a committed SalesInvoice request from a JSON document.

Without --submit the request payload is printed.

Examples:
  avalara commit invoice.json
  avalara commit invoice.json --submit --generate-code`,
	Args: cobra.ExactArgs(1),
}

func init() {
	rootCmd.AddCommand(commitCmd)

	commitFlags.register(commitCmd)
	commitCmd.RunE = runDocument(&commitFlags,
		(*model.TaxDocument).FinalizeForCommit,
		func() (submitFunc, error) {
			c, err := newTaxClient()
			if err != nil {
				return nil, err
			}
			return c.CommitTax, nil
		})
}
