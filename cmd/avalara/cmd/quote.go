package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rezonia/avalara-go/internal/model"
)

var quoteFlags documentFlags

var quoteCmd = &cobra.Command{
	Use:   "quote <file|->",
	Short: "Quote tax for a document",
	Long: `Build a SalesOrder request from a JSON document. Nothing is recorded by the
service for a quote.

Without --submit the request payload is printed.

Examples:
  avalara quote order.json
  cat order.json | avalara quote - --submit`,
	Args: cobra.ExactArgs(1),
}

func init() {
	rootCmd.AddCommand(quoteCmd)

	quoteFlags.register(quoteCmd)
	quoteCmd.RunE = runDocument(&quoteFlags,
		(*model.TaxDocument).FinalizeForQuote,
		func() (submitFunc, error) {
			c, err := newTaxClient()
			if err != nil {
				return nil, err
			}
			return c.GetTax, nil
		})
}
