package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/avalara-go/internal/model"
)

var (
	voidDocCode     string
	voidDocType     string
	voidCompanyCode string
	voidCancelCode  string
	voidDryRun      bool
)

var voidCmd = &cobra.Command{
	Use:   "void",
	Short: "Void a committed document",
	Long: `Cancel a previously committed document.

Examples:
  avalara void --doc-code INV-1001
  avalara void --doc-code INV-1001 --cancel-code DocDeleted --dry-run`,
	Args: cobra.NoArgs,
	RunE: runVoid,
}

func init() {
	rootCmd.AddCommand(voidCmd)

	voidCmd.Flags().StringVar(&voidDocCode, "doc-code", "", "Code of the document to void")
	voidCmd.Flags().StringVar(&voidDocType, "doc-type", string(model.DocTypeSalesInvoice), "Document type")
	voidCmd.Flags().StringVar(&voidCompanyCode, "company-code", "", "Company code (default from config)")
	voidCmd.Flags().StringVar(&voidCancelCode, "cancel-code", string(model.CancelCodeDocVoided), "Cancel code")
	voidCmd.Flags().BoolVar(&voidDryRun, "dry-run", false, "Print the cancel payload without sending it")
	_ = voidCmd.MarkFlagRequired("doc-code")
}

func runVoid(cmd *cobra.Command, args []string) error {
	fields := model.CancelFields{
		DocCode:     voidDocCode,
		DocType:     model.DocType(voidDocType),
		CompanyCode: voidCompanyCode,
		CancelCode:  model.CancelCode(voidCancelCode),
	}
	if fields.CompanyCode == "" {
		fields.CompanyCode = settings.Service.CompanyCode
	}

	if voidDryRun {
		payload, err := model.Void(fields)
		if err != nil {
			return err
		}
		return writeOutput(payload)
	}

	c, err := newTaxClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	resp, err := c.VoidDocument(ctx, fields)
	if err != nil {
		return err
	}
	return writeOutput(resp)
}
