package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/avalara-go/internal/client"
	"github.com/rezonia/avalara-go/internal/model"
)

var addressQuery client.AddressQuery

var validateCmd = &cobra.Command{
	Use:   "validate-address",
	Short: "Validate and normalize an address",
	Long: `Ask the tax service to validate an address.

Examples:
  avalara validate-address --line1 "435 Ericksen Ave" --city "Bainbridge Island" --region WA
  avalara validate-address --line1 "900 Winslow Way E" --postal-code 98110`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&addressQuery.Line1, "line1", "", "Street address")
	validateCmd.Flags().StringVar(&addressQuery.Line2, "line2", "", "Address line 2")
	validateCmd.Flags().StringVar(&addressQuery.Line3, "line3", "", "Address line 3")
	validateCmd.Flags().StringVar(&addressQuery.City, "city", "", "City")
	validateCmd.Flags().StringVar(&addressQuery.Region, "region", "", "State or province")
	validateCmd.Flags().StringVar(&addressQuery.Country, "country", model.DefaultCountry, "Country code")
	validateCmd.Flags().StringVar(&addressQuery.PostalCode, "postal-code", "", "Postal code")
	_ = validateCmd.MarkFlagRequired("line1")
}

func runValidate(cmd *cobra.Command, args []string) error {
	c, err := newTaxClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	resp, err := c.ValidateAddress(ctx, addressQuery)
	if err != nil {
		return err
	}
	return writeOutput(resp)
}
