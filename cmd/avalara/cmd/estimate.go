package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	estimateLatitude  string
	estimateLongitude string
	estimateAmount    string
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate tax for a sale at a location",
	Long: `Estimate the tax on a sale amount at the given coordinates.

Examples:
  avalara estimate --latitude 47.627935 --longitude -122.51702 --amount 10`,
	Args: cobra.NoArgs,
	RunE: runEstimate,
}

func init() {
	rootCmd.AddCommand(estimateCmd)

	estimateCmd.Flags().StringVar(&estimateLatitude, "latitude", "", "Latitude")
	estimateCmd.Flags().StringVar(&estimateLongitude, "longitude", "", "Longitude")
	estimateCmd.Flags().StringVar(&estimateAmount, "amount", "", "Sale amount")
	_ = estimateCmd.MarkFlagRequired("latitude")
	_ = estimateCmd.MarkFlagRequired("longitude")
	_ = estimateCmd.MarkFlagRequired("amount")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	lat, err := decimal.NewFromString(estimateLatitude)
	if err != nil {
		return fmt.Errorf("invalid latitude: %w", err)
	}
	lon, err := decimal.NewFromString(estimateLongitude)
	if err != nil {
		return fmt.Errorf("invalid longitude: %w", err)
	}
	amount, err := decimal.NewFromString(estimateAmount)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}

	c, err := newTaxClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	resp, err := c.EstimateTax(ctx, lat, lon, amount)
	if err != nil {
		return err
	}
	return writeOutput(resp)
}
