package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sifterlab/sifter/internal/risk"
	"github.com/spf13/cobra"
)

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Position risk calculations",
}

var (
	stopEntry    float64
	stopGain     float64
	stopCurrent  float64
	stopRiskUnit float64
	stopMinPct   float64
)

var riskStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Compute the stepped trailing stop for a position",
	RunE: func(cmd *cobra.Command, args []string) error {
		if stopEntry <= 0 {
			return fmt.Errorf("--entry must be positive")
		}
		if stopRiskUnit <= 0 {
			return fmt.Errorf("--risk-unit must be positive")
		}
		stop := risk.ComputeStopLoss(stopGain, stopCurrent, stopEntry, stopRiskUnit, stopMinPct)
		fmt.Printf("stop: %.2f\n", stop)
		return nil
	},
}

var (
	sizeBalance float64
	sizePrice   float64
	sizeSlots   int
	sizeUsed    int
	sizeMaxPct  float64
)

var riskSizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Size a new position against available capital",
	RunE: func(cmd *cobra.Command, args []string) error {
		size := risk.SizePosition(
			decimal.NewFromFloat(sizeBalance),
			decimal.NewFromFloat(sizePrice),
			sizeSlots, sizeUsed, sizeMaxPct,
		)
		if size.Zero() {
			fmt.Println("no position: no slots remaining or price exceeds slot target")
			return nil
		}
		fmt.Printf("quantity: %d\n", size.Quantity)
		fmt.Printf("value:    %s\n", size.Value.StringFixed(2))
		fmt.Printf("pct:      %s%%\n", size.PctOfBalance.Mul(decimal.NewFromInt(100)).StringFixed(2))
		return nil
	},
}

var (
	trailEntry    float64
	trailQuantity int64
	trailRiskUnit float64
	trailMinPct   float64
)

var riskTrailCmd = &cobra.Command{
	Use:   "trail <price,price,...>",
	Short: "Replay a price sequence through the trailing stop",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if trailEntry <= 0 {
			return fmt.Errorf("--entry must be positive")
		}
		if trailRiskUnit <= 0 {
			return fmt.Errorf("--risk-unit must be positive")
		}

		pos := risk.NewPosition("", trailQuantity, trailEntry, trailRiskUnit, trailMinPct)
		fmt.Printf("%-10s %-10s %-10s %-10s\n", "price", "gain", "stop", "pl")
		for _, raw := range strings.Split(args[0], ",") {
			price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				return fmt.Errorf("bad price %q: %w", raw, err)
			}
			pos = risk.UpdatePosition(pos, price)
			marker := ""
			if pos.Stopped() {
				marker = "  <- stopped"
			}
			fmt.Printf("%-10.2f %-10.4f %-10.2f %-10.2f%s\n",
				pos.Price, pos.GainRatio, pos.StopLoss, pos.PL, marker)
		}
		return nil
	},
}

func init() {
	riskStopCmd.Flags().Float64Var(&stopEntry, "entry", 0, "entry price")
	riskStopCmd.Flags().Float64Var(&stopGain, "gain", 1.0, "cumulative gain ratio (1.0 = break-even)")
	riskStopCmd.Flags().Float64Var(&stopCurrent, "current-stop", 0, "current stop price")
	riskStopCmd.Flags().Float64Var(&stopRiskUnit, "risk-unit", 0.05, "risk unit as fraction of entry")
	riskStopCmd.Flags().Float64Var(&stopMinPct, "min-stop", 0.03, "floor stop as fraction below entry")
	riskStopCmd.MarkFlagRequired("entry")

	riskSizeCmd.Flags().Float64Var(&sizeBalance, "balance", 0, "available balance")
	riskSizeCmd.Flags().Float64Var(&sizePrice, "price", 0, "share price")
	riskSizeCmd.Flags().IntVar(&sizeSlots, "max-slots", 10, "maximum concurrent positions")
	riskSizeCmd.Flags().IntVar(&sizeUsed, "open-slots", 0, "slots already in use")
	riskSizeCmd.Flags().Float64Var(&sizeMaxPct, "max-pct", 0.4, "per-position cap as fraction of balance")
	riskSizeCmd.MarkFlagRequired("balance")
	riskSizeCmd.MarkFlagRequired("price")

	riskTrailCmd.Flags().Float64Var(&trailEntry, "entry", 0, "entry price")
	riskTrailCmd.Flags().Int64Var(&trailQuantity, "quantity", 1, "share quantity")
	riskTrailCmd.Flags().Float64Var(&trailRiskUnit, "risk-unit", 0.05, "risk unit as fraction of entry")
	riskTrailCmd.Flags().Float64Var(&trailMinPct, "min-stop", 0.03, "floor stop as fraction below entry")
	riskTrailCmd.MarkFlagRequired("entry")

	riskCmd.AddCommand(riskStopCmd, riskSizeCmd, riskTrailCmd)
	rootCmd.AddCommand(riskCmd)
}
