package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "sifter",
	Short: "sifter - staged equity screening funnel",
	Long: `sifter screens an equity universe through a five-stage funnel
(earnings, fundamental, weekly, relative strength, daily breakout)
and manages open-position risk with a stepped trailing stop.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
