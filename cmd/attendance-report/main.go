package main

import (
	"os"

	"github.com/spf13/cobra"

	"attendcli/internal/config"
	"attendcli/pkg/contracts"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   config.AppBinary,
		Short: "Reconcile clock punches into attendance reports",
		Long: `Reconciles raw clock-in/clock-out punches into one shift per employee and
day, flags anomalous shift lengths, summarizes hours by month and day type
and groups employees by attendance behaviour.`,
		Version:       contracts.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetVersionTemplate(contracts.GetVersionString() + "\n")

	root.AddCommand(newRunCmd())
	root.AddCommand(newVersionCmd())
	return root
}
