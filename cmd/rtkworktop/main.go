package main

import (
	"fmt"
	"os"

	log "github.com/inconshreveable/log15"
	"github.com/spf13/cobra"

	"github.com/Krulknul/radix-engine-toolkit/cli/commands"
)

var rootCmd = &cobra.Command{
	Use:   "rtkworktop",
	Short: "Static trusted worktop analysis for transaction manifests",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, _ := cmd.Flags().GetString("loglevel")
		setupLog(level)
	},
}

func init() {
	rootCmd.PersistentFlags().String("loglevel", "error", "log level (debug, info, warn, error)")
	rootCmd.AddCommand(
		commands.AnalyzeCmd(),
	)
}

func setupLog(level string) {
	lvl, err := log.LvlFromString(level)
	if err != nil {
		lvl = log.LvlError
	}
	log.Root().SetHandler(log.LvlFilterHandler(lvl, log.StreamHandler(os.Stderr, log.LogfmtFormat())))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
