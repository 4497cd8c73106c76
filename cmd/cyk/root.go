package main

import (
	"flag"
	"fmt"
	"os"

	log "github.com/golang/glog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cyk",
	Short: "Decide whether a sentence belongs to the language of a CNF grammar",
	Long: `cyk provides three features:
- Checks whether a sentence is a member of the language a grammar generates.
- Runs membership test cases against a grammar.
- Prints a grammar and its reverse index in readable format.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// glog reads its flags from the standard flag set, which cobra has already filled.
		return flag.CommandLine.Parse(nil)
	},
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
}

func Execute() error {
	defer log.Flush()

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
