package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

type globalOptions struct {
	profile string
	verbose bool
	debug   bool
}

var globals = &globalOptions{
	profile: "default",
}

var rootCmd = &cobra.Command{
	Use:           "spoctl",
	Short:         "CLI for managing SharePoint Online sites and lists",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command hierarchy. Errors pass through unchanged so
// remote failure messages reach the user verbatim.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globals.profile, "profile", globals.profile, "Auth profile to use")
	rootCmd.PersistentFlags().BoolVar(&globals.verbose, "verbose", false, "Emit progress and confirmation messages")
	rootCmd.PersistentFlags().BoolVar(&globals.debug, "debug", false, "Emit diagnostic output")

	rootCmd.SetErr(os.Stderr)
	rootCmd.SetOut(os.Stdout)

	rootCmd.AddCommand(newAuthCmd(globals))
	rootCmd.AddCommand(newListCmd(globals))
}
