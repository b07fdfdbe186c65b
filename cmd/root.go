package cmd

import (
	"context"
	"fmt"
	"io"

	logger "github.com/PolarWolf314/shroud/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	configPath  string
	historyPath string
	unlockFlag  bool
	inspectFlag bool
	outputDir   string
	pwStdin     bool

	RootCmd = &cobra.Command{
		Use:   "shroud <file>",
		Short: "Hide a file inside a password-protected container",
		Long: `Shroud hides a file inside a nested, password-protected container.

The file and its name are sealed in an AES-encrypted zip, which is packed
together with an empty decoy into a tar archive named after a random
identifier. Every lock is recorded in a history log.

Examples:
  shroud notes.txt                     # Lock notes.txt next to itself
  shroud notes.txt -o ~/vault          # Lock into another directory
  shroud --unlock Xq3vB0fT9kLmPz2RwY7a.tar
  shroud --inspect Xq3vB0fT9kLmPz2RwY7a.tar
  shroud history --search notes

The password is read from the config file (config.json next to the
executable by default), from SHROUD_PASSWORD, or from stdin with
--password-stdin. When none is set and stdin is a terminal, it is
prompted for.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing shroud with verbose=%t, debug=%t", verbose, debug)
		},
		RunE: runRoot,
	}
)

func init() {
	registerGlobalFlags(RootCmd.PersistentFlags())

	RootCmd.Flags().BoolVarP(&unlockFlag, "unlock", "u", false, "recover the file hidden in a container")
	RootCmd.Flags().BoolVar(&inspectFlag, "inspect", false, "list a container's members without decrypting")
	RootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "directory to write the container to (default: next to the file)")
	RootCmd.MarkFlagsMutuallyExclusive("unlock", "inspect")
	RootCmd.MarkFlagsMutuallyExclusive("output", "unlock")
	RootCmd.MarkFlagsMutuallyExclusive("output", "inspect")

	RootCmd.AddCommand(historyCmd)
	RootCmd.AddCommand(versionCmd)
}

// registerGlobalFlags adds the flags shared by every shroud command.
func registerGlobalFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&configPath, "config", "c", "config.json", "config file (.json, .toml, .yaml)")
	fs.StringVar(&historyPath, "history", "", "history log file (default: from config)")
	fs.BoolVar(&pwStdin, "password-stdin", false, "read the password from stdin instead of the config")
	fs.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	fs.BoolVarP(&debug, "debug", "d", false, "enable debug output")
}

func runRoot(cmd *cobra.Command, args []string) error {
	switch {
	case inspectFlag:
		return runInspect(cmd.Context(), args[0])
	case unlockFlag:
		return runUnlock(cmd.Context(), args[0])
	default:
		return runLock(cmd.Context(), args[0])
	}
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return RootCmd.ExecuteContext(ctx)
}

// PrintError writes err the way the shroud binary reports failures.
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}

// Helper functions for testing

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	configPath = "config.json"
	historyPath = ""
	unlockFlag = false
	inspectFlag = false
	outputDir = ""
	pwStdin = false
	resetHistoryCommandState()
	resetFlagState()
}

// resetFlagState clears the Changed marks cobra keeps between executions.
func resetFlagState() {
	for _, c := range append([]*cobra.Command{RootCmd}, RootCmd.Commands()...) {
		c.Flags().VisitAll(func(flag *pflag.Flag) {
			flag.Changed = false
		})
		c.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
			flag.Changed = false
		})
	}
}
