package cmd

import (
	"fmt"

	"github.com/PolarWolf314/shroud/internal/history"
	"github.com/PolarWolf314/shroud/internal/ui"
	"github.com/PolarWolf314/shroud/internal/workflows"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

var (
	historySearch  string
	historyLimit   int
	historyReverse bool
	historyJSON    bool
)

func init() {
	historyCmd.Flags().StringVarP(&historySearch, "search", "s", "", "show records whose names contain this text")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "limit number of records shown")
	historyCmd.Flags().BoolVar(&historyReverse, "reverse", false, "show most recent records first")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON array")
}

// resetHistoryCommandState resets the history command's global state for testing.
func resetHistoryCommandState() {
	historySearch = ""
	historyLimit = 0
	historyReverse = false
	historyJSON = false
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View the history of locked files",
	Long: `Displays every file that has been locked, with the encrypted name of
the container it went into.

Examples:
  shroud history                  # Full history, oldest first
  shroud history -n 5 --reverse   # Five most recent
  shroud history --search notes   # Match original or encrypted names
  shroud history --json           # JSON output`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting history command")

	config, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := historyStore(config)
	if err != nil {
		return err
	}

	result, err := workflows.History(cmd.Context(), workflows.HistoryOptions{
		Store:   store,
		Search:  historySearch,
		Limit:   historyLimit,
		Reverse: historyReverse,
	})
	if err != nil {
		return Logger.ErrorfAndReturn("failed to read history %s: %w", store.Path, err)
	}
	Logger.Debugf("History has %d records, %d shown", result.Total, len(result.Records))

	if historyJSON {
		data, err := history.Encode(result.Records)
		if err != nil {
			return fmt.Errorf("failed to encode history: %w", err)
		}
		fmt.Print(string(data))
		return nil
	}

	if len(result.Records) == 0 {
		if result.Total == 0 {
			fmt.Println("No files have been locked yet.")
		} else {
			fmt.Println("No history records match " + ui.Highlight.Sprint(historySearch) + ".")
		}
		return nil
	}

	width := runewidth.StringWidth("ORIGINAL NAME")
	for _, r := range result.Records {
		if w := runewidth.StringWidth(r.OriginalName); w > width {
			width = w
		}
	}

	fmt.Println(historyRow("ORIGINAL NAME", "ENCRYPTED NAME", width))
	for _, r := range result.Records {
		fmt.Println(historyRow(r.OriginalName, r.EncryptedName, width))
	}
	if len(result.Records) < result.Total {
		fmt.Println(ui.Muted.Sprintf("%d of %d records", len(result.Records), result.Total))
	}
	return nil
}

// historyRow pads name to width terminal cells, so wide characters line up.
func historyRow(name, encrypted string, width int) string {
	return runewidth.FillRight(name, width) + "  " + encrypted
}
