package cmd

import (
	"fmt"
	"runtime"

	"github.com/PolarWolf314/shroud/internal/ui"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X github.com/PolarWolf314/shroud/cmd.Version=...".
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the shroud version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		banner := figure.NewColorFigure("shroud", "slant", "cyan", true)
		banner.Print()
		fmt.Println()
		fmt.Printf("%s %s %s\n", ui.Info.Sprint("→"), Version, ui.Muted.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH))
	},
}
