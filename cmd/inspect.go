package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/shroud/internal/ui"
	"github.com/PolarWolf314/shroud/internal/utils"
	"github.com/PolarWolf314/shroud/internal/workflows"
)

func runInspect(ctx context.Context, containerPath string) error {
	Logger.Infof("Inspecting %s", containerPath)

	result, err := workflows.Inspect(ctx, containerPath)
	if err != nil {
		return Logger.ErrorfAndReturn("failed to inspect %s: %w", containerPath, err)
	}

	fmt.Printf("Container %s %s\n", ui.Path.Sprint(containerPath), ui.Token.Sprint(result.EncryptedName))
	fmt.Print(utils.FormatList(result.Members, ui.Highlight))

	if !result.WellFormed {
		fmt.Println(ui.Error.Sprint("✗") + " Not a shroud container: expected one encrypted archive and one decoy")
		return nil
	}
	fmt.Println(ui.Success.Sprint("✓") + " Encrypted archive " + ui.Token.Sprint(result.InnerArchive) +
		", decoy " + ui.Highlight.Sprint(result.DecoyName))
	return nil
}
