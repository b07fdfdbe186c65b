package cmd

import (
	"context"

	"github.com/PolarWolf314/shroud/internal/ui"
	"github.com/PolarWolf314/shroud/internal/workflows"
)

func runUnlock(ctx context.Context, containerPath string) error {
	Logger.Infof("Starting unlock of %s", containerPath)

	config, err := loadConfig()
	if err != nil {
		return err
	}
	password, err := resolvePassword(config)
	if err != nil {
		return err
	}

	spinner, cleanup := startSpinner("Unlocking " + containerPath + "...")
	defer cleanup()

	result, err := workflows.Unlock(ctx, workflows.UnlockOptions{
		ContainerPath: containerPath,
		Password:      password,
	})
	if err != nil {
		return Logger.ErrorfAndReturn("failed to unlock %s: %w", containerPath, err)
	}
	Logger.Infof("Unlock completed: %s", result.PayloadPath)

	spinner.FinalMSG = ui.Success.Sprint("✓") + " Recovered " + ui.Highlight.Sprint(result.OriginalName) + "\n" +
		ui.Info.Sprint("→") + " Written to " + ui.Path.Sprint(result.PayloadPath)
	return nil
}
