package cmd

import (
	"context"

	"github.com/PolarWolf314/shroud/internal/ui"
	"github.com/PolarWolf314/shroud/internal/workflows"
)

func runLock(ctx context.Context, target string) error {
	Logger.Infof("Starting lock of %s", target)

	config, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := historyStore(config)
	if err != nil {
		return err
	}
	password, err := resolvePassword(config)
	if err != nil {
		return err
	}

	spinner, cleanup := startSpinner("Locking " + target + "...")
	defer cleanup()

	result, err := workflows.Lock(ctx, workflows.LockOptions{
		TargetPath: target,
		Password:   password,
		OutputDir:  outputDir,
		History:    store,
	})
	if err != nil {
		return Logger.ErrorfAndReturn("failed to lock %s: %w", target, err)
	}
	Logger.Infof("Lock completed: %s -> %s", result.OriginalName, result.ContainerPath)

	spinner.FinalMSG = ui.Success.Sprint("✓") + " Locked " + ui.Highlight.Sprint(result.OriginalName) + "\n" +
		ui.Info.Sprint("→") + " Encrypted name: " + ui.Token.Sprint(result.EncryptedName) + "\n" +
		ui.Info.Sprint("→") + " Container: " + ui.Path.Sprint(result.ContainerPath) + "\n" +
		ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("shroud --unlock "+result.ContainerPath) + " to recover it"
	return nil
}
