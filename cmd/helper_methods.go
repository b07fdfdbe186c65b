package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/shroud/internal/configs"
	"github.com/PolarWolf314/shroud/internal/history"
	"github.com/PolarWolf314/shroud/internal/ui"
	"github.com/PolarWolf314/shroud/internal/utils"
	"github.com/briandowns/spinner"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stderr)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// loadConfig loads the config named by --config.
func loadConfig() (*configs.Config, error) {
	Logger.Debugf("Loading config from %s", configPath)
	config, err := configs.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	Logger.Infof("Using %s config %s", configs.FormatFor(config.Path()), config.Path())
	return config, nil
}

// resolvePassword returns the password from stdin with --password-stdin,
// otherwise the configured one, prompting when it is empty and stdin is a
// terminal.
func resolvePassword(config *configs.Config) ([]byte, error) {
	if pwStdin {
		Logger.Debugf("Reading password from stdin")
		return utils.ReadPasswordStdin()
	}
	if config.Password != "" {
		return []byte(config.Password), nil
	}
	if !utils.IsTerminal() {
		Logger.Debugf("No password configured and stdin is not a terminal")
		return nil, nil
	}

	Logger.Debugf("No password configured, prompting")
	return utils.ReadPassphrase("Password: ")
}

// historyStore returns the history log selected by --history or the config.
func historyStore(config *configs.Config) (*history.JSONFile, error) {
	path := historyPath
	if path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve history path %s: %w", path, err)
		}
		path = abs
	} else {
		resolved, err := config.HistoryLogPath()
		if err != nil {
			return nil, err
		}
		path = resolved
	}

	Logger.Debugf("Using history log %s", path)
	return history.NewJSONFile(path), nil
}
