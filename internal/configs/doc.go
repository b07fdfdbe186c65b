// Package configs loads the shroud configuration file.
//
// The config holds the lock/unlock password and, optionally, where the
// history log lives:
//
//	{
//	    "password": "hunter2",
//	    "history_path": "history.json"
//	}
//
// The encoding follows the file extension: .json (the default), .toml or
// .yaml/.yml. A missing config is created with an empty password.
//
// # Paths
//
// Relative paths, for both the config file itself and history_path, are
// resolved against the program directory (see utils.ProgramDir), not the
// working directory, so the config travels with the binary.
//
// # Environment
//
// SHROUD_PASSWORD, when set and non-empty, replaces the stored password.
package configs
