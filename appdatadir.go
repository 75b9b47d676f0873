// Copyright (c) 2025 The chainwatch developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"runtime"
)

// appDataDir returns an operating system specific directory to be used for
// storing application data for an application. The appName parameter is the
// name of the application the data directory is being requested for.
//
// On Unix it follows the XDG Base Directory specification fallback of
// ~/.appName; on macOS it uses ~/Library/Application Support/appName; on
// Windows it uses %LOCALAPPDATA%\appName.
func appDataDir(appName string, roaming bool) string {
	if appName == "" || appName == "." {
		return "."
	}

	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("LOCALAPPDATA")
		if roaming {
			appData = os.Getenv("APPDATA")
		}
		if appData == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "."
			}
			appData = homeDir
		}
		return filepath.Join(appData, appName)

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		return filepath.Join(homeDir, "Library", "Application Support", appName)

	default:
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		return filepath.Join(homeDir, "."+appName)
	}
}
