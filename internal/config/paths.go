package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Locations are the per-user and machine-wide directories configuration is
// looked up under.
type Locations struct {
	GOOS string
	Home string
	// XDGConfig is $XDG_CONFIG_HOME.
	XDGConfig string
	// AppData is %APPDATA% and ProgramData is %ProgramData%.
	AppData     string
	ProgramData string
}

// SystemLocations reads Locations from the running process.
func SystemLocations() Locations {
	home, _ := os.UserHomeDir()
	return Locations{
		GOOS:        runtime.GOOS,
		Home:        home,
		XDGConfig:   os.Getenv("XDG_CONFIG_HOME"),
		AppData:     os.Getenv("APPDATA"),
		ProgramData: os.Getenv("ProgramData"),
	}
}

// Dir returns the configuration directory of app. A per-user directory is
// preferred; without one the machine-wide directory is used.
func (l Locations) Dir(app string) string {
	switch l.GOOS {
	case "darwin":
		if l.Home == "" {
			return filepath.Join("/Library", "Application Support", app)
		}
		return filepath.Join(l.Home, "Library", "Application Support", app)
	case "windows":
		if l.AppData != "" {
			return filepath.Join(trimSep(l.AppData), app)
		}
		pd := trimSep(l.ProgramData)
		if pd == "" {
			pd = "C:/ProgramData"
		}
		return filepath.Join(pd, app)
	default:
		switch {
		case l.XDGConfig != "":
			return filepath.Join(l.XDGConfig, app)
		case l.Home != "":
			return filepath.Join(l.Home, ".config", app)
		}
		return filepath.Join("/etc", app)
	}
}

// File returns the default config file of app, "<dir>/<app>.yaml".
func (l Locations) File(app string) string {
	return filepath.Join(l.Dir(app), app+".yaml")
}

func trimSep(p string) string { return strings.TrimRight(p, "\\/") }
