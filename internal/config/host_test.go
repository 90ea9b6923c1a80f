package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocationsFile(t *testing.T) {
	tests := []struct {
		name string
		loc  Locations
		app  string
		want string
	}{
		{name: "linux", loc: Locations{GOOS: "linux", Home: "/home/user"}, app: "harness", want: "/home/user/.config/harness/harness.yaml"},
		{name: "linux xdg", loc: Locations{GOOS: "linux", Home: "/home/user", XDGConfig: "/xdg"}, app: "demo", want: "/xdg/demo/demo.yaml"},
		{name: "linux without home", loc: Locations{GOOS: "linux"}, app: "harness", want: "/etc/harness/harness.yaml"},
		{name: "darwin", loc: Locations{GOOS: "darwin", Home: "/Users/test"}, app: "harness", want: "/Users/test/Library/Application Support/harness/harness.yaml"},
		{name: "windows appdata", loc: Locations{GOOS: "windows", AppData: "C:\\Users\\me\\AppData\\Roaming\\", ProgramData: "D:/pd"}, app: "harness", want: "C:/Users/me/AppData/Roaming/harness/harness.yaml"},
		{name: "windows ProgramData", loc: Locations{GOOS: "windows", ProgramData: "D:\\pd\\"}, app: "harness", want: "D:/pd/harness/harness.yaml"},
		{name: "windows default ProgramData", loc: Locations{GOOS: "windows"}, app: "harness", want: "C:/ProgramData/harness/harness.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strings.ReplaceAll(tt.loc.File(tt.app), "\\", "/")
			if got != tt.want {
				t.Errorf("got %q want %q", got, tt.want)
			}
		})
	}
}

func TestAppNameSelectsConfigFile(t *testing.T) {
	t.Setenv("HARNESS_CONFIG", "")
	t.Setenv("HARNESS_APP_NAME", "demo")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.AppName != "demo" || filepath.Base(c.ConfigFile) != "demo.yaml" || filepath.Base(filepath.Dir(c.ConfigFile)) != "demo" {
		t.Fatalf("app %q config %q", c.AppName, c.ConfigFile)
	}
}

func TestPrecedenceDefaultsFileEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "harness.yaml")
	yaml := "log_level: debug\nmin_width: 500\ndefault_args: [\"--app\", \"hello\"]\nplugins: [startapp, windowoptions]\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HARNESS_CONFIG", path)
	t.Setenv("HARNESS_MIN_HEIGHT", "400")
	t.Setenv("HARNESS_LOG_LEVEL", "warn")

	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.LogLevel != "warn" {
		t.Fatalf("log level: %q", c.LogLevel)
	}
	if c.MinWidth != 500 || c.MinHeight != 400 {
		t.Fatalf("min extent: %dx%d", c.MinWidth, c.MinHeight)
	}
	if strings.Join(c.DefaultArgs, " ") != "--app hello" {
		t.Fatalf("default args: %v", c.DefaultArgs)
	}
	if !c.PluginEnabled("startapp") || c.PluginEnabled("benchmark") {
		t.Fatalf("plugins: %v", c.Plugins)
	}
	if c.AppName != "harness" {
		t.Fatalf("app name: %q", c.AppName)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HARNESS_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("HARNESS_ARGS", "--app, bounce ,")
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.MinWidth != DefaultMinWidth || c.MinHeight != DefaultMinHeight {
		t.Fatalf("defaults not applied: %+v", c)
	}
	if strings.Join(c.DefaultArgs, "|") != "--app|bounce" {
		t.Fatalf("args: %q", c.DefaultArgs)
	}
	if !c.PluginEnabled("anything") {
		t.Fatal("wildcard should enable every plugin")
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("min_width: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HARNESS_CONFIG", path)
	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
}
