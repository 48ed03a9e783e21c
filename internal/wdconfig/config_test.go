package wdconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadYAMLFileMissingFileYieldsDefaults(t *testing.T) {
	src, err := LoadYAMLFile(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("LoadYAMLFile: %v", err)
	}
	if got := src.Bool("SvcWatchDogClient", "Enabled", true); !got {
		t.Errorf("Bool default = %v, want true", got)
	}
	if got := src.Int("SvcWatchDogClient", "UdpPingInterval", 10); got != 10 {
		t.Errorf("Int default = %d, want 10", got)
	}
}

func TestLoadYAMLFileParsesSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := "SvcWatchDogClient:\n  Enabled: false\n  UdpPingInterval: 30\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	src, err := LoadYAMLFile(path)
	if err != nil {
		t.Fatalf("LoadYAMLFile: %v", err)
	}
	if got := src.Bool("SvcWatchDogClient", "Enabled", true); got {
		t.Errorf("Bool = %v, want false", got)
	}
	if got := src.Int("SvcWatchDogClient", "UdpPingInterval", 10); got != 30 {
		t.Errorf("Int = %d, want 30", got)
	}
}

func TestYAMLSourceMissingKeyYieldsDefault(t *testing.T) {
	src := NewYAMLSource(Document{"SvcWatchDogClient": {"Enabled": true}})
	if got := src.Int("SvcWatchDogClient", "UdpPingInterval", 7); got != 7 {
		t.Errorf("Int = %d, want 7", got)
	}
	if got := src.Bool("OtherSection", "Enabled", false); got {
		t.Errorf("Bool = %v, want false", got)
	}
}

func TestStaticSource(t *testing.T) {
	src := NewStaticSource()
	src.Bools["SvcWatchDogClient.Enabled"] = false
	src.Ints["SvcWatchDogClient.UdpPingInterval"] = 5

	if got := src.Bool("SvcWatchDogClient", "Enabled", true); got {
		t.Errorf("Bool = %v, want false", got)
	}
	if got := src.Int("SvcWatchDogClient", "UdpPingInterval", 10); got != 5 {
		t.Errorf("Int = %d, want 5", got)
	}
	if got := src.Int("SvcWatchDogClient", "Missing", 99); got != 99 {
		t.Errorf("Int = %d, want 99", got)
	}
}
