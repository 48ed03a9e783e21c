package watchdog

import (
	"strings"
	"testing"

	"github.com/svcwatchdog/watchdogclient/internal/wdconfig"
)

func TestTimeoutDetectorUniqueSuffixAvoidsCollisions(t *testing.T) {
	c := New()
	c.Initialize(wdconfig.NewStaticSource())
	if err := c.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer c.Stop()

	a := NewTimeoutDetector(c, "rebuild-index", 30, true)
	b := NewTimeoutDetector(c, "rebuild-index", 30, true)
	defer a.Close()
	defer b.Close()

	if a.Name() == b.Name() {
		t.Fatal("expected distinct names for concurrent unique-suffixed detectors")
	}
	if !strings.HasPrefix(a.Name(), "rebuild-index.") {
		t.Errorf("Name() = %q, want rebuild-index.<uuid>", a.Name())
	}
}

func TestTimeoutDetectorCloseIsIdempotent(t *testing.T) {
	c := New()
	c.Initialize(wdconfig.NewStaticSource())
	if err := c.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer c.Stop()

	td := NewTimeoutDetector(c, "rebuild-index", 30, false)
	td.Close()
	td.Close() // must not panic or double-log
	if c.IsUDPPingingActive() {
		t.Error("unrelated: sanity check that heartbeat stayed inactive")
	}
}
