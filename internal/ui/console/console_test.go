package console

import (
	"strings"
	"testing"

	"github.com/artifact-hub/relcheck/internal/checker"
	"github.com/artifact-hub/relcheck/internal/store"
)

func TestRenderPinned(t *testing.T) {
	v := store.New()
	v.Set("tor", "tor-0.4.8.12")
	v.Set("wghttp", "")

	out := RenderPinned(v)
	if !strings.Contains(out, "tor") || !strings.Contains(out, "tor-0.4.8.12") {
		t.Errorf("pinned entry missing: %q", out)
	}
	if !strings.Contains(out, "-") {
		t.Errorf("empty version should render as dash: %q", out)
	}
}

func TestRenderUpdates(t *testing.T) {
	out := RenderUpdates([]checker.Update{
		{Name: "unbound", Current: "release-1.19.2", Latest: "release-1.19.3"},
	})
	for _, want := range []string{"unbound", "release-1.19.2", "release-1.19.3"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
}
