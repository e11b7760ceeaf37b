package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.DrawTextColored(2, 0, "cd", core.ColorRed)
	s.SetColored(0, 1, '█', core.ANSI(71))

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for _, want := range []string{"ab", "cd"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("line 0 %q missing %q", lines[0], want)
		}
	}
	if !strings.Contains(lines[1], "█") {
		t.Errorf("line 1 %q missing block", lines[1])
	}
}

func TestStyleForCaches(t *testing.T) {
	c := core.ANSI(203)
	_ = styleFor(c)

	stylesMu.Lock()
	_, ok := styles[c]
	stylesMu.Unlock()
	if !ok {
		t.Error("style should be cached after first use")
	}
}
