// Package overlay renders floating content (an open dropdown list) on top of
// a background view without clearing the screen.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Config controls overlay rendering behavior.
type Config struct {
	// Width is the total viewport width.
	Width int
	// Height is the total viewport height.
	Height int
	// X and Y anchor the top-left corner of the foreground.
	X int
	Y int
	// Clamp shifts the foreground back inside the viewport when it would
	// overflow. Without it the overflowing part is clipped.
	Clamp bool
}

// Origin returns where a foreground of the given size is drawn.
func Origin(cfg Config, fgWidth, fgHeight int) (x, y int) {
	x, y = cfg.X, cfg.Y
	if cfg.Clamp {
		if cfg.Width > 0 && x+fgWidth > cfg.Width {
			x = cfg.Width - fgWidth
		}
		if cfg.Height > 0 && y+fgHeight > cfg.Height {
			y = cfg.Height - fgHeight
		}
	}
	return max(x, 0), max(y, 0)
}

// Place renders fg on top of bg at the configured anchor.
// ANSI styling in both layers is preserved.
func Place(cfg Config, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")

	// Pad background to full height
	for len(bgLines) < cfg.Height {
		bgLines = append(bgLines, strings.Repeat(" ", cfg.Width))
	}

	startX, startY := Origin(cfg, lipgloss.Width(fg), len(fgLines))

	for i, fgLine := range fgLines {
		bgY := startY + i
		if bgY >= len(bgLines) || (cfg.Height > 0 && bgY >= cfg.Height) {
			break
		}

		if cfg.Width > 0 {
			room := cfg.Width - startX
			if room <= 0 {
				break
			}
			if ansi.StringWidth(fgLine) > room {
				fgLine = ansi.Truncate(fgLine, room, "")
			}
		}

		bgLines[bgY] = splice(bgLines[bgY], fgLine, startX)
	}

	return strings.Join(bgLines, "\n")
}

// splice replaces the cells of line starting at column x with fg.
func splice(line, fg string, x int) string {
	left := ansi.Truncate(line, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}

	var right string
	end := x + ansi.StringWidth(fg)
	if end < ansi.StringWidth(line) {
		right = ansi.TruncateLeft(line, end, "")
	}
	return left + fg + right
}
