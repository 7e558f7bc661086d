package overlay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlace_AtAnchor(t *testing.T) {
	bg := "AAAAA\nAAAAA\nAAAAA"
	result := Place(Config{Width: 5, Height: 3, X: 1, Y: 1}, "XX", bg)

	lines := strings.Split(result, "\n")
	require.Equal(t, []string{"AAAAA", "AXXAA", "AAAAA"}, lines)
}

func TestPlace_PadsShortBackground(t *testing.T) {
	result := Place(Config{Width: 4, Height: 3, X: 0, Y: 2}, "XY", "AAAA")

	lines := strings.Split(result, "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "XY  ", lines[2])
}

func TestPlace_AnchorBeyondLine(t *testing.T) {
	result := Place(Config{Width: 6, Height: 1, X: 4}, "X", "AB")
	require.Equal(t, "AB  X", result)
}

func TestPlace_ClipWithoutClamp(t *testing.T) {
	bg := "AAAAA\nAAAAA\nAAAAA"
	fg := "XXX\nXXX\nXXX"
	result := Place(Config{Width: 5, Height: 3, X: 3, Y: 1}, fg, bg)

	lines := strings.Split(result, "\n")
	require.Equal(t, []string{"AAAAA", "AAAXX", "AAAXX"}, lines, "overflow is clipped at the viewport edges")
}

func TestPlace_Clamp(t *testing.T) {
	bg := "AAAAA\nAAAAA\nAAAAA"
	fg := "XXX\nXXX"
	result := Place(Config{Width: 5, Height: 3, X: 3, Y: 2, Clamp: true}, fg, bg)

	lines := strings.Split(result, "\n")
	require.Equal(t, []string{"AAAAA", "AAXXX", "AAXXX"}, lines)
}

func TestOrigin(t *testing.T) {
	x, y := Origin(Config{Width: 10, Height: 5, X: 8, Y: 4, Clamp: true}, 4, 3)
	require.Equal(t, 6, x)
	require.Equal(t, 2, y)

	x, y = Origin(Config{Width: 10, Height: 5, X: 8, Y: 4}, 4, 3)
	require.Equal(t, 8, x)
	require.Equal(t, 4, y)

	x, y = Origin(Config{Width: 2, Height: 1, X: 0, Y: 0, Clamp: true}, 5, 3)
	require.Equal(t, 0, x, "never negative")
	require.Equal(t, 0, y, "never negative")
}

func TestPlace_PreservesStyledBackground(t *testing.T) {
	bg := "\x1b[31mRRRRR\x1b[0m"
	result := Place(Config{Width: 5, Height: 1, X: 2}, "X", bg)
	require.Contains(t, result, "X")
	require.Contains(t, result, "\x1b[31m")
}
