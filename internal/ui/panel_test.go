package ui

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanelPadsToWidestLine(t *testing.T) {
	SetColorForcing(false, true)
	SetTheme("mono")
	t.Cleanup(func() {
		SetColorForcing(false, false)
		SetTheme("classic")
	})

	var buf bytes.Buffer
	Panel(&buf, []string{"Todos", "- Walk the dog"})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "+----------------+", lines[0])
	assert.Equal(t, "| Todos          |", lines[1])
	assert.Equal(t, "| - Walk the dog |", lines[2])
	assert.Equal(t, lines[0], lines[3])
}

func TestPanelIgnoresANSIWidth(t *testing.T) {
	SetTheme("classic")
	var buf bytes.Buffer
	Panel(&buf, []string{"\033[1mab\033[0m", "abcd"})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, "│ \033[1mab\033[0m   │", lines[1])
}

func TestCDisabled(t *testing.T) {
	SetColorForcing(true, true)
	t.Cleanup(func() { SetColorForcing(false, false) })
	assert.Equal(t, "x", C(fgRed, "x"))
}

func TestCForced(t *testing.T) {
	SetColorForcing(true, false)
	t.Cleanup(func() { SetColorForcing(false, false) })
	assert.Equal(t, fgRed+"x"+reset, C(fgRed, "x"))
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))

	name := strings.Repeat("é", 41)
	assert.Equal(t, name, Truncate(name, 80))

	long := strings.Repeat("é", 90)
	got := Truncate(long, 80)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", 77)+"...", got)

	wide := Truncate(strings.Repeat("猫", 50), 80)
	assert.True(t, utf8.ValidString(wide))
	assert.LessOrEqual(t, visibleWidth(wide), 80)
	assert.True(t, strings.HasSuffix(wide, "..."))
}

func TestSetColorMode(t *testing.T) {
	t.Cleanup(func() { SetColorForcing(false, false) })

	require.NoError(t, SetColorMode("always"))
	assert.Equal(t, fgRed+"x"+reset, C(fgRed, "x"))

	require.NoError(t, SetColorMode("NEVER"))
	assert.Equal(t, "x", C(fgRed, "x"))

	require.NoError(t, SetColorMode(""))
	assert.False(t, forceColor)
	assert.False(t, disableColor)

	assert.ErrorContains(t, SetColorMode("rainbow"), "unknown color mode")
}

func TestOKAndFail(t *testing.T) {
	SetTheme("classic")
	SetColorForcing(true, false)
	t.Cleanup(func() { SetColorForcing(false, false) })

	var buf bytes.Buffer
	OK(&buf, "done")
	Fail(&buf, "broken")
	assert.Equal(t, fgGreen+"✔ done"+reset+"\n"+fgRed+"✖ broken"+reset+"\n", buf.String())
}
