package ui

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetTheme(t *testing.T) {
	originalTheme := GetCurrentTheme()
	defer SetCurrentTheme(originalTheme)

	testCases := []struct {
		name          string
		themeName     string
		expectedTheme Theme
	}{
		{"Set dark theme", "dark", DarkTheme},
		{"Set light theme", "light", LightTheme},
		{"Set none theme", "none", NoColorTheme},
		{"Unknown theme defaults to dark", "solarized", DarkTheme},
		{"Empty string defaults to dark", "", DarkTheme},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			SetTheme(tc.themeName)
			assert.Equal(t, tc.expectedTheme.Name, GetCurrentTheme().Name)
		})
	}
}

func TestInitTheme(t *testing.T) {
	originalTheme := GetCurrentTheme()
	defer SetCurrentTheme(originalTheme)

	t.Run("noColor flag disables colors", func(t *testing.T) {
		InitTheme(true)
		current := GetCurrentTheme()
		assert.Equal(t, "none", current.Name)
		assert.Empty(t, current.Primary)
	})

	t.Run("NO_COLOR disables colors", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		InitTheme(false)
		assert.Equal(t, "none", GetCurrentTheme().Name)
	})

	t.Run("POLYROOTS_THEME selects a theme", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		os.Unsetenv("NO_COLOR")
		t.Setenv("POLYROOTS_THEME", "light")
		InitTheme(false)
		assert.Equal(t, "light", GetCurrentTheme().Name)
	})
}

func TestThemeNames(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"dark", "light", "none"}, ThemeNames())
	_, ok := ThemeByName("light")
	assert.True(t, ok)
	_, ok = ThemeByName("solarized")
	assert.False(t, ok)
}

func TestSignedAndPaint(t *testing.T) {
	originalTheme := GetCurrentTheme()
	defer SetCurrentTheme(originalTheme)

	SetCurrentTheme(DarkTheme)
	assert.Equal(t, DarkTheme.Negative+"-336"+DarkTheme.Reset, Signed("-336"))
	assert.Equal(t, DarkTheme.Positive+"19"+DarkTheme.Reset, Signed("19"))
	assert.True(t, strings.HasPrefix(Paint(ColorBold(), "x"), "\033[1m"))

	SetCurrentTheme(NoColorTheme)
	assert.Equal(t, "-336", Signed("-336"))
	assert.Equal(t, "x", Paint(ColorRed(), "x"))
	assert.Empty(t, ColorRed())
}
