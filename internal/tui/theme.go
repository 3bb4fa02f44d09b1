package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette. Adaptive colors keep the TUI readable on light and dark terminals; faint
// styling is only applied on dark backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted      lipgloss.TerminalColor = ac("240", "243")
	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")
	colorSurfaceFg  lipgloss.TerminalColor = ac("235", "252")
	colorControlBg  lipgloss.TerminalColor = ac("252", "235")
	colorAccent     lipgloss.TerminalColor = ac("27", "62")
	colorAccentFg   lipgloss.TerminalColor = ac("255", "235")
	colorBorder     lipgloss.TerminalColor = ac("250", "243")
	colorSuccess    lipgloss.TerminalColor = ac("28", "78")
	colorError      lipgloss.TerminalColor = ac("160", "203")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleHeader() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorAccentFg).Background(colorAccent).Padding(0, 1)
}

func styleSectionTitle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
}

func styleStatus(kind statusKind) lipgloss.Style {
	switch kind {
	case statusOK:
		return lipgloss.NewStyle().Foreground(colorSuccess)
	case statusError:
		return lipgloss.NewStyle().Foreground(colorError).Bold(true)
	default:
		return styleMuted()
	}
}

// applyColorProfilePreference sets Lip Gloss's color profile for the TUI.
func applyColorProfilePreference() {
	lipgloss.SetColorProfile(colorProfileFor(os.Getenv, termenv.ColorProfile()))
}

// colorProfileFor only honors NO_COLOR (CLICOLOR is for piped CLI output) and upgrades
// the detected profile when TERM or COLORTERM claim more, since some terminals
// under-report.
func colorProfileFor(getenv func(string) string, detected termenv.Profile) termenv.Profile {
	if strings.TrimSpace(getenv("NO_COLOR")) != "" {
		return termenv.Ascii
	}
	colorterm := strings.ToLower(getenv("COLORTERM"))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if detected == termenv.Ascii {
			return detected
		}
		return termenv.TrueColor
	}
	if strings.Contains(strings.ToLower(getenv("TERM")), "256color") && detected > termenv.ANSI256 {
		return termenv.ANSI256
	}
	return detected
}

// themePreference resolves the background from JEKYLL_COMPOSE_TUI_THEME=light|dark|auto,
// then the COLORFGBG "fg;bg" hint. ok is false when neither decides.
func themePreference(getenv func(string) string) (dark bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(getenv("JEKYLL_COMPOSE_TUI_THEME"))) {
	case "light":
		return false, true
	case "dark":
		return true, true
	}
	if v := strings.TrimSpace(getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			return bg < 7, true
		}
	}
	return false, false
}

func applyThemePreference() {
	if dark, ok := themePreference(os.Getenv); ok {
		lipgloss.SetHasDarkBackground(dark)
	}
}
