package generator

// ThemeMode selects the colour scheme of the rendering surface
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// Toggle returns the opposite mode
func (m ThemeMode) Toggle() ThemeMode {
	if m == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Style is the set of CSS colours a theme maps to
type Style struct {
	PageBackground   string `json:"page_background"`
	PageText         string `json:"page_text"`
	CardBackground   string `json:"card_background"`
	InputBackground  string `json:"input_background"`
	InputBorder      string `json:"input_border"`
	SecondaryButton  string `json:"secondary_button"`
	SecondaryHover   string `json:"secondary_hover"`
	PlaceholderPanel string `json:"placeholder_panel"`
	ToggleIcon       string `json:"toggle_icon"`
}

var styles = map[ThemeMode]Style{
	ThemeLight: {
		PageBackground:   "#f9fafb",
		PageText:         "#111827",
		CardBackground:   "#ffffff",
		InputBackground:  "#ffffff",
		InputBorder:      "#d1d5db",
		SecondaryButton:  "#e5e7eb",
		SecondaryHover:   "#d1d5db",
		PlaceholderPanel: "#f3f4f6",
		ToggleIcon:       "☾",
	},
	ThemeDark: {
		PageBackground:   "#111827",
		PageText:         "#ffffff",
		CardBackground:   "#1f2937",
		InputBackground:  "#374151",
		InputBorder:      "#4b5563",
		SecondaryButton:  "#374151",
		SecondaryHover:   "#4b5563",
		PlaceholderPanel: "#374151",
		ToggleIcon:       "☀",
	},
}

// StyleFor maps a mode to its style set. Unknown modes render light.
func StyleFor(mode ThemeMode) Style {
	if s, ok := styles[mode]; ok {
		return s
	}
	return styles[ThemeLight]
}
