// internal/models/themes.go
package models

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Theme colors back buttons and banners, not body text, so we use the AA
// large-text threshold.
const wcagAAMinContrastRatio = 3.0
const wcagAAContrastNote = "WCAG AA for large text/UI components"
const darkTextColor = "#000000"
const lightTextColor = "#FFFFFF"
const defaultThemePrimary = "#18abdb"
const defaultThemeSurface = "#EEFBFF"
const defaultThemeAccent = "#f59e0b"

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func IsHexColor(value string) bool {
	return hexColorRegex.MatchString(strings.TrimSpace(value))
}

// Theme is the resort's brand palette, emitted as CSS variables by the
// base layout.
type Theme struct {
	PrimaryColor string `yaml:"primary_color"`
	SurfaceColor string `yaml:"surface_color"`
	AccentColor  string `yaml:"accent_color"`
}

func DefaultTheme() Theme {
	return Theme{
		PrimaryColor: defaultThemePrimary,
		SurfaceColor: defaultThemeSurface,
		AccentColor:  defaultThemeAccent,
	}
}

// WithDefaults fills empty colors from DefaultTheme.
func (t Theme) WithDefaults() Theme {
	defaults := DefaultTheme()
	if strings.TrimSpace(t.PrimaryColor) == "" {
		t.PrimaryColor = defaults.PrimaryColor
	}
	if strings.TrimSpace(t.SurfaceColor) == "" {
		t.SurfaceColor = defaults.SurfaceColor
	}
	if strings.TrimSpace(t.AccentColor) == "" {
		t.AccentColor = defaults.AccentColor
	}
	return t
}

func (t Theme) Validate() error {
	colorFields := []struct {
		name  string
		value string
	}{
		{"primary_color", t.PrimaryColor},
		{"surface_color", t.SurfaceColor},
		{"accent_color", t.AccentColor},
	}

	for _, field := range colorFields {
		if !hexColorRegex.MatchString(field.value) {
			return fmt.Errorf("%s must be a 6-digit hex color like #AABBCC", field.name)
		}
		if err := validateTextContrast(field.name, field.value); err != nil {
			return err
		}
	}

	return nil
}

// CSSVars renders the palette as a :root rule.
func (t Theme) CSSVars() string {
	t = t.WithDefaults()
	return fmt.Sprintf(
		":root{--theme-primary:%s;--theme-surface:%s;--theme-accent:%s;}",
		t.PrimaryColor,
		t.SurfaceColor,
		t.AccentColor,
	)
}

func validateTextContrast(colorName, backgroundColor string) error {
	textColors := []string{darkTextColor, lightTextColor}
	bestRatio := 0.0
	bestText := ""
	for _, textColor := range textColors {
		ratio, err := contrastRatio(textColor, backgroundColor)
		if err != nil {
			return err
		}
		if ratio > bestRatio {
			bestRatio = ratio
			bestText = textColor
		}
	}
	if bestRatio < wcagAAMinContrastRatio {
		return fmt.Errorf(
			"%s must have contrast ratio >= %.1f with #000000 or #FFFFFF text (%s); best is %s at %.2f",
			colorName,
			wcagAAMinContrastRatio,
			wcagAAContrastNote,
			bestText,
			bestRatio,
		)
	}
	return nil
}

func contrastRatio(textColor, backgroundColor string) (float64, error) {
	textL, err := relativeLuminance(textColor)
	if err != nil {
		return 0, err
	}
	backgroundL, err := relativeLuminance(backgroundColor)
	if err != nil {
		return 0, err
	}
	lightest := math.Max(textL, backgroundL)
	darkest := math.Min(textL, backgroundL)
	return (lightest + 0.05) / (darkest + 0.05), nil
}

func relativeLuminance(hexColor string) (float64, error) {
	r, g, b, err := parseHexColor(hexColor)
	if err != nil {
		return 0, err
	}
	return 0.2126*srgbToLinear(r) + 0.7152*srgbToLinear(g) + 0.0722*srgbToLinear(b), nil
}

func parseHexColor(hexColor string) (float64, float64, float64, error) {
	if !hexColorRegex.MatchString(hexColor) {
		return 0, 0, 0, fmt.Errorf("invalid hex color: %s", hexColor)
	}

	value, err := strconv.ParseUint(strings.TrimPrefix(hexColor, "#"), 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color: %s", hexColor)
	}

	r := float64((value >> 16) & 0xFF)
	g := float64((value >> 8) & 0xFF)
	b := float64(value & 0xFF)

	return r / 255, g / 255, b / 255, nil
}

func srgbToLinear(value float64) float64 {
	if value <= 0.03928 {
		return value / 12.92
	}
	return math.Pow((value+0.055)/1.055, 2.4)
}
