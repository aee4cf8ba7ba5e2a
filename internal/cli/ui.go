package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/memestyle/pkg/textstyle"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleKey = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconOn      = "on"
	iconOff     = "off"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// printError prints an error message.
func printError(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+msg)
}

// printWarning prints a warning message.
func printWarning(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+msg)
}

// printDetail prints a detail line (indented).
func printDetail(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, "  "+StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, styleKey.Render(key)+" "+value)
}

// =============================================================================
// Style Display
// =============================================================================

// printStyle prints every field of s as labeled rows.
func printStyle(w io.Writer, key string, s *textstyle.TextStyle) {
	fmt.Fprintln(w, StyleTitle.Render(key))
	for _, row := range styleRows(s) {
		printKeyValue(w, row[0], row[1])
	}
}

// styleRows returns label/value pairs describing s.
func styleRows(s *textstyle.TextStyle) [][2]string {
	text := s.Text
	if text == "" {
		text = StyleDim.Render("(empty)")
	} else {
		text = StyleValue.Render(fmt.Sprintf("%q", s.DisplayText()))
	}
	return [][2]string{
		{"text", text},
		{"uppercase", onOff(s.Uppercase)},
		{"font", StyleValue.Render(s.FontName) + " " + StyleNumber.Render(formatNumber(s.FontSize())+"pt")},
		{"color", swatch(s.TextColor())},
		{"outline", swatch(s.OutlineColor())},
		{"align", StyleValue.Render(s.Alignment().String())},
		{"stroke", StyleNumber.Render(formatNumber(s.StrokeWidth))},
		{"opacity", StyleNumber.Render(formatNumber(s.Opacity()))},
		{"shadow", shadowLabel(s)},
		{"offset", StyleValue.Render(textstyle.FormatPoint(s.Offset))},
		{"rect", StyleValue.Render(textstyle.FormatRect(s.Rect))},
	}
}

// swatch renders a colored block followed by the hex value.
func swatch(c textstyle.RGB) string {
	hex := c.Hex()
	block := lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
	return block + " " + StyleValue.Render(hex)
}

func shadowLabel(s *textstyle.TextStyle) string {
	switch {
	case !s.ShadowEnabled:
		return StyleDim.Render(iconOff)
	case s.Shadow3D:
		return StyleSuccess.Render(iconOn) + StyleDim.Render(" (3d)")
	default:
		return StyleSuccess.Render(iconOn)
	}
}

func onOff(b bool) string {
	if b {
		return StyleSuccess.Render(iconOn)
	}
	return StyleDim.Render(iconOff)
}

// formatNumber prints v without trailing zeros.
func formatNumber(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
