package tui

import "github.com/charmbracelet/lipgloss"

// Palette is one Catppuccin flavour. Mocha backs dark mode, Latte light mode.
// https://catppuccin.com/palette
type Palette struct {
	Accent   lipgloss.Color
	Focus    lipgloss.Color
	Success  lipgloss.Color
	Error    lipgloss.Color
	Warning  lipgloss.Color
	Info     lipgloss.Color
	Text     lipgloss.Color
	Subtext  lipgloss.Color
	Overlay  lipgloss.Color
	Surface  lipgloss.Color
	Base     lipgloss.Color
	Selected lipgloss.Color
}

var (
	mocha = Palette{
		Accent:   "#f5c2e7", // pink
		Focus:    "#b4befe", // lavender
		Success:  "#a6e3a1",
		Error:    "#f38ba8",
		Warning:  "#f9e2af",
		Info:     "#94e2d5",
		Text:     "#cdd6f4",
		Subtext:  "#a6adc8",
		Overlay:  "#6c7086",
		Surface:  "#313244",
		Base:     "#1e1e2e",
		Selected: "#45475a",
	}
	latte = Palette{
		Accent:   "#ea76cb",
		Focus:    "#7287fd",
		Success:  "#40a02b",
		Error:    "#d20f39",
		Warning:  "#df8e1d",
		Info:     "#179299",
		Text:     "#4c4f69",
		Subtext:  "#6c6f85",
		Overlay:  "#9ca0b0",
		Surface:  "#ccd0da",
		Base:     "#eff1f5",
		Selected: "#bcc0cc",
	}
)

// PaletteFor picks the flavour for the DarkMode setting.
func PaletteFor(dark bool) Palette {
	if dark {
		return mocha
	}
	return latte
}

// Styles are the rendered styles derived from a Palette.
type Styles struct {
	Title    lipgloss.Style
	Section  lipgloss.Style
	Label    lipgloss.Style
	Dim      lipgloss.Style
	Focused  lipgloss.Style
	Value    lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Panel    lipgloss.Style
	SubPanel lipgloss.Style
}

func newStyles(p Palette) Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Section: lipgloss.NewStyle().Bold(true).Foreground(p.Info),
		Label:   lipgloss.NewStyle().Foreground(p.Text),
		Dim:     lipgloss.NewStyle().Foreground(p.Overlay),
		Focused: lipgloss.NewStyle().Bold(true).Foreground(p.Focus).Background(p.Selected),
		Value:   lipgloss.NewStyle().Foreground(p.Accent),
		Success: lipgloss.NewStyle().Foreground(p.Success),
		Error:   lipgloss.NewStyle().Foreground(p.Error),
		Warning: lipgloss.NewStyle().Foreground(p.Warning),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Surface).
			Padding(0, 1),
		SubPanel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.Overlay).
			Padding(0, 1),
	}
}

// StylesFor is newStyles(PaletteFor(dark)).
func StylesFor(dark bool) Styles {
	return newStyles(PaletteFor(dark))
}
