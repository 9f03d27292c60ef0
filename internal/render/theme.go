package render

import "github.com/charmbracelet/lipgloss"

// Theme holds the colors and border shape of the dashboard. The two
// built-in themes differ only cosmetically.
type Theme struct {
	Name       string
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Surface    lipgloss.Color
	OutSurface lipgloss.Color
	Accent     lipgloss.Color
	OnAccent   lipgloss.Color
	Strip      lipgloss.Color
	StripToday lipgloss.Color
	Border     lipgloss.Border
}

var themes = map[string]Theme{
	"classic": {
		Name:       "classic",
		Text:       lipgloss.Color("#E5E7EB"),
		Muted:      lipgloss.Color("#6B7280"),
		Surface:    lipgloss.Color("#1F2937"),
		OutSurface: lipgloss.Color("#111827"),
		Accent:     lipgloss.Color("#F9FAFB"),
		OnAccent:   lipgloss.Color("#111827"),
		Strip:      lipgloss.Color("#374151"),
		StripToday: lipgloss.Color("#4B5563"),
		Border:     lipgloss.NormalBorder(),
	},
	"rounded": {
		Name:       "rounded",
		Text:       lipgloss.Color("#E0E7FF"),
		Muted:      lipgloss.Color("#64748B"),
		Surface:    lipgloss.Color("#1E293B"),
		OutSurface: lipgloss.Color("#0F172A"),
		Accent:     lipgloss.Color("#A5B4FC"),
		OnAccent:   lipgloss.Color("#1E1B4B"),
		Strip:      lipgloss.Color("#334155"),
		StripToday: lipgloss.Color("#475569"),
		Border:     lipgloss.RoundedBorder(),
	},
}

// ThemeByName returns the named theme, falling back to classic.
func ThemeByName(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["classic"]
}
