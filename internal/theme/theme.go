// Package theme holds the terminal color palettes and persists the user's
// selection between runs.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme is a named palette. The piece colors must stay distinguishable:
// PieceOne is always the warm color, PieceTwo the cool one.
type Theme struct {
	Key      string
	Name     string
	Primary  lipgloss.Color
	Accent   lipgloss.Color
	Text     lipgloss.Color
	Subtle   lipgloss.Color
	Board    lipgloss.Color
	PieceOne lipgloss.Color
	PieceTwo lipgloss.Color
	Good     lipgloss.Color // online indicator
	Warn     lipgloss.Color // connecting indicator
	Error    lipgloss.Color // offline indicator, error text
}

// DefaultName is the theme used before the user ever picks one.
const DefaultName = "neon-purple"

// Names is the cycle order of the theme hotkey.
var Names = []string{"neon-purple", "cyberpunk", "light", "dark", "ocean"}

var themes = map[string]Theme{
	"neon-purple": {
		Key:      "neon-purple",
		Name:     "Neon Purple",
		Primary:  lipgloss.Color("#9D4EDD"),
		Accent:   lipgloss.Color("#C77DFF"),
		Text:     lipgloss.Color("#E0AAFF"),
		Subtle:   lipgloss.Color("#7B2CBF"),
		Board:    lipgloss.Color("#5A189A"),
		PieceOne: lipgloss.Color("#FF006E"),
		PieceTwo: lipgloss.Color("#00F5FF"),
		Good:     lipgloss.Color("#50FA7B"),
		Warn:     lipgloss.Color("#F1FA8C"),
		Error:    lipgloss.Color("#FF4D6D"),
	},
	"cyberpunk": {
		Key:      "cyberpunk",
		Name:     "Cyberpunk",
		Primary:  lipgloss.Color("#FF0080"),
		Accent:   lipgloss.Color("#FFFF00"),
		Text:     lipgloss.Color("#00FFFF"),
		Subtle:   lipgloss.Color("#0F3460"),
		Board:    lipgloss.Color("#16213E"),
		PieceOne: lipgloss.Color("#FF0080"),
		PieceTwo: lipgloss.Color("#00FFFF"),
		Good:     lipgloss.Color("#00FF9F"),
		Warn:     lipgloss.Color("#FFFF00"),
		Error:    lipgloss.Color("#FF0055"),
	},
	"light": {
		Key:      "light",
		Name:     "Light",
		Primary:  lipgloss.Color("#667EEA"),
		Accent:   lipgloss.Color("#F093FB"),
		Text:     lipgloss.Color("#2D3748"),
		Subtle:   lipgloss.Color("#4A5568"),
		Board:    lipgloss.Color("#764BA2"),
		PieceOne: lipgloss.Color("#FF4444"),
		PieceTwo: lipgloss.Color("#FFDD44"),
		Good:     lipgloss.Color("#2F855A"),
		Warn:     lipgloss.Color("#B7791F"),
		Error:    lipgloss.Color("#C53030"),
	},
	"dark": {
		Key:      "dark",
		Name:     "Dark",
		Primary:  lipgloss.Color("#667EEA"),
		Accent:   lipgloss.Color("#A78BFA"),
		Text:     lipgloss.Color("#E2E8F0"),
		Subtle:   lipgloss.Color("#CBD5E0"),
		Board:    lipgloss.Color("#4A5568"),
		PieceOne: lipgloss.Color("#FF6B6B"),
		PieceTwo: lipgloss.Color("#FFD93D"),
		Good:     lipgloss.Color("#50FA7B"),
		Warn:     lipgloss.Color("#F1FA8C"),
		Error:    lipgloss.Color("#FF6B6B"),
	},
	"ocean": {
		Key:      "ocean",
		Name:     "Ocean",
		Primary:  lipgloss.Color("#06B6D4"),
		Accent:   lipgloss.Color("#22D3EE"),
		Text:     lipgloss.Color("#E0F2FE"),
		Subtle:   lipgloss.Color("#BAE6FD"),
		Board:    lipgloss.Color("#0369A1"),
		PieceOne: lipgloss.Color("#F97316"),
		PieceTwo: lipgloss.Color("#22D3EE"),
		Good:     lipgloss.Color("#34D399"),
		Warn:     lipgloss.Color("#FBBF24"),
		Error:    lipgloss.Color("#F87171"),
	},
}

// Lookup returns the theme registered under key.
func Lookup(key string) (Theme, bool) {
	t, ok := themes[key]
	return t, ok
}

// Default returns the out-of-the-box theme.
func Default() Theme {
	return themes[DefaultName]
}

// Next returns the key following key in the cycle order, wrapping around.
// Unknown keys restart the cycle.
func Next(key string) string {
	for i, name := range Names {
		if name == key {
			return Names[(i+1)%len(Names)]
		}
	}
	return Names[0]
}
