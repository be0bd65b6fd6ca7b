// Package theme resolves the user's gender preference into a single visual
// descriptor that every screen renders from.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/kokostudy/koko/internal/profile"
	"github.com/kokostudy/koko/internal/rewards"
)

// Palette holds the colors of a theme.
type Palette struct {
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	BgDark    color.Color
	BgCard    color.Color
	Border    color.Color
}

// Labels holds the words that change with the theme.
type Labels struct {
	AppTitle  string
	Companion string // companion's name
	Tagline   string
	Hero      string // what the user is called
	Coins     string
	Tickets   string
}

// Assets holds the companion art and decorative glyphs.
type Assets struct {
	Companion string // multi-line companion art
	Badge     string // glyph next to the app title
	Sparkles  []string
	Outfits   []rewards.Outfit // shop catalogue; IDs are shared across themes
	Quotes    []string         // shown by the study timer
}

// Theme is the resolved visual descriptor.
type Theme struct {
	Name    string
	Labels  Labels
	Palette Palette
	Assets  Assets
}

const (
	Princess = "princess"
	Champion = "champion"
)

const kokoArt = `  ╭─────────╮
  │  ◕   ◕  │
  │    ᴥ    │
  │ ♥     ♥ │
  ╰──┬───┬──╯
     ╰───╯`

const maxArt = `  ┌─────────┐
  │  ◉   ◉  │
  │    ▿    │
  │ ⚡     ⚡ │
  └──┬───┬──┘
     └───┘`

var princess = Theme{
	Name: Princess,
	Labels: Labels{
		AppTitle:  "Koko's Study Castle",
		Companion: "Koko",
		Tagline:   "Every card is a step toward the crown!",
		Hero:      "Princess",
		Coins:     "coins",
		Tickets:   "bus tickets",
	},
	Palette: Palette{
		Primary:   lipgloss.Color("#EC4899"), // Rose
		Secondary: lipgloss.Color("#A855F7"), // Purple
		Accent:    lipgloss.Color("#F59E0B"), // Amber
		Success:   lipgloss.Color("#22C55E"),
		Error:     lipgloss.Color("#F43F5E"),
		Text:      lipgloss.Color("#FDF2F8"),
		TextDim:   lipgloss.Color("#C4B5FD"),
		BgDark:    lipgloss.Color("#2E1065"),
		BgCard:    lipgloss.Color("#3B0764"),
		Border:    lipgloss.Color("#6B21A8"),
	},
	Assets: Assets{
		Companion: kokoArt,
		Badge:     "👑",
		Sparkles:  []string{"✦", "♥"},
		Outfits: []rewards.Outfit{
			{ID: "glasses", Name: "Smart Glasses", Emoji: "🤓", Cost: 50, Description: "For reading the fine print"},
			{ID: "hat", Name: "Fancy Hat", Emoji: "🎩", Cost: 75, Description: "Tea party ready"},
			{ID: "backpack", Name: "Study Backpack", Emoji: "🎒", Cost: 100, Description: "Room for every textbook"},
			{ID: "bow", Name: "Pretty Bow", Emoji: "🎀", Cost: 60, Description: "A ribbon for good days"},
			{ID: "crown", Name: "Royal Crown", Emoji: "👑", Cost: 200, Description: "Worn by the queen of revision"},
		},
		Quotes: []string{
			"One more page and the castle grows taller.",
			"Koko believes in you, Princess!",
			"Small steps every day make a royal habit.",
			"Your future self is cheering already.",
			"Knowledge looks good on you.",
		},
	},
}

var champion = Theme{
	Name: Champion,
	Labels: Labels{
		AppTitle:  "Max's Training Arena",
		Companion: "Max",
		Tagline:   "Every card makes you stronger!",
		Hero:      "Champion",
		Coins:     "coins",
		Tickets:   "bus tickets",
	},
	Palette: Palette{
		Primary:   lipgloss.Color("#3B82F6"), // Blue
		Secondary: lipgloss.Color("#14B8A6"), // Teal
		Accent:    lipgloss.Color("#F97316"), // Orange
		Success:   lipgloss.Color("#22C55E"),
		Error:     lipgloss.Color("#EF4444"),
		Text:      lipgloss.Color("#F8FAFC"),
		TextDim:   lipgloss.Color("#94A3B8"),
		BgDark:    lipgloss.Color("#0F172A"),
		BgCard:    lipgloss.Color("#1E293B"),
		Border:    lipgloss.Color("#334155"),
	},
	Assets: Assets{
		Companion: maxArt,
		Badge:     "🏆",
		Sparkles:  []string{"★", "✦"},
		Outfits: []rewards.Outfit{
			{ID: "glasses", Name: "Tactical Glasses", Emoji: "🤓", Cost: 50, Description: "Sharper focus on the target"},
			{ID: "hat", Name: "Alpha Cap", Emoji: "🎩", Cost: 75, Description: "Leader of the pack"},
			{ID: "backpack", Name: "Training Pack", Emoji: "🎒", Cost: 100, Description: "Gear for the long haul"},
			{ID: "bow", Name: "Battle Bandana", Emoji: "🎀", Cost: 60, Description: "Tied on before every drill"},
			{ID: "crown", Name: "Champion Crown", Emoji: "👑", Cost: 200, Description: "Only for the undefeated"},
		},
		Quotes: []string{
			"Every rep counts, Champion.",
			"Max is training right beside you!",
			"Discipline today, victory tomorrow.",
			"Stay in the zone. The clock is on your side.",
			"Legends are built one session at a time.",
		},
	},
}

// Resolve returns the theme for a gender preference. Unknown values get
// the default gender's theme.
func Resolve(g profile.Gender) Theme {
	if g == profile.Male {
		return champion
	}
	return princess
}

// Style helpers. Each returns a fresh style so callers may extend it.

func (t Theme) Title() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Palette.Primary)
}

func (t Theme) Body() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Palette.Text)
}

func (t Theme) Dim() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Palette.TextDim)
}

func (t Theme) Hint() lipgloss.Style {
	return t.Dim().Italic(true)
}

func (t Theme) Highlight() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Palette.Accent)
}

func (t Theme) Good() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Palette.Success)
}

func (t Theme) Bad() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Palette.Error)
}

// Card is a rounded box on the card background.
func (t Theme) Card() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Palette.Border).
		Padding(1, 2)
}

// Centered renders s centered across width in style st.
func Centered(st lipgloss.Style, width int, s string) string {
	return st.Width(width).Align(lipgloss.Center).Render(s)
}
