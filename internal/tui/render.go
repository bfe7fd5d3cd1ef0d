package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/shieldskcd/worldforge/internal/models"
)

// maxShownDialogue caps the lines shown per character; the World itself
// may carry more.
const maxShownDialogue = 3

var (
	worldTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#89B4FA")).
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#45475A"))

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	italicStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CDD6F4")).
			Italic(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	sideStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#45475A")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6E3A1"))
)

func title(s string) string {
	return cases.Title(language.English).String(s)
}

// renderMain renders the description, atmosphere and characters.
func renderMain(w models.World, width int) string {
	var b strings.Builder

	b.WriteString(worldTitleStyle.Render(w.Name) + "\n\n")
	b.WriteString(italicStyle.Width(width).Render(w.Description) + "\n\n")

	b.WriteString(titleStyle.Render("ATMOSPHERE") + "\n")
	b.WriteString(gameStyle.Width(width).Render(w.Atmosphere) + "\n\n")

	if len(w.NPCs) > 0 {
		b.WriteString(titleStyle.Render("CHARACTERS") + "\n")
		for _, npc := range w.NPCs {
			b.WriteString(gameStyle.Bold(true).Render(npc.Name) + " - " + italicStyle.Render(npc.Type) + "\n")
			b.WriteString(gameStyle.Width(width).Render(npc.Description) + "\n")
			if npc.Behavior != "" {
				b.WriteString(gameStyle.Width(width).Render("Behavior: "+npc.Behavior) + "\n")
			}
			for i, line := range npc.Dialogue {
				if i == maxShownDialogue {
					break
				}
				b.WriteString(helpStyle.Width(width).Render(fmt.Sprintf("  %q", line)) + "\n")
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderSide renders the details column: stats, props, mood tags, exits.
func renderSide(w models.World) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("DETAILS") + "\n")
	fmt.Fprintf(&b, "Size: %s\n", title(orDefault(string(w.Size), "medium")))
	fmt.Fprintf(&b, "Stability: %s\n", title(orDefault(string(w.Stability), "normal")))
	fmt.Fprintf(&b, "Lighting: %s\n", orDefault(w.Lighting, "Normal"))
	fmt.Fprintf(&b, "Source: %s\n\n", w.Source)

	if len(w.Props) > 0 {
		b.WriteString(titleStyle.Render("PROPS") + "\n")
		for _, p := range w.Props {
			fmt.Fprintf(&b, "- %s (%s)\n", p.Name, p.Type)
		}
		b.WriteString("\n")
	}

	if len(w.MoodTags) > 0 {
		b.WriteString(titleStyle.Render("MOOD") + "\n")
		tags := make([]string, len(w.MoodTags))
		for i, tag := range w.MoodTags {
			tags[i] = tagStyle.Render(tag)
		}
		b.WriteString(strings.Join(tags, " ") + "\n\n")
	}

	if len(w.Exits) > 0 {
		b.WriteString(titleStyle.Render("EXITS") + "\n")
		dirs := make([]string, 0, len(w.Exits))
		for dir := range w.Exits {
			dirs = append(dirs, dir)
		}
		sort.Strings(dirs)
		for _, dir := range dirs {
			fmt.Fprintf(&b, "%s: %s\n", title(dir), w.Exits[dir])
		}
	}
	return b.String()
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
