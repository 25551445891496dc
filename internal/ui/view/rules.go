package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/boneekim/Dalmuni-game/internal/ui/common"
)

// RenderGameRules renders the game rules.
func RenderGameRules() string {
	var sb strings.Builder

	sb.WriteString("[Goal]\n")
	sb.WriteString("Get rid of all your cards first. The first player out is the Dalmuti,\n")
	sb.WriteString("the last one is the Peasant.\n\n")

	sb.WriteString("[Cards]\n")
	sb.WriteString("• 80 cards: rank N appears N times (one 1, twelve 12s) plus 2 Jesters\n")
	sb.WriteString("• Lower numbers are stronger: 1 beats everything\n")
	sb.WriteString("• Jester (J) is wild and joins any set\n\n")

	sb.WriteString("[Playing]\n")
	sb.WriteString("1. Whoever holds the Dalmuti card (1) leads\n")
	sb.WriteString("2. Play the same number of cards with a better rank, or pass\n")
	sb.WriteString("3. When everyone else passes, the last player leads again\n")
	sb.WriteString("4. A pair of the same printed rank starts a Revolution:\n")
	sb.WriteString("   higher numbers win until the next one\n\n")

	sb.WriteString("[Tax]\n")
	sb.WriteString("The Peasant gives the Dalmuti their 2 best cards and gets 2 back\n\n")

	sb.WriteString("[Keys]\n")
	sb.WriteString("• ←/→: move   Space: select   Enter: play   P: pass\n")
	sb.WriteString("• A: hint   C: card counter   H: help   N: new game\n")
	sb.WriteString("• ESC: clear selection   Q: quit")

	return common.BoxStyle.Padding(0, 1).Render(sb.String())
}

// RulesView renders the full rules view.
func RulesView(width, height int) string {
	var sb strings.Builder

	title := common.TitleStyle("📖 Rules")
	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, title))
	sb.WriteString("\n\n")

	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, RenderGameRules()))
	sb.WriteString("\n\n")

	hint := "Press H or ESC to return"
	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, hint))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, sb.String())
}
