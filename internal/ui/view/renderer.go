// Package view provides UI rendering functions.
package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/boneekim/Dalmuni-game/internal/game"
	"github.com/boneekim/Dalmuni-game/internal/game/card"
	"github.com/boneekim/Dalmuni-game/internal/ui/common"
	"github.com/boneekim/Dalmuni-game/internal/ui/model"
)

// historyLines 牌桌下方显示的最近动作条数
const historyLines = 5

// CreateViewRenderer creates a view renderer function that can be injected into AppModel.
func CreateViewRenderer() func(model.Model) string {
	return func(m model.Model) string {
		switch m.Screen() {
		case model.ScreenSetup:
			return SetupView(m)
		case model.ScreenPlaying:
			return GameView(m)
		case model.ScreenFinale:
			return FinaleView(m)
		default:
			return "Unknown screen"
		}
	}
}

// SetupView renders the options screen shown before a game.
func SetupView(m model.Model) string {
	width := m.Width()
	setup := m.Setup()
	var sb strings.Builder

	title := common.TitleStyle(fmt.Sprintf("%s The Great Dalmuti", common.DalmutiIcon))
	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, title))
	sb.WriteString("\n\n")

	lines := []string{
		fmt.Sprintf("Players:     ◀ %d ▶", setup.Players()),
		fmt.Sprintf("Difficulty:  %s", setup.Difficulty()),
		fmt.Sprintf("Your name:   %s", m.NameInput().View()),
	}
	menu := common.BoxStyle.Padding(0, 2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, menu))
	sb.WriteString("\n")

	hint := "←/→ players | d difficulty | tab name | enter start | q quit"
	if m.NameInput().Focused() {
		hint = "type your name | tab/esc done | enter start"
	}
	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, common.GrayStyle.Render(hint)))

	if e := m.Error(); e != "" {
		sb.WriteString("\n")
		sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, common.ErrorStyle.Render(e)))
	}

	return sb.String()
}

// GameView renders the table while a game is in progress.
func GameView(m model.Model) string {
	width := m.Width()
	height := m.Height()
	gm := m.Game()
	if gm.State() == nil {
		return "No game in progress"
	}
	view := gm.View()

	if gm.ShowingHelp() {
		return RulesView(width, height)
	}

	var sb strings.Builder

	if gm.CardCounterEnabled() {
		sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderCardCounter(view.Unseen, view.UnseenTotal)))
		sb.WriteString("\n")
	}

	middle := lipgloss.JoinHorizontal(lipgloss.Top,
		renderOpponents(view), renderTable(view))
	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, middle))
	sb.WriteString("\n")

	if history := renderHistory(view); history != "" {
		sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, history))
		sb.WriteString("\n")
	}

	hand := renderPlayerHand(view.Hand, gm.Cursor(), gm.IsSelected, view.Players[view.Viewer])
	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, hand))
	sb.WriteString("\n")

	sb.WriteString(renderPrompt(m, view))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, sb.String())
}

// FinaleView renders the final standings and the leaderboard.
func FinaleView(m model.Model) string {
	width := m.Width()
	var sb strings.Builder

	title := common.TitleStyle("🎮 Game Over")
	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, title))
	sb.WriteString("\n\n")

	state := m.Game().State()
	if state != nil {
		standings, err := state.Standings()
		if err == nil {
			sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderStandings(standings)))
			sb.WriteString("\n")
		}
	}

	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderLeaderboard(m)))
	sb.WriteString("\n\n")

	hint := common.GrayStyle.Render("n / enter: new game | q: quit")
	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, hint))

	return sb.String()
}

// DescribeAction renders one history entry as a line of text.
func DescribeAction(a game.Action, players []game.PublicPlayer) string {
	name := "Table"
	if a.Player >= 0 && a.Player < len(players) {
		name = players[a.Player].Name
	}

	switch a.Kind {
	case game.ActionPlay:
		return fmt.Sprintf("%s played %s", name, model.FormatCards(a.Cards))
	case game.ActionPass:
		return fmt.Sprintf("%s passed", name)
	case game.ActionClear:
		return "Everyone passed, the table is cleared"
	case game.ActionRevolution:
		if a.Revolution {
			return fmt.Sprintf("%s Revolution! Higher numbers win", common.RevolutionIcon)
		}
		return fmt.Sprintf("%s Order restored", common.RevolutionIcon)
	case game.ActionFinish:
		return fmt.Sprintf("%s went out %s", name, common.Ordinal(a.Rank))
	case game.ActionGameOver:
		return "Game over"
	default:
		return string(a.Kind)
	}
}

// --- Helper rendering functions ---

func renderCardCounter(unseen map[card.Rank]int, total int) string {
	var names, counts []string
	for _, r := range common.DisplayOrder {
		names = append(names, fmt.Sprintf("%2s", r.String()))
		counts = append(counts, fmt.Sprintf("%2d", unseen[r]))
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(names, "│") + "\n")
	sb.WriteString(strings.Repeat("─", len(common.DisplayOrder)*3-1) + "\n")
	sb.WriteString(strings.Join(counts, "│") + "\n")
	fmt.Fprintf(&sb, "Unseen: %d", total)

	return common.BoxStyle.Render(sb.String())
}

func renderOpponents(view game.PublicState) string {
	var parts []string
	for i, p := range view.Players {
		if i == view.Viewer {
			continue
		}

		icon := common.HumanIcon
		if p.IsAI {
			icon = common.AIIcon
		}

		nameStyle := lipgloss.NewStyle()
		if view.Phase == game.PhasePlaying && view.CurrentPlayer == i {
			nameStyle = common.HighlightStyle
		}

		status := fmt.Sprintf("🃏 %d", p.CardCount)
		switch {
		case p.FinishRank > 0:
			status = fmt.Sprintf("out %s", common.Ordinal(p.FinishRank))
		case p.Passed:
			status += " pass"
		}

		info := fmt.Sprintf("%s %s\n%s", icon, nameStyle.Render(common.TruncateName(p.Name, 10)), status)
		parts = append(parts, common.BoxStyle.Width(15).Render(info))
	}
	return lipgloss.JoinVertical(lipgloss.Left, joinRows(parts, 4)...)
}

// joinRows 每行最多 perRow 个方框
func joinRows(boxes []string, perRow int) []string {
	var rows []string
	for start := 0; start < len(boxes); start += perRow {
		end := min(start+perRow, len(boxes))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, boxes[start:end]...))
	}
	return rows
}

func renderTable(view game.PublicState) string {
	var lines []string

	if view.Revolution {
		lines = append(lines, common.BadgeStyle.Render(common.RevolutionIcon+" REVOLUTION"))
	}

	if len(view.LastPlayed) == 0 {
		lines = append(lines, common.GrayStyle.Render("(table is empty, lead anything)"))
	} else {
		name := ""
		if view.LastPlayer >= 0 && view.LastPlayer < len(view.Players) {
			name = view.Players[view.LastPlayer].Name
		}
		lines = append(lines, fmt.Sprintf("%s: %s", name, renderCards(view.LastPlayed)))
		lines = append(lines, common.GrayStyle.Render(playRank(view.LastPlayed).Name()))
	}

	return common.BoxStyle.Width(30).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// playRank 小丑牌跟随同组的数字牌
func playRank(cards []card.Card) card.Rank {
	for _, c := range cards {
		if !c.IsJoker() {
			return c.Rank
		}
	}
	return card.Joker
}

func renderCards(cards []card.Card) string {
	faces := make([]string, len(cards))
	for i, c := range cards {
		faces[i] = common.CardStyle(c.Rank).Render(fmt.Sprintf(" %s ", c.String()))
	}
	return strings.Join(faces, " ")
}

func renderHistory(view game.PublicState) string {
	if len(view.History) == 0 {
		return ""
	}
	start := max(len(view.History)-historyLines, 0)
	var lines []string
	for _, a := range view.History[start:] {
		lines = append(lines, common.GrayStyle.Render(DescribeAction(a, view.Players)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderPlayerHand(hand []card.Card, cursor int, selected func(int) bool, me game.PublicPlayer) string {
	if len(hand) == 0 {
		return common.BoxStyle.Render("(no cards)")
	}

	var faces, marks strings.Builder
	for i, c := range hand {
		style := common.CardStyle(c.Rank)
		if selected(i) {
			style = common.SelectedStyle
		}
		faces.WriteString(style.Render(fmt.Sprintf(" %2s ", c.String())))
		faces.WriteString(" ")

		mark := "     "
		if i == cursor {
			mark = "  " + common.CursorMark + "  "
		}
		marks.WriteString(mark)
	}

	title := fmt.Sprintf("Your hand %s (%s)", common.HumanIcon, common.CardCount(len(hand)))
	if me.FinishRank > 0 {
		title = fmt.Sprintf("You went out %s", common.Ordinal(me.FinishRank))
	}
	content := lipgloss.JoinVertical(lipgloss.Left, title, faces.String(), marks.String())
	return common.BoxStyle.Render(content)
}

func renderPrompt(m model.Model, view game.PublicState) string {
	var sb strings.Builder

	if notice := m.Game().Notice(); notice != "" {
		sb.WriteString(common.NoticeStyle.Render(notice))
		sb.WriteString("\n")
	}

	if e := m.Error(); e != "" {
		sb.WriteString(common.ErrorStyle.Render("⚠️ " + e))
		sb.WriteString("\n")
	}

	if view.CurrentPlayer == view.Viewer {
		sb.WriteString(common.HighlightStyle.Render("Your turn!"))
		sb.WriteString(" ←/→ move | space select | enter play | p pass | a hint\n")
	} else {
		fmt.Fprintf(&sb, "Waiting for %s...\n", view.Players[view.CurrentPlayer].Name)
	}
	sb.WriteString(common.GrayStyle.Render("c counter | h help | n new game | q quit"))

	centered := lipgloss.NewStyle().
		Width(m.Width()).
		AlignHorizontal(lipgloss.Center).
		Render(sb.String())
	return common.PromptStyle.Render(centered)
}

func renderStandings(standings []game.Standing) string {
	lines := []string{"Final standings", ""}
	for _, s := range standings {
		icon := ""
		switch s.Rank {
		case 1:
			icon = " " + common.DalmutiIcon
		case len(standings):
			icon = " " + common.PeasantIcon
		}
		lines = append(lines, fmt.Sprintf("%-4s %-12s %s%s",
			common.Ordinal(s.Rank), common.TruncateName(s.Name, 12), s.Title, icon))
	}
	return common.BoxStyle.Padding(0, 2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func renderLeaderboard(m model.Model) string {
	if e := m.LedgerError(); e != "" {
		return common.ErrorStyle.Render("Leaderboard unavailable: " + e)
	}
	entries := m.Leaderboard()
	if len(entries) == 0 {
		return common.GrayStyle.Render("No leaderboard yet")
	}

	lines := []string{"🏆 Leaderboard", ""}
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%2d. %-12s %5d pts  %3d games  %3.0f%% Dalmuti",
			e.Rank, common.TruncateName(e.PlayerName, 12), e.Points, e.Games, e.DalmutiRate))
	}
	return common.BoxStyle.Padding(0, 2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
