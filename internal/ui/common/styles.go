// Package common provides shared styles and utilities for the UI.
package common

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/boneekim/Dalmuni-game/internal/game/card"
)

// Icon constants
const (
	DalmutiIcon    = "👑"
	PeasantIcon    = "🧑‍🌾"
	RevolutionIcon = "🔄"
	AIIcon         = "🤖"
	HumanIcon      = "🙂"

	CursorMark = "▲"
)

// Lipgloss Styles
var (
	DocStyle       = lipgloss.NewStyle().Margin(1, 2)
	NobleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#CD0000")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	CommonStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	JesterStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8B008B")).Background(lipgloss.Color("#FFD700")).Bold(true)
	SelectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#1E90FF")).Bold(true)
	GrayStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	HighlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	TitleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	BoxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder())
	BadgeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#B22222")).Bold(true).Padding(0, 1)
	PromptStyle    = lipgloss.NewStyle().MarginTop(1)
	ErrorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	NoticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// DisplayOrder 记牌器的显示顺序，从最大到最小
var DisplayOrder = []card.Rank{
	card.RankDalmuti, card.RankArchbishop, card.RankEarlMarshal, card.RankBaroness,
	card.RankAbbess, card.RankKnight, card.RankSeamstress, card.RankMason,
	card.RankCook, card.RankShepherdess, card.RankStonecutter, card.RankPeasant,
	card.RankJester,
}

// CardStyle picks the face style for a rank: nobility red, commoners black.
func CardStyle(r card.Rank) lipgloss.Style {
	switch {
	case r == card.RankJester:
		return JesterStyle
	case r <= card.RankBaroness:
		return NobleStyle
	default:
		return CommonStyle
	}
}
