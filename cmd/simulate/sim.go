package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/pterm/pterm"

	"github.com/boneekim/Dalmuni-game/internal/game"
	"github.com/boneekim/Dalmuni-game/internal/logger"
	"github.com/boneekim/Dalmuni-game/internal/storage"
	"github.com/boneekim/Dalmuni-game/internal/ui/common"
)

// maxSteps 单局步数上限，防止死循环
const maxSteps = 10_000

type simOptions struct {
	Games      int
	Players    int
	Seed       uint64
	Difficulty game.Difficulty
	SkipTax    bool
}

// seatStats 某个座位在所有对局中的名次分布
type seatStats struct {
	Name     string
	Finishes []int // Finishes[r-1] 是获得第 r 名的次数
	RankSum  int
}

type summary struct {
	Games       int
	Players     int
	Seats       []*seatStats
	Turns       int
	Revolutions int
	Recorded    int
}

func (s *summary) AvgRank(seat int) float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Seats[seat].RankSum) / float64(s.Games)
}

func (s *summary) AvgTurns() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Turns) / float64(s.Games)
}

// playOne 让全部 AI 打完一局
func playOne(opts game.Options) (*game.GameState, error) {
	state, err := game.StartGame(opts)
	if err != nil {
		return nil, err
	}
	for step := 0; state.Phase == game.PhasePlaying; step++ {
		if step >= maxSteps {
			return nil, fmt.Errorf("game did not finish after %d steps", maxSteps)
		}
		if _, err := state.StepAITurn(); err != nil {
			return nil, err
		}
	}
	return state, nil
}

// runSimulation plays opts.Games games, seeding game i with Seed+i, and
// records every result. A ledger failure is logged and does not stop the run.
func runSimulation(ctx context.Context, opts simOptions, rec storage.Recorder, now func() time.Time) (*summary, error) {
	sum := &summary{Players: opts.Players}
	for i := range opts.Players {
		sum.Seats = append(sum.Seats, &seatStats{
			Name:     "AI " + strconv.Itoa(i),
			Finishes: make([]int, opts.Players),
		})
	}

	for i := range opts.Games {
		state, err := playOne(game.Options{
			PlayerCount: opts.Players,
			AllAI:       true,
			Difficulty:  opts.Difficulty,
			Seed:        opts.Seed + uint64(i),
			SkipTax:     opts.SkipTax,
		})
		if err != nil {
			return nil, fmt.Errorf("game %d: %w", i+1, err)
		}

		result, err := storage.NewGameResult(state, now())
		if err != nil {
			return nil, fmt.Errorf("game %d: %w", i+1, err)
		}
		standings, err := state.Standings()
		if err != nil {
			return nil, fmt.Errorf("game %d: %w", i+1, err)
		}
		for _, s := range standings {
			seat := sum.Seats[s.PlayerIndex]
			seat.Finishes[s.Rank-1]++
			seat.RankSum += s.Rank
		}
		sum.Games++
		sum.Turns += result.Turns
		sum.Revolutions += result.Revolutions

		if err := rec.Record(ctx, result); err != nil {
			logger.LogError("record game %d: %v", i+1, err)
			continue
		}
		sum.Recorded++
	}
	return sum, nil
}

// renderSummary 用 pterm 表格输出名次分布
func renderSummary(sum *summary) (string, error) {
	header := []string{"Seat"}
	for r := 1; r <= sum.Players; r++ {
		header = append(header, common.Ordinal(r))
	}
	header = append(header, "Avg rank")

	data := pterm.TableData{header}
	for i, seat := range sum.Seats {
		row := []string{seat.Name}
		for _, n := range seat.Finishes {
			row = append(row, strconv.Itoa(n))
		}
		row = append(row, fmt.Sprintf("%.2f", sum.AvgRank(i)))
		data = append(data, row)
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	if err != nil {
		return "", err
	}
	footer := fmt.Sprintf("%d games, %.1f turns per game, %d revolutions, %d recorded",
		sum.Games, sum.AvgTurns(), sum.Revolutions, sum.Recorded)
	return table + "\n" + footer, nil
}
