package main

import (
	"context"
	"flag"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/boneekim/Dalmuni-game/internal/config"
	"github.com/boneekim/Dalmuni-game/internal/logger"
	"github.com/boneekim/Dalmuni-game/internal/sound"
	"github.com/boneekim/Dalmuni-game/internal/storage"
	"github.com/boneekim/Dalmuni-game/internal/ui"
	"github.com/boneekim/Dalmuni-game/internal/ui/model"
)

func main() {
	configPath := flag.String("config", "config.yaml", "配置文件路径")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 终端被 UI 占用，日志只写文件
	if err := logger.Init(cfg.Log.Dir); err != nil {
		log.Printf("初始化日志失败: %v", err)
	}
	defer logger.Close()
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			panic(r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	recorder, err := storage.Open(ctx, cfg.Redis)
	cancel()
	if err != nil {
		logger.LogError("ledger unavailable, results will not be recorded: %v", err)
		recorder = storage.NopRecorder{}
	}
	defer func() { _ = recorder.Close() }()

	var player model.SoundPlayer
	if cfg.Sound.Enabled {
		sm := sound.NewSoundManager(cfg.Sound.Dir)
		if err := sm.Init(); err != nil {
			logger.LogError("sound disabled: %v", err)
		} else {
			defer sm.Close()
			player = sm
		}
	}

	p := tea.NewProgram(ui.NewModel(cfg, recorder, player), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.LogError("program exited: %v", err)
		log.Fatalf("启动游戏时出错: %v", err)
	}
}
