package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/boneekim/Dalmuni-game/internal/apperrors"
	"github.com/boneekim/Dalmuni-game/internal/game"
)

// EnvPrefix 环境变量前缀
const EnvPrefix = "DALMUTI_"

// Config 客户端配置
type Config struct {
	Game  GameConfig  `yaml:"game" envPrefix:"GAME_"`
	Redis RedisConfig `yaml:"redis" envPrefix:"REDIS_"`
	Sound SoundConfig `yaml:"sound" envPrefix:"SOUND_"`
	Log   LogConfig   `yaml:"log" envPrefix:"LOG_"`
}

// GameConfig 牌局配置
type GameConfig struct {
	Players     int      `yaml:"players" env:"PLAYERS"`
	PlayerName  string   `yaml:"player_name" env:"PLAYER_NAME"`
	AINames     []string `yaml:"ai_names" env:"AI_NAMES" envSeparator:","`
	Difficulty  string   `yaml:"difficulty" env:"DIFFICULTY"`
	AIDelayMs   int      `yaml:"ai_delay_ms" env:"AI_DELAY_MS"` // 电脑玩家思考时间（毫秒）
	Seed        uint64   `yaml:"seed" env:"SEED"`               // 0 表示随机
	TaxExchange *bool    `yaml:"tax_exchange" env:"TAX_EXCHANGE"`
}

// AIDelay 返回电脑玩家思考时长
func (c *GameConfig) AIDelay() time.Duration {
	return time.Duration(c.AIDelayMs) * time.Millisecond
}

// TaxEnabled reports whether the opening exchange runs; unset means yes.
func (c *GameConfig) TaxEnabled() bool {
	return c.TaxExchange == nil || *c.TaxExchange
}

// RedisConfig Redis 配置，未启用时成绩不落库
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled" env:"ENABLED"`
	Addr     string `yaml:"addr" env:"ADDR"`
	Password string `yaml:"password" env:"PASSWORD"`
	DB       int    `yaml:"db" env:"DB"`
}

// SoundConfig 音效配置
type SoundConfig struct {
	Enabled bool   `yaml:"enabled" env:"ENABLED"`
	Dir     string `yaml:"dir" env:"DIR"`
}

// LogConfig 日志配置，Dir 为空时写到 ~/.dalmuti
type LogConfig struct {
	Dir string `yaml:"dir" env:"DIR"`
}

// Load 加载配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// LoadOrDefault reads path when it exists and falls back to Default
// otherwise. Environment overrides are applied in both cases.
func LoadOrDefault(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if cfg, err = Load(path); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// ApplyEnv 用 DALMUTI_* 环境变量覆盖配置
func ApplyEnv(cfg *Config) error {
	return applyEnv(cfg, nil)
}

func applyEnv(cfg *Config, environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (cfg *Config) applyDefaults() {
	def := Default()
	if cfg.Game.Players == 0 {
		cfg.Game.Players = def.Game.Players
	}
	if cfg.Game.PlayerName == "" {
		cfg.Game.PlayerName = def.Game.PlayerName
	}
	if cfg.Game.Difficulty == "" {
		cfg.Game.Difficulty = def.Game.Difficulty
	}
	if cfg.Game.AIDelayMs == 0 {
		cfg.Game.AIDelayMs = def.Game.AIDelayMs
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = def.Redis.Addr
	}
	if cfg.Sound.Dir == "" {
		cfg.Sound.Dir = def.Sound.Dir
	}
}

// Validate 校验配置取值范围
func (cfg *Config) Validate() error {
	if cfg.Game.Players < game.MinPlayers || cfg.Game.Players > game.MaxPlayers {
		return fmt.Errorf("%w: game.players must be in [%d,%d], got %d",
			apperrors.ErrConfig, game.MinPlayers, game.MaxPlayers, cfg.Game.Players)
	}
	if _, err := game.ParseDifficulty(cfg.Game.Difficulty); err != nil {
		return err
	}
	if cfg.Game.AIDelayMs < 0 {
		return fmt.Errorf("%w: game.ai_delay_ms must not be negative", apperrors.ErrConfig)
	}
	if len(cfg.Game.AINames) > cfg.Game.Players-1 {
		return fmt.Errorf("%w: %d ai_names for %d computer players",
			apperrors.ErrConfig, len(cfg.Game.AINames), cfg.Game.Players-1)
	}
	if cfg.Redis.Enabled && cfg.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when redis is enabled", apperrors.ErrConfig)
	}
	return nil
}

// GameOptions 把配置转换为开局参数，0 号座位是人类玩家
func (cfg *Config) GameOptions() game.Options {
	names := append([]string{cfg.Game.PlayerName}, cfg.Game.AINames...)
	return game.Options{
		PlayerCount: cfg.Game.Players,
		PlayerNames: names,
		Difficulty:  game.Difficulty(cfg.Game.Difficulty),
		Seed:        cfg.Game.Seed,
		SkipTax:     !cfg.Game.TaxEnabled(),
	}
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Game: GameConfig{
			Players:    4,
			PlayerName: "You",
			Difficulty: string(game.DifficultyEasy),
			AIDelayMs:  800,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Sound: SoundConfig{
			Enabled: true,
			Dir:     "assets/sounds",
		},
	}
}
