package server

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"tactica/ai"
	"tactica/grid"
	"tactica/movement"
	"tactica/round"
)

// ActorConfig 遭遇开局摆放的角色
type ActorConfig struct {
	Name      string `toml:"name" json:"name"`
	Statblock string `toml:"statblock" json:"statblock"`
	Player    string `toml:"player" json:"player"` // 空串为 AI
	X         int    `toml:"x" json:"x"`
	Y         int    `toml:"y" json:"y"`
}

// Config 服务与遭遇配置（TOML）
type Config struct {
	LogFile          string        `toml:"log_file" json:"log_file"`
	TickRate         int           `toml:"tick_rate" json:"tick_rate"`
	MaxInputsPerTick int           `toml:"max_inputs_per_tick" json:"max_inputs_per_tick"`
	StepCostFt       int           `toml:"step_cost_ft" json:"step_cost_ft"`
	Planner          string        `toml:"planner" json:"planner"`
	AITimeoutSec     float64       `toml:"ai_timeout_sec" json:"ai_timeout_sec"`
	StatblockDir     string        `toml:"statblock_dir" json:"statblock_dir"`
	Timings          round.Timings `toml:"timings" json:"timings"`
	Map              []string      `toml:"map" json:"map"`
	Actors           []ActorConfig `toml:"actors" json:"actors"`
}

// DefaultConfig 20 TPS，10x10 空地，一名玩家角色对一只 AI 哥布林
func DefaultConfig() Config {
	return Config{
		LogFile:          "tactica.log",
		TickRate:         TicksPerSecond,
		MaxInputsPerTick: 4,
		StepCostFt:       movement.StepCostFt,
		Planner:          movement.FloodFill.String(),
		AITimeoutSec:     ai.DefaultTimeout,
		StatblockDir:     "data/statblocks",
		Timings:          round.DefaultTimings,
		Map: []string{
			"..........",
			"..........",
			"....##....",
			"....##....",
			"..........",
			"..........",
			"..##......",
			"..........",
			"..........",
			"..........",
		},
		Actors: []ActorConfig{
			{Name: "Fighter", Statblock: "fighter", Player: "alice", X: 1, Y: 1},
			{Name: "Goblin", Statblock: "goblin", X: 8, Y: 8},
		},
	}
}

// LoadConfig 读取 TOML 并覆盖在默认值之上；path 为空时直接返回默认值
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate 检查数值范围与地图
func (c Config) Validate() error {
	var errs []error
	if c.TickRate <= 0 || c.TickRate > 1000 {
		errs = append(errs, fmt.Errorf("tick_rate %d out of range (1..1000)", c.TickRate))
	}
	if c.MaxInputsPerTick < 0 {
		errs = append(errs, fmt.Errorf("max_inputs_per_tick must not be negative"))
	}
	if c.StepCostFt <= 0 {
		errs = append(errs, fmt.Errorf("step_cost_ft must be positive"))
	}
	if _, err := movement.ParseStrategy(c.Planner); err != nil {
		errs = append(errs, err)
	}
	if c.AITimeoutSec < 0 {
		errs = append(errs, fmt.Errorf("ai_timeout_sec must not be negative"))
	}
	if err := validateTimings(c.Timings); err != nil {
		errs = append(errs, err)
	}
	if len(c.Map) == 0 {
		errs = append(errs, grid.ErrEmptyMap)
	}
	return errors.Join(errs...)
}

func validateTimings(t round.Timings) error {
	for name, v := range map[string]float64{
		"nop": t.NopSec, "move_to": t.MoveToSec, "move_far": t.MoveFarSec,
		"end_turn": t.EndTurnSec, "recv_turn": t.RecvTurnSec, "end_round": t.EndRoundSec,
	} {
		if v < 0 {
			return fmt.Errorf("timings.%s must not be negative", name)
		}
	}
	return nil
}

// BuildPlanner 由配置构造寻路器
func (c Config) BuildPlanner() (movement.Planner, error) {
	s, err := movement.ParseStrategy(c.Planner)
	if err != nil {
		return movement.Default, err
	}
	return movement.Planner{StepCostFt: c.StepCostFt, Strategy: s}, nil
}
