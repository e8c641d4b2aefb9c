package round

import (
	"fmt"

	"tactica/entity"
	"tactica/grid"
)

// Kind 命令种类（封闭集合）。新增种类时必须同时更新 Scheduler.update 与 Scheduler.finish。
type Kind int

const (
	KindNop Kind = iota
	KindMoveTo
	KindMoveFar
	KindEndTurn
	KindRecvTurn
	KindEndRound
)

func (k Kind) String() string {
	switch k {
	case KindNop:
		return "nop"
	case KindMoveTo:
		return "move_to"
	case KindMoveFar:
		return "move_far"
	case KindEndTurn:
		return "end_turn"
	case KindRecvTurn:
		return "recv_turn"
	case KindEndRound:
		return "end_round"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Command 带时长的队列动作：update 期间按进度插值，计时结束后 finish 提交效果
type Command struct {
	Kind     Kind
	Who      entity.Ref // Nop / EndRound 不使用
	To       grid.Coord // 仅 MoveTo / MoveFar 使用
	Timer    float64    // 总时长（秒）
	Elapsed  float64    // 已经过时长，单调递增且不超过 Timer
	Parallel bool       // 保留字段，目前不影响执行顺序
}

// Alpha 进度比，钳制到 [0,1]；Timer 为 0 时视为已完成
func (c Command) Alpha() float64 {
	if c.Timer == 0 {
		return 1
	}
	a := c.Elapsed / c.Timer
	if a < 0 {
		return 0
	}
	if a > 1 {
		return 1
	}
	return a
}

// Done 计时是否结束
func (c Command) Done() bool { return c.Elapsed >= c.Timer }

func (c Command) String() string {
	switch c.Kind {
	case KindMoveTo, KindMoveFar:
		return fmt.Sprintf("%s{%s -> %s}", c.Kind, c.Who, c.To)
	case KindEndTurn, KindRecvTurn:
		return fmt.Sprintf("%s{%s}", c.Kind, c.Who)
	default:
		return c.Kind.String()
	}
}

// Timings 各类命令的时长（秒）
type Timings struct {
	NopSec      float64 `toml:"nop" json:"nop"`
	MoveToSec   float64 `toml:"move_to" json:"move_to"`
	MoveFarSec  float64 `toml:"move_far" json:"move_far"`
	EndTurnSec  float64 `toml:"end_turn" json:"end_turn"`
	RecvTurnSec float64 `toml:"recv_turn" json:"recv_turn"`
	EndRoundSec float64 `toml:"end_round" json:"end_round"`
}

// DefaultTimings 单步移动 0.2 秒，长距离移动立即展开
var DefaultTimings = Timings{
	NopSec:      0.5,
	MoveToSec:   0.2,
	MoveFarSec:  0,
	EndTurnSec:  0.25,
	RecvTurnSec: 0.25,
	EndRoundSec: 0.25,
}

func (t Timings) Nop() Command {
	return Command{Kind: KindNop, Timer: t.NopSec}
}

func (t Timings) MoveTo(who entity.Ref, to grid.Coord) Command {
	return Command{Kind: KindMoveTo, Who: who, To: to, Timer: t.MoveToSec}
}

func (t Timings) MoveFar(who entity.Ref, to grid.Coord) Command {
	return Command{Kind: KindMoveFar, Who: who, To: to, Timer: t.MoveFarSec}
}

func (t Timings) EndTurn(who entity.Ref) Command {
	return Command{Kind: KindEndTurn, Who: who, Timer: t.EndTurnSec}
}

func (t Timings) RecvTurn(who entity.Ref) Command {
	return Command{Kind: KindRecvTurn, Who: who, Timer: t.RecvTurnSec}
}

func (t Timings) EndRound() Command {
	return Command{Kind: KindEndRound, Timer: t.EndRoundSec}
}

func Nop() Command                                  { return DefaultTimings.Nop() }
func MoveTo(who entity.Ref, to grid.Coord) Command  { return DefaultTimings.MoveTo(who, to) }
func MoveFar(who entity.Ref, to grid.Coord) Command { return DefaultTimings.MoveFar(who, to) }
func EndTurn(who entity.Ref) Command                { return DefaultTimings.EndTurn(who) }
func RecvTurn(who entity.Ref) Command               { return DefaultTimings.RecvTurn(who) }
func EndRound() Command                             { return DefaultTimings.EndRound() }
