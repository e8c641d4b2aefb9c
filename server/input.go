package server

import (
	"fmt"
	"strings"

	"tactica/entity"
	"tactica/grid"
	"tactica/round"
)

// InputMessage 入站 JSON（WebSocket 文本消息）
// 示例：{"type":"move_far","actor":"01J...","x":3,"y":4,"seq":7}
type InputMessage struct {
	Type  string `json:"type" jsonschema:"enum=move_far,enum=move_to,enum=end_turn,enum=nop"`
	Actor string `json:"actor"`
	X     int    `json:"x,omitempty"`
	Y     int    `json:"y,omitempty"`
	Seq   int64  `json:"seq,omitempty"`
}

// Input 已解析的意图，由 Tick 线程校验后入队
type Input struct {
	PlayerID PlayerID
	Kind     round.Kind
	Actor    entity.Ref
	To       grid.Coord
	Seq      int64 // 客户端序列号，0 表示不做去重
}

// ParseInput 把线上消息转换为 Input；未知类型返回错误
func ParseInput(pid PlayerID, im InputMessage) (Input, error) {
	in := Input{PlayerID: pid, Actor: entity.Ref(im.Actor), To: grid.C(im.X, im.Y), Seq: im.Seq}
	switch strings.ToLower(im.Type) {
	case "move_far":
		in.Kind = round.KindMoveFar
	case "move_to":
		in.Kind = round.KindMoveTo
	case "end_turn":
		in.Kind = round.KindEndTurn
	case "nop":
		in.Kind = round.KindNop
	default:
		return in, fmt.Errorf("unknown input type %q", im.Type)
	}
	if in.Actor.IsNone() {
		return in, fmt.Errorf("input %s without actor", im.Type)
	}
	return in, nil
}

// command 按当前时长配置生成命令
func (in Input) command(t round.Timings) round.Command {
	switch in.Kind {
	case round.KindMoveFar:
		return t.MoveFar(in.Actor, in.To)
	case round.KindMoveTo:
		return t.MoveTo(in.Actor, in.To)
	case round.KindEndTurn:
		return t.EndTurn(in.Actor)
	default:
		return t.Nop()
	}
}
