package server

import (
	"tactica/entity"
	"tactica/grid"
	"tactica/world"
)

// PlayerID 连接方（玩家）唯一标识，对应 Actor.Player
type PlayerID string

// ActorState 广播给客户端的角色状态
type ActorState struct {
	Ref        entity.Ref `json:"ref"`
	Name       string     `json:"name"`
	Player     string     `json:"player,omitempty"`
	X          int        `json:"x"`
	Y          int        `json:"y"`
	MovementFt int        `json:"movement_ft"`
	VX         float64    `json:"vx"`
	VY         float64    `json:"vy"`
	VZ         float64    `json:"vz"`
}

func actorState(a *world.Actor) ActorState {
	return ActorState{
		Ref:        a.Ref,
		Name:       a.Name,
		Player:     a.Player,
		X:          a.Pos.X,
		Y:          a.Pos.Y,
		MovementFt: a.MovementFt,
		VX:         a.Visual.X,
		VY:         a.Visual.Y,
		VZ:         a.Visual.Z,
	}
}

// StateMessage 每个 Tick 的权威快照
type StateMessage struct {
	Type   string       `json:"type"` // "state"
	Tick   uint64       `json:"tick"`
	Round  uint64       `json:"round"`
	Active entity.Ref   `json:"active,omitempty"`
	Queue  []string     `json:"queue"`
	Actors []ActorState `json:"actors"`
}

// GridMessage 加入时发送一次的地形
type GridMessage struct {
	Type    string       `json:"type"` // "grid"
	Size    int          `json:"size"`
	Blocked []grid.Coord `json:"blocked"`
	Void    []grid.Coord `json:"void"` // 既不可走也不阻挡（地图外形空洞）
}

// Event 状态变化通知：turn / round / moved / dropped
type Event struct {
	Type   string      `json:"type"`
	Actor  entity.Ref  `json:"actor,omitempty"`
	Round  uint64      `json:"round,omitempty"`
	To     *grid.Coord `json:"to,omitempty"`
	Reason string      `json:"reason,omitempty"`
}

// Client 一个已连接的玩家
type Client struct {
	ID   PlayerID
	Conn *ClientConn

	lastSeq  int64
	inputsNT int // 本 Tick 已接受的输入数
}
