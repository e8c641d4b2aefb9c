// Package world 角色存储：核心通过 entity.Ref 查询角色，读写其网格坐标与移动预算。
package world

import (
	"tactica/entity"
	"tactica/grid"
)

// Vec3 表现层使用的连续坐标（格中心为 x+0.5, y+0.5）
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(k float64) Vec3 { return Vec3{v.X * k, v.Y * k, v.Z * k} }
func CellCenter(c grid.Coord) Vec3  { return Vec3{X: float64(c.X) + 0.5, Y: float64(c.Y) + 0.5} }

// Actor 网格上的角色（token）
type Actor struct {
	Ref       entity.Ref
	Name      string
	Player    string     // 控制者；空串表示由 AI 控制
	Statblock string     // 属性卡名称
	Stats     *Statblock // 未加载时为 nil，此时回合开始不补满移动力

	Pos        grid.Coord // 逻辑位置，只在 MoveTo 完成时提交
	MovementFt int        // 本回合剩余移动力
	Visual     Vec3       // 插值中的表现位置
}

// IsAI 是否由 AI 控制
func (a *Actor) IsAI() bool { return a.Player == "" }

// Speed 属性卡速度；没有属性卡时 ok=false
func (a *Actor) Speed() (int, bool) {
	if a.Stats == nil {
		return 0, false
	}
	return a.Stats.Speed, true
}
