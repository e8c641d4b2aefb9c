package round

import (
	"tactica/grid"
	"tactica/world"
)

// HopHeight 单步移动时垂直弧线的峰值
const HopHeight = 0.2

// Smootherstep 6x^5 - 15x^4 + 10x^3，输入先归一化并钳制到 [0,1]
func Smootherstep(edge0, edge1, x float64) float64 {
	t := (x - edge0) / (edge1 - edge0)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t * t * t * (t*(t*6-15) + 10)
}

// Hop 三角形弧线：0 → 1（alpha=0.5）→ 0
func Hop(alpha float64) float64 {
	if alpha <= 0.5 {
		return alpha * 2
	}
	return 1 - (alpha-0.5)*2
}

// Interpolate 从 from 格中心缓动到 to 格中心，并叠加跳跃高度
func Interpolate(from, to grid.Coord, alpha float64) world.Vec3 {
	s := world.CellCenter(from)
	v := world.CellCenter(to).Sub(s).Scale(Smootherstep(0, 1, alpha))
	return s.Add(v).Add(world.Vec3{Z: Hop(alpha) * HopHeight})
}
