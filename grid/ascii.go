package grid

import "errors"

// ErrEmptyMap 地图没有任何行
var ErrEmptyMap = errors.New("grid: empty map")

// Parse 由 ASCII 行构建网格：'#' 阻挡，'.' 可行走，空格两者皆否，其余字符视为可行走。
// 边长取行数与最长行中的较大者，不足部分填充空格子。
func Parse(lines []string) (*Grid, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyMap
	}
	size := len(lines)
	for _, line := range lines {
		if n := len([]rune(line)); n > size {
			size = n
		}
	}
	g := New(size)
	for y, line := range lines {
		for x, r := range []rune(line) {
			cell := g.At(Coord{X: x, Y: y})
			switch r {
			case '#':
				cell.Blocked = true
			case ' ':
			default:
				cell.Walkable = true
			}
		}
	}
	return g, nil
}
