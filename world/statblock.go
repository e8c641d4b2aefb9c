package world

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Statblock 角色属性卡（TOML）
type Statblock struct {
	Name      string `toml:"name" json:"name"`
	Speed     int    `toml:"speed" json:"speed"`
	HitPoints int    `toml:"hit_points" json:"hit_points"`
}

// ParseStatblock 解析单张属性卡
func ParseStatblock(data []byte) (*Statblock, error) {
	var sb Statblock
	if _, err := toml.Decode(string(data), &sb); err != nil {
		return nil, fmt.Errorf("parse statblock: %w", err)
	}
	if sb.Speed < 0 {
		return nil, fmt.Errorf("parse statblock %q: negative speed %d", sb.Name, sb.Speed)
	}
	return &sb, nil
}

// Statblocks 按名称（文件名去掉扩展名）索引的属性卡
type Statblocks map[string]*Statblock

// LoadStatblocks 加载目录下所有 *.toml
func LoadStatblocks(dir string) (Statblocks, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.toml"))
	if err != nil {
		return nil, fmt.Errorf("list statblocks: %w", err)
	}
	out := make(Statblocks, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read statblock: %w", err)
		}
		sb, err := ParseStatblock(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		out[strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))] = sb
	}
	return out, nil
}

// Resolve 查找属性卡，不存在返回 nil
func (s Statblocks) Resolve(name string) *Statblock {
	if s == nil || name == "" {
		return nil
	}
	return s[name]
}
