// Package entity 定义角色的弱引用句柄。
// 核心只持有 Ref，从不持有角色指针；每次解引用前都要先到 world.Store 查询是否存在。
package entity

import "github.com/oklog/ulid/v2"

// Ref 不透明的实体引用（ULID 字符串），零值表示“无实体”
type Ref string

// None 空引用
const None Ref = ""

// NewRef 生成新的唯一引用
func NewRef() Ref {
	return Ref(ulid.Make().String())
}

// IsNone 是否为空引用
func (r Ref) IsNone() bool { return r == None }

func (r Ref) String() string { return string(r) }
