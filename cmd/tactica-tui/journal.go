package main

import (
	"fmt"
	"strings"

	"tactica/entity"
	"tactica/server"
	"tactica/world"
)

// journal 最近的遭遇记录，按时间顺序
type journal struct {
	lines []string
	max   int
}

func newJournal(max int) *journal {
	return &journal{max: max}
}

func (j *journal) Add(format string, args ...any) {
	j.lines = append(j.lines, fmt.Sprintf(format, args...))
	if over := len(j.lines) - j.max; over > 0 {
		j.lines = append(j.lines[:0], j.lines[over:]...)
	}
}

// Tail 最后 n 行
func (j *journal) Tail(n int) []string {
	if n >= len(j.lines) {
		return j.lines
	}
	return j.lines[len(j.lines)-n:]
}

// Text 剪贴板格式
func (j *journal) Text() string { return strings.Join(j.lines, "\n") }

// describe 把事件翻译为一行记录；不关心的事件返回空串
func describe(ev server.Event, actors *world.Store) string {
	name := func(ref entity.Ref) string {
		if a, ok := actors.Lookup(ref); ok {
			return a.Name
		}
		return ref.String()
	}
	switch ev.Type {
	case "turn":
		return fmt.Sprintf("%s's turn", name(ev.Actor))
	case "round":
		return fmt.Sprintf("-- round %d --", ev.Round)
	case "dropped":
		if ev.Actor.IsNone() {
			return "command dropped: " + ev.Reason
		}
		return fmt.Sprintf("%s: %s", name(ev.Actor), ev.Reason)
	default:
		return ""
	}
}
