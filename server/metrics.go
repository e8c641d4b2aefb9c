package server

import (
	"sync/atomic"
)

// EncounterMetrics 遭遇运行期的关键指标
type EncounterMetrics struct {
	TickCount         int64 // Tick 次数
	TotalTickNs       int64 // Tick 累计耗时（纳秒）
	InputsAccepted    int64 // 入队的输入
	InputsRejected    int64 // 非法输入：角色不存在、不属于该玩家、不在其回合
	RateLimited       int64 // 同帧超出配额
	OldSeqIgnored     int64 // 旧序列号
	ChanFullDiscarded int64 // 通道满被丢弃
	CommandsFinished  int64
	CommandsDropped   int64
	Rounds            int64
}

func (m *EncounterMetrics) IncAccepted()          { atomic.AddInt64(&m.InputsAccepted, 1) }
func (m *EncounterMetrics) IncRejected()          { atomic.AddInt64(&m.InputsRejected, 1) }
func (m *EncounterMetrics) IncRateLimited()       { atomic.AddInt64(&m.RateLimited, 1) }
func (m *EncounterMetrics) IncOldSeqIgnored()     { atomic.AddInt64(&m.OldSeqIgnored, 1) }
func (m *EncounterMetrics) IncChanFullDiscarded() { atomic.AddInt64(&m.ChanFullDiscarded, 1) }
func (m *EncounterMetrics) IncFinished()          { atomic.AddInt64(&m.CommandsFinished, 1) }
func (m *EncounterMetrics) IncDropped()           { atomic.AddInt64(&m.CommandsDropped, 1) }
func (m *EncounterMetrics) IncRounds()            { atomic.AddInt64(&m.Rounds, 1) }
func (m *EncounterMetrics) AddTick(ns int64) {
	atomic.AddInt64(&m.TickCount, 1)
	atomic.AddInt64(&m.TotalTickNs, ns)
}

// Snapshot 只读副本，便于 HTTP 输出
func (m *EncounterMetrics) Snapshot() map[string]any {
	tick := atomic.LoadInt64(&m.TickCount)
	total := atomic.LoadInt64(&m.TotalTickNs)
	var avgMs float64
	if tick > 0 {
		avgMs = float64(total) / float64(tick) / 1e6
	}
	return map[string]any{
		"tick_count":          tick,
		"avg_tick_ms":         avgMs,
		"inputs_accepted":     atomic.LoadInt64(&m.InputsAccepted),
		"inputs_rejected":     atomic.LoadInt64(&m.InputsRejected),
		"rate_limited":        atomic.LoadInt64(&m.RateLimited),
		"old_seq_ignored":     atomic.LoadInt64(&m.OldSeqIgnored),
		"chan_full_discarded": atomic.LoadInt64(&m.ChanFullDiscarded),
		"commands_finished":   atomic.LoadInt64(&m.CommandsFinished),
		"commands_dropped":    atomic.LoadInt64(&m.CommandsDropped),
		"rounds":              atomic.LoadInt64(&m.Rounds),
	}
}
