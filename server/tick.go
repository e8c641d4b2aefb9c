package server

import "time"

const (
	// TicksPerSecond 默认推进频率（20 TPS）
	TicksPerSecond = 20
)

// tickInterval 由配置的 TPS 得到帧间隔
func tickInterval(rate int) time.Duration {
	if rate <= 0 {
		rate = TicksPerSecond
	}
	return time.Second / time.Duration(rate)
}

// StartTicker 启动遭遇的 Tick 循环（单线程推进世界）。
// 每帧使用固定 dt，保证命令时长与墙钟抖动无关。
func (e *Encounter) StartTicker() {
	if e.tickerStarted {
		return
	}
	e.tickerStarted = true
	interval := tickInterval(e.tickRate)
	dt := interval.Seconds()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-e.stop:
				return
			case <-ticker.C:
				e.Step(dt)
			}
		}
	}()
}

// Stop 结束 Tick 循环
func (e *Encounter) Stop() {
	e.stopOnce.Do(func() {
		close(e.stop)
	})
}
