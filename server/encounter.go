package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"tactica/ai"
	"tactica/entity"
	"tactica/grid"
	"tactica/movement"
	"tactica/round"
	"tactica/world"
)

// 输入被拒绝的原因
var (
	ErrStaleSeq     = errors.New("stale sequence number")
	ErrRateLimited  = errors.New("too many inputs this tick")
	ErrUnknownActor = errors.New("unknown actor")
	ErrNotOwner     = errors.New("actor not owned by player")
	ErrNotYourTurn  = errors.New("actor is not the active entity")
)

// Settings 可热更新的遭遇参数
type Settings struct {
	Timings          round.Timings `json:"timings"`
	Planner          string        `json:"planner"`
	StepCostFt       int           `json:"step_cost_ft"`
	AITimeoutSec     float64       `json:"ai_timeout_sec"`
	MaxInputsPerTick int           `json:"max_inputs_per_tick"`
}

// Validate 与 Config.Validate 使用相同的规则
func (s Settings) Validate() error {
	c := Config{
		TickRate:         TicksPerSecond,
		MaxInputsPerTick: s.MaxInputsPerTick,
		StepCostFt:       s.StepCostFt,
		Planner:          s.Planner,
		AITimeoutSec:     s.AITimeoutSec,
		Timings:          s.Timings,
		Map:              []string{"."},
	}
	return c.Validate()
}

type clientReq struct {
	id   PlayerID
	conn *ClientConn
}

// Encounter 一场遭遇：权威状态维护在内存，单线程 Tick 推进
type Encounter struct {
	ID string

	Grid   *grid.Grid
	Actors *world.Store
	State  *round.State
	Sched  *round.Scheduler
	AI     *ai.Controller

	// OnEvent 可选，在 Tick 线程内同步调用（进程内客户端使用）
	OnEvent func(Event)

	clients   map[PlayerID]*Client
	inputChan chan Input
	joinChan  chan clientReq
	leaveChan chan clientReq
	adminChan chan Settings

	settingsMu sync.RWMutex
	settings   Settings

	events  []Event
	tickSeq atomic.Uint64
	metrics *EncounterMetrics
	log     *zap.SugaredLogger

	tickRate      int
	tickerStarted bool
	stopOnce      sync.Once
	stop          chan struct{}
}

// NewEncounter 按配置摆放地形与角色；log 为 nil 时使用全局 Log
func NewEncounter(id string, cfg Config, statblocks world.Statblocks, log *zap.SugaredLogger) (*Encounter, error) {
	if log == nil {
		log = Log
	}
	log = log.With("encounter", id)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("encounter %s: %w", id, err)
	}
	g, err := grid.Parse(cfg.Map)
	if err != nil {
		return nil, fmt.Errorf("encounter %s: %w", id, err)
	}
	planner, err := cfg.BuildPlanner()
	if err != nil {
		return nil, fmt.Errorf("encounter %s: %w", id, err)
	}

	store := world.NewStore()
	for _, ac := range cfg.Actors {
		pos := grid.C(ac.X, ac.Y)
		if !g.InBounds(pos) || g.IsBlocked(pos) {
			return nil, fmt.Errorf("encounter %s: actor %q placed on impassable cell %s", id, ac.Name, pos)
		}
		a := &world.Actor{
			Name:      ac.Name,
			Player:    ac.Player,
			Statblock: ac.Statblock,
			Stats:     statblocks.Resolve(ac.Statblock),
			Pos:       pos,
		}
		if speed, ok := a.Speed(); ok {
			a.MovementFt = speed
		} else if ac.Statblock != "" {
			log.Warnf("statblock %q not found for %s, movement will not refill", ac.Statblock, ac.Name)
		}
		ref := store.Spawn(a)
		g.SetOccupant(pos, ref)
	}

	e := &Encounter{
		ID:        id,
		Grid:      g,
		Actors:    store,
		State:     round.NewState(),
		clients:   make(map[PlayerID]*Client),
		inputChan: make(chan Input, 256), // 足够缓冲，避免网络读阻塞影响 Tick
		joinChan:  make(chan clientReq, 64),
		leaveChan: make(chan clientReq, 64),
		adminChan: make(chan Settings, 8),
		metrics:   &EncounterMetrics{},
		log:       log,
		tickRate:  cfg.TickRate,
		stop:      make(chan struct{}),
	}
	e.Sched = round.NewScheduler(e.State, store, g, log)
	e.Sched.Planner = planner
	e.Sched.Timings = cfg.Timings
	e.Sched.Hooks = round.Hooks{
		OnTurnActive: func(who entity.Ref) { e.emit(Event{Type: "turn", Actor: who}) },
		OnRoundEnd: func(n uint64) {
			e.metrics.IncRounds()
			e.emit(Event{Type: "round", Round: n})
		},
		OnMoved:    func(who entity.Ref, to grid.Coord) { e.emit(Event{Type: "moved", Actor: who, To: &to}) },
		OnFinished: func(round.Command) { e.metrics.IncFinished() },
		OnDropped: func(cmd round.Command, reason string) {
			e.metrics.IncDropped()
			e.emit(Event{Type: "dropped", Actor: cmd.Who, Reason: reason})
		},
	}
	e.AI = ai.New(cfg.AITimeoutSec, log)
	e.AI.Timings = cfg.Timings
	e.settings = Settings{
		Timings:          cfg.Timings,
		Planner:          planner.Strategy.String(),
		StepCostFt:       planner.StepCostFt,
		AITimeoutSec:     e.AI.Timeout,
		MaxInputsPerTick: cfg.MaxInputsPerTick,
	}
	log.Infof("encounter created: %dx%d grid, %d actors, planner=%s", g.Size(), g.Size(), store.Len(), planner.Strategy)
	return e, nil
}

// Metrics 运行指标
func (e *Encounter) Metrics() *EncounterMetrics { return e.metrics }

// TickSeq 已执行的 Tick 数，可跨协程读取
func (e *Encounter) TickSeq() uint64 { return e.tickSeq.Load() }

// Settings 当前生效的参数副本
func (e *Encounter) Settings() Settings {
	e.settingsMu.RLock()
	defer e.settingsMu.RUnlock()
	return e.settings
}

// UpdateSettings 校验后交给 Tick 线程在下一帧生效
func (e *Encounter) UpdateSettings(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	select {
	case e.adminChan <- s:
		return nil
	default:
		return errors.New("settings update already pending")
	}
}

// Step 推进一帧：处理输入 → 命令执行与回合分配 → AI → 广播
func (e *Encounter) Step(dt float64) {
	start := time.Now()
	e.BeginTick()
	e.ProcessInputs()
	e.Sched.Tick(dt)
	e.AI.Update(e.State, e.Actors, e.Grid, e.Sched.Planner, dt)
	e.Broadcast()
	e.metrics.AddTick(time.Since(start).Nanoseconds())
}

// BeginTick 重置帧内状态
func (e *Encounter) BeginTick() {
	e.tickSeq.Add(1)
	for _, c := range e.clients {
		c.inputsNT = 0
	}
}

// OnInput 入站输入（不立即生效），等下一次 Tick 处理
func (e *Encounter) OnInput(in Input) {
	select {
	case e.inputChan <- in:
	default:
		// 拥塞时丢弃，保证 Tick 准时
		e.metrics.IncChanFullDiscarded()
	}
}

// RequestJoin 请求在 Tick 线程中加入玩家
func (e *Encounter) RequestJoin(pid PlayerID, conn *ClientConn) {
	e.joinChan <- clientReq{id: pid, conn: conn}
}

// RequestLeave 请求在 Tick 线程中移除玩家；conn 与当前连接不符时忽略（已重连）
func (e *Encounter) RequestLeave(pid PlayerID, conn *ClientConn) {
	e.leaveChan <- clientReq{id: pid, conn: conn}
}

// ProcessInputs 非阻塞地取完所有待处理的加入、离开、配置与输入
func (e *Encounter) ProcessInputs() {
	for {
		select {
		case req := <-e.joinChan:
			e.join(req.id, req.conn)
		case req := <-e.leaveChan:
			e.leave(req.id, req.conn)
		case s := <-e.adminChan:
			e.applySettings(s)
		case in := <-e.inputChan:
			if err := e.Submit(in); err != nil {
				e.log.Debugf("input rejected: player=%s actor=%s kind=%s: %v", in.PlayerID, in.Actor, in.Kind, err)
			}
		default:
			return
		}
	}
}

// Submit 校验并把输入转成命令追加到队尾；只能在 Tick 线程调用
func (e *Encounter) Submit(in Input) error {
	c := e.clients[in.PlayerID]
	if c != nil {
		if in.Seq != 0 {
			if in.Seq <= c.lastSeq {
				e.metrics.IncOldSeqIgnored()
				return ErrStaleSeq
			}
			c.lastSeq = in.Seq
		}
		if limit := e.Settings().MaxInputsPerTick; limit > 0 && c.inputsNT >= limit {
			e.metrics.IncRateLimited()
			return ErrRateLimited
		}
	}

	a, ok := e.Actors.Lookup(in.Actor)
	switch {
	case !ok:
		e.metrics.IncRejected()
		return ErrUnknownActor
	case a.Player == "" || a.Player != string(in.PlayerID):
		e.metrics.IncRejected()
		return ErrNotOwner
	case in.Kind != round.KindNop && e.State.ActiveEntity != a.Ref:
		e.metrics.IncRejected()
		return ErrNotYourTurn
	}

	if c != nil {
		c.inputsNT++
	}
	e.State.PushBack(in.command(e.Sched.Timings))
	e.metrics.IncAccepted()
	return nil
}

// Snapshot 当前权威状态
func (e *Encounter) Snapshot() StateMessage {
	msg := StateMessage{
		Type:   "state",
		Tick:   e.TickSeq(),
		Round:  e.State.RoundNum,
		Active: e.State.ActiveEntity,
		Queue:  make([]string, 0, e.State.Len()),
		Actors: make([]ActorState, 0, e.Actors.Len()),
	}
	for _, cmd := range e.State.Commands() {
		msg.Queue = append(msg.Queue, cmd.String())
	}
	e.Actors.Each(func(a *world.Actor) {
		msg.Actors = append(msg.Actors, actorState(a))
	})
	return msg
}

// GridSnapshot 地形，加入时发送
func (e *Encounter) GridSnapshot() GridMessage {
	msg := GridMessage{Type: "grid", Size: e.Grid.Size(), Blocked: []grid.Coord{}, Void: []grid.Coord{}}
	for y := 0; y < e.Grid.Size(); y++ {
		for x := 0; x < e.Grid.Size(); x++ {
			c := grid.C(x, y)
			switch {
			case e.Grid.IsBlocked(c):
				msg.Blocked = append(msg.Blocked, c)
			case !e.Grid.IsWalkable(c):
				msg.Void = append(msg.Void, c)
			}
		}
	}
	return msg
}

// Reachable 当前行动者的可达格，供客户端高亮
func (e *Encounter) Reachable() map[grid.Coord]movement.ReachableCell {
	a, ok := e.Actors.Lookup(e.State.ActiveEntity)
	if !ok {
		return nil
	}
	return e.Sched.Planner.Reachable(e.Grid, a.Pos, a.MovementFt)
}

// Broadcast 先发送本帧事件，再发送状态快照（文本 JSON）
func (e *Encounter) Broadcast() {
	events := e.events
	e.events = nil
	if len(e.clients) == 0 {
		return
	}
	for _, ev := range events {
		b, _ := json.Marshal(ev)
		e.sendAll(b)
	}
	b, _ := json.Marshal(e.Snapshot())
	e.sendAll(b)
}

func (e *Encounter) sendAll(b []byte) {
	for _, c := range e.clients {
		if c.Conn != nil {
			c.Conn.Enqueue(b)
		}
	}
}

func (e *Encounter) emit(ev Event) {
	e.events = append(e.events, ev)
	if e.OnEvent != nil {
		e.OnEvent(ev)
	}
}

func (e *Encounter) join(pid PlayerID, conn *ClientConn) {
	if old, ok := e.clients[pid]; ok && old.Conn != nil && old.Conn != conn {
		old.Conn.Close()
	}
	e.clients[pid] = &Client{ID: pid, Conn: conn}
	if conn != nil {
		b, _ := json.Marshal(e.GridSnapshot())
		conn.Enqueue(b)
	}
	e.log.Infof("player joined: %s", pid)
}

func (e *Encounter) leave(pid PlayerID, conn *ClientConn) {
	c, ok := e.clients[pid]
	if !ok || (conn != nil && c.Conn != conn) {
		return
	}
	if c.Conn != nil {
		c.Conn.Close()
	}
	delete(e.clients, pid)
	e.log.Infof("player left: %s", pid)
}

func (e *Encounter) applySettings(s Settings) {
	strategy, _ := movement.ParseStrategy(s.Planner)
	e.Sched.Planner = movement.Planner{StepCostFt: s.StepCostFt, Strategy: strategy}
	e.Sched.Timings = s.Timings
	e.AI.Timings = s.Timings
	if s.AITimeoutSec > 0 {
		e.AI.Timeout = s.AITimeoutSec
	} else {
		e.AI.Timeout = ai.DefaultTimeout
	}
	s.AITimeoutSec = e.AI.Timeout
	s.Planner = strategy.String()

	e.settingsMu.Lock()
	e.settings = s
	e.settingsMu.Unlock()
	e.log.Infof("settings updated: planner=%s step=%dft ai_timeout=%.2fs max_inputs=%d timings=%+v",
		s.Planner, s.StepCostFt, s.AITimeoutSec, s.MaxInputsPerTick, s.Timings)
}
