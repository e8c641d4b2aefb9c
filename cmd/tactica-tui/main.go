// tactica-tui 本地终端客户端：进程内运行一场遭遇，不经过网络
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"tactica/grid"
	"tactica/movement"
	"tactica/round"
	"tactica/server"
	"tactica/world"
)

type app struct {
	screen tcell.Screen
	enc    *server.Encounter
	log    *zap.SugaredLogger
	chime  *chime
	notes  *journal

	player string // 空串表示操控所有玩家角色
	cursor grid.Coord
	dt     float64
	tick   time.Duration
}

func main() {
	var (
		configPath string
		logPath    string
		player     string
		mute       bool
	)
	flag.StringVar(&configPath, "config", "", "encounter config (TOML); empty uses built-in defaults")
	flag.StringVar(&logPath, "log", "tactica-tui.log", "log file")
	flag.StringVar(&player, "player", "", "only control actors owned by this player")
	flag.BoolVar(&mute, "mute", false, "disable the turn chime")
	flag.Parse()

	if err := run(configPath, logPath, player, !mute); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, logPath, player string, sound bool) error {
	cfg, err := server.LoadConfig(configPath)
	if err != nil {
		return err
	}
	log := server.NewFileLogger(logPath, false)
	defer func() { _ = log.Sync() }()

	statblocks, err := world.LoadStatblocks(cfg.StatblockDir)
	if err != nil {
		return err
	}
	enc, err := server.NewEncounter("local", cfg, statblocks, log)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}

	interval := time.Second / time.Duration(cfg.TickRate)
	a := &app{
		screen: screen,
		enc:    enc,
		log:    log,
		chime:  newChime(sound),
		notes:  newJournal(200),
		player: player,
		dt:     interval.Seconds(),
		tick:   interval,
	}
	defer a.cleanup()

	enc.OnEvent = a.onEvent
	a.notes.Add("encounter ready: %d actors", enc.Actors.Len())
	a.loop()
	return nil
}

// loop 单协程：键盘事件与 Tick 在同一个 select 中处理
func (a *app) loop() {
	ticker := time.NewTicker(a.tick)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(a.screen, eventChan, done)

	for {
		select {
		case ev := <-eventChan:
			if !a.handleInput(ev) {
				return
			}
		case <-ticker.C:
			a.enc.Step(a.dt)
			a.draw()
		}
	}
}

// pollEvents 把终端事件转发到 out；屏幕关闭（PollEvent 返回 nil）或 done 关闭时退出
func pollEvents(screen tcell.Screen, out chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}

func (a *app) cleanup() {
	a.chime.Close()
	a.screen.Fini()
}

func (a *app) onEvent(ev server.Event) {
	if line := describe(ev, a.enc.Actors); line != "" {
		a.notes.Add("%s", line)
	}
	if ev.Type != "turn" {
		return
	}
	if act, ok := a.enc.Actors.Lookup(ev.Actor); ok {
		a.cursor = act.Pos
		if a.controls(act) {
			a.chime.Play(880)
		}
	}
}

// controls 当前终端能否操控该角色
func (a *app) controls(act *world.Actor) bool {
	if act.IsAI() {
		return false
	}
	return a.player == "" || a.player == act.Player
}

func (a *app) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			a.moveCursor(0, -1)
		case tcell.KeyDown:
			a.moveCursor(0, 1)
		case tcell.KeyLeft:
			a.moveCursor(-1, 0)
		case tcell.KeyRight:
			a.moveCursor(1, 0)
		case tcell.KeyEnter:
			a.submit(round.KindMoveFar)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'e':
				a.submit(round.KindEndTurn)
			case 'c':
				if err := clipboard.WriteAll(a.notes.Text()); err != nil {
					a.notes.Add("clipboard: %v", err)
				} else {
					a.notes.Add("log copied to clipboard")
				}
			}
		}
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *app) moveCursor(dx, dy int) {
	next := a.cursor.Add(grid.C(dx, dy))
	if a.enc.Grid.InBounds(next) {
		a.cursor = next
	}
}

func (a *app) submit(kind round.Kind) {
	act, ok := a.enc.Actors.Lookup(a.enc.State.ActiveEntity)
	if !ok || !a.controls(act) {
		a.notes.Add("not your turn")
		return
	}
	in := server.Input{
		PlayerID: server.PlayerID(act.Player),
		Kind:     kind,
		Actor:    act.Ref,
		To:       a.cursor,
	}
	if err := a.enc.Submit(in); err != nil {
		a.notes.Add("%s: %v", act.Name, err)
		a.log.Debugf("local input rejected: %v", err)
	}
}

var (
	styleFloor     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleWall      = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleReach     = tcell.StyleDefault.Foreground(tcell.ColorGreen).Background(tcell.ColorDarkGreen)
	styleCursor    = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
	stylePlayer    = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleAI        = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleText      = tcell.StyleDefault
	styleHighlight = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

// draw 每格占两列；角色按插值中的表现位置绘制
func (a *app) draw() {
	a.screen.Clear()
	g := a.enc.Grid
	reach := a.reachable()

	for y := 0; y < g.Size(); y++ {
		for x := 0; x < g.Size(); x++ {
			c := grid.C(x, y)
			r, style := '.', styleFloor
			switch {
			case g.IsBlocked(c):
				r, style = '#', styleWall
			case !g.IsWalkable(c):
				r = ' '
			}
			if _, ok := reach[c]; ok {
				style = styleReach
			}
			if c == a.cursor {
				style = styleCursor
			}
			a.screen.SetContent(x*2, y, r, nil, style)
			a.screen.SetContent(x*2+1, y, ' ', nil, style)
		}
	}

	a.enc.Actors.Each(func(act *world.Actor) {
		x, y := int(act.Visual.X), int(act.Visual.Y)
		style := stylePlayer
		if act.IsAI() {
			style = styleAI
		}
		if act.Ref == a.enc.State.ActiveEntity {
			style = style.Reverse(true)
		}
		r := []rune(act.Name + "?")[0]
		if act.Visual.Z > 0.05 {
			r = '^'
		}
		a.screen.SetContent(x*2, y, r, nil, style)
	})

	a.drawSidebar(g.Size()*2 + 2)
	a.screen.Show()
}

func (a *app) reachable() map[grid.Coord]movement.ReachableCell {
	if a.enc.State.IsExecuting() {
		return nil
	}
	act, ok := a.enc.Actors.Lookup(a.enc.State.ActiveEntity)
	if !ok || !a.controls(act) {
		return nil
	}
	return a.enc.Reachable()
}

func (a *app) drawSidebar(col int) {
	row := 0
	line := func(style tcell.Style, format string, args ...any) {
		for i, r := range []rune(fmt.Sprintf(format, args...)) {
			a.screen.SetContent(col+i, row, r, nil, style)
		}
		row++
	}

	st := a.enc.State
	line(styleHighlight, "Round %d", st.RoundNum)
	if act, ok := a.enc.Actors.Lookup(st.ActiveEntity); ok {
		line(styleText, "Active: %s  %dft left", act.Name, act.MovementFt)
	} else {
		line(styleText, "Active: -")
	}
	line(styleText, "Cursor: %s", a.cursor)
	line(styleText, "Queue: %d", st.Len())
	row++
	for _, ref := range st.InitiativeOrder {
		act, ok := a.enc.Actors.Lookup(ref)
		if !ok {
			continue
		}
		mark := " "
		if st.HasActed(ref) {
			mark = "x"
		}
		if ref == st.ActiveEntity {
			mark = ">"
		}
		line(styleText, "%s %-12s %s", mark, act.Name, act.Pos)
	}
	row++
	for _, l := range a.notes.Tail(10) {
		line(styleFloor, "%s", l)
	}
	row++
	line(styleFloor, "arrows move  enter go  e end turn  c copy log  q quit")
}
