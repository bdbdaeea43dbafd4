package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/weaveloop/combat-server-go/internal/combat"
)

const tickInterval = 16 * time.Millisecond // ~60 FPS

// hotbarKeys maps the number row onto the ability list, in catalog order.
var hotbarKeys = []rune{'1', '2', '3', '4', '5', '6', '7', '8', '9', '0'}

type app struct {
	screen   tcell.Screen
	session  *combat.Session
	keybinds map[rune]combat.AbilityID
	pending  []combat.AbilityID
	lastTick time.Time
	log      []string
}

func newApp() (*app, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	session := combat.NewSession(combat.SessionConfig{}, zap.NewNop())

	keybinds := make(map[rune]combat.AbilityID)
	for i, id := range combat.AllAbilities() {
		if i >= len(hotbarKeys) {
			break
		}
		keybinds[hotbarKeys[i]] = id
	}

	return &app{
		screen:   screen,
		session:  session,
		keybinds: keybinds,
		lastTick: time.Now(),
	}, nil
}

func (a *app) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			r := ev.Rune()
			if r == 'q' {
				return false
			}
			if r == 'r' {
				a.session.Reset()
				a.log = nil
				return true
			}
			if id, ok := a.keybinds[r]; ok {
				a.pending = append(a.pending, id)
			}
		}
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *app) tick() {
	now := time.Now()
	dt := now.Sub(a.lastTick).Seconds()
	a.lastTick = now

	events := a.session.Step(dt, a.pending)
	a.pending = a.pending[:0]

	for _, evt := range events {
		switch evt.Type {
		case combat.EventDamage:
			a.pushLog(fmt.Sprintf("%s hits for %d", evt.Ability, evt.Amount))
		case combat.EventApplyDot:
			a.pushLog(fmt.Sprintf("%s applied (%d dps, %.0fs)", evt.Ability, evt.DPS, evt.Duration))
		case combat.EventAlert:
			a.pushLog("!! incoming !!")
		}
	}

	a.draw()
}

func (a *app) pushLog(line string) {
	a.log = append(a.log, line)
	if len(a.log) > 6 {
		a.log = a.log[len(a.log)-6:]
	}
}

func (a *app) draw() {
	view := a.session.View()
	a.screen.Clear()

	// HUD alerts shake the whole frame.
	shake := 0
	if view.HUDAlert > 0 {
		if int(view.HUDAlert*20)%2 == 0 {
			shake = 1
		} else {
			shake = -1
		}
	}
	x0 := 2 + shake

	row := 1
	a.drawText(x0, row, tcell.StyleDefault.Bold(true), "weaveloop  [1-0] abilities  [r] reset  [q] quit")
	row += 2

	// Target health
	hpStyle := tcell.StyleDefault.Foreground(tcell.ColorRed)
	a.drawText(x0, row, tcell.StyleDefault, fmt.Sprintf("target %4d/%d", view.Target.Current, view.Target.Max))
	frac := 0.0
	if view.Target.Max > 0 {
		frac = float64(view.Target.Current) / float64(view.Target.Max)
	}
	a.drawBar(x0+18, row, 30, frac, hpStyle)
	if view.Target.HasDot {
		a.drawText(x0+50, row, tcell.StyleDefault.Foreground(tcell.ColorGreen), "burning")
	}
	row += 2

	// Cast bar
	if view.Cast != nil {
		castStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
		a.drawText(x0, row, tcell.StyleDefault, fmt.Sprintf("casting %-10s", view.CastingAs))
		a.drawBar(x0+18, row, 30, 1.0-view.Cast.Fraction, castStyle)
	}
	row += 2

	// GCD and weave status
	gcdStyle := tcell.StyleDefault.Foreground(tcell.ColorTeal)
	a.drawText(x0, row, tcell.StyleDefault, "gcd")
	a.drawBar(x0+18, row, 30, 1.0-view.GCD.Fraction, gcdStyle)
	status := fmt.Sprintf("weaves %d", view.Weaves)
	if view.Clipped {
		status += "  CLIPPED"
	}
	a.drawText(x0+50, row, tcell.StyleDefault.Foreground(tcell.ColorOrange), status)
	row += 2

	// Buff and debuff row
	var buffs string
	if view.Swiftcast > 0 {
		buffs += fmt.Sprintf("swiftcast %.1fs  ", view.Swiftcast)
	}
	if view.Raging > 0 {
		buffs += fmt.Sprintf("raging %.1fs  ", view.Raging)
	}
	if view.Debuff > 0 {
		buffs += fmt.Sprintf("DEBUFF %.1fs", view.Debuff)
	}
	a.drawText(x0, row, tcell.StyleDefault.Foreground(tcell.ColorPurple), buffs)
	row += 2

	// Queue and buffer indicators
	var held string
	if view.Queued != "" {
		held += fmt.Sprintf("queued: %s  ", view.Queued)
	}
	if view.Buffered != "" {
		held += fmt.Sprintf("buffered: %s", view.Buffered)
	}
	a.drawText(x0, row, tcell.StyleDefault.Foreground(tcell.ColorGray), held)
	row += 2

	// Hotbar
	for i, cd := range view.Cooldowns {
		if i >= len(hotbarKeys) {
			break
		}
		style := tcell.StyleDefault
		label := fmt.Sprintf("[%c] %-10s", hotbarKeys[i], cd.Ability)
		if !cd.Ready {
			style = style.Foreground(tcell.ColorGray)
			label += fmt.Sprintf(" %4.1fs ", cd.Remaining)
			a.drawText(x0, row, style, label)
			a.drawBar(x0+24, row, 12, 1.0-cd.Fraction, style)
		} else {
			a.drawText(x0, row, style.Foreground(tcell.ColorWhite), label)
		}
		row++
	}
	row++

	// Combat log
	for _, line := range a.log {
		a.drawText(x0, row, tcell.StyleDefault.Foreground(tcell.ColorSilver), line)
		row++
	}

	a.screen.Show()
}

func (a *app) drawText(x, y int, style tcell.Style, text string) {
	for i, r := range text {
		a.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (a *app) drawBar(x, y, width int, frac float64, style tcell.Style) {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac * float64(width))
	for i := 0; i < width; i++ {
		r := '░'
		if i < filled {
			r = '█'
		}
		a.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (a *app) run() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- a.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !a.handleInput(ev) {
				return
			}
		case <-ticker.C:
			a.tick()
		}
	}
}

func main() {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	defer a.screen.Fini()

	a.run()
}
