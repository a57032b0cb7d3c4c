package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"multicalc/internal/calc"
	"multicalc/internal/clock"
	"multicalc/internal/keypad"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Settings persists the selected mode between runs.
type Settings interface {
	Mode(ctx context.Context) (string, error)
	SetMode(ctx context.Context, mode string) error
}

// Options are the collaborators an App is built with. Clock is required.
type Options struct {
	Clock           *clock.Clock
	Settings        Settings
	ErrorClearDelay time.Duration
	Log             *log.Logger
}

const settingsTimeout = 2 * time.Second

type App struct {
	// layout
	LeftMargin  int
	TopLines    int
	StatusLines int
	KeyWidth    int

	// UI state
	Mode        Mode
	Quit        bool
	HelpVisible bool

	pads   map[Mode]*keypad.Pad
	cursor map[Mode][2]int // selected key of each calculator pane
	forms  map[Mode]*form

	clock           *clock.Clock
	now             time.Time
	settings        Settings
	errorClearDelay time.Duration
	log             *log.Logger

	// afterFunc runs f after d on another goroutine; f only posts events
	afterFunc func(d time.Duration, f func())
}

func NewApp(opts Options) *App {
	a := &App{
		LeftMargin:      2,
		TopLines:        2,
		StatusLines:     1,
		KeyWidth:        7,
		Mode:            ModeNormal,
		pads:            map[Mode]*keypad.Pad{},
		cursor:          map[Mode][2]int{},
		forms:           map[Mode]*form{},
		clock:           opts.Clock,
		settings:        opts.Settings,
		errorClearDelay: opts.ErrorClearDelay,
		log:             opts.Log,
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
	if a.log == nil {
		a.log = log.New(io.Discard, "", 0)
	}
	if a.errorClearDelay <= 0 {
		a.errorClearDelay = 800 * time.Millisecond
	}
	a.pads[ModeNormal] = keypad.NewPad(calc.Basic)
	a.pads[ModeScientific] = keypad.NewPad(calc.Scientific)
	a.forms[ModeBMI] = a.newBMIForm()
	a.forms[ModeAge] = a.newAgeForm()
	a.forms[ModeCurrency] = a.newFXForm()
	a.now = a.clock.Now()
	a.restoreMode()
	return a
}

func (a *App) restoreMode() {
	if a.settings == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), settingsTimeout)
	defer cancel()
	name, err := a.settings.Mode(ctx)
	if err != nil {
		a.log.Printf("load mode: %v", err)
		return
	}
	if m, ok := ParseMode(name); ok {
		a.Mode = m
	} else if name != "" {
		a.log.Printf("ignoring unknown saved mode %q", name)
	}
}

// SetMode switches panes and persists the choice.
func (a *App) SetMode(m Mode) {
	if m < 0 || m >= modeCount {
		return
	}
	a.Mode = m
	if a.settings == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), settingsTimeout)
	defer cancel()
	if err := a.settings.SetMode(ctx, m.String()); err != nil {
		a.log.Printf("save mode %s: %v", m, err)
	}
}

// ----------------------------- Events / Input -----------------------------

// expireError asks the event loop to clear a pane's error token.
type expireError struct {
	mode Mode
	seq  uint64
}

type clockTick struct {
	now time.Time
}

// TickEvent wraps a clock reading for delivery through Screen.PostEvent.
func TickEvent(now time.Time) *tcell.EventInterrupt {
	return tcell.NewEventInterrupt(clockTick{now: now})
}

// HandleInterrupt applies events posted by timers.
func (a *App) HandleInterrupt(ev *tcell.EventInterrupt) {
	switch data := ev.Data().(type) {
	case expireError:
		if pad, ok := a.pads[data.mode]; ok {
			pad.Expire(data.seq)
		}
	case clockTick:
		a.now = data.now
	}
}

func (a *App) HandleKeyEvent(s tcell.Screen, ev *tcell.EventKey) {
	// help popup consumes keys until closed with Esc or "?"
	if a.HelpVisible {
		if ev.Key() == tcell.KeyEsc || (ev.Key() == tcell.KeyRune && ev.Rune() == '?') {
			a.HelpVisible = false
		}
		return
	}

	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyCtrlQ:
		a.Quit = true
		return
	case tcell.KeyTab:
		a.SetMode((a.Mode + 1) % modeCount)
		return
	case tcell.KeyBacktab:
		a.SetMode((a.Mode + modeCount - 1) % modeCount)
		return
	case tcell.KeyF1, tcell.KeyF2, tcell.KeyF3, tcell.KeyF4, tcell.KeyF5:
		a.SetMode(Mode(ev.Key() - tcell.KeyF1))
		return
	}
	if ev.Key() == tcell.KeyRune && ev.Rune() == '?' {
		a.HelpVisible = true
		return
	}

	if _, ok := a.Mode.calcMode(); ok {
		a.handleCalcKey(s, ev)
		return
	}
	a.handleFormKey(s, ev)
}

func (a *App) handleCalcKey(s tcell.Screen, ev *tcell.EventKey) {
	mode, _ := a.Mode.calcMode()
	layout := keypad.For(mode)
	cur := a.cursor[a.Mode]

	switch ev.Key() {
	case tcell.KeyUp:
		cur[0], cur[1] = layout.Move(cur[0], cur[1], -1, 0)
	case tcell.KeyDown:
		cur[0], cur[1] = layout.Move(cur[0], cur[1], 1, 0)
	case tcell.KeyLeft:
		cur[0], cur[1] = layout.Move(cur[0], cur[1], 0, -1)
	case tcell.KeyRight:
		cur[0], cur[1] = layout.Move(cur[0], cur[1], 0, 1)
	case tcell.KeyEnter:
		a.press(s, "=")
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.press(s, "⌫")
	case tcell.KeyEsc, tcell.KeyDelete:
		a.press(s, "C")
	case tcell.KeyRune:
		r := ev.Rune()
		if r == ' ' {
			if k, ok := layout.At(cur[0], cur[1]); ok {
				a.press(s, k.Label)
			}
			break
		}
		if label, ok := keypad.KeyFor(r, mode); ok {
			if kr, kc, found := layout.Find(label); found {
				cur = [2]int{kr, kc}
			}
			a.press(s, label)
		}
	}
	a.cursor[a.Mode] = cur
}

// press applies a key to the current calculator pane and, on a failed
// evaluation, schedules the error token to be cleared.
func (a *App) press(s tcell.Screen, label string) {
	pad := a.pads[a.Mode]
	if pad == nil {
		return
	}
	if pad.Press(label) != keypad.OutcomeError {
		return
	}
	a.log.Printf("%s: %v", a.Mode, pad.Err())
	ev := tcell.NewEventInterrupt(expireError{mode: a.Mode, seq: pad.ErrorSeq()})
	a.afterFunc(a.errorClearDelay, func() {
		if s != nil {
			_ = s.PostEvent(ev)
		}
	})
}

func (a *App) handleFormKey(s tcell.Screen, ev *tcell.EventKey) {
	f := a.forms[a.Mode]
	if f == nil {
		return
	}
	switch ev.Key() {
	case tcell.KeyUp:
		f.move(-1)
	case tcell.KeyDown:
		f.move(1)
	case tcell.KeyLeft:
		f.cycle(-1)
	case tcell.KeyRight:
		f.cycle(1)
	case tcell.KeyEnter:
		fl := f.current()
		if fl == nil {
			return
		}
		switch fl.Kind {
		case textField:
			if value, ok := a.PopupInput(s, fl.Label+":", fl.Value); ok {
				fl.Value = strings.TrimSpace(value)
			}
		case choiceField:
			f.cycle(1)
		case actionField:
			fl.run()
		}
	}
}

// ----------------------------- Drawing -----------------------------

func (a *App) Draw(s tcell.Screen) {
	s.Clear()
	w, h := s.Size()

	a.drawHeader(s, w)

	if _, ok := a.Mode.calcMode(); ok {
		a.drawCalcPane(s)
	} else {
		a.drawFormPane(s)
	}

	statusStyle := tcell.StyleDefault.Background(tcell.ColorGray).Foreground(tcell.ColorWhite)
	statusY := h - a.StatusLines
	if statusY < 0 {
		statusY = 0
	}
	a.printTextFixedWidth(s, 0, statusY, a.statusText(), statusStyle, w)

	if a.HelpVisible {
		a.drawHelpPopup(s, helpText)
	}
	s.Show()
}

func (a *App) drawHeader(s tcell.Screen, w int) {
	x := 0
	for m := Mode(0); m < modeCount; m++ {
		tab := fmt.Sprintf(" F%d %s ", int(m)+1, m.Title())
		style := tcell.StyleDefault.Foreground(tcell.ColorYellow)
		if m == a.Mode {
			style = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
		}
		tw := runewidth.StringWidth(tab)
		a.printTextFixedWidth(s, x, 0, tab, style, tw)
		x += tw + 1
	}
	now := a.clock.Format(a.now)
	cw := runewidth.StringWidth(now)
	if w-cw > x {
		a.printTextFixedWidth(s, w-cw, 0, now, tcell.StyleDefault.Foreground(tcell.ColorWhite), cw)
	}
}

func (a *App) drawCalcPane(s tcell.Screen) {
	mode, _ := a.Mode.calcMode()
	layout := keypad.For(mode)
	pad := a.pads[a.Mode]
	cur := a.cursor[a.Mode]

	boxW := layout.Cols() * a.KeyWidth
	x := a.LeftMargin
	y := a.TopLines

	// display: right aligned, keeping the tail of long input visible
	dispStyle := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorLightGray)
	if pad.Display() == calc.ErrorToken {
		dispStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorRed)
	}
	text := tailToWidth(pad.Display(), boxW-2)
	pad2 := boxW - 1 - runewidth.StringWidth(text)
	a.printTextFixedWidth(s, x, y, strings.Repeat(" ", maxInt(pad2, 0))+text+" ", dispStyle, boxW)
	y += 2

	for r, keys := range layout {
		for c, k := range keys {
			style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
			if r == cur[0] && c == cur[1] {
				style = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
			}
			label := centerText(k.Label, a.KeyWidth-1)
			a.printTextFixedWidth(s, x+c*a.KeyWidth, y+r, label, style, a.KeyWidth-1)
		}
	}
}

func (a *App) drawFormPane(s tcell.Screen) {
	f := a.forms[a.Mode]
	if f == nil {
		return
	}
	w, _ := s.Size()
	x := a.LeftMargin
	y := a.TopLines
	labelW := 10

	for i, fl := range f.Fields {
		style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
		marker := "  "
		if i == f.Cur {
			style = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
			marker = "› "
		}
		var line string
		switch fl.Kind {
		case textField:
			value := fl.Value
			if fl.hint != nil {
				value += "  (" + fl.hint() + ")"
			}
			line = fmt.Sprintf("%-*s %s", labelW, fl.Label, value)
		case choiceField:
			line = fmt.Sprintf("%-*s ◂ %s ▸", labelW, fl.Label, fl.Value)
		case actionField:
			line = "[ " + fl.Label + " ]"
		}
		a.printTextFixedWidth(s, x, y+i, marker+line, style, maxInt(w-x, 0))
	}

	resultStyle := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	if f.Failed {
		resultStyle = tcell.StyleDefault.Foreground(tcell.ColorRed)
	}
	a.printTextFixedWidth(s, x, y+len(f.Fields)+1, f.Result, resultStyle, maxInt(w-x, 0))
}

func (a *App) statusText() string {
	if _, ok := a.Mode.calcMode(); ok {
		if pad := a.pads[a.Mode]; pad != nil && pad.Err() != nil {
			return " " + pad.Err().Error()
		}
		return " arrows/space: keypad  Enter: =  Bksp: ⌫  Esc: C  Tab: mode  ?: help  Ctrl+C: quit"
	}
	return " ↑↓: field  ←→: choice  Enter: edit/run  Tab: mode  ?: help  Ctrl+C: quit"
}

const helpText = "\n F1-F5 / Tab - switch mode \n Enter - evaluate \n Space - press selected key \n Esc - clear, Backspace - delete \n / * ^ % ( ) - operators \n s c t l n - sin cos tan log ln \n r - square root, ! - factorial \n log is base 10, ln is natural \n Forms: ↑↓ select, Enter edit or run \n Ctrl+C - quit \n "

// ----------------------------- Helpers -----------------------------

// printTextFixedWidth draws str in exactly width terminal columns, padding
// with spaces and cutting runes that would not fit.
func (a *App) printTextFixedWidth(s tcell.Screen, x, y int, str string, style tcell.Style, width int) {
	col := 0
	for _, ch := range str {
		rw := runewidth.RuneWidth(ch)
		if rw == 0 {
			continue
		}
		if col+rw > width {
			break
		}
		if x+col >= 0 && y >= 0 {
			s.SetContent(x+col, y, ch, nil, style)
		}
		col += rw
	}
	for ; col < width; col++ {
		if x+col >= 0 && y >= 0 {
			s.SetContent(x+col, y, ' ', nil, style)
		}
	}
}

func centerText(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	left := (width - sw) / 2
	return strings.Repeat(" ", left) + s
}

// tailToWidth keeps the rightmost runes of s that fit in width columns.
func tailToWidth(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	rs := []rune(s)
	col := 0
	i := len(rs)
	for i > 0 {
		rw := runewidth.RuneWidth(rs[i-1])
		if col+rw > width {
			break
		}
		col += rw
		i--
	}
	return string(rs[i:])
}

func (a *App) drawHelpPopup(s tcell.Screen, help string) {
	w, h := s.Size()
	if w < 10 || h < 5 {
		return
	}

	padding := 2
	maxPW := w - 6
	maxPH := h - 4

	innerW := minInt(maxPW-padding*2, 50)
	if innerW < 20 {
		innerW = maxInt(20, maxPW-padding*2)
	}
	innerW = minInt(innerW, maxPW-padding*2)

	lines := wrapText(help, innerW)
	if len(lines) > maxPH-padding*2 {
		lines = lines[:maxInt(maxPH-padding*2, 0)]
	}

	innerH := maxInt(len(lines), 3)
	pw := innerW + padding*2
	ph := innerH + padding*2
	left := (w - pw) / 2
	top := (h - ph) / 2

	borderStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDefault)
	bgStyle := tcell.StyleDefault.Background(tcell.ColorDefault).Foreground(tcell.ColorWhite)

	for yy := 0; yy < ph; yy++ {
		for xx := 0; xx < pw; xx++ {
			s.SetContent(left+xx, top+yy, ' ', nil, bgStyle)
		}
	}

	s.SetContent(left, top, '┌', nil, borderStyle)
	s.SetContent(left+pw-1, top, '┐', nil, borderStyle)
	s.SetContent(left, top+ph-1, '└', nil, borderStyle)
	s.SetContent(left+pw-1, top+ph-1, '┘', nil, borderStyle)
	for xx := 1; xx < pw-1; xx++ {
		s.SetContent(left+xx, top, '─', nil, borderStyle)
		s.SetContent(left+xx, top+ph-1, '─', nil, borderStyle)
	}
	for yy := 1; yy < ph-1; yy++ {
		s.SetContent(left, top+yy, '│', nil, borderStyle)
		s.SetContent(left+pw-1, top+yy, '│', nil, borderStyle)
	}

	vOffset := (ph - padding*2 - innerH) / 2
	for i, ln := range lines {
		a.printTextFixedWidth(s, left+padding, top+padding+vOffset+i, ln, bgStyle, innerW)
	}
}

// wrapText splits s into lines of at most max columns, keeping blank lines
// between paragraphs.
func wrapText(s string, max int) []string {
	if max <= 2 {
		return []string{s}
	}

	var result []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			continue
		}
		cur := ""
		for _, w := range words {
			for runewidth.StringWidth(w) > max {
				// hard break words longer than a line
				head := runewidth.Truncate(w, max, "")
				if cur != "" {
					result = append(result, cur)
					cur = ""
				}
				result = append(result, head)
				w = w[len(head):]
			}
			switch {
			case cur == "":
				cur = w
			case runewidth.StringWidth(cur)+1+runewidth.StringWidth(w) <= max:
				cur += " " + w
			default:
				result = append(result, cur)
				cur = w
			}
		}
		if cur != "" {
			result = append(result, cur)
		}
	}
	return result
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
