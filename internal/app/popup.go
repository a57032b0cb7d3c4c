package app

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const maxPopupInput = 256

// PopupInput shows a modal one-line editor with prompt and initial text.
// It returns the edited text and true on Enter, or "" and false on Esc.
// Timer events keep being applied while the popup is open.
func (a *App) PopupInput(s tcell.Screen, prompt, initial string) (string, bool) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorReset)

	promptW := runewidth.StringWidth(prompt)
	buf := []rune(initial)
	pos := len(buf)

	var left, top, boxW int
	boxH := 3
	layout := func() {
		w, h := s.Size()
		contentW := maxInt(24, promptW+len(buf)+2)
		if contentW > w-4 {
			contentW = w - 4
		}
		boxW = contentW + 4
		left = (w - boxW) / 2
		top = (h - boxH) / 2
	}

	drawBox := func() {
		for y := top; y < top+boxH; y++ {
			for x := left; x < left+boxW; x++ {
				s.SetContent(x, y, ' ', nil, style)
			}
		}
		for x := left; x < left+boxW; x++ {
			s.SetContent(x, top, tcell.RuneHLine, nil, style)
			s.SetContent(x, top+boxH-1, tcell.RuneHLine, nil, style)
		}
		for y := top; y < top+boxH; y++ {
			s.SetContent(left, y, tcell.RuneVLine, nil, style)
			s.SetContent(left+boxW-1, y, tcell.RuneVLine, nil, style)
		}
		s.SetContent(left, top, tcell.RuneULCorner, nil, style)
		s.SetContent(left+boxW-1, top, tcell.RuneURCorner, nil, style)
		s.SetContent(left, top+boxH-1, tcell.RuneLLCorner, nil, style)
		s.SetContent(left+boxW-1, top+boxH-1, tcell.RuneLRCorner, nil, style)

		x := left + 2
		y := top + 1
		a.printTextFixedWidth(s, x, y, prompt, style, promptW)
		x += promptW + 1

		// scroll so the cursor stays inside the field
		maxField := maxInt(boxW-5-promptW, 1)
		start := 0
		if pos > maxField {
			start = pos - maxField
		}
		end := minInt(len(buf), start+maxField)
		a.printTextFixedWidth(s, x, y, string(buf[start:end]), style, maxField)
		s.ShowCursor(x+runewidth.StringWidth(string(buf[start:pos])), y)
	}

	redraw := func() {
		a.Draw(s)
		drawBox()
		s.Show()
	}
	finish := func() {
		s.HideCursor()
		a.Draw(s)
		s.Show()
	}

	layout()
	redraw()

	for {
		switch ev := s.PollEvent().(type) {
		case nil:
			// screen finalized
			return "", false
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEsc:
				finish()
				return "", false
			case tcell.KeyEnter:
				finish()
				return string(buf), true
			case tcell.KeyBackspace, tcell.KeyBackspace2:
				if pos > 0 {
					buf = append(buf[:pos-1], buf[pos:]...)
					pos--
				}
			case tcell.KeyDelete:
				if pos < len(buf) {
					buf = append(buf[:pos], buf[pos+1:]...)
				}
			case tcell.KeyLeft:
				if pos > 0 {
					pos--
				}
			case tcell.KeyRight:
				if pos < len(buf) {
					pos++
				}
			case tcell.KeyHome:
				pos = 0
			case tcell.KeyEnd:
				pos = len(buf)
			case tcell.KeyRune:
				if len(buf) < maxPopupInput {
					buf = append(buf[:pos], append([]rune{ev.Rune()}, buf[pos:]...)...)
					pos++
				}
			}
			redraw()
		case *tcell.EventInterrupt:
			a.HandleInterrupt(ev)
			redraw()
		case *tcell.EventResize:
			s.Sync()
			layout()
			redraw()
		}
	}
}
