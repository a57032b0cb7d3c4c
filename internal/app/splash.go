package app

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

var splashLetters = []struct {
	char  rune
	color tcell.Color
}{
	{'M', tcell.ColorWhite},
	{'U', tcell.ColorWhite},
	{'L', tcell.ColorWhite},
	{'T', tcell.ColorWhite},
	{'I', tcell.ColorWhite},
	{'C', tcell.ColorYellow},
	{'A', tcell.ColorYellow},
	{'L', tcell.ColorYellow},
	{'C', tcell.ColorYellow},
}

const splashHint = "Press any key to start"

// Splash reveals the app name one letter per frame, then waits for a key.
func Splash(s tcell.Screen, frame time.Duration) {
	width, height := s.Size()

	draw := func(reveal int) {
		s.Clear()
		startX := (width - len(splashLetters)) / 2
		y := height / 2
		for i := 0; i < reveal; i++ {
			style := tcell.StyleDefault.Foreground(splashLetters[i].color).Bold(true)
			s.SetContent(startX+i, y, splashLetters[i].char, nil, style)
		}

		hintX := (width - runewidth.StringWidth(splashHint)) / 2
		style := tcell.StyleDefault.Foreground(tcell.ColorYellow)
		for i, ch := range splashHint {
			s.SetContent(hintX+i, y+2, ch, nil, style)
		}
		s.Show()
	}

	for reveal := 1; reveal <= len(splashLetters); reveal++ {
		draw(reveal)
		time.Sleep(frame)
	}

	for {
		switch s.PollEvent().(type) {
		case nil, *tcell.EventKey:
			return
		case *tcell.EventResize:
			s.Sync()
			width, height = s.Size()
			draw(len(splashLetters))
		}
	}
}
