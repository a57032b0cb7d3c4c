package main

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"multicalc/internal/app"
	"multicalc/internal/clock"
	"multicalc/internal/config"
	"multicalc/internal/storage"

	"github.com/gdamore/tcell/v2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("config: %v", err)
	}

	// the screen owns stderr, so the log goes to a file or nowhere
	logger := log.New(io.Discard, "calc: ", log.LstdFlags)
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			config.Exitf("open log file: %v", err)
		}
		defer f.Close()
		logger.SetOutput(f)
	}

	clk, err := clock.New(nil)
	if err != nil {
		config.Exitf("clock: %v", err)
	}

	opts := app.Options{Clock: clk, ErrorClearDelay: cfg.ErrorClearDelay, Log: logger}
	store, err := storage.Open(cfg.StatePath)
	if err != nil {
		// run without persistence rather than refusing to start
		logger.Printf("settings disabled: %v", err)
	} else {
		defer store.Close()
		opts.Settings = store
	}

	// initialize app state
	a := app.NewApp(opts)

	// start tcell
	s, err := tcell.NewScreen()
	if err != nil {
		config.Exitf("cannot create screen: %v", err)
	}
	if err := s.Init(); err != nil {
		config.Exitf("cannot init screen: %v", err)
	}
	defer s.Fini()
	s.Clear()

	if cfg.Splash {
		app.Splash(s, 120*time.Millisecond)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go clk.Tick(ctx, cfg.ClockInterval, func(now time.Time) {
		_ = s.PostEvent(app.TickEvent(now))
	})

	// main loop
	for !a.Quit {
		a.Draw(s)
		switch ev := s.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			a.HandleKeyEvent(s, ev)
		case *tcell.EventInterrupt:
			a.HandleInterrupt(ev)
		case *tcell.EventResize:
			s.Sync()
		}
	}
}
