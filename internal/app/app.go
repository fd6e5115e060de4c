package app

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/richdoc/internal/config"
	"github.com/dshills/richdoc/internal/plugin"
	"github.com/dshills/richdoc/internal/render/theme"
	"github.com/dshills/richdoc/internal/watch"
)

// App owns the terminal, the session and the supporting services for one
// editor run.
type App struct {
	log     *Logger
	cfg     config.Config
	screen  tcell.Screen
	session *Session
	render  *renderer
	watcher *watch.Watcher
	host    *plugin.Host
}

// New builds an app for the file at path, reading its current contents.
// A nonexistent file opens as an empty buffer.
func New(log *Logger, cfg config.Config, path string) (*App, error) {
	text := ""
	if data, err := os.ReadFile(path); err == nil {
		text = string(data)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	th, err := theme.New(cfg.Theme.Foreground, cfg.Theme.Background, cfg.Theme.Selection)
	if err != nil {
		return nil, err
	}

	a := &App{
		log:    log,
		cfg:    cfg,
		render: &renderer{theme: th},
	}
	a.session = NewSession(log, cfg.Editor, path, text, a.wrapWidth(0))
	return a, nil
}

// wrapWidth resolves the effective wrap column for a terminal of the
// given width. A configured positive wrap wins; otherwise wrap at the
// terminal edge.
func (a *App) wrapWidth(termWidth int) int {
	if a.cfg.Editor.WrapWidth > 0 {
		return a.cfg.Editor.WrapWidth
	}
	return termWidth
}

// Run starts the terminal UI and blocks until the user quits.
func (a *App) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	a.screen = screen
	defer screen.Fini()
	screen.EnableMouse()

	if a.cfg.Editor.WatchFile && a.session.Path() != "" {
		w, err := watch.New(a.session.Path())
		if err != nil {
			a.log.Warnf("file watch unavailable: %v", err)
		} else {
			a.watcher = w
			defer w.Close()
		}
	}

	a.host = plugin.NewHost(a.session)
	defer a.host.Close()
	if a.cfg.Editor.MacroFile != "" {
		if err := a.host.RunFile(a.cfg.Editor.MacroFile); err != nil {
			a.log.Errorf("macro %s: %v", a.cfg.Editor.MacroFile, err)
		}
	}

	width, _ := screen.Size()
	a.resizeWrap(width)
	a.render.draw(screen, a.session)

	return a.loop()
}

func (a *App) loop() error {
	events := make(chan tcell.Event, 8)
	quit := make(chan struct{})
	go a.screen.ChannelEvents(events, quit)
	defer close(quit)

	var watchEvents <-chan struct{}
	var watchErrs <-chan error
	if a.watcher != nil {
		watchEvents = a.watcher.Events()
		watchErrs = a.watcher.Errors()
	}

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch a.handleKey(ev) {
				case actionQuit:
					return nil
				case actionRedraw:
					a.render.draw(a.screen, a.session)
				}
			case *tcell.EventMouse:
				if a.handleMouse(ev) == actionRedraw {
					a.render.draw(a.screen, a.session)
				}
			case *tcell.EventResize:
				width, _ := a.screen.Size()
				a.resizeWrap(width)
				a.screen.Sync()
				a.render.draw(a.screen, a.session)
			}

		case <-watchEvents:
			a.reloadFromDisk()
			a.render.draw(a.screen, a.session)

		case err := <-watchErrs:
			a.log.Errorf("file watch: %v", err)
		}
	}
}

// resizeWrap rebuilds the layout when the effective wrap width changes
// with the terminal size.
func (a *App) resizeWrap(termWidth int) {
	if a.cfg.Editor.WrapWidth > 0 {
		return
	}
	a.session.SetWrapWidth(termWidth)
}

// reloadFromDisk replaces the buffer with the on-disk contents. Unsaved
// edits win: the reload is skipped and logged instead of clobbering them.
func (a *App) reloadFromDisk() {
	if a.session.Modified() {
		a.log.Warnf("%s changed on disk; keeping unsaved edits", a.session.Path())
		return
	}
	data, err := os.ReadFile(a.session.Path())
	if err != nil {
		a.log.Errorf("reloading %s: %v", a.session.Path(), err)
		return
	}
	width, _ := a.screen.Size()
	a.session.Reload(string(data), a.wrapWidth(width))
}
