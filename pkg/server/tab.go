package server

import (
	"log/slog"

	"github.com/a11ylab/a11ydemo/pkg/announce"
	"github.com/a11ylab/a11ydemo/pkg/focus"
	"github.com/a11ylab/a11ydemo/pkg/router"
	"github.com/a11ylab/a11ydemo/pkg/shell"
	"github.com/a11ylab/a11ydemo/pkg/toast"
)

// tab is the component graph of one browser tab: announcer, notification
// center, focus manager, router and the shell that renders them.
type tab struct {
	env   *shell.Env
	shell *shell.Shell
}

// newTab builds a tab positioned at path. Timers run through sched.
func newTab(cfg *ServerConfig, path string, sched announce.Scheduler, logger *slog.Logger, onTransition func(focus.Transition)) *tab {
	sc := cfg.SessionConfig

	announcer := announce.New(
		announce.WithClearDelay(sc.ClearDelay),
		announce.WithScheduler(sched),
		announce.WithLogger(logger),
	)

	focusOpts := []focus.ManagerOption{focus.WithLogger(logger)}
	if onTransition != nil {
		focusOpts = append(focusOpts, focus.WithTransitionObserver(onTransition))
	}

	env := &shell.Env{
		Announcer: announcer,
		Notifications: toast.NewCenter(announcer,
			toast.WithDismissAfter(sc.DismissAfter),
			toast.WithScheduler(sched),
			toast.WithLogger(logger),
		),
		Focus:     focus.NewManager(focus.NewDocument(), focusOpts...),
		Router:    router.New(cfg.Routes, router.WithLogger(logger), router.WithInitialPath(path)),
		Scheduler: sched,
		Timing:    sc.Timing,
		Logger:    logger,
	}
	return &tab{env: env, shell: shell.New(env, cfg.Pages, cfg.ShellOptions...)}
}

// close unmounts the page and cancels every pending timer.
func (t *tab) close() {
	t.shell.Close()
	t.env.Notifications.Close()
	t.env.Announcer.Close()
}
