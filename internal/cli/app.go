package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"spendtrack/internal/config"
	applog "spendtrack/internal/log"
)

// App is the state shared by every subcommand. The session is opened on
// first use so that commands like "categories" never touch storage.
type App struct {
	Config *config.Config
	Logger *applog.Logger
	Out    io.Writer
	Err    io.Writer
	// Plain prints raw markdown instead of styled terminal output.
	Plain bool
	Now   func() time.Time

	session *Session
}

// Register adds every subcommand to c.
func Register(c *subcommands.Commander, app *App) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")

	c.Register(&addCmd{app: app}, "transactions")
	c.Register(&editCmd{app: app}, "transactions")
	c.Register(&rmCmd{app: app}, "transactions")
	c.Register(&listCmd{app: app}, "transactions")

	c.Register(&budgetCmd{app: app}, "budgets")

	c.Register(&dashboardCmd{app: app}, "reports")
	c.Register(&insightsCmd{app: app}, "reports")
	c.Register(&categoriesCmd{app: app}, "reports")

	c.Register(&watchCmd{app: app}, "notifications")
}

// Session opens the storage session on first call.
func (a *App) Session(ctx context.Context) (*Session, error) {
	if a.session != nil {
		return a.session, nil
	}
	s, err := OpenSession(ctx, a.Config, a.Logger)
	if err != nil {
		return nil, err
	}
	a.session = s
	return s, nil
}

// Close closes the session if one was opened.
func (a *App) Close(ctx context.Context) error {
	if a.session == nil {
		return nil
	}
	err := a.session.Close(ctx)
	a.session = nil
	return err
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) currency() string {
	if a.Config == nil || a.Config.Currency == "" {
		return "USD"
	}
	return a.Config.Currency
}

// printMarkdown renders markdown for the terminal, or writes it unchanged
// in plain mode or when rendering fails.
func (a *App) printMarkdown(markdown string) {
	if !a.Plain {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
		if err == nil {
			if out, err := r.Render(markdown); err == nil {
				fmt.Fprint(a.Out, out)
				return
			}
		}
		a.Logger.Debug("Markdown rendering failed, printing raw", applog.FieldOperation, applog.OpRender)
	}
	fmt.Fprint(a.Out, markdown)
}

func (a *App) failf(status subcommands.ExitStatus, format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(a.Err, format+"\n", args...)
	return status
}
