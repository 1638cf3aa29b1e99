package main

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"cloudeng.io/logging/ctxlog"
	"github.com/tartampluch/go-calendar-round/internal/config"
	"github.com/tartampluch/go-calendar-round/internal/cr"
	"github.com/tartampluch/go-calendar-round/internal/engine"
	"github.com/tartampluch/go-calendar-round/internal/locale"
	"github.com/tartampluch/go-calendar-round/internal/server"
)

// -----------------------------------------------------------------------------
// Flags
// -----------------------------------------------------------------------------

type commonFlags struct {
	Debug bool   `subcmd:"debug,false,enable debug logging"`
	Lang  string `subcmd:"lang,,language used to display dates"`
}

type searchFlags struct {
	commonFlags
	From  string `subcmd:"from,,'full date to start searching from, defaults to the epoch'"`
	Limit int    `subcmd:"limit,20,'maximum number of dates to print, 0 prints all of them'"`
}

type resolveFlags struct {
	commonFlags
	Source   string `subcmd:"source,,'file or http(s) URL with one pattern per line'"`
	User     string `subcmd:"user,,basic auth user for http sources"`
	Password string `subcmd:"password,,basic auth password for http sources"`
	From     string `subcmd:"from,,'full date to start searching from, defaults to the epoch'"`
	Limit    int    `subcmd:"limit,5,'matches printed per pattern, 0 prints all of them'"`
}

type serveFlags struct {
	commonFlags
	Port string `subcmd:"port,,port to listen on at 127.0.0.1"`
}

var defaultFlagValues = map[string]interface{}{
	"lang": config.DefaultLanguage,
	"port": config.DefaultPort,
}

// flagDefaults returns the defaults, kept in the config package, of the
// named flags.
func flagDefaults(names ...string) map[string]interface{} {
	m := make(map[string]interface{}, len(names))
	for _, n := range names {
		m[n] = defaultFlagValues[n]
	}
	return m
}

// -----------------------------------------------------------------------------
// Runners
// -----------------------------------------------------------------------------

// setup starts logging and returns the translator selected by the flags.
func (c *cli) setup(ctx context.Context, cmd string, fl commonFlags) (context.Context, *locale.Catalog, *locale.Translator, error) {
	ctx = c.startLogging(ctx, fl.Debug)
	ctx = ctxlog.ContextWith(ctx, config.LogKeyCommand, cmd)
	cat, err := locale.Load()
	if err != nil {
		return ctx, nil, nil, err
	}
	tr, err := cat.Translator(fl.Lang)
	if err != nil {
		return ctx, nil, nil, err
	}
	return ctx, cat, tr, nil
}

func (c *cli) next(ctx context.Context, values interface{}, args []string) error {
	_, _, tr, err := c.setup(ctx, config.CmdNext, *values.(*commonFlags))
	if err != nil {
		return err
	}
	date, err := parseDate(args[0])
	if err != nil {
		return err
	}
	c.println(tr.Render(date.Next()))
	return nil
}

func (c *cli) shift(ctx context.Context, values interface{}, args []string) error {
	_, _, tr, err := c.setup(ctx, config.CmdShift, *values.(*commonFlags))
	if err != nil {
		return err
	}
	date, err := parseDate(args[0])
	if err != nil {
		return err
	}
	days, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrDaysParse, err)
	}
	c.println(tr.Render(date.Shift(days)))
	return nil
}

func (c *cli) match(ctx context.Context, values interface{}, args []string) error {
	_, _, tr, err := c.setup(ctx, config.CmdMatch, *values.(*commonFlags))
	if err != nil {
		return err
	}
	a, err := parseDate(args[0])
	if err != nil {
		return err
	}
	b, err := parseDate(args[1])
	if err != nil {
		return err
	}
	c.printf("%s: %s\n", tr.Msg(config.TKeyLblEqual), yesNo(tr, a.Equal(b)))
	c.printf("%s: %s\n", tr.Msg(config.TKeyLblMatch), yesNo(tr, a.Match(b)))
	if n, err := a.DaysUntil(b); err == nil {
		c.printf("%s: %d\n", tr.Msg(config.TKeyLblDaysUntil), n)
	}
	return nil
}

func (c *cli) search(ctx context.Context, values interface{}, args []string) error {
	fl := values.(*searchFlags)
	ctx, _, tr, err := c.setup(ctx, config.CmdSearch, fl.commonFlags)
	if err != nil {
		return err
	}
	pattern, err := parseDate(args[0])
	if err != nil {
		return err
	}
	from, err := parseFrom(fl.From)
	if err != nil {
		return err
	}
	found, err := cr.Search(ctx, from, pattern, min(fl.Limit, config.MaxSearchLimit))
	if err != nil {
		return err
	}
	if len(found) == 0 {
		c.println(tr.Msg(config.TKeyLblNoMatches))
		return nil
	}
	for _, d := range found {
		c.println(tr.Render(d))
	}
	return nil
}

func (c *cli) validate(ctx context.Context, values interface{}, args []string) error {
	_, _, tr, err := c.setup(ctx, config.CmdValidate, *values.(*commonFlags))
	if err != nil {
		return err
	}
	date, err := parseDate(args[0])
	if err != nil {
		return err
	}
	if err := date.Validate(); err != nil {
		c.printf("%s: %s: %v\n", tr.Render(date), tr.Msg(config.TKeyLblInvalid), err)
		return err
	}
	label := tr.Msg(config.TKeyLblValid)
	if date.IsPartial() {
		label += " (" + tr.Msg(config.TKeyLblPartial) + ")"
	}
	c.printf("%s: %s\n", tr.Render(date), label)
	return nil
}

func (c *cli) resolve(ctx context.Context, values interface{}, _ []string) error {
	fl := values.(*resolveFlags)
	ctx, _, tr, err := c.setup(ctx, config.CmdResolve, fl.commonFlags)
	if err != nil {
		return err
	}
	var from *cr.CalendarRound
	if fl.From != "" {
		d, err := parseDate(fl.From)
		if err != nil {
			return err
		}
		from = &d
	}

	cfg := engine.SourceConfig{
		Mode:      config.SourceModeLocal,
		LocalPath: fl.Source,
		From:      from,
		Limit:     fl.Limit,
	}
	if isURL(fl.Source) {
		cfg = engine.SourceConfig{
			Mode:    config.SourceModeWeb,
			WebURL:  fl.Source,
			WebUser: fl.User,
			WebPass: fl.Password,
			From:    from,
			Limit:   fl.Limit,
		}
	}

	r := &engine.Resolver{Fetcher: engine.NewHTTPFetcher()}
	rep, err := r.Run(ctx, cfg)
	if err != nil {
		return err
	}

	for _, res := range rep.Resolutions {
		rendered := tr.Render(res.Pattern)
		if res.Invalid != nil {
			c.printf("%s: %s: %v\n", rendered, tr.Msg(config.TKeyLblInvalid), res.Invalid)
			continue
		}
		c.println(tr.MsgWith(config.TKeyReportLine, map[string]any{
			"Pattern": rendered,
			"Count":   res.Total,
		}))
		for _, m := range res.Matches {
			c.println("  " + tr.Render(m))
		}
	}
	if rep.Skipped > 0 {
		c.println(tr.MsgWith(config.TKeyReportSkipped, map[string]any{"Count": rep.Skipped}))
	}
	return nil
}

func (c *cli) serve(ctx context.Context, values interface{}, _ []string) error {
	fl := values.(*serveFlags)
	ctx, cat, _, err := c.setup(ctx, config.CmdServe, fl.commonFlags)
	if err != nil {
		return err
	}
	srv, err := server.NewCalendarServer(fl.Port, cat, fl.Lang)
	if err != nil {
		return err
	}
	if err := srv.Start(ctx); err != nil {
		return err
	}
	ctxlog.Logger(ctx).Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return nil
}

func (c *cli) version(context.Context, interface{}, []string) error {
	c.printf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		config.Commit,
		config.Date,
		runtime.GOOS,
		runtime.GOARCH,
	)
	return nil
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func (c *cli) println(s string) {
	fmt.Fprintln(c.stdout, s)
}

func (c *cli) printf(format string, args ...any) {
	fmt.Fprintf(c.stdout, format, args...)
}

func parseDate(s string) (cr.CalendarRound, error) {
	d, err := cr.Parse(s)
	if err != nil {
		return cr.CalendarRound{}, fmt.Errorf("%s: %w", config.ErrDateParse, err)
	}
	return d, nil
}

// parseFrom parses a search start, defaulting to the epoch when empty.
func parseFrom(s string) (cr.CalendarRound, error) {
	if s == "" {
		return cr.Epoch, nil
	}
	return parseDate(s)
}

func isURL(s string) bool {
	return strings.HasPrefix(s, config.SchemeHTTP+"://") || strings.HasPrefix(s, config.SchemeHTTPS+"://")
}

func yesNo(tr *locale.Translator, b bool) string {
	if b {
		return tr.Msg(config.TKeyLblYes)
	}
	return tr.Msg(config.TKeyLblNo)
}
