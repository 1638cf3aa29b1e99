package engine

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"cloudeng.io/errors"
	"cloudeng.io/logging/ctxlog"
	"github.com/tartampluch/go-calendar-round/internal/config"
	"github.com/tartampluch/go-calendar-round/internal/cr"
)

const byteOrderMark = "\ufeff"

// SourceConfig contains all parameters required to resolve a pattern list.
type SourceConfig struct {
	Mode      string // config.SourceModeLocal or config.SourceModeWeb
	LocalPath string // Path to a file with one pattern per line
	WebURL    string // HTTP(S) URL serving the same format
	WebUser   string // HTTP Basic Auth Username
	WebPass   string // HTTP Basic Auth Password

	// From is the full date searches start at; nil means cr.Epoch.
	From *cr.CalendarRound

	// Limit caps the matches kept per pattern; <= 0 keeps them all.
	Limit int
}

// Resolver reads Calendar Round patterns and finds their matching dates.
type Resolver struct {
	Fetcher PatternFetcher // Interface for network abstraction.
}

// Run executes the fetching, parsing and search pipeline. Lines that fail
// to parse are skipped and reported in Report.Problems; the returned error
// is reserved for failures that stop the whole run.
func (r *Resolver) Run(ctx context.Context, cfg SourceConfig) (Report, error) {
	start := time.Now()
	log := ctxlog.Logger(ctx).With(
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyMode, cfg.Mode,
	)
	log.InfoContext(ctx, config.MsgResolveStart)

	from := cr.Epoch
	if cfg.From != nil {
		from = *cfg.From
	}
	if from.IsPartial() {
		return Report{}, fmt.Errorf("%s: %w", config.ErrDateParse, cr.ErrWildcard)
	}

	reader, err := r.acquireStream(ctx, cfg)
	if err != nil {
		if ctx.Err() != nil {
			return Report{}, ctx.Err()
		}
		return Report{}, fmt.Errorf("%s: %w", config.ErrPatternSource, err)
	}
	defer func() { _ = reader.Close() }()

	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	rep, err := r.resolve(ctx, reader, from, cfg.Limit)
	if err != nil {
		return Report{}, err
	}

	log.InfoContext(ctx, config.MsgResolveDone,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, rep.Lines),
			slog.Int(config.LogKeyResolved, len(rep.Resolutions)),
			slog.Int(config.LogKeySkipped, rep.Skipped),
		),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return rep, nil
}

// acquireStream opens the appropriate data source based on configuration.
func (r *Resolver) acquireStream(ctx context.Context, cfg SourceConfig) (io.ReadCloser, error) {
	switch cfg.Mode {
	case config.SourceModeLocal:
		if cfg.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(cfg.LocalPath)
	case config.SourceModeWeb:
		if cfg.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if r.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return r.Fetcher.Fetch(ctx, cfg.WebURL, cfg.WebUser, cfg.WebPass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, cfg.Mode)
	}
}

// resolve parses one pattern per line. Blank lines and lines starting with
// config.CommentPrefix are ignored, as is a UTF-8 byte order mark.
func (r *Resolver) resolve(ctx context.Context, rd io.Reader, from cr.CalendarRound, limit int) (Report, error) {
	log := ctxlog.Logger(ctx)
	var (
		rep  Report
		errs errors.M
	)

	scanner := bufio.NewScanner(rd)
	line := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}
		line++
		text := scanner.Text()
		if line == 1 {
			text = strings.TrimPrefix(text, byteOrderMark)
		}
		text = strings.TrimSpace(text)
		if text == "" || strings.HasPrefix(text, config.CommentPrefix) {
			continue
		}

		pattern, err := cr.Parse(text)
		if err != nil {
			// Keep going so one bad line does not hide the others.
			log.Warn(config.MsgSkippedLine,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyLine, line,
				config.LogKeyValue, text,
				config.LogKeyError, err,
			)
			errs.Append(fmt.Errorf("%s at line %d: %w", config.ErrPatternLine, line, err))
			rep.Skipped++
			continue
		}

		res, err := resolveOne(ctx, line, pattern, from, limit)
		if err != nil {
			return Report{}, err
		}
		rep.Resolutions = append(rep.Resolutions, res)
	}
	if err := scanner.Err(); err != nil {
		return Report{}, fmt.Errorf("%s: %w", config.ErrPatternSource, err)
	}

	rep.Lines = line
	rep.Problems = errs.Err()
	return rep, nil
}

func resolveOne(ctx context.Context, line int, pattern, from cr.CalendarRound, limit int) (Resolution, error) {
	res := Resolution{
		Line:    line,
		Pattern: pattern,
		Partial: pattern.IsPartial(),
	}
	if err := pattern.Validate(); err != nil {
		res.Invalid = err
		return res, nil
	}
	all, err := cr.Search(ctx, from, pattern, 0)
	if err != nil {
		return Resolution{}, err
	}
	res.Total = len(all)
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	res.Matches = all
	return res, nil
}
