package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"cloudeng.io/cmdutil/subcmd"
	"cloudeng.io/logging/ctxlog"
	"github.com/tartampluch/go-calendar-round/internal/config"
)

// main delegates to runMain so that deferred calls, such as closing the log
// file, run before the process exits.
func main() {
	os.Exit(runMain())
}

// runMain dispatches the command line and maps the outcome to an exit code.
func runMain() int {
	// SIGINT and SIGTERM cancel long searches and stop the server.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c := &cli{stdout: os.Stdout, stderr: os.Stderr, persistLogs: true}
	defer c.close()

	if err := newCommandSet(c).Dispatch(ctx); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}
	return config.ExitCodeSuccess
}

// newCommandSet wires every sub command to its runner on c.
func newCommandSet(c *cli) *subcmd.CommandSet {
	next := subcmd.NewCommand(config.CmdNext,
		subcmd.MustRegisterFlagStruct(&commonFlags{}, flagDefaults("lang"), nil),
		c.next, subcmd.ExactlyNumArguments(1))
	next.Document(config.CmdDescNext, config.ArgDate)

	shift := subcmd.NewCommand(config.CmdShift,
		subcmd.MustRegisterFlagStruct(&commonFlags{}, flagDefaults("lang"), nil),
		c.shift, subcmd.ExactlyNumArguments(2))
	shift.Document(config.CmdDescShift, config.ArgDate, config.ArgDays)

	match := subcmd.NewCommand(config.CmdMatch,
		subcmd.MustRegisterFlagStruct(&commonFlags{}, flagDefaults("lang"), nil),
		c.match, subcmd.ExactlyNumArguments(2))
	match.Document(config.CmdDescMatch, config.ArgDate, config.ArgDate)

	search := subcmd.NewCommand(config.CmdSearch,
		subcmd.MustRegisterFlagStruct(&searchFlags{}, flagDefaults("lang"), nil),
		c.search, subcmd.ExactlyNumArguments(1))
	search.Document(config.CmdDescSearch, config.ArgPattern)

	validate := subcmd.NewCommand(config.CmdValidate,
		subcmd.MustRegisterFlagStruct(&commonFlags{}, flagDefaults("lang"), nil),
		c.validate, subcmd.ExactlyNumArguments(1))
	validate.Document(config.CmdDescValidate, config.ArgDate)

	resolve := subcmd.NewCommand(config.CmdResolve,
		subcmd.MustRegisterFlagStruct(&resolveFlags{}, flagDefaults("lang"), nil),
		c.resolve, subcmd.ExactlyNumArguments(0))
	resolve.Document(config.CmdDescResolve)

	serve := subcmd.NewCommand(config.CmdServe,
		subcmd.MustRegisterFlagStruct(&serveFlags{}, flagDefaults("lang", "port"), nil),
		c.serve, subcmd.ExactlyNumArguments(0))
	serve.Document(config.CmdDescServe)

	version := subcmd.NewCommand(config.CmdVersion,
		subcmd.MustRegisterFlagStruct(&struct{}{}, nil, nil),
		c.version, subcmd.ExactlyNumArguments(0))
	version.Document(config.CmdDescVersion)

	cmdSet := subcmd.NewCommandSet(next, shift, match, search, validate, resolve, serve, version)
	cmdSet.Document(config.CmdDescRoot)
	return cmdSet
}

// cli carries the process wide state shared by the command runners.
type cli struct {
	stdout io.Writer
	stderr io.Writer

	// persistLogs also writes logs to a file in the user cache dir.
	persistLogs bool
	closers     []io.Closer
}

func (c *cli) close() {
	for _, cl := range c.closers {
		_ = cl.Close() // Best effort close
	}
}

// startLogging installs the JSON logger as the slog default and attaches it
// to the returned context.
func (c *cli) startLogging(ctx context.Context, debugMode bool) context.Context {
	writers := []io.Writer{c.stderr}

	if c.persistLogs {
		if logPath, err := getLogFilePath(); err == nil {
			// O_TRUNC resets logs on restart to prevent indefinite growth.
			f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
			if err == nil {
				writers = append(writers, f)
				c.closers = append(c.closers, f)
			} else {
				fmt.Fprintf(c.stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
			}
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	ctx = ctxlog.NewJSONLogger(ctx, io.MultiWriter(writers...), opts)
	slog.SetDefault(ctxlog.Logger(ctx))
	logStartupInfo(ctx)
	return ctx
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo(ctx context.Context) {
	ctxlog.Logger(ctx).Debug(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
