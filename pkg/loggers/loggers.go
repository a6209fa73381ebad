package loggers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/hold-token/pkg/repo"
)

const (
	App      = "app"
	API      = "api"
	Executor = "executor"
	Storage  = "storage"
	Ledger   = "ledger"
	Chain    = "chain"
	Token    = "token"
	Events   = "events"
)

var w = &LoggerWrapper{
	loggers: map[string]*logrus.Entry{
		App:      newWithModule(App, defaultOptions()),
		API:      newWithModule(API, defaultOptions()),
		Executor: newWithModule(Executor, defaultOptions()),
		Storage:  newWithModule(Storage, defaultOptions()),
		Ledger:   newWithModule(Ledger, defaultOptions()),
		Chain:    newWithModule(Chain, defaultOptions()),
		Token:    newWithModule(Token, defaultOptions()),
		Events:   newWithModule(Events, defaultOptions()),
	},
}

type LoggerWrapper struct {
	loggers map[string]*logrus.Entry
}

type options struct {
	reportCaller     bool
	enableColor      bool
	disableTimestamp bool
	hook             logrus.Hook
}

func defaultOptions() *options {
	return &options{enableColor: true}
}

func newWithModule(name string, opts *options) *logrus.Entry {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetReportCaller(opts.reportCaller)
	l.SetFormatter(&logrus.TextFormatter{
		ForceColors:      opts.enableColor,
		DisableColors:    !opts.enableColor,
		DisableTimestamp: opts.disableTimestamp,
		FullTimestamp:    true,
		TimestampFormat:  "2006-01-02T15:04:05.000",
	})
	if opts.hook != nil {
		l.AddHook(opts.hook)
	}
	return l.WithField("module", name)
}

func parseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

func newFileHook(ctx context.Context, dir string, filename string, maxAge time.Duration, rotationTime time.Duration) (logrus.Hook, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	writer, err := rotatelogs.New(
		filepath.Join(dir, filename+".%Y%m%d%H%M.log"),
		rotatelogs.WithLinkName(filepath.Join(dir, filename+".log")),
		rotatelogs.WithMaxAge(maxAge),
		rotatelogs.WithRotationTime(rotationTime),
	)
	if err != nil {
		return nil, err
	}
	go func() {
		<-ctx.Done()
		_ = writer.Close()
	}()

	return lfshook.NewHook(writer, &logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano}), nil
}

func Initialize(ctx context.Context, rep *repo.Repo, persist bool) error {
	config := rep.Config
	opts := &options{
		reportCaller:     config.Log.ReportCaller,
		enableColor:      config.Log.EnableColor,
		disableTimestamp: config.Log.DisableTimestamp,
	}
	if persist {
		hook, err := newFileHook(ctx,
			filepath.Join(rep.RepoRoot, repo.LogsDirName),
			config.Log.Filename,
			time.Duration(config.Log.MaxAge)*24*time.Hour,
			config.Log.RotationTime.ToDuration(),
		)
		if err != nil {
			return fmt.Errorf("log initialize: %w", err)
		}
		opts.hook = hook
	}

	m := make(map[string]*logrus.Entry)
	m[App] = newWithModule(App, opts)
	m[App].Logger.SetLevel(parseLevel(config.Log.Level))
	m[API] = newWithModule(API, opts)
	m[API].Logger.SetLevel(parseLevel(config.Log.Module.API))
	m[Executor] = newWithModule(Executor, opts)
	m[Executor].Logger.SetLevel(parseLevel(config.Log.Module.Executor))
	m[Storage] = newWithModule(Storage, opts)
	m[Storage].Logger.SetLevel(parseLevel(config.Log.Module.Storage))
	m[Ledger] = newWithModule(Ledger, opts)
	m[Ledger].Logger.SetLevel(parseLevel(config.Log.Module.Ledger))
	m[Chain] = newWithModule(Chain, opts)
	m[Chain].Logger.SetLevel(parseLevel(config.Log.Module.Chain))
	m[Token] = newWithModule(Token, opts)
	m[Token].Logger.SetLevel(parseLevel(config.Log.Module.Token))
	m[Events] = newWithModule(Events, opts)
	m[Events].Logger.SetLevel(parseLevel(config.Log.Module.Events))

	w = &LoggerWrapper{loggers: m}
	return nil
}

func Logger(name string) logrus.FieldLogger {
	return w.loggers[name]
}
