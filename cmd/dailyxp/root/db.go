package root

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Gravitonian77/DailyXP/internal/config"
	"github.com/Gravitonian77/DailyXP/internal/engine"
	"github.com/Gravitonian77/DailyXP/internal/storage"
	"github.com/Gravitonian77/DailyXP/internal/ui"
)

func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	return cfg.Build()
}

// uiNotifier prints engine notifications as styled lines on stdout.
type uiNotifier struct{}

func (uiNotifier) Notify(message string, severity engine.Severity) {
	icon := ui.SeverityIcon(string(severity))
	switch severity {
	case engine.SeveritySuccess:
		fmt.Fprintln(os.Stdout, ui.Good.Render(icon+" "+message))
	case engine.SeverityWarning:
		fmt.Fprintln(os.Stdout, ui.Warn.Render(icon+" "+message))
	case engine.SeverityError:
		fmt.Fprintln(os.Stdout, ui.Bad.Render(icon+" "+message))
	default:
		fmt.Fprintln(os.Stdout, icon+" "+message)
	}
}

func openService(ctx context.Context) (*engine.Service, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(cfg.Debug)
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, err
	}

	svc := engine.NewService(db, logger)
	svc.SetNotifier(uiNotifier{})

	cleanup := func() {
		_ = db.Close()
		_ = logger.Sync()
	}
	return svc, cleanup, nil
}
