package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/bdobrica/canvaschat/common/retry"
	"github.com/bdobrica/canvaschat/internal/canvaschat/audit"
	"github.com/bdobrica/canvaschat/internal/canvaschat/config"
	"github.com/bdobrica/canvaschat/internal/canvaschat/executor"
	"github.com/bdobrica/canvaschat/internal/canvaschat/host"
	"github.com/bdobrica/canvaschat/internal/canvaschat/session"
)

// runtime is the wired application shared by every subcommand.
type runtime struct {
	cfg       *config.Config
	log       *slog.Logger
	workspace *host.Workspace
	audit     *audit.Store
	sessions  *session.Controller
}

func (r *runtime) Close() {
	if r.audit != nil {
		if err := r.audit.Close(); err != nil {
			r.log.Warn("failed to close audit store", "err", err)
		}
	}
}

// setup loads configuration and wires the workspace, audit log, executor and
// session controller. withAudit is false for commands that never record.
func setup(withAudit bool) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if workspaceFile != "" {
		cfg.WorkspaceFile = workspaceFile
	}
	log := cfg.NewLogger(os.Stderr)
	slog.SetDefault(log)

	ws, err := loadWorkspace(cfg.WorkspaceFile, log)
	if err != nil {
		return nil, err
	}
	rt := &runtime{cfg: cfg, log: log, workspace: ws}

	var recorder session.Recorder
	if withAudit && cfg.DatabasePath != "" {
		store, err := audit.Open(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("opening audit store: %w", err)
		}
		rt.audit = store
		recorder = store
	}

	exec, err := executor.New(executor.Config{
		Data:      ws,
		Previewer: ws,
		Sink:      ws,
		Settings:  ws,
		Retry: retry.Config{
			MaxAttempts:  cfg.PreviewRetryAttempts,
			InitialDelay: retry.DefaultConfig.InitialDelay,
			MaxDelay:     retry.DefaultConfig.MaxDelay,
		},
		Logger: log,
	})
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.sessions, err = session.New(session.Config{
		Executor:            exec,
		Selector:            ws,
		Recorder:            recorder,
		MaxComponentThreads: cfg.MaxComponentThreads,
		Logger:              log,
		Now:                 time.Now,
	})
	if err != nil {
		rt.Close()
		return nil, err
	}
	return rt, nil
}

// loadWorkspace reads the seed file; a missing file yields an empty
// workspace.
func loadWorkspace(path string, log *slog.Logger) (*host.Workspace, error) {
	if path == "" {
		return host.NewWorkspace(), nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info("workspace file not found, starting with an empty canvas", "path", path)
		return host.NewWorkspace(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading workspace: %w", err)
	}
	ws, err := host.LoadWorkspace(raw)
	if err != nil {
		return nil, fmt.Errorf("workspace %s: %w", path, err)
	}
	log.Info("workspace loaded", "path", path, "components", ws.Count())
	return ws, nil
}
