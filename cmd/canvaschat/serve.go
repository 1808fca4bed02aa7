package main

import (
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bdobrica/canvaschat/common/version"
	"github.com/bdobrica/canvaschat/internal/canvaschat/app"
	"github.com/bdobrica/canvaschat/internal/canvaschat/matrix"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API and, when configured, the Matrix bot",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	rt, err := setup(true)
	if err != nil {
		return err
	}
	defer rt.Close()
	rt.log.Info("starting", "version", version.Version, "commit", version.GitCommit)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if rt.cfg.HTTPAddr == "" && !rt.cfg.Matrix.Enabled() {
		return errors.New("nothing to serve: set HTTP_ADDR or MATRIX_HOMESERVER")
	}

	if rt.cfg.HTTPAddr != "" {
		var auditLog app.AuditLog
		if rt.audit != nil {
			auditLog = rt.audit
		}
		srv := app.NewServer(rt.cfg.HTTPAddr, rt.sessions, rt.workspace, auditLog)
		srv.AllowOrigins(rt.cfg.ChatOrigins...)
		if err := srv.Start(ctx); err != nil {
			return err
		}
		defer srv.Stop()
	}

	if rt.cfg.Matrix.Enabled() {
		mc := matrix.Config{
			Homeserver:  rt.cfg.Matrix.Homeserver,
			UserID:      rt.cfg.Matrix.UserID,
			AccessToken: rt.cfg.Matrix.AccessToken,
			Rooms:       rt.cfg.Matrix.Rooms,
		}
		if rt.audit != nil {
			mc.DB = rt.audit.DB()
		}
		client, err := matrix.New(mc)
		if err != nil {
			return err
		}
		bridge := matrix.NewBridge(rt.sessions, client)
		if err := client.Start(ctx, bridge.HandleMessage); err != nil {
			return err
		}
		defer client.Stop()
		rt.log.Info("matrix bot started", "matrix", rt.cfg.Matrix)
	}

	<-ctx.Done()
	rt.log.Info("shutting down")
	return nil
}
