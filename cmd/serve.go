package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	glog "github.com/labstack/gommon/log"
	"github.com/spf13/cobra"

	"helpqueue/pkg/config"
	"helpqueue/pkg/eventlog"
	"helpqueue/pkg/notify"
	"helpqueue/pkg/queue"
	"helpqueue/pkg/roster"
	"helpqueue/pkg/server"
	"helpqueue/pkg/sheets"
)

func serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Start the help queue HTTP server",
		Aliases: []string{"run"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if err := config.FromEnv(&cfg); err != nil {
				return err
			}

			if cmd.Flags().Changed("domain") {
				cfg.Domain, _ = cmd.Flags().GetString("domain")
			}
			if cmd.Flags().Changed("port") {
				cfg.Port, _ = cmd.Flags().GetInt("port")
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return serve(ctx, cfg)
		},
	}
	cmd.Flags().String("config", os.Getenv("HELPQUEUE_CONFIG"), "Path to a JSON config file")
	cmd.Flags().String("domain", "http://127.0.0.1", "Domain shown in the startup banner")
	cmd.Flags().Int("port", 8080, "HTTP listen port")
	cmd.Flags().String("log-level", "info", "Log level: debug|info|warn|error")
	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.Warn("unknown log level, keeping info", "level", cfg.LogLevel)
	}

	var client *sheets.Client
	if cfg.Sheets.Enabled() {
		var err error
		client, err = sheets.New(ctx, cfg.Sheets.CredentialsFile)
		if err != nil {
			return fmt.Errorf("sheets: %w", err)
		}
		log.Info("Google Sheets enabled", "spreadsheet", cfg.Sheets.SpreadsheetID)
	}

	var sinks []eventlog.Sink
	if client != nil {
		sinks = append(sinks, eventlog.NewSheetsSink(client, cfg.Sheets.SpreadsheetID, cfg.Sheets.LogSheet, cfg.Sheets.WritesPerMinute, cfg.Location()))
	}
	if cfg.EventLogFile != "" {
		sinks = append(sinks, &eventlog.FileSink{Path: cfg.EventLogFile})
	}
	var sink eventlog.Sink = eventlog.Discard
	if len(sinks) > 0 {
		sink = eventlog.Tee(sinks...)
	}
	events := eventlog.NewDispatcher(sink, cfg.EventBuffer, log.WithPrefix("eventlog"))
	events.Start()

	q := queue.New(queue.WithLogger(log.WithPrefix("queue")))
	srv := server.NewServer(ctx, q)
	srv.Echo.Logger.SetLevel(glog.DEBUG)
	srv.Events = events

	switch {
	case cfg.RosterFile != "":
		srv.Roster = roster.New(roster.FileSource{Path: cfg.RosterFile}, cfg.RosterTTL())
		log.Info("Roster loaded from file", "path", cfg.RosterFile)
	case client != nil:
		srv.Roster = roster.New(roster.SheetsSource{
			Client:        client,
			SpreadsheetID: cfg.Sheets.SpreadsheetID,
			StudentsRange: cfg.Sheets.StudentsRange,
			HelpersRange:  cfg.Sheets.HelpersRange,
		}, cfg.RosterTTL())
		log.Info("Roster loaded from Google Sheets")
	default:
		log.Warn("No roster configured, trusting groups sent by the bot")
	}

	notifiers := []notify.Notifier{notify.LogNotifier{Logger: log.WithPrefix("notify")}}
	if cfg.WebhookURL != "" {
		notifiers = append(notifiers, notify.WebhookNotifier{URL: cfg.WebhookURL, Client: &http.Client{Timeout: 10 * time.Second}})
	}
	srv.Notifier = notify.Multi(notifiers...)

	log.Infof("Help queue listening on %s/api/discord/v1", cfg.URL())

	finishedShutDown := make(chan struct{})
	go func() {
		defer close(finishedShutDown)
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown", "err", err)
		}
		if err := events.Stop(shutdownCtx); err != nil {
			log.Error("event log shutdown", "err", err)
		}
	}()

	if err := srv.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-finishedShutDown
	return nil
}
