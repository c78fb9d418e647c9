// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// Copyright 2024-present the ping-agent authors.

// Command agent runs the network probe agent described by spec.md: it
// registers with a controller, reconciles ICMP/TCP/fast-ping probing tasks
// against the command sets it receives, and reports results to a collector.
//
// Wiring follows original_source/src/main.rs's shape (one mpsc pipe per
// probe kind, joined at the end) translated into Go channels and an
// errgroup.
package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DBN-DEV/ping-agent/pkg/agent/config"
	"github.com/DBN-DEV/ping-agent/pkg/agent/control"
	"github.com/DBN-DEV/ping-agent/pkg/agent/fpingengine"
	"github.com/DBN-DEV/ping-agent/pkg/agent/icmpengine"
	applog "github.com/DBN-DEV/ping-agent/pkg/agent/log"
	"github.com/DBN-DEV/ping-agent/pkg/agent/model"
	"github.com/DBN-DEV/ping-agent/pkg/agent/reporter"
	"github.com/DBN-DEV/ping-agent/pkg/agent/rpc/grpcclient"
	"github.com/DBN-DEV/ping-agent/pkg/agent/tcpengine"
	"github.com/DBN-DEV/ping-agent/pkg/agent/telemetry"
)

// Exit codes (spec.md §6).
const (
	exitOK     = 0
	exitConfig = 78 // EX_CONFIG, per sysexits.h convention.
)

// commandChannelCapacity/resultChannelCapacity are the bounded channel
// sizes spec.md §5 mandates for the control→engine and engine→reporter
// pipes respectively.
const (
	commandChannelCapacity = 16
	resultChannelCapacity  = 1024
)

func main() {
	root := &cobra.Command{
		Use:   "agent",
		Short: "Network probe agent",
		RunE:  run,
	}
	root.Flags().StringP("conf", "c", "./config.toml", "path to the TOML configuration file")

	if err := root.Execute(); err != nil {
		os.Exit(exitConfig)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	confPath, err := cmd.Flags().GetString("conf")
	if err != nil {
		return err
	}

	log, err := applog.New()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	cfg, err := config.Load(confPath)
	if err != nil {
		log.Error("load configuration", zap.Error(err))
		os.Exit(exitConfig)
	}

	controllerConn, err := grpcclient.Dial(cfg.Controller.URL)
	if err != nil {
		log.Error("dial controller", zap.Error(err))
		os.Exit(exitConfig)
	}
	collectorConn, err := grpcclient.Dial(cfg.Collector.URL)
	if err != nil {
		log.Error("dial collector", zap.Error(err))
		os.Exit(exitConfig)
	}

	metrics := telemetry.New(prometheus.DefaultRegisterer)
	serveMetrics(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	agentID := cfg.Agent.ID
	controllerClient := grpcclient.NewControllerClient(log.Named("rpc.controller"), controllerConn)
	collectorClient := grpcclient.NewCollectorClient(collectorConn)

	channel := control.New(agentID, log.Named("control"), controllerClient)
	channel.OnNotificationDropped = func(kind model.CommandType) {
		metrics.NotificationsDropped.WithLabelValues(kind.String()).Inc()
	}

	pingCommands := make(chan model.CommandSet[model.PingCommand], commandChannelCapacity)
	tcpCommands := make(chan model.CommandSet[model.TCPPingCommand], commandChannelCapacity)
	fpingCommands := make(chan model.FPingCommand, commandChannelCapacity)

	pingResults := make(chan model.Result, resultChannelCapacity)
	tcpResults := make(chan model.Result, resultChannelCapacity)
	fpingResults := make(chan model.FPingResultSet, resultChannelCapacity)

	pingEngine := icmpengine.New(log.Named("engine.icmp"), pingResults)
	pingEngine.SetTaskStartedHook(func() { metrics.TasksStarted.WithLabelValues("icmp").Inc() })

	tcpEngine := tcpengine.New(log.Named("engine.tcp"), tcpResults)
	tcpEngine.SetTaskStartedHook(func() { metrics.TasksStarted.WithLabelValues("tcp").Inc() })

	fpingEngine := fpingengine.New(log.Named("engine.fping"), fpingResults)

	pingPipeline := reporter.NewPingPipeline(log.Named("reporter.ping"), agentID, collectorClient)
	pingPipeline.OnReported = func(count int) { metrics.ResultsReported.WithLabelValues("ping").Add(float64(count)) }
	pingPipeline.OnRetry = func() { metrics.BatchRetries.WithLabelValues("ping").Inc() }

	tcpPipeline := reporter.NewTCPPingPipeline(log.Named("reporter.tcp"), agentID, collectorClient)
	tcpPipeline.OnReported = func(count int) { metrics.ResultsReported.WithLabelValues("tcp").Add(float64(count)) }
	tcpPipeline.OnRetry = func() { metrics.BatchRetries.WithLabelValues("tcp").Inc() }

	fpingPipeline := reporter.NewFastPingPipeline(log.Named("reporter.fping"), agentID, collectorClient)
	fpingPipeline.OnReported = func(count int) { metrics.ResultsReported.WithLabelValues("fping").Add(float64(count)) }
	fpingPipeline.OnRetry = func() { metrics.BatchRetries.WithLabelValues("fping").Inc() }

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { channel.Run(ctx); return nil })
	g.Go(func() error { control.ForwardPingCommands(ctx, channel, pingCommands); return nil })
	g.Go(func() error { control.ForwardTCPPingCommands(ctx, channel, tcpCommands); return nil })
	g.Go(func() error { control.ForwardFPingCommands(ctx, channel, fpingCommands); return nil })

	g.Go(func() error { pingEngine.Run(ctx, pingCommands); return nil })
	g.Go(func() error { tcpEngine.Run(ctx, tcpCommands); return nil })
	g.Go(func() error { fpingEngine.Run(ctx, fpingCommands); return nil })

	g.Go(func() error { pingPipeline.Run(ctx, pingResults); return nil })
	g.Go(func() error { tcpPipeline.Run(ctx, tcpResults); return nil })
	g.Go(func() error { fpingPipeline.Run(ctx, fpingResults); return nil })

	log.Info("agent started", zap.Uint32("agentID", agentID))
	_ = g.Wait()

	os.Exit(exitOK)
	return nil
}

// serveMetrics exposes the Prometheus registry on a loopback-only listener;
// a fleet operator's scrape config chooses whether to reach it.
func serveMetrics(log *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	listener, err := net.Listen("tcp", "127.0.0.1:9090")
	if err != nil {
		log.Warn("metrics listener unavailable, continuing without it", zap.Error(err))
		return
	}

	go func() {
		if err := http.Serve(listener, mux); err != nil {
			log.Warn("metrics server stopped", zap.Error(err))
		}
	}()
}
