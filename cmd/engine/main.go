// Command engine is the process entry point: it wires the Intent
// Decoder, Event Sink(s), Book Inspector, engine facade, and gRPC
// surface together and runs until its input is exhausted or the
// process is signalled to stop.
package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"matchcore/api/rpc"
	"matchcore/bookdump"
	"matchcore/config"
	"matchcore/domain/event"
	"matchcore/domain/intent"
	"matchcore/engine"
	"matchcore/eventsink"
	"matchcore/intentfeed"
	"matchcore/metrics"
	"matchcore/orderseq"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "matchcore:", err)
		os.Exit(1)
	}
}

func run() error {
	log, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	seq := orderseq.New(0)

	memSink := eventsink.NewMemorySink()
	sinks := event.MultiSink{memSink, eventsink.NewLogSink(log)}

	if cfg.EnableAuditJournal {
		audit, err := eventsink.NewAuditSink(eventsink.AuditConfig{Dir: cfg.AuditDir}, seq)
		if err != nil {
			return fmt.Errorf("open audit journal: %w", err)
		}
		defer audit.Close()
		sinks = append(sinks, audit)
	}
	if cfg.EnableKafkaSink {
		kSink := eventsink.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaEventTopic, seq)
		defer kSink.Close()
		sinks = append(sinks, kSink)
	}

	reg := prometheus.NewRegistry()
	collectors := metrics.New(reg)
	instrumented := metrics.InstrumentedSink{Inner: sinks, Collectors: collectors}

	store, err := bookdump.Open(cfg.BookDumpDir)
	if err != nil {
		return fmt.Errorf("open book dump store: %w", err)
	}
	defer store.Close()
	inspector := engine.NewInspector(log, store, seq, cfg.DumpEvery)

	eng := engine.New(instrumented, engine.WithLogger(log), engine.WithMetrics(collectors), engine.WithInspector(inspector))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go serveMetrics(cfg.MetricsAddr, reg, log)
	go serveGRPC(cfg.GRPCAddr, eng, memSink, log)

	process := func(in intent.Intent) {
		if err := eng.Process(in); err != nil {
			log.Error("fatal invariant violation, halting", zap.Error(err))
			os.Exit(2)
		}
	}

	decoder := intentfeed.NewLineDecoder(log)

	switch cfg.IntentSource {
	case "kafka":
		consumer, err := intentfeed.NewKafkaConsumer(cfg.KafkaBrokers, cfg.KafkaGroupID, cfg.KafkaIntentTopic, decoder, log)
		if err != nil {
			return fmt.Errorf("start kafka consumer: %w", err)
		}
		defer consumer.Close()
		return consumer.Run(ctx, process)
	default:
		return decoder.Stream(os.Stdin, process)
	}
}

func serveMetrics(addr string, reg *prometheus.Registry, log *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Warn("metrics server stopped", zap.Error(err))
	}
}

func serveGRPC(addr string, eng *engine.Engine, rec *eventsink.MemorySink, log *zap.Logger) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		log.Error("grpc listen failed", zap.Error(err))
		return
	}
	gs := grpc.NewServer()
	rpc.RegisterEngineServer(gs, rpc.NewService(eng, rec))
	if err := gs.Serve(lis); err != nil {
		log.Warn("grpc server stopped", zap.Error(err))
	}
}
