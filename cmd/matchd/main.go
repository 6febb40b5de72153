package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"matchd/domain/orderbook"
	"matchd/engine"
	"matchd/infra/logging"
	"matchd/infra/metrics"
	"matchd/infra/queue"
	"matchd/infra/sequence"
	"matchd/net/ingress"
	"matchd/net/marketdata"
)

func main() {
	os.Exit(run())
}

func run() int {
	// ---------------- Flags ----------------

	port := flag.Int("port", 8080, "TCP port the exchange listens on")
	noMD := flag.Bool("no-md", false, "disable UDP market-data publishing")
	mdHost := flag.String("md-host", "127.0.0.1", "market-data UDP destination host")
	mdPort := flag.Int("md-port", 9999, "market-data UDP destination port")
	queueCapacity := flag.Int("queue-capacity", 4096, "command queue capacity")
	tickSize := flag.Int64("tick-size", 100, "ticks per unit currency (2 decimal places = 100)")
	metricsAddr := flag.String("metrics-addr", "", "address to serve Prometheus /metrics on, empty disables")
	logLevel := flag.String("log-level", "info", "debug|info|warn|error")
	kafkaBrokers := flag.String("kafka-brokers", "", "comma-separated Kafka brokers for the optional market-data mirror")
	kafkaTopic := flag.String("kafka-topic", "matchd.events", "Kafka topic for the market-data mirror")
	flag.Parse()

	log, err := logging.New(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "matchd:", err)
		return 1
	}
	defer log.Sync()

	// ---------------- Metrics ----------------

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				log.Warn("metrics server exited", zap.Error(err))
			}
		}()
	}

	// ---------------- Market data ----------------

	var sinks []interface {
		Publish([]orderbook.Event)
	}
	if !*noMD {
		udp, err := marketdata.NewUDPSink(*mdHost, *mdPort)
		if err != nil {
			log.Error("market-data UDP setup failed", zap.Error(err))
			return 1
		}
		defer udp.Close()
		sinks = append(sinks, udp)
	}
	if *kafkaBrokers != "" {
		kafka, err := marketdata.NewKafkaSink(strings.Split(*kafkaBrokers, ","), *kafkaTopic)
		if err != nil {
			log.Error("market-data Kafka setup failed", zap.Error(err))
			return 1
		}
		defer kafka.Close()
		sinks = append(sinks, kafka)
	}
	sink := marketdata.NewMultiSink(sinks...)

	// ---------------- Domain ----------------

	fmtr := orderbook.NewTickFormatter(*tickSize)
	book := orderbook.New(fmtr)
	cmdQueue := queue.New[engine.Command](*queueCapacity)
	seq := sequence.New(0)

	eng := engine.NewEngine(book, cmdQueue, sink, log, m)

	// ---------------- Acceptor ----------------

	acceptor, err := ingress.Listen(fmt.Sprintf(":%d", *port), cmdQueue, seq, fmtr, log)
	if err != nil {
		log.Error("listen failed", zap.Error(err))
		return 1
	}

	engineDone := make(chan struct{})
	go func() {
		eng.Run()
		close(engineDone)
	}()

	acceptDone := make(chan error, 1)
	go func() { acceptDone <- acceptor.Serve() }()

	log.Info("matchd listening", zap.Int("port", *port))

	// ---------------- Shutdown ----------------

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		log.Info("shutdown signal received")
	case err := <-acceptDone:
		if err != nil {
			log.Error("accept loop exited", zap.Error(err))
			return 1
		}
	}

	_ = acceptor.Close()
	cmdQueue.Stop()
	<-engineDone

	log.Info("matchd stopped cleanly")
	return 0
}
