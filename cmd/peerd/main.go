// Command peerd is the reference host/client binary for the session
// engine: it wires internal/udptransport, internal/telemetry, and
// internal/metrics around the peer package's Input/Tick loop. It is
// demo glue, not the engine itself — an embedder is free to drive
// *peer.Peer from any transport.
package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/sessionwire/peer"
	"github.com/sessionwire/peer/internal/metrics"
	"github.com/sessionwire/peer/internal/telemetry"
	"github.com/sessionwire/peer/internal/udptransport"
	"github.com/sessionwire/peer/internal/wire"
)

const version = "0.1.0"

func main() {
	cfg, err := loadConfig()
	if err != nil {
		os.Stderr.WriteString("error: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := telemetry.New(telemetry.Config{
		Level:   telemetry.Level(cfg.LogLevel),
		Format:  telemetry.Format(cfg.LogFormat),
		Service: "peerd-" + cfg.Mode,
	})
	telemetry.Banner(logger, cfg.Mode, version)

	reg := metrics.NewRegistry()
	go serveMetrics(cfg.MetricsAddr, reg, logger)

	mode := peer.Host
	if cfg.Mode == "client" {
		mode = peer.Client
	}
	p := peer.New(mode)

	pool, err := udptransport.Listen(cfg.ListenAddr, cfg.LocalID)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to bind socket")
	}
	defer pool.Close()

	if st := p.Open([]int64{cfg.LocalID}); !st.OK() {
		logger.Fatal().Msg("failed to open local slot")
	}

	if mode == peer.Client {
		hostAddr, err := udptransport.ResolveAddr(cfg.HostAddr)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to resolve host address")
		}
		hostID := pool.ResolveID(hostAddr)
		if st := p.Connect(hostID); !st.OK() {
			logger.Fatal().Msg("failed to connect")
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	packets := make(chan wire.Packet, 256)
	go receiveLoop(pool, packets, logger)

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	lastTick := time.Now()
	for {
		select {
		case sig := <-sigCh:
			logger.Warn().Str("signal", sig.String()).Msg("shutting down")
			return

		case pkt := <-packets:
			reg.Packets.PacketsReceived.Inc()
			if st := p.Input([]wire.Packet{pkt}); !st.OK() {
				telemetry.LogStatus(logger, "input", st, nil)
			} else {
				reg.Trail.MessagesQueued.Inc()
			}

		case now := <-ticker.C:
			dt := now.Sub(lastTick).Milliseconds()
			lastTick = now
			st, out := p.Tick(dt)
			if !st.OK() {
				telemetry.LogStatus(logger, "tick", st, nil)
			}
			for _, pkt := range out {
				if err := pool.Send(pkt); err != nil {
					logger.Warn().Err(err).Msg("send failed")
					continue
				}
				reg.Packets.PacketsSent.Inc()
			}
			reg.Slots.ReadySlots.Set(float64(countReadySlots(p)))
		}
	}
}

// receiveLoop pumps datagrams from pool into out until the socket is
// closed, at which point it exits silently — the main loop's shutdown
// path closes the socket first.
func receiveLoop(pool *udptransport.Pool, out chan<- wire.Packet, logger zerolog.Logger) {
	for {
		pkt, err := pool.Receive()
		if err != nil {
			return
		}
		out <- pkt
	}
}

func serveMetrics(addr string, reg *metrics.Registry, logger zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", reg.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Warn().Err(err).Msg("metrics server stopped")
	}
}

func countReadySlots(p *peer.Peer) int {
	n := 0
	for i := 0; i < p.SlotCount(); i++ {
		if p.Slot(i).State == peer.SlotReady {
			n++
		}
	}
	return n
}
