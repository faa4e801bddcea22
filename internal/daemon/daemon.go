// Copyright 2024 Linkstated Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package daemon supervises the routing tasks: it owns the link-state
// database, the inactive-neighbor set, and the shutdown signal, and
// runs the advertisement send/receive loops, the neighbor monitor,
// and the database sweep as concurrent tasks.
package daemon

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/go-kit/kit/log"
	"golang.org/x/sync/errgroup"

	"linkstated.io/internal/config"
	"linkstated.io/internal/kernel"
	"linkstated.io/internal/lsa"
	"linkstated.io/internal/neighbor"
	"linkstated.io/internal/route"
)

// DefaultSweepPeriod is how often the database sweep re-probes known
// origins.
const DefaultSweepPeriod = 100 * time.Millisecond

// Daemon wires the subsystems together and runs them.
type Daemon struct {
	logger    log.Logger
	cfg       *config.Config
	db        *lsa.DB
	inactive  *neighbor.Set
	engine    *lsa.Engine
	monitor   *neighbor.Monitor
	installer *kernel.Installer
	prober    neighbor.Prober

	sendConn lsa.PacketConn
	recvConn lsa.PacketConn

	sweepPeriod time.Duration

	// recomputeMu serializes recomputations requested by the monitor
	// and the sweep.
	recomputeMu sync.Mutex
}

// New binds the advertisement sockets and builds the daemon. A bind
// failure is returned to the caller and is fatal at startup.
func New(l log.Logger, cfg *config.Config, prober neighbor.Prober, routes kernel.RouteReplacer) (*Daemon, error) {
	recvConn, err := net.ListenPacket("udp4", fmt.Sprintf("0.0.0.0:%d", cfg.LSAPort))
	if err != nil {
		return nil, fmt.Errorf("could not bind advertisement port %d: %w", cfg.LSAPort, err)
	}
	sendConn, err := net.ListenPacket("udp4", "0.0.0.0:0")
	if err != nil {
		recvConn.Close()
		return nil, fmt.Errorf("could not open send socket: %w", err)
	}

	d := &Daemon{
		logger:      l,
		cfg:         cfg,
		db:          lsa.NewDB(),
		inactive:    neighbor.NewSet(),
		prober:      prober,
		sendConn:    sendConn,
		recvConn:    recvConn,
		sweepPeriod: DefaultSweepPeriod,
	}
	d.engine = lsa.NewEngine(l, cfg, d.db, d.inactive, sendConn, recvConn)
	d.installer = kernel.NewInstaller(l, routes)
	d.monitor = neighbor.NewMonitor(l, cfg.Neighbors, prober, d.inactive, neighbor.DefaultMonitorPeriod, d.Recompute)

	return d, nil
}

// Run starts the four long-running tasks and blocks until the
// shutdown channel closes and every task has exited.
func (d *Daemon) Run(stopCh <-chan struct{}) error {
	group := new(errgroup.Group)
	group.Go(func() error { return d.engine.RunSender(stopCh) })
	group.Go(func() error { return d.engine.RunReceiver(stopCh) })
	group.Go(func() error { return d.monitor.Run(stopCh) })
	group.Go(func() error { return d.runSweep(stopCh) })

	d.logger.Log("op", "startup", "router", d.cfg.RouterID, "ip", d.cfg.RouterIP, "port", d.cfg.LSAPort, "neighbors", len(d.cfg.Neighbors), "msg", "ready")

	err := group.Wait()

	d.sendConn.Close()
	d.recvConn.Close()
	d.logger.Log("op", "shutdown", "msg", "all tasks stopped")
	return err
}

// Recompute rebuilds the next-hop table from the current database and
// inactive-set snapshots and pushes it to the kernel. Invocations are
// serialized; each one sees whatever snapshot the locks yield at the
// instant it begins.
func (d *Daemon) Recompute() {
	d.recomputeMu.Lock()
	defer d.recomputeMu.Unlock()

	records := d.db.Snapshot()
	inactive := d.inactive.Snapshot()

	graph := route.BuildGraph(records, inactive)
	graph.SetSource(d.cfg.RouterID, d.cfg.Neighbors, inactive)

	table := route.NextHops(graph, d.cfg.RouterID)
	RecordRecompute(len(table))
	if len(table) == 0 {
		d.logger.Log("op", "recompute", "msg", "no routes")
		return
	}

	for dest, hop := range table {
		d.logger.Log("op", "recompute", "dest", dest, "via", hop)
	}
	d.installer.Install(table, records)
}

// runSweep re-probes every origin in the database each period and
// recomputes when a previously-known router stops answering. This
// catches failures of routers that are not direct neighbors, which
// the monitor never probes.
func (d *Daemon) runSweep(stopCh <-chan struct{}) error {
	ticker := time.NewTicker(d.sweepPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return nil
		case <-ticker.C:
			if !d.sweep() {
				d.Recompute()
			}
		}
	}
}

// sweep probes every known origin concurrently and reports whether
// all of them answered.
func (d *Daemon) sweep() bool {
	records := d.db.Snapshot()

	var mu sync.Mutex
	allUp := true

	group := new(errgroup.Group)
	for origin, adv := range records {
		if origin == d.cfg.RouterID {
			continue
		}
		adv := adv
		group.Go(func() error {
			if !d.prober.Probe(context.Background(), adv.IP) {
				mu.Lock()
				allUp = false
				mu.Unlock()
			}
			return nil
		})
	}
	group.Wait()

	return allUp
}
