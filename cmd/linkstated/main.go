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

package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"linkstated.io/internal/config"
	"linkstated.io/internal/daemon"
	"linkstated.io/internal/kernel"
	"linkstated.io/internal/logging"
	"linkstated.io/internal/neighbor"
)

func main() {
	logger := logging.Init()

	var (
		routerID  = flag.String("router-id", os.Getenv("ROTEADOR_ID"), "this router's identifier, e.g. roteador3")
		routerIP  = flag.String("router-ip", os.Getenv("ENDERECO_IP"), "this router's primary IPv4 address")
		neighbors = flag.String("neighbors", os.Getenv("VIZINHOS"), "JSON object mapping neighbor-id to [ip, cost]")
		lsaPort   = flag.Int("lsa-port", 5000, "UDP port for link-state advertisements")

		host = flag.String("metrics-host", os.Getenv("LINKSTATED_METRICS_HOST"), "HTTP host address for Prometheus metrics")
		port = flag.Int("metrics-port", 7472, "HTTP listening port for Prometheus metrics")

		probeTimeout = flag.Duration("probe-timeout", neighbor.DefaultProbeTimeout, "hard deadline on a single neighbor probe")
	)
	flag.Parse()

	cfg, err := config.Parse(*routerID, *routerIP, *neighbors, *lsaPort)
	if err != nil {
		logger.Log("op", "startup", "error", err, "msg", "bad configuration")
		os.Exit(1)
	}

	stopCh := make(chan struct{})
	go func() {
		c1 := make(chan os.Signal, 1)
		signal.Notify(c1, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)
		<-c1
		logger.Log("op", "shutdown", "msg", "signal received, initiating shutdown")
		signal.Stop(c1)
		close(stopCh)
	}()

	prober := neighbor.PingProber{Timeout: *probeTimeout, Privileged: true}

	d, err := daemon.New(logger, cfg, prober, kernel.Netlink{})
	if err != nil {
		logger.Log("op", "startup", "error", err, "msg", "failed to start daemon")
		os.Exit(1)
	}

	go daemon.RunMetrics(*host, *port)

	// Run doesn't return until it's time to shut down.
	if err := d.Run(stopCh); err != nil {
		logger.Log("op", "run", "error", err, "msg", "daemon exited with error")
		os.Exit(1)
	}

	logger.Log("op", "shutdown", "msg", "graceful shutdown complete")
}
