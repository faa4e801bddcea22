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

package lsa

import (
	"encoding/json"
	"net"
	"time"

	"github.com/go-kit/kit/log"

	"linkstated.io/internal/config"
)

const (
	// DefaultPort is the UDP port advertisements are exchanged on.
	DefaultPort = 5000

	// maxDatagram bounds the receive buffer. Senders must not exceed it.
	maxDatagram = 4096

	// originatePeriod is how often the local advertisement is rebuilt
	// and sent.
	originatePeriod = 500 * time.Millisecond

	// readTimeout bounds each blocking receive so shutdown is observed
	// promptly.
	readTimeout = time.Second
)

// PacketConn is the subset of net.PacketConn the engine uses.
type PacketConn interface {
	WriteTo(b []byte, addr net.Addr) (int, error)
	ReadFrom(b []byte) (n int, addr net.Addr, err error)
	SetReadDeadline(t time.Time) error
	Close() error
}

// InactiveSet reports which configured neighbors are currently deemed
// unreachable. Satisfied by *neighbor.Set.
type InactiveSet interface {
	Contains(id string) bool
}

// Engine originates the local advertisement and floods accepted
// remote ones. The send task owns the sequence number and an
// ephemeral-source socket; the receive task owns the socket bound to
// the advertisement port and re-floods on it.
type Engine struct {
	logger    log.Logger
	id        string
	ip        string
	neighbors map[string]config.Neighbor
	inactive  InactiveSet
	db        *DB
	port      int

	send PacketConn
	recv PacketConn

	// seq is written only by the send task.
	seq int64
}

// NewEngine returns an engine for the given identity and sockets.
// send is the ephemeral-source socket used for origination; recv is
// the socket bound to the advertisement port.
func NewEngine(l log.Logger, cfg *config.Config, db *DB, inactive InactiveSet, send, recv PacketConn) *Engine {
	port := cfg.LSAPort
	if port == 0 {
		port = DefaultPort
	}
	return &Engine{
		logger:    l,
		id:        cfg.RouterID,
		ip:        cfg.RouterIP,
		neighbors: cfg.Neighbors,
		inactive:  inactive,
		db:        db,
		port:      port,
		send:      send,
		recv:      recv,
	}
}

// Originate builds the local advertisement from the static neighbor
// table minus the inactive set, records it in the database, and sends
// one datagram to each active neighbor. Because the local record is
// stored, a copy of it that loops back is rejected by the ordinary
// sequence-number rule. Send failures are logged and retried
// implicitly on the next cycle.
func (e *Engine) Originate() {
	e.seq++

	neighbors := make(map[string]NeighborInfo, len(e.neighbors))
	for id, neighbor := range e.neighbors {
		if e.inactive.Contains(id) {
			continue
		}
		neighbors[id] = NeighborInfo{IP: neighbor.IP, Cost: neighbor.Cost}
	}

	adv := Advertisement{ID: e.id, IP: e.ip, Neighbors: neighbors, Seq: e.seq}
	if e.db.Update(adv) {
		RecordDBSize(e.db.Len())
	}
	payload, err := json.Marshal(adv)
	if err != nil {
		e.logger.Log("op", "originate", "error", err, "msg", "failed to encode advertisement")
		return
	}

	for id, neighbor := range e.neighbors {
		if e.inactive.Contains(id) {
			continue
		}
		if err := e.writeTo(e.send, payload, neighbor.IP); err != nil {
			RecordSendError()
			e.logger.Log("op", "originate", "neighbor", id, "ip", neighbor.IP, "error", err, "msg", "send failed")
			continue
		}
		RecordSent()
	}
}

// RunSender originates an advertisement every half second until the
// shutdown channel closes.
func (e *Engine) RunSender(stopCh <-chan struct{}) error {
	ticker := time.NewTicker(originatePeriod)
	defer ticker.Stop()

	for {
		e.Originate()
		select {
		case <-stopCh:
			return nil
		case <-ticker.C:
		}
	}
}

// RunReceiver reads datagrams from the bound socket until the
// shutdown channel closes. Each blocking read is bounded by a short
// deadline so the channel is observed promptly.
func (e *Engine) RunReceiver(stopCh <-chan struct{}) error {
	buf := make([]byte, maxDatagram)
	for {
		select {
		case <-stopCh:
			return nil
		default:
		}

		e.recv.SetReadDeadline(time.Now().Add(readTimeout))
		n, addr, err := e.recv.ReadFrom(buf)
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				continue
			}
			select {
			case <-stopCh:
				return nil
			default:
			}
			e.logger.Log("op", "receive", "error", err, "msg", "read failed")
			continue
		}

		e.HandleDatagram(buf[:n], sourceIP(addr))
	}
}

// HandleDatagram processes one received advertisement: parse, accept
// or reject by sequence number, and on acceptance re-flood the
// byte-exact payload to every active neighbor except the sender.
// Returns whether the advertisement was accepted and how many
// neighbors it was forwarded to.
func (e *Engine) HandleDatagram(payload []byte, senderIP string) (accepted bool, forwarded int) {
	var adv Advertisement
	if err := json.Unmarshal(payload, &adv); err != nil {
		RecordParseError()
		e.logger.Log("op", "receive", "from", senderIP, "error", err, "msg", "dropping malformed advertisement")
		return false, 0
	}
	if adv.ID == "" {
		RecordParseError()
		e.logger.Log("op", "receive", "from", senderIP, "msg", "dropping advertisement without origin")
		return false, 0
	}

	if !e.db.Update(adv) {
		RecordRejected()
		return false, 0
	}
	RecordAccepted()
	RecordDBSize(e.db.Len())

	// Forward the received bytes, not a re-serialization, so that
	// comparison by sequence number alone deduplicates across senders
	// using a different key order.
	for id, neighbor := range e.neighbors {
		if neighbor.IP == senderIP {
			continue
		}
		if e.inactive.Contains(id) {
			continue
		}
		if err := e.writeTo(e.recv, payload, neighbor.IP); err != nil {
			RecordSendError()
			e.logger.Log("op", "flood", "neighbor", id, "ip", neighbor.IP, "error", err, "msg", "forward failed")
			continue
		}
		RecordFlooded()
		e.logger.Log("op", "flood", "origin", adv.ID, "seq", adv.Seq, "neighbor", id, "ip", neighbor.IP, "msg", "forwarding advertisement")
		forwarded++
	}

	return true, forwarded
}

func (e *Engine) writeTo(conn PacketConn, payload []byte, ip string) error {
	addr := &net.UDPAddr{IP: net.ParseIP(ip), Port: e.port}
	_, err := conn.WriteTo(payload, addr)
	return err
}

// sourceIP extracts the sender's address from a datagram source.
func sourceIP(addr net.Addr) string {
	if udp, ok := addr.(*net.UDPAddr); ok {
		return udp.IP.String()
	}
	if host, _, err := net.SplitHostPort(addr.String()); err == nil {
		return host
	}
	return addr.String()
}
