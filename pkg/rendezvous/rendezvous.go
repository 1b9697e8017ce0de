// Package rendezvous implements the TLS-secured peer endpoint overlay
// described in spec.md §6: a listener (host serve) that accepts
// per-node client connections (node serve), exchanges newline-delimited
// JSON endpoint records, and periodically re-broadcasts the full known
// peer set. It has no influence on consensus, mining, or storage — it
// is pure peer-list distribution.
package rendezvous

import (
	"bufio"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cuemby/warrenchain/pkg/events"
	"github.com/cuemby/warrenchain/pkg/log"
	"github.com/cuemby/warrenchain/pkg/metrics"
)

// PeerRecord is the wire record exchanged over the rendezvous
// connection: one JSON object per line.
type PeerRecord struct {
	Addr string `json:"addr"`
}

// PeerSet is a concurrency-safe set of known peer endpoints. Adding or
// removing a peer updates RendezvousPeersTotal and, if a broker is
// attached, publishes EventPeerAdded/EventPeerRemoved.
type PeerSet struct {
	mu     sync.RWMutex
	peers  map[string]struct{}
	broker *events.Broker
}

// NewPeerSet creates an empty peer set. broker may be nil.
func NewPeerSet(broker *events.Broker) *PeerSet {
	return &PeerSet{peers: make(map[string]struct{}), broker: broker}
}

// Add records addr as known, returning true if it wasn't already.
func (s *PeerSet) Add(addr string) bool {
	s.mu.Lock()
	_, exists := s.peers[addr]
	if !exists {
		s.peers[addr] = struct{}{}
	}
	total := len(s.peers)
	s.mu.Unlock()

	if !exists {
		metrics.RendezvousPeersTotal.Set(float64(total))
		s.publish(events.EventPeerAdded, addr)
	}
	return !exists
}

// Remove forgets addr, returning true if it was known.
func (s *PeerSet) Remove(addr string) bool {
	s.mu.Lock()
	_, exists := s.peers[addr]
	delete(s.peers, addr)
	total := len(s.peers)
	s.mu.Unlock()

	if exists {
		metrics.RendezvousPeersTotal.Set(float64(total))
		s.publish(events.EventPeerRemoved, addr)
	}
	return exists
}

// Snapshot returns the currently known peer addresses.
func (s *PeerSet) Snapshot() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.peers))
	for addr := range s.peers {
		out = append(out, addr)
	}
	return out
}

func (s *PeerSet) publish(t events.EventType, addr string) {
	if s.broker == nil {
		return
	}
	s.broker.Publish(&events.Event{Type: t, Metadata: map[string]string{"addr": addr}})
}

// LoadTLSConfig builds a server-side tls.Config from a certificate and
// private key file pair.
func LoadTLSConfig(certFile, keyFile string) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("rendezvous: load keypair: %w", err)
	}
	return &tls.Config{Certificates: []tls.Certificate{cert}}, nil
}

// Host is the rendezvous server (host serve): it accepts client
// connections, learns their advertised endpoint, and periodically
// rebroadcasts the full known peer set back down every open connection.
type Host struct {
	listener net.Listener
	peers    *PeerSet
	interval time.Duration
	logger   zerolog.Logger

	mu    sync.Mutex
	conns map[net.Conn]struct{}

	stopCh chan struct{}
}

// NewHost creates a Host that will broadcast its peer set every
// interval. broker may be nil.
func NewHost(broker *events.Broker, interval time.Duration) *Host {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Host{
		peers:    NewPeerSet(broker),
		interval: interval,
		conns:    make(map[net.Conn]struct{}),
		stopCh:   make(chan struct{}),
		logger:   log.WithServiceID("rendezvous-host"),
	}
}

// Peers exposes the host's known peer set.
func (h *Host) Peers() *PeerSet { return h.peers }

// ListenAndServe binds addr with tlsConfig and blocks accepting
// connections until Close is called.
func (h *Host) ListenAndServe(addr string, tlsConfig *tls.Config) error {
	ln, err := tls.Listen("tcp", addr, tlsConfig)
	if err != nil {
		return fmt.Errorf("rendezvous: listen %s: %w", addr, err)
	}
	h.logger.Info().Str("addr", addr).Msg("rendezvous host listening")
	return h.serveListener(ln)
}

// serveListener runs the accept loop against an already-bound
// listener, letting tests bind an ephemeral port directly.
func (h *Host) serveListener(ln net.Listener) error {
	h.listener = ln

	go h.broadcastLoop()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-h.stopCh:
				return nil
			default:
				return fmt.Errorf("rendezvous: accept: %w", err)
			}
		}
		h.mu.Lock()
		h.conns[conn] = struct{}{}
		h.mu.Unlock()
		h.logger.Debug().Str("remote", conn.RemoteAddr().String()).Msg("peer connected")
		go h.handleConn(conn)
	}
}

// Close stops accepting connections and shuts down the broadcast loop.
func (h *Host) Close() error {
	close(h.stopCh)
	if h.listener != nil {
		return h.listener.Close()
	}
	return nil
}

func (h *Host) handleConn(conn net.Conn) {
	defer func() {
		h.mu.Lock()
		delete(h.conns, conn)
		h.mu.Unlock()
		h.logger.Debug().Str("remote", conn.RemoteAddr().String()).Msg("peer disconnected")
		_ = conn.Close()
	}()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var rec PeerRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			continue
		}
		if rec.Addr != "" {
			h.peers.Add(rec.Addr)
		}
	}
}

func (h *Host) broadcastLoop() {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			h.broadcastOnce()
		case <-h.stopCh:
			return
		}
	}
}

func (h *Host) broadcastOnce() {
	snapshot := h.peers.Snapshot()

	h.mu.Lock()
	conns := make([]net.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, conn := range conns {
		for _, addr := range snapshot {
			line, err := json.Marshal(PeerRecord{Addr: addr})
			if err != nil {
				continue
			}
			line = append(line, '\n')
			_, _ = conn.Write(line)
		}
	}
}

// Client is the node-side rendezvous session (node serve): it dials
// the host, advertises its own endpoint, and learns the peer set the
// host rebroadcasts.
type Client struct {
	selfAddr string
	peers    *PeerSet
	tls      *tls.Config
	logger   zerolog.Logger
}

// NewClient creates a Client that will advertise selfAddr once
// connected. broker may be nil. If trustAllCerts is set the client
// skips server certificate verification, matching the node config's
// trust_all_certs escape hatch for self-signed deployments.
func NewClient(selfAddr string, trustAllCerts bool, broker *events.Broker) *Client {
	return &Client{
		selfAddr: selfAddr,
		peers:    NewPeerSet(broker),
		tls:      &tls.Config{InsecureSkipVerify: trustAllCerts},
		logger:   log.WithNodeID(selfAddr),
	}
}

// Peers exposes the client's learned peer set.
func (c *Client) Peers() *PeerSet { return c.peers }

// Connect dials the rendezvous host at addr, advertises selfAddr, and
// blocks reading rebroadcast peer records until the connection closes.
// The connection is not exposed to the caller and Connect takes no
// context, so it cannot be stopped early from outside. Reconnection, if
// desired, is the caller's responsibility.
func (c *Client) Connect(addr string) error {
	conn, err := tls.Dial("tcp", addr, c.tls)
	if err != nil {
		c.logger.Error().Err(err).Str("addr", addr).Msg("failed to connect to rendezvous host")
		return fmt.Errorf("rendezvous: dial %s: %w", addr, err)
	}
	defer conn.Close()
	c.logger.Info().Str("addr", addr).Msg("connected to rendezvous host")

	if c.selfAddr != "" {
		line, err := json.Marshal(PeerRecord{Addr: c.selfAddr})
		if err != nil {
			return fmt.Errorf("rendezvous: encode self record: %w", err)
		}
		line = append(line, '\n')
		if _, err := conn.Write(line); err != nil {
			return fmt.Errorf("rendezvous: advertise self: %w", err)
		}
	}

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var rec PeerRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			continue
		}
		if rec.Addr != "" && rec.Addr != c.selfAddr {
			c.peers.Add(rec.Addr)
		}
	}
	return scanner.Err()
}
