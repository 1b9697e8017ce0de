package rendezvous

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cuemby/warrenchain/pkg/events"
)

// selfSignedTLSConfig generates an in-memory self-signed certificate
// for "127.0.0.1" so tests never touch the filesystem or LoadTLSConfig.
func selfSignedTLSConfig(t *testing.T) *tls.Config {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "rendezvous-test"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		IPAddresses:  []net.IP{net.ParseIP("127.0.0.1")},
	}

	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	require.NoError(t, err)

	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyBytes, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyBytes})

	cert, err := tls.X509KeyPair(certPEM, keyPEM)
	require.NoError(t, err)

	return &tls.Config{Certificates: []tls.Certificate{cert}}
}

func TestPeerSetAddRemove(t *testing.T) {
	broker := events.NewBroker()
	broker.Start()
	defer broker.Stop()
	sub := broker.Subscribe()

	set := NewPeerSet(broker)

	require.True(t, set.Add("10.0.0.1:7600"))
	require.False(t, set.Add("10.0.0.1:7600"))
	require.Equal(t, []string{"10.0.0.1:7600"}, set.Snapshot())

	select {
	case e := <-sub:
		require.Equal(t, events.EventPeerAdded, e.Type)
		require.Equal(t, "10.0.0.1:7600", e.Metadata["addr"])
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for peer.added event")
	}

	require.True(t, set.Remove("10.0.0.1:7600"))
	require.False(t, set.Remove("10.0.0.1:7600"))
	require.Empty(t, set.Snapshot())

	select {
	case e := <-sub:
		require.Equal(t, events.EventPeerRemoved, e.Type)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for peer.removed event")
	}
}

func TestHostClientExchangePeerRecords(t *testing.T) {
	tlsConfig := selfSignedTLSConfig(t)

	host := NewHost(nil, 50*time.Millisecond)
	ln, err := tls.Listen("tcp", "127.0.0.1:0", tlsConfig)
	require.NoError(t, err)

	addr := ln.Addr().String()
	go func() {
		_ = host.serveListener(ln)
	}()
	defer host.Close()

	client := NewClient("127.0.0.1:9999", true, nil)
	done := make(chan error, 1)
	go func() { done <- client.Connect(addr) }()

	require.Eventually(t, func() bool {
		return len(host.Peers().Snapshot()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.Equal(t, []string{"127.0.0.1:9999"}, host.Peers().Snapshot())
}
