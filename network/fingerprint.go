package network

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/dashgrab/dashgrab/log"
	utls "github.com/refraction-networking/utls"
	"golang.org/x/net/http2"
)

const dialTimeout = 30 * time.Second

// FingerprintClient presents a Chrome ClientHello. Some CDN edges reject the default Go handshake.
var FingerprintClient = &http.Client{
	Timeout:   time.Minute,
	Transport: NewFingerprintTransport(),
}

// FingerprintTransport tries HTTP/2 over a Chrome-fingerprinted TLS connection
// and retries once over HTTP/1.1 when that fails.
type FingerprintTransport struct {
	h2 *http2.Transport
	h1 *http.Transport
}

// NewFingerprintTransport builds a transport with its own connection pools.
func NewFingerprintTransport() *FingerprintTransport {
	return &FingerprintTransport{
		h2: &http2.Transport{
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				return dialChrome(ctx, network, addr, nil)
			},
		},
		h1: &http.Transport{
			DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return dialChrome(ctx, network, addr, []string{"http/1.1"})
			},
		},
	}
}

// RoundTrip implements http.RoundTripper. Plain http requests go through the HTTP/1.1 transport.
func (t *FingerprintTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Scheme != "https" {
		return t.h1.RoundTrip(req)
	}

	resp, err := t.h2.RoundTrip(req)
	if err == nil {
		return resp, nil
	}

	if req.Body != nil && req.GetBody == nil {
		return nil, err
	}

	log.WithField("host", req.URL.Host).Debugf("h2 failed, falling back to http/1.1: %s", err)

	retry := req.Clone(req.Context())
	if req.GetBody != nil {
		if retry.Body, err = req.GetBody(); err != nil {
			return nil, err
		}
	}
	return t.h1.RoundTrip(retry)
}

func dialChrome(ctx context.Context, network, addr string, protos []string) (net.Conn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	dialer := &net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	tlsConn := utls.UClient(conn, &utls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS12,
		NextProtos: protos,
	}, utls.HelloChrome_120)

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("tls handshake: %w", err)
	}

	return tlsConn, nil
}
