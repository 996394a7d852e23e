// Package network provides the HTTP clients shared by the API client and scripts.
package network

import (
	"net/http"
	"time"

	"github.com/dashgrab/dashgrab/key"
	"github.com/spf13/viper"
)

// Client is the default HTTP client used for API calls.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: newTransport(),
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 30 * time.Second
	return t
}

// Configured returns the client selected by network.tls_fingerprint.
func Configured() *http.Client {
	if viper.GetBool(key.NetworkTLSFingerprint) {
		return FingerprintClient
	}
	return Client
}
