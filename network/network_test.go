package network

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dashgrab/dashgrab/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestConfigured(t *testing.T) {
	Convey("Configured follows network.tls_fingerprint", t, func() {
		viper.Set(key.NetworkTLSFingerprint, false)
		So(Configured(), ShouldEqual, Client)

		viper.Set(key.NetworkTLSFingerprint, true)
		So(Configured(), ShouldEqual, FingerprintClient)

		viper.Set(key.NetworkTLSFingerprint, false)
	})
}

func TestFingerprintTransport(t *testing.T) {
	Convey("Plain http requests go through the http/1.1 transport", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, r.Proto)
		}))
		defer server.Close()

		client := &http.Client{Transport: NewFingerprintTransport()}
		resp, err := client.Get(server.URL)
		So(err, ShouldBeNil)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		So(err, ShouldBeNil)
		So(string(body), ShouldEqual, "HTTP/1.1")
	})
}
