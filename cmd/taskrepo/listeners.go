package main

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/koustreak/taskrepo/internal/config"
	"github.com/koustreak/taskrepo/internal/metrics"
)

const readHeaderTimeout = 10 * time.Second

type listener struct {
	name string
	srv  *http.Server
	tls  bool
}

// serve blocks until the listener stops. A graceful shutdown is not an error.
func (l *listener) serve() error {
	var err error
	if l.tls {
		// certificates are already loaded into srv.TLSConfig
		err = l.srv.ListenAndServeTLS("", "")
	} else {
		err = l.srv.ListenAndServe()
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return fmt.Errorf("%s listener: %w", l.name, err)
}

// buildListeners returns the plain listener, plus the TLS and admin
// listeners when they are configured. The admin listener serves metrics
// and the ready handler.
func buildListeners(cfg *config.Config, api http.Handler, m *metrics.Metrics, ready http.Handler) ([]*listener, error) {
	listeners := []*listener{{
		name: "http",
		srv:  &http.Server{Addr: cfg.Address, Handler: api, ReadHeaderTimeout: readHeaderTimeout},
	}}

	if cfg.TLS.Enabled() {
		tlsCfg, err := serverTLS(cfg.TLS)
		if err != nil {
			return nil, err
		}
		listeners = append(listeners, &listener{
			name: "https",
			tls:  true,
			srv: &http.Server{
				Addr:              cfg.TLS.Address,
				Handler:           api,
				TLSConfig:         tlsCfg,
				ReadHeaderTimeout: readHeaderTimeout,
			},
		})
	}

	if cfg.AdminAddress != "" {
		admin := chi.NewRouter()
		admin.Method(http.MethodGet, "/metrics", m.Handler())
		admin.Method(http.MethodGet, "/healthz", ready)
		listeners = append(listeners, &listener{
			name: "admin",
			srv:  &http.Server{Addr: cfg.AdminAddress, Handler: admin, ReadHeaderTimeout: readHeaderTimeout},
		})
	}
	return listeners, nil
}

// serverTLS loads the key pair and, when a client CA is configured,
// requires and verifies client certificates against it.
func serverTLS(c config.TLSConfig) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(c.CertFile, c.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("loading tls key pair: %w", err)
	}
	tlsCfg := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}

	if c.ClientCAFile == "" {
		return tlsCfg, nil
	}
	pem, err := os.ReadFile(c.ClientCAFile)
	if err != nil {
		return nil, fmt.Errorf("reading client ca: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("client ca %q: no certificates found", c.ClientCAFile)
	}
	tlsCfg.ClientCAs = pool
	tlsCfg.ClientAuth = tls.RequireAndVerifyClientCert
	return tlsCfg, nil
}
