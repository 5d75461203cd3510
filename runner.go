package actionserver

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/aretw0/actionserver/internal/logging"
)

// Runner serves an http.Handler until its context is cancelled, then shuts
// down gracefully.
type Runner struct {
	Handler         http.Handler
	CertFile        string
	KeyFile         string
	KeyPassword     string
	ShutdownTimeout time.Duration
	Logger          *slog.Logger
}

// NewRunner creates a Runner for handler with a 5 second shutdown window.
func NewRunner(handler http.Handler) *Runner {
	return &Runner{
		Handler:         handler,
		ShutdownTimeout: 5 * time.Second,
		Logger:          logging.NewNop(),
	}
}

// ListenAndServe binds addr and calls Serve.
func (r *Runner) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return r.Serve(ctx, ln)
}

// Serve accepts connections on ln. TLS is enabled when CertFile is set.
// It returns nil after a clean shutdown.
func (r *Runner) Serve(ctx context.Context, ln net.Listener) error {
	if r.Logger == nil {
		r.Logger = logging.NewNop()
	}

	scheme := "http"
	if r.CertFile != "" {
		cfg, err := r.tlsConfig()
		if err != nil {
			ln.Close()
			return err
		}
		ln = tls.NewListener(ln, cfg)
		scheme = "https"
	}

	srv := &http.Server{
		Handler:           r.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.Logger.Info("Action server listening", "address", fmt.Sprintf("%s://%s", scheme, ln.Addr()))
		serverErrors <- srv.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		r.Logger.Info("Shutting down action server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), r.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			r.Logger.Warn("Graceful shutdown did not complete", "timeout", r.ShutdownTimeout, "err", err)
			if cerr := srv.Close(); cerr != nil {
				return fmt.Errorf("close server: %w", cerr)
			}
			return fmt.Errorf("shutdown: %w", err)
		}
		r.Logger.Info("Action server stopped gracefully")
		return nil
	}
}

func (r *Runner) tlsConfig() (*tls.Config, error) {
	certPEM, err := os.ReadFile(r.CertFile)
	if err != nil {
		return nil, fmt.Errorf("read certificate: %w", err)
	}
	keyFile := r.KeyFile
	if keyFile == "" {
		// the key may be bundled with the certificate
		keyFile = r.CertFile
	}
	keyPEM, err := os.ReadFile(keyFile)
	if err != nil {
		return nil, fmt.Errorf("read key: %w", err)
	}
	if r.KeyPassword != "" {
		keyPEM, err = decryptKey(keyPEM, r.KeyPassword)
		if err != nil {
			return nil, err
		}
	}

	cert, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		return nil, fmt.Errorf("load key pair: %w", err)
	}
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}, nil
}

// decryptKey decrypts a legacy password-protected PEM private key.
func decryptKey(keyPEM []byte, password string) ([]byte, error) {
	for rest := keyPEM; len(rest) > 0; {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		//nolint:staticcheck // SA1019
		if !x509.IsEncryptedPEMBlock(block) {
			continue
		}
		//nolint:staticcheck // SA1019
		der, err := x509.DecryptPEMBlock(block, []byte(password))
		if err != nil {
			return nil, fmt.Errorf("decrypt key: %w", err)
		}
		return pem.EncodeToMemory(&pem.Block{Type: block.Type, Bytes: der}), nil
	}
	return keyPEM, nil
}
