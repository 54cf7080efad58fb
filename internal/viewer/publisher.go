package viewer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/specialistvlad/sysdc/internal/ctxlog"
	"github.com/specialistvlad/sysdc/internal/graphstore"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Event names used by the publisher.
const (
	EventSystem   = "system"
	EventFlow     = "flow"
	EventReceived = "received"
)

// Publisher pushes a snapshot to a socket.io endpoint.
type Publisher struct {
	URL                string
	Namespace          string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// Publish connects, emits the encoded model as EventSystem and the system
// flow graph as EventFlow, then waits for the peer to send EventReceived.
func (p *Publisher) Publish(ctx context.Context, snap *graphstore.Snapshot) error {
	logger := ctxlog.FromContext(ctx).With("url", p.URL, "namespace", p.Namespace)
	logger.Debug("Publisher started")
	defer logger.Debug("Publisher finished")

	parsedURL, err := url.Parse(p.URL)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return fmt.Errorf("publish URL %q must be absolute", p.URL)
	}

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	namespace := p.Namespace
	if namespace == "" {
		namespace = "/"
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	if parsedURL.Path != "" {
		opts.SetPath(parsedURL.Path)
	}
	if p.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(namespace, opts)
	defer func() {
		logger.Debug("Disconnecting socket client")
		io.Disconnect()
	}()

	var connected atomic.Bool
	done := make(chan error, 1)
	finish := func(err error) {
		select {
		case done <- err:
		default:
		}
	}

	io.On(types.EventName("connect"), func(...any) {
		connected.Store(true)
		logger.Info("Connected to viewer", "sid", io.Id())
		io.Emit(EventSystem, snap.Encoded)
		io.Emit(EventFlow, snap.SystemGraph())
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		if len(errs) > 0 {
			if err, ok := errs[0].(error); ok {
				finish(fmt.Errorf("failed to connect: %w", err))
				return
			}
		}
		finish(errors.New("failed to connect"))
	})
	io.On(types.EventName(EventReceived), func(...any) {
		logger.Info("Viewer acknowledged snapshot")
		finish(nil)
	})

	io.Connect()

	select {
	case <-opCtx.Done():
		if connected.Load() {
			return fmt.Errorf("timed out after connecting while waiting for event '%s'", EventReceived)
		}
		return errors.New("timed out while waiting for initial connection")
	case err := <-done:
		return err
	}
}
