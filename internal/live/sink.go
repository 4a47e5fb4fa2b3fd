// Package live streams assignment-completion events to an external
// socket.io collector while a run is in flight, so dashboards can react to
// failures before the whole run finishes. The sink is best-effort: delivery
// problems are logged, never allowed to affect the run verdict.
package live

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/specialistvlad/impactgridgo/internal/ctxlog"
	"github.com/specialistvlad/impactgridgo/internal/model"
	"github.com/specialistvlad/impactgridgo/internal/report"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// connectTimeout bounds how long run startup waits for the collector.
const connectTimeout = 10 * time.Second

// Sink is a connected socket.io client emitting run events.
type Sink struct {
	io        *socket.Socket
	runID     string
	connected chan struct{}
	once      sync.Once
}

// NewSink connects to the collector at rawURL under the given namespace and
// blocks until the connection is established or the timeout elapses.
func NewSink(ctx context.Context, rawURL, namespace, runID string) (*Sink, error) {
	logger := ctxlog.FromContext(ctx).With("collector", rawURL, "namespace", namespace)
	logger.Debug("Connecting live event sink.")

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse live collector URL: %w", err)
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(namespace, opts)

	s := &Sink{
		io:        io,
		runID:     runID,
		connected: make(chan struct{}),
	}

	connErrs := make(chan error, 1)
	io.On(types.EventName("connect"), func(...any) {
		logger.Info("🔌 Live event sink connected.", "sid", io.Id())
		s.once.Do(func() { close(s.connected) })
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		if len(errs) > 0 {
			if err, ok := errs[0].(error); ok {
				select {
				case connErrs <- err:
				default:
				}
			}
		}
	})

	io.Connect()

	select {
	case <-s.connected:
		return s, nil
	case err := <-connErrs:
		io.Disconnect()
		return nil, fmt.Errorf("live collector connection failed: %w", err)
	case <-time.After(connectTimeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out connecting to live collector %s", rawURL)
	case <-ctx.Done():
		io.Disconnect()
		return nil, ctx.Err()
	}
}

// EmitAssignment streams one terminal assignment.
func (s *Sink) EmitAssignment(ctx context.Context, a *model.Assignment) {
	ctxlog.FromContext(ctx).Debug("Emitting live assignment event.", "target", a.Target.Name)
	payload := map[string]any{
		"run_id":      s.runID,
		"assignment":  a.ID,
		"target":      a.Target.Name,
		"environment": a.EnvironmentID(),
		"status":      string(a.Status),
		"reason":      string(a.Reason),
		"duration_ms": a.Duration.Milliseconds(),
	}
	s.io.Emit("assignment", payload)
}

// EmitVerdict streams the final run report.
func (s *Sink) EmitVerdict(ctx context.Context, r *report.Report) {
	ctxlog.FromContext(ctx).Debug("Emitting live verdict event.", "overall", r.OverallStatus)
	payload := map[string]any{
		"run_id":         r.RunID,
		"overall_status": r.OverallStatus,
		"failing":        r.Failing,
	}
	s.io.Emit("verdict", payload)
}

// Close disconnects from the collector.
func (s *Sink) Close() {
	s.io.Disconnect()
}
