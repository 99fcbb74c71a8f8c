// internal/common/aws/tracing.go
package aws

import (
	"context"
	"os"
	"sync/atomic"

	"github.com/aws/aws-xray-sdk-go/xray"
)

var tracingEnabled atomic.Bool

// EnableTracing configures the X-Ray recorder. daemonAddr may be empty to use the default.
func EnableTracing(daemonAddr, serviceVersion string) error {
	if err := xray.Configure(xray.Config{
		DaemonAddr:     daemonAddr,
		ServiceVersion: serviceVersion,
	}); err != nil {
		if configErr := xray.Configure(xray.Config{}); configErr != nil {
			return configErr
		}
	}
	os.Setenv("AWS_XRAY_CONTEXT_MISSING", "LOG_ERROR")
	tracingEnabled.Store(true)
	return nil
}

// TracingEnabled reports whether EnableTracing succeeded.
func TracingEnabled() bool {
	return tracingEnabled.Load()
}

// BeginSegment starts a root segment for one unit of work outside Lambda.
func BeginSegment(ctx context.Context, name string) (context.Context, func(error)) {
	if !TracingEnabled() {
		return ctx, func(error) {}
	}
	ctx, seg := xray.BeginSegment(ctx, name)
	if seg == nil {
		return ctx, func(error) {}
	}
	return ctx, seg.Close
}

// BeginSubsegment starts a named subsegment and returns its closer. With tracing off it is
// a no-op.
func BeginSubsegment(ctx context.Context, name string) (context.Context, func(error)) {
	if !TracingEnabled() {
		return ctx, func(error) {}
	}
	ctx, seg := xray.BeginSubsegment(ctx, name)
	if seg == nil {
		return ctx, func(error) {}
	}
	return ctx, seg.Close
}
