package grpc

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// LoggingInterceptor logs one line per unary call, mirroring the HTTP request logger.
func LoggingInterceptor() gogrpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *gogrpc.UnaryServerInfo, handler gogrpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		entry := logrus.WithFields(logrus.Fields{
			"method":  info.FullMethod,
			"code":    status.Code(err).String(),
			"latency": time.Since(start).String(),
		})
		if err != nil {
			entry.Warn("grpc request failed")
		} else {
			entry.Info("grpc request")
		}
		return resp, err
	}
}
