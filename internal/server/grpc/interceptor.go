package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// loggingInterceptor logs every unary call with its status code. Failed
// calls other than health probes are logged as warnings.
func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	code := status.Code(err)
	args := []any{"method", info.FullMethod, "code", code.String(), "latency", time.Since(start).String()}
	if err != nil {
		s.logger.Warn(ctx, "grpc call failed", append(args, "error", err)...)
		return resp, err
	}

	s.logger.Debug(ctx, "grpc call", args...)
	return resp, nil
}
