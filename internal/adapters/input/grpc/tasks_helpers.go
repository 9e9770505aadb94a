package grpc

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var streamSeq uint64

func nextStreamID() uint64 {
	return atomic.AddUint64(&streamSeq, 1)
}

func (s *TaskServer) finishWatch(err error, streamID uint64, sent int, startedAt time.Time) error {
	fields := []zap.Field{
		zap.Uint64("stream_id", streamID),
		zap.Int("sent", sent),
		zap.Duration("elapsed", time.Since(startedAt)),
	}

	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded), status.Code(err) == codes.Canceled:
		s.log.Info("grpc: watch dashboard closed", fields...)
		return nil
	case status.Code(err) != codes.Unknown:
		fields = append(fields, zap.Error(err))
		s.log.Warn("grpc: watch dashboard send failed", fields...)
		return err
	default:
		fields = append(fields, zap.Error(err))
		s.log.Error("grpc: watch dashboard send failed", fields...)
		return status.Error(codes.Internal, err.Error())
	}
}

func resetTimer(timer *time.Timer, d time.Duration) {
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	timer.Reset(d)
}
