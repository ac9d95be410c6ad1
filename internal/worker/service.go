package worker

import (
	"context"
	"errors"
	"time"

	"github.com/hibiken/asynq"

	"github.com/watchhub/watchhub/internal/config"
	"github.com/watchhub/watchhub/internal/logger"
	"github.com/watchhub/watchhub/internal/queue"
)

const (
	sweepInterval  = time.Minute
	sweepBatchSize = 100
)

// Service 异步队列服务
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.CheckoutService != nil {
		go s.runCheckoutSweepLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runCheckoutSweepLoop 周期性清理超期未支付会话
func (s *Service) runCheckoutSweepLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.CheckoutService == nil {
		return
	}
	runOnce := func() {
		swept, err := s.consumer.CheckoutService.SweepExpiredSessions(ctx, sweepBatchSize)
		if err != nil {
			logger.Warnw("checkout_sweep_loop_failed", "swept", swept, "error", err)
			return
		}
		if swept > 0 {
			logger.Infow("checkout_sweep_loop_done", "swept", swept)
		}
	}
	runOnce()

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
