package worker

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"

	"github.com/watchhub/watchhub/internal/constants"
	"github.com/watchhub/watchhub/internal/logger"
	"github.com/watchhub/watchhub/internal/provider"
	"github.com/watchhub/watchhub/internal/queue"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskCheckoutSweep, c.handleCheckoutSweep)
	mux.HandleFunc(queue.TaskOrderConfirmedEmail, c.handleOrderConfirmedEmail)
}

func (c *Consumer) handleCheckoutSweep(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_checkout_sweep_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.CheckoutSweepPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_checkout_sweep_unmarshal_failed", "error", err)
		return err
	}
	limit := payload.Limit
	if limit <= 0 {
		limit = sweepBatchSize
	}
	swept, err := c.CheckoutService.SweepExpiredSessions(ctx, limit)
	if err != nil {
		logger.Warnw("worker_checkout_sweep_failed", "limit", limit, "swept", swept, "error", err)
		return err
	}
	logger.Infow("worker_checkout_sweep_done", "limit", limit, "swept", swept)
	return nil
}

func (c *Consumer) handleOrderConfirmedEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_confirmed_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderConfirmedEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_confirmed_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_confirmed_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_confirmed_email_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_confirmed_email_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	if order.Status != constants.OrderStatusPaid {
		logger.Debugw("worker_order_confirmed_email_skip_status", "order_no", order.OrderNo, "status", order.Status)
		return nil
	}
	if order.CustomerEmail == "" {
		logger.Debugw("worker_order_confirmed_email_skip_empty_receiver", "order_no", order.OrderNo)
		return nil
	}
	// 暂无 SMTP 通道，记录结构化日志供外部投递系统消费
	logger.Infow("order_confirmed_notification",
		"order_no", order.OrderNo,
		"customer_email", order.CustomerEmail,
		"total", order.Total,
		"currency", order.Currency,
	)
	return nil
}
