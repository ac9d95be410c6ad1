package queue

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"github.com/watchhub/watchhub/internal/constants"
)

const (
	// TaskCheckoutSweep 在途支付会话超期清理任务
	TaskCheckoutSweep = constants.TaskCheckoutSweep
	// TaskOrderConfirmedEmail 订单支付成功通知任务
	TaskOrderConfirmedEmail = constants.TaskOrderConfirmedEmail
)

// CheckoutSweepPayload 会话清理任务载荷
type CheckoutSweepPayload struct {
	Limit int `json:"limit"`
}

// OrderConfirmedEmailPayload 支付成功通知任务载荷
type OrderConfirmedEmailPayload struct {
	OrderID uint `json:"order_id"`
}

// NewCheckoutSweepTask 创建会话清理任务
func NewCheckoutSweepTask(payload CheckoutSweepPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCheckoutSweep, body), nil
}

// NewOrderConfirmedEmailTask 创建支付成功通知任务
func NewOrderConfirmedEmailTask(payload OrderConfirmedEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderConfirmedEmail, body), nil
}
