package service

import (
	"context"

	"github.com/watchhub/watchhub/internal/constants"
	"github.com/watchhub/watchhub/internal/logger"
	"github.com/watchhub/watchhub/internal/models"
)

// ReconciledLine 对账后的可结算行，价格与库存均以本次查询结果为准
type ReconciledLine struct {
	LineID            string       `json:"line_id"`
	ProductID         uint         `json:"product_id"`
	Name              string       `json:"name"`
	Variant           string       `json:"variant,omitempty"`
	ImageURL          string       `json:"image_url"`
	UnitPrice         models.Money `json:"unit_price"`
	OriginalUnitPrice models.Money `json:"original_unit_price"`
	Quantity          int          `json:"quantity"`
	AvailableStock    int          `json:"available_stock"`
	Clamped           bool         `json:"clamped"` // 数量被压到当前库存
}

// UnavailableLine 本次不可结算的行及原因
type UnavailableLine struct {
	LineID    string `json:"line_id"`
	ProductID uint   `json:"product_id"`
	Variant   string `json:"variant,omitempty"`
	Reason    string `json:"reason"`
}

// ReconcileResult 一次对账的完整产出
type ReconcileResult struct {
	Items       []ReconciledLine  `json:"items"`
	Unavailable []UnavailableLine `json:"unavailable"`
}

// HasBlocking 是否存在阻断结算的不可用行
func (r *ReconcileResult) HasBlocking() bool {
	return len(r.Unavailable) > 0
}

// ReconcileEngine 购物车对账引擎：一次批量查询，逐行核对价格与库存
type ReconcileEngine struct {
	lookup ProductLookup
}

// NewReconcileEngine 创建对账引擎
func NewReconcileEngine(lookup ProductLookup) *ReconcileEngine {
	return &ReconcileEngine{lookup: lookup}
}

// Reconcile 对账：输入购物车行，输出可结算行与不可用行。
// 查询整体失败时全部行标记 lookup_failed，不抛错，由调用方决定是否重试。
// 输出顺序与输入顺序一致，同样输入必得同样输出。
func (e *ReconcileEngine) Reconcile(ctx context.Context, lines []models.CartLine) *ReconcileResult {
	result := &ReconcileResult{
		Items:       []ReconciledLine{},
		Unavailable: []UnavailableLine{},
	}
	if len(lines) == 0 {
		return result
	}

	seen := make(map[uint]struct{}, len(lines))
	ids := make([]uint, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}

	records, err := e.lookup.LookupProducts(ctx, ids)
	if err != nil {
		logger.Errorw("reconcile_lookup_failed_degrade_all", "line_count", len(lines), "error", err)
		for _, line := range lines {
			result.Unavailable = append(result.Unavailable, UnavailableLine{
				LineID:    line.ID,
				ProductID: line.ProductID,
				Variant:   line.Variant,
				Reason:    constants.UnavailableLookupFailed,
			})
		}
		return result
	}

	for _, line := range lines {
		record, ok := records[line.ProductID]
		if !ok {
			result.Unavailable = append(result.Unavailable, UnavailableLine{
				LineID:    line.ID,
				ProductID: line.ProductID,
				Variant:   line.Variant,
				Reason:    constants.UnavailableNotFound,
			})
			continue
		}
		if record.Stock <= 0 {
			result.Unavailable = append(result.Unavailable, UnavailableLine{
				LineID:    line.ID,
				ProductID: line.ProductID,
				Variant:   line.Variant,
				Reason:    constants.UnavailableOutOfStock,
			})
			continue
		}
		quantity := line.Quantity
		clamped := false
		if quantity > record.Stock {
			quantity = record.Stock
			clamped = true
		}
		result.Items = append(result.Items, ReconciledLine{
			LineID:            line.ID,
			ProductID:         line.ProductID,
			Name:              record.Name,
			Variant:           line.Variant,
			ImageURL:          record.ImageURL,
			UnitPrice:         record.Price,
			OriginalUnitPrice: record.OriginalPrice,
			Quantity:          quantity,
			AvailableStock:    record.Stock,
			Clamped:           clamped,
		})
	}
	return result
}
