package service

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/watchhub/watchhub/internal/logger"
	"github.com/watchhub/watchhub/internal/models"
	"github.com/watchhub/watchhub/internal/repository"
)

// CartSubscriber 购物车变更回调，收到的是该归属人当前的完整行列表
type CartSubscriber func(ownerID string, lines []models.CartLine)

// CartService 购物车存储：行的增删改查与变更广播
type CartService struct {
	cartRepo repository.CartRepository

	mu      sync.Mutex
	nextSub int
	subs    []cartSubEntry
}

type cartSubEntry struct {
	id int
	fn CartSubscriber
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository) *CartService {
	return &CartService{cartRepo: cartRepo}
}

// List 按加入顺序返回归属人的全部购物车行。
// 读取失败按空购物车降级，只记日志不向上抛错。
func (s *CartService) List(ownerID string) []models.CartLine {
	if ownerID == "" {
		return []models.CartLine{}
	}
	lines, err := s.cartRepo.ListByOwner(ownerID)
	if err != nil {
		logger.Warnw("cart_list_failed_fallback_empty", "owner_id", ownerID, "error", err)
		return []models.CartLine{}
	}
	return lines
}

// AddLine 加入商品行：同商品同规格合并数量，否则追加到末尾
func (s *CartService) AddLine(ownerID string, productID uint, quantity int, variant string, priceHint models.Money) (*models.CartLine, error) {
	if ownerID == "" {
		return nil, ErrInvalidOwner
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	variant = strings.TrimSpace(variant)

	existing, err := s.cartRepo.FindByOwnerProductVariant(ownerID, productID, variant)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := s.cartRepo.UpdateQuantity(existing.ID, existing.Quantity+quantity); err != nil {
			return nil, err
		}
		existing.Quantity += quantity
		s.notify(ownerID)
		return existing, nil
	}

	position, err := s.cartRepo.NextPosition(ownerID)
	if err != nil {
		return nil, err
	}
	line := &models.CartLine{
		ID:               uuid.NewString(),
		OwnerID:          ownerID,
		ProductID:        productID,
		Quantity:         quantity,
		Variant:          variant,
		DisplayPriceHint: priceHint,
		Position:         position,
	}
	if err := s.cartRepo.Create(line); err != nil {
		return nil, err
	}
	s.notify(ownerID)
	return line, nil
}

// SetQuantity 改数量：数量降到 0 及以下等同删除该行；行不存在则无操作
func (s *CartService) SetQuantity(ownerID, lineID string, quantity int) error {
	line, err := s.cartRepo.GetByID(lineID)
	if err != nil {
		return err
	}
	if line == nil || line.OwnerID != ownerID {
		return nil
	}
	if quantity <= 0 {
		if err := s.cartRepo.Delete(lineID); err != nil {
			return err
		}
		s.notify(ownerID)
		return nil
	}
	if err := s.cartRepo.UpdateQuantity(lineID, quantity); err != nil {
		return err
	}
	s.notify(ownerID)
	return nil
}

// RemoveLine 删除行，行不存在时无操作
func (s *CartService) RemoveLine(ownerID, lineID string) error {
	line, err := s.cartRepo.GetByID(lineID)
	if err != nil {
		return err
	}
	if line == nil || line.OwnerID != ownerID {
		return nil
	}
	if err := s.cartRepo.Delete(lineID); err != nil {
		return err
	}
	s.notify(ownerID)
	return nil
}

// Clear 清空归属人的全部行
func (s *CartService) Clear(ownerID string) error {
	if err := s.cartRepo.ClearByOwner(ownerID); err != nil {
		return err
	}
	s.notify(ownerID)
	return nil
}

// Subscribe 订阅购物车变更，返回退订函数。
// 回调按注册顺序同步触发，单个回调的异常不由本服务兜底。
func (s *CartService) Subscribe(fn CartSubscriber) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, cartSubEntry{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, entry := range s.subs {
			if entry.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *CartService) notify(ownerID string) {
	s.mu.Lock()
	entries := make([]cartSubEntry, len(s.subs))
	copy(entries, s.subs)
	s.mu.Unlock()
	if len(entries) == 0 {
		return
	}
	lines := s.List(ownerID)
	for _, entry := range entries {
		entry.fn(ownerID, lines)
	}
}
