package repository

import (
	"errors"
	"time"

	"github.com/watchhub/watchhub/internal/constants"
	"github.com/watchhub/watchhub/internal/models"

	"gorm.io/gorm"
)

// CheckoutSessionRepository 结算会话数据访问接口
type CheckoutSessionRepository interface {
	Create(session *models.CheckoutSession) error
	GetBySessionID(sessionID string) (*models.CheckoutSession, error)
	GetActiveByOwner(ownerID string) (*models.CheckoutSession, error)
	ListExpiredAwaiting(now time.Time, limit int) ([]models.CheckoutSession, error)
	UpdateStatus(id uint, status string) error
	WithTx(tx *gorm.DB) *GormCheckoutSessionRepository
}

// GormCheckoutSessionRepository GORM 实现
type GormCheckoutSessionRepository struct {
	db *gorm.DB
}

// NewCheckoutSessionRepository 创建结算会话仓库
func NewCheckoutSessionRepository(db *gorm.DB) *GormCheckoutSessionRepository {
	return &GormCheckoutSessionRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCheckoutSessionRepository) WithTx(tx *gorm.DB) *GormCheckoutSessionRepository {
	if tx == nil {
		return r
	}
	return &GormCheckoutSessionRepository{db: tx}
}

// Create 创建结算会话
func (r *GormCheckoutSessionRepository) Create(session *models.CheckoutSession) error {
	return r.db.Create(session).Error
}

// GetBySessionID 根据外部支付会话ID获取
func (r *GormCheckoutSessionRepository) GetBySessionID(sessionID string) (*models.CheckoutSession, error) {
	var session models.CheckoutSession
	if err := r.db.Where("session_id = ?", sessionID).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// GetActiveByOwner 获取归属当前在途（等待支付）的会话
func (r *GormCheckoutSessionRepository) GetActiveByOwner(ownerID string) (*models.CheckoutSession, error) {
	var session models.CheckoutSession
	err := r.db.Where("owner_id = ? AND status = ?", ownerID, constants.CheckoutStatusAwaitingPayment).
		Order("id desc").First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// ListExpiredAwaiting 获取已超期且仍在等待支付的会话
func (r *GormCheckoutSessionRepository) ListExpiredAwaiting(now time.Time, limit int) ([]models.CheckoutSession, error) {
	if limit <= 0 {
		limit = 100
	}
	var sessions []models.CheckoutSession
	err := r.db.Where("status = ? AND expires_at <= ?", constants.CheckoutStatusAwaitingPayment, now).
		Order("expires_at asc").Limit(limit).Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// UpdateStatus 更新会话状态
func (r *GormCheckoutSessionRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.CheckoutSession{}).Where("id = ?", id).UpdateColumn("status", status).Error
}
