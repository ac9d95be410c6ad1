package service

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/watchhub/watchhub/internal/config"
	"github.com/watchhub/watchhub/internal/constants"
	"github.com/watchhub/watchhub/internal/models"
	"github.com/watchhub/watchhub/internal/repository"
)

// AdminClaims 管理后台 JWT 载荷
type AdminClaims struct {
	AdminID  uint   `json:"admin_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService 管理后台认证服务
type AuthService struct {
	adminRepo repository.AdminRepository
	cfg       config.JWTConfig
}

// NewAuthService 创建认证服务
func NewAuthService(adminRepo repository.AdminRepository, cfg config.JWTConfig) *AuthService {
	return &AuthService{adminRepo: adminRepo, cfg: cfg}
}

// Login 校验用户名密码，通过后签发 JWT
func (s *AuthService) Login(username, password string) (string, *models.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", nil, ErrAdminCredentials
	}
	admin, err := s.adminRepo.GetByUsername(username)
	if err != nil {
		return "", nil, err
	}
	if admin == nil {
		return "", nil, ErrAdminCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrAdminCredentials
	}

	now := time.Now()
	claims := AdminClaims{
		AdminID:  admin.ID,
		Username: admin.Username,
		Role:     constants.AdminRoleSuper,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.cfg.ExpireHours) * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.SecretKey))
	if err != nil {
		return "", nil, err
	}

	lastLogin := now
	admin.LastLoginAt = &lastLogin
	if err := s.adminRepo.Update(admin); err != nil {
		return "", nil, err
	}
	return token, admin, nil
}

// ParseToken 解析并校验 JWT
func (s *AuthService) ParseToken(tokenString string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrAdminCredentials
		}
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrAdminCredentials
	}
	return claims, nil
}
