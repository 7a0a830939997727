package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/greencart-logistics/internal/authz"
	"github.com/greencart-logistics/internal/cache"
	"github.com/greencart-logistics/internal/config"
	"github.com/greencart-logistics/internal/logger"
	"github.com/greencart-logistics/internal/models"
	"github.com/greencart-logistics/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenLifetime = 24 * time.Hour

// AuthService 经理账号认证服务
// 负责登录、令牌签发与密码维护；令牌吊销通过 token_version 递增实现
type AuthService struct {
	cfg       *config.Config
	adminRepo repository.AdminRepository
	authz     *authz.Service
}

// NewAuthService 创建认证服务
func NewAuthService(cfg *config.Config, adminRepo repository.AdminRepository, authzService *authz.Service) *AuthService {
	return &AuthService{
		cfg:       cfg,
		adminRepo: adminRepo,
		authz:     authzService,
	}
}

// ManagerSession 登录成功后返回的会话信息
type ManagerSession struct {
	Admin     *models.Admin
	Token     string
	ExpiresAt time.Time
	Roles     []string
}

// JWTClaims 访问令牌声明
// token_version 与账号当前版本不一致的令牌视为已吊销
type JWTClaims struct {
	AdminID      uint   `json:"admin_id"`
	Username     string `json:"username"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// Login 经理登录，校验凭据后签发访问令牌并解析调度角色
func (s *AuthService) Login(username, password string) (*ManagerSession, error) {
	name := strings.TrimSpace(username)
	if name == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	admin, err := s.adminRepo.GetByUsername(name)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		logger.Warnw("manager_login_denied", "username", name, "reason", "unknown_account")
		return nil, ErrInvalidCredentials
	}
	if !passwordMatches(admin.PasswordHash, password) {
		logger.Warnw("manager_login_denied", "username", name, "reason", "password_mismatch")
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.issueToken(admin)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	admin.LastLoginAt = &now
	if err := s.adminRepo.Update(admin); err != nil {
		return nil, err
	}
	s.refreshAuthSnapshot(admin)

	roles := s.resolveRoles(admin)
	logger.Infow("manager_login_succeeded",
		"admin_id", admin.ID,
		"username", admin.Username,
		"is_super", admin.IsSuper,
		"roles", roles,
	)

	return &ManagerSession{
		Admin:     admin,
		Token:     token,
		ExpiresAt: expiresAt,
		Roles:     roles,
	}, nil
}

// ChangePassword 修改经理密码并吊销此前签发的全部令牌
func (s *AuthService) ChangePassword(adminID uint, oldPassword, newPassword string) error {
	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		return err
	}
	if admin == nil {
		return ErrNotFound
	}

	if !passwordMatches(admin.PasswordHash, oldPassword) {
		return ErrInvalidPassword
	}
	if err := s.ValidatePassword(newPassword); err != nil {
		return err
	}

	hashed, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}
	admin.PasswordHash = hashed
	s.revokeIssuedTokens(admin)

	if err := s.adminRepo.Update(admin); err != nil {
		return err
	}
	s.refreshAuthSnapshot(admin)

	logger.Infow("manager_password_changed", "admin_id", admin.ID, "token_version", admin.TokenVersion)
	return nil
}

// ParseJWT 解析并校验访问令牌
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &JWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.signingKey(), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.AdminID == 0 {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// HashPassword 使用 bcrypt 生成密码哈希
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ValidatePassword 按安全策略校验密码强度
func (s *AuthService) ValidatePassword(password string) error {
	if s == nil || s.cfg == nil {
		return nil
	}
	return validatePassword(s.cfg.Security.PasswordPolicy, password)
}

// issueToken 为经理签发 HS256 访问令牌
func (s *AuthService) issueToken(admin *models.Admin) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.tokenLifetime())

	claims := JWTClaims{
		AdminID:      admin.ID,
		Username:     admin.Username,
		TokenVersion: admin.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey())
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// revokeIssuedTokens 递增令牌版本并记录吊销时间点
// 仅修改内存中的账号对象，持久化由调用方完成
func (s *AuthService) revokeIssuedTokens(admin *models.Admin) {
	now := time.Now()
	admin.TokenVersion++
	admin.TokenInvalidBefore = &now
}

// refreshAuthSnapshot 刷新认证状态缓存，缓存不可用时静默跳过
func (s *AuthService) refreshAuthSnapshot(admin *models.Admin) {
	if err := cache.SetAdminAuthState(context.Background(), cache.BuildAdminAuthState(admin)); err != nil {
		logger.Warnw("manager_auth_snapshot_refresh_failed", "admin_id", admin.ID, "error", err)
	}
}

// resolveRoles 查询经理的调度角色，超级管理员不走角色矩阵
func (s *AuthService) resolveRoles(admin *models.Admin) []string {
	if admin.IsSuper || s.authz == nil {
		return []string{}
	}
	roles, err := s.authz.GetAdminRoles(admin.ID)
	if err != nil {
		logger.Warnw("manager_roles_resolve_failed", "admin_id", admin.ID, "error", err)
		return []string{}
	}
	return roles
}

func (s *AuthService) signingKey() []byte {
	return []byte(s.cfg.JWT.SecretKey)
}

func (s *AuthService) tokenLifetime() time.Duration {
	if s.cfg == nil || s.cfg.JWT.ExpireHours <= 0 {
		return defaultTokenLifetime
	}
	return time.Duration(s.cfg.JWT.ExpireHours) * time.Hour
}

func passwordMatches(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
