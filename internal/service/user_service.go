package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shorturl-go/internal/apperrors"
	"shorturl-go/internal/dto"
	"shorturl-go/internal/model"
	"shorturl-go/internal/repository"
	"shorturl-go/internal/token"
	"shorturl-go/pkg/utils"
)

// dummyHash is a real bcrypt hash (cost 10). Login verifies against it
// when the email is unknown so that both branches pay the same bcrypt
// cost and the response cannot be timed to enumerate users.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// RegisterUser 用户注册
func RegisterUser(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	// 密码复杂度校验
	if err := req.Validate(); err != nil {
		return nil, apperrors.InvalidRequestError(err.Error())
	}

	// 检查邮箱是否已注册
	var existing model.User
	err := repository.DB.WithContext(ctx).Select("id").Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return nil, apperrors.ConflictError("error.email_exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		zap.L().Error("查询用户失败", zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		zap.L().Error("密码哈希失败", zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}

	user := model.User{
		Email:    req.Email,
		Password: hashed,
		Name:     req.Name,
	}

	// 任何持久化冲突（如用户名重复）与邮箱冲突一样按 409 返回
	if err := repository.DB.WithContext(ctx).Create(&user).Error; err != nil {
		zap.L().Warn("创建用户失败",
			zap.String("email", req.Email),
			zap.Error(err))
		return nil, apperrors.ConflictError("error.user_create_conflict")
	}

	return &dto.RegisterResponse{ID: user.ID, Name: user.Name}, nil
}

// LoginUser 用户登录，成功后签发访问令牌
func LoginUser(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	var user model.User
	err := repository.DB.WithContext(ctx).Where("email = ?", req.Email).First(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		zap.L().Error("查询用户失败", zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}

	hashed := dummyHash
	if err == nil {
		hashed = user.Password
	}

	// 先比较再判定，未注册邮箱与密码错误不可区分
	ok := utils.VerifyPassword(req.Password, hashed)
	if err != nil || !ok {
		return nil, apperrors.UnauthorizedError("error.invalid_credentials")
	}

	accessToken, err := token.Issue(user.ID, user.Email)
	if err != nil {
		zap.L().Error("签发令牌失败", zap.Uint("user_id", user.ID), zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}

	return &dto.TokenResponse{AccessToken: accessToken, TokenType: "bearer"}, nil
}

// GetUserByID 按 id 加载用户（认证中间件使用）
func GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := repository.DB.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.UnauthorizedErrorDefault()
	} else if err != nil {
		zap.L().Error("查询用户失败", zap.Uint("id", id), zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}
	return &user, nil
}
