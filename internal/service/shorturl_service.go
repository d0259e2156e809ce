package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shorturl-go/constant"
	"shorturl-go/internal/apperrors"
	"shorturl-go/internal/dto"
	"shorturl-go/internal/model"
	"shorturl-go/internal/repository"
	"shorturl-go/pkg/utils"
)

// codeOffset is added to the long record id before encoding so codes
// never start short and guessable for small ids.
const codeOffset = 10_000_000

// CreateShortURL 创建短链。同一 URL 全局只保留一条长链记录和一个短码：
// 任何用户重复提交同一 URL 都会拿到首个创建者名下的既有短码。
// 多步写入放在同一事务内，任一步失败整体回滚。
func CreateShortURL(ctx context.Context, ownerID uint, rawURL string) (*dto.CreateShortURLResponse, error) {
	if err := utils.ValidateLongURL(rawURL); err != nil {
		return nil, apperrors.InvalidRequestError(err.Error())
	}

	var resp *dto.CreateShortURLResponse

	err := repository.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 按 URL 原文全局查找既有长链记录
		var long model.LongURL
		err := tx.Where("url = ?", rawURL).First(&long).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			long = model.LongURL{URL: rawURL, OwnerID: ownerID}
			if createErr := tx.Create(&long).Error; createErr != nil {
				if errors.Is(createErr, gorm.ErrDuplicatedKey) {
					// 并发创建同一 URL：唯一索引裁决，落败方按已存在处理并重读。
					// REPEATABLE READ 下首次 SELECT 已固定快照，普通重读看不到
					// 竞争方已提交的行，必须用锁定读读取当前数据。
					if rereadErr := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
						Where("url = ?", rawURL).First(&long).Error; rereadErr != nil {
						zap.L().Error("重读长链记录失败", zap.String("url", rawURL), zap.Error(rereadErr))
						return apperrors.SystemErrorDefault()
					}
				} else {
					zap.L().Error("创建长链记录失败", zap.String("url", rawURL), zap.Error(createErr))
					return apperrors.SystemErrorDefault()
				}
			}
		} else if err != nil {
			zap.L().Error("查询长链记录失败", zap.String("url", rawURL), zap.Error(err))
			return apperrors.SystemErrorDefault()
		}

		domain := utils.ExtractDomain(long.URL)

		// 幂等：该长链已有短码则直接返回
		var existing model.ShortURL
		err = tx.Where("full_url_id = ?", long.ID).First(&existing).Error
		if err == nil {
			resp = &dto.CreateShortURLResponse{
				ID:       existing.ID,
				URLCode:  existing.ShortCode,
				ShortURL: domain + "/" + existing.ShortCode,
			}
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			zap.L().Error("查询短链记录失败", zap.Uint("full_url_id", long.ID), zap.Error(err))
			return apperrors.SystemErrorDefault()
		}

		code := utils.EncodeBase62(uint64(long.ID) + codeOffset)
		short := model.ShortURL{
			OwnerID:   ownerID,
			LongURLID: &long.ID,
			ShortCode: code,
		}
		if err := tx.Create(&short).Error; err != nil {
			zap.L().Error("创建短链记录失败",
				zap.String("short_code", code),
				zap.Uint("full_url_id", long.ID),
				zap.Error(err))
			return apperrors.BusinessError(http.StatusUnprocessableEntity, "error.shorturl_create_failed")
		}

		resp = &dto.CreateShortURLResponse{
			ID:       short.ID,
			URLCode:  code,
			ShortURL: domain + "/" + code,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// ResolveShortURL 按短码查询原始 URL，优先读缓存
func ResolveShortURL(ctx context.Context, shortCode string) (*dto.ResolveResponse, error) {
	if err := utils.ValidateShortCode(shortCode); err != nil {
		return nil, apperrors.NotFoundError("error.code_not_found")
	}

	cacheKey := constant.GetResolveKey(shortCode)

	conn := repository.RedisPool.Get()
	defer closeRedisConn(conn)

	// 缓存命中直接返回，空串为防穿透的负缓存
	cachedValue, err := redis.Bytes(conn.Do("GET", cacheKey))
	if err == nil {
		if len(cachedValue) == 0 {
			return nil, apperrors.NotFoundError("error.code_not_found")
		}
		var cached dto.ResolveResponse
		unmarshalErr := json.Unmarshal(cachedValue, &cached)
		if unmarshalErr == nil {
			return &cached, nil
		}
		zap.L().Warn("Failed to unmarshal cached value",
			zap.String("cache_key", cacheKey),
			zap.Error(unmarshalErr))
	} else if err != redis.ErrNil {
		zap.L().Warn("Error getting from Redis",
			zap.String("cache_key", cacheKey),
			zap.Error(err))
	}

	// 缓存未命中，显式 join 查平铺行
	var row struct {
		ID        uint
		URL       string
		ShortCode string
	}
	err = repository.DB.WithContext(ctx).
		Table("short_url").
		Select("short_url.id AS id, long_url.url AS url, short_url.short_code AS short_code").
		Joins("JOIN long_url ON long_url.id = short_url.full_url_id").
		Where("short_url.short_code = ?", shortCode).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// 缓存空值，防止缓存穿透
		if _, cacheErr := conn.Do("SET", cacheKey, "", "EX", constant.ResolveNegativeTTL); cacheErr != nil {
			zap.L().Warn("设置缓存失败",
				zap.String("cache_key", cacheKey),
				zap.Error(cacheErr))
		}
		return nil, apperrors.NotFoundError("error.code_not_found")
	} else if err != nil {
		zap.L().Error("查询短链失败", zap.String("short_code", shortCode), zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}

	resolved := &dto.ResolveResponse{
		ID:       row.ID,
		URL:      row.URL,
		ShortURL: row.ShortCode,
	}

	if cachedValue, marshalErr := json.Marshal(resolved); marshalErr == nil {
		if _, cacheErr := conn.Do("SET", cacheKey, cachedValue, "EX", constant.ResolveTTL); cacheErr != nil {
			zap.L().Warn("设置缓存失败",
				zap.String("cache_key", cacheKey),
				zap.Error(cacheErr))
		}
	}

	return resolved, nil
}

// UpdateShortURL 替换短码背后的长链 URL，短码保持不变。
// 归属校验针对长链记录的 owner_id。
func UpdateShortURL(ctx context.Context, shortCode string, ownerID uint, rawURL string) error {
	if err := utils.ValidateLongURL(rawURL); err != nil {
		return apperrors.InvalidRequestError(err.Error())
	}

	err := repository.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var long model.LongURL
		err := tx.
			Joins("JOIN short_url ON short_url.full_url_id = long_url.id").
			Where("short_url.short_code = ? AND long_url.owner_id = ?", shortCode, ownerID).
			First(&long).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 不存在与无权访问返回同一个 404
			return apperrors.NotFoundError("error.code_not_found")
		} else if err != nil {
			zap.L().Error("查询长链记录失败", zap.String("short_code", shortCode), zap.Error(err))
			return apperrors.SystemErrorDefault()
		}

		long.URL = rawURL
		if err := tx.Save(&long).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// 新 URL 已被其他长链记录占用（url 唯一索引）
				return apperrors.ConflictError("error.url_exists")
			}
			zap.L().Error("更新长链记录失败",
				zap.String("short_code", shortCode),
				zap.Uint("long_url_id", long.ID),
				zap.Error(err))
			return apperrors.SystemErrorDefault()
		}
		return nil
	})
	if err != nil {
		return err
	}

	invalidateResolveCache(shortCode)
	return nil
}

// DeleteShortURL 删除短码。归属校验针对短链记录的 owner_id。
func DeleteShortURL(ctx context.Context, shortCode string, ownerID uint) error {
	err := repository.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var short model.ShortURL
		err := tx.
			Joins("JOIN long_url ON long_url.id = short_url.full_url_id").
			Where("short_url.short_code = ? AND short_url.owner_id = ?", shortCode, ownerID).
			First(&short).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFoundError("error.code_not_found")
		} else if err != nil {
			zap.L().Error("查询短链记录失败", zap.String("short_code", shortCode), zap.Error(err))
			return apperrors.SystemErrorDefault()
		}

		if err := tx.Delete(&model.ShortURL{}, short.ID).Error; err != nil {
			zap.L().Error("删除短链记录失败",
				zap.String("short_code", shortCode),
				zap.Uint("id", short.ID),
				zap.Error(err))
			return apperrors.SystemError("error.shorturl_delete_failed")
		}
		return nil
	})
	if err != nil {
		return err
	}

	invalidateResolveCache(shortCode)
	return nil
}

func invalidateResolveCache(shortCode string) {
	conn := repository.RedisPool.Get()
	defer closeRedisConn(conn)

	cacheKey := constant.GetResolveKey(shortCode)
	if _, err := conn.Do("DEL", cacheKey); err != nil {
		zap.L().Warn("Redis 删除缓存失败",
			zap.String("cache_key", cacheKey),
			zap.Error(err))
	}
}

func closeRedisConn(conn redis.Conn) {
	if err := conn.Close(); err != nil {
		zap.L().Error("Failed to close Redis connection",
			zap.Error(err),
			zap.String("connection_type", "redis"),
		)
	}
}
