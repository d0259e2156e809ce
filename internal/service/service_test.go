package service

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gomodule/redigo/redis"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"shorturl-go/internal/repository"
)

// initTestEnv wires the package globals to a sqlmock-backed gorm
// connection and a redis pool whose Dial always fails, so cache reads
// and writes degrade to the database path.
func initTestEnv(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	zap.ReplaceGlobals(zap.NewNop())
	viper.Set("auth.secret", "test-secret")
	viper.Set("auth.token_ttl_minutes", 5)

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	repository.DB = db
	repository.RedisPool = &redis.Pool{
		Dial: func() (redis.Conn, error) {
			return nil, errors.New("redis unavailable in tests")
		},
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return mock
}
