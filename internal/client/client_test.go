package client

import (
	"storefront-backoffice/internal/config"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDatabaseClient(t *testing.T) {
	t.Run("rejects unknown driver", func(t *testing.T) {
		_, err := InitDatabaseClient(config.Database{Driver: "oracle", URL: "x"})
		assert.ErrorContains(t, err, "unsupported database driver")
	})

	t.Run("requires url", func(t *testing.T) {
		_, err := InitDatabaseClient(config.Database{Driver: "mysql"})
		assert.ErrorContains(t, err, "database url is required")
	})

	t.Run("opens and migrates sqlite", func(t *testing.T) {
		db, err := InitDatabaseClient(config.Database{
			Driver:       "sqlite",
			URL:          "file:client_test?mode=memory&cache=shared",
			MaxIdleConns: 1,
			MaxOpenConns: 1,
			AutoMigrate:  true,
		})
		require.NoError(t, err)

		for _, table := range []string{"orders", "order_items", "order_item_variants", "product_skus", "order_edit_logs", "coupons"} {
			assert.True(t, db.Migrator().HasTable(table), table)
		}
	})
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger(config.Log{Level: "debug", Format: "text"})
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)

	logger = NewLogger(config.Log{Level: "loud", Format: "json"})
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
}
