package services

import (
	"fmt"
	"testing"
	"time"

	"hotel-reservation-backend/config"
	"hotel-reservation-backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory sqlite database. A single connection
// keeps concurrent test writers serialized at the pool instead of tripping
// sqlite's file locking.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	return db
}

func createRoom(t *testing.T, db *gorm.DB, rate int64, quantity int) models.Room {
	t.Helper()
	room := models.Room{
		Name:        "Deluxe",
		RoomNumber:  fmt.Sprintf("DLX-%d", time.Now().UnixNano()),
		Type:        "Deluxe",
		NightlyRate: rate,
		Quantity:    quantity,
	}
	require.NoError(t, db.Create(&room).Error)
	return room
}

func createCustomer(t *testing.T, db *gorm.DB) models.Customer {
	t.Helper()
	cust := models.Customer{FullName: "Jane Guest", Email: "jane@example.com"}
	require.NoError(t, db.Create(&cust).Error)
	return cust
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
