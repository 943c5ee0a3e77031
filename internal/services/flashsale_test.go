package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranduykhanh2004/storely/internal/models"
)

func TestFlashSaleValidation(t *testing.T) {
	gdb, _ := newTestDB(t)
	svc := NewFlashSaleService(gdb)

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	env := svc.Create(context.Background(), &models.FlashSaleInput{
		Name:    "Sale hè",
		StartAt: start,
		EndAt:   start.Add(-time.Hour),
	})

	assert.Equal(t, http.StatusBadRequest, env.Status)
	assert.Contains(t, env.Errors, "end_at")
}

func TestGetActiveFlashSale(t *testing.T) {
	gdb, mock := newTestDB(t)
	svc := NewFlashSaleService(gdb)

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	mock.ExpectQuery("SELECT \\* FROM `flash_sales` WHERE enable = \\? AND start_at <= \\? AND end_at >= \\? ORDER BY created_at desc").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "start_at", "end_at", "enable"}).
			AddRow(3, "Sale hè", now.Add(-time.Hour), now.Add(time.Hour), true))
	mock.ExpectQuery("SELECT \\* FROM `flash_sale_items`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "flash_sale_id", "product_item_id", "sale_price", "quantity"}))

	env := svc.GetActive(context.Background())

	require.True(t, env.Success)
	sale := env.Data.(*models.FlashSale)
	assert.Equal(t, uint(3), sale.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetActiveFlashSaleNone(t *testing.T) {
	gdb, mock := newTestDB(t)
	svc := NewFlashSaleService(gdb)

	mock.ExpectQuery("SELECT \\* FROM `flash_sales`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	env := svc.GetActive(context.Background())

	assert.Equal(t, http.StatusNotFound, env.Status)
	assert.Equal(t, "Không có chương trình khuyến mãi nào đang diễn ra", env.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}
