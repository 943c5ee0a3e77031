package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranduykhanh2004/storely/internal/models"
)

func TestAddCartItemValidation(t *testing.T) {
	gdb, _ := newTestDB(t)
	svc := NewCartService(gdb, nil)

	env := svc.AddCartItem(context.Background(), "uid-1", &models.AddCartItemInput{})

	assert.Equal(t, http.StatusBadRequest, env.Status)
	assert.Contains(t, env.Errors, "product_item_id")
	assert.Contains(t, env.Errors, "quantity")
}

func TestAddCartItemUnknownProduct(t *testing.T) {
	gdb, mock := newTestDB(t)
	svc := NewCartService(gdb, nil)

	mock.ExpectQuery("SELECT \\* FROM `product_items`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	env := svc.AddCartItem(context.Background(), "uid-1", &models.AddCartItemInput{
		ProductItemID: 99, Quantity: 1,
	})

	assert.Equal(t, http.StatusNotFound, env.Status)
	assert.Equal(t, "Không tìm thấy sản phẩm", env.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddCartItemUpsertsOnDuplicate(t *testing.T) {
	gdb, mock := newTestDB(t)
	svc := NewCartService(gdb, nil)

	mock.ExpectQuery("SELECT \\* FROM `product_items`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_variant_id", "product_color_id", "price", "quantity"}).
			AddRow(5, 7, 9, "150000.00", 10))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `cart_items` .* ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	// The line is re-read so the summed quantity is returned, not the
	// submitted one.
	mock.ExpectQuery("SELECT \\* FROM `cart_items`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "profile_id", "product_item_id", "quantity"}).
			AddRow(1, "uid-1", 5, 5))

	env := svc.AddCartItem(context.Background(), "uid-1", &models.AddCartItemInput{
		ProductItemID: 5, Quantity: 2,
	})

	require.True(t, env.Success)
	assert.Equal(t, http.StatusCreated, env.Status)
	assert.Equal(t, "Đã thêm sản phẩm vào giỏ hàng", env.Message)

	line := env.Data.(*models.CartItem)
	assert.Equal(t, 5, line.Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateQuantityNotOwned(t *testing.T) {
	gdb, mock := newTestDB(t)
	svc := NewCartService(gdb, nil)

	// The owner filter makes other profiles' lines invisible.
	mock.ExpectQuery("SELECT \\* FROM `cart_items`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	env := svc.UpdateQuantity(context.Background(), "uid-2", &models.UpdateQuantityInput{
		CartItemID: 1, Quantity: 3,
	})

	assert.Equal(t, http.StatusNotFound, env.Status)
	assert.Equal(t, "Không tìm thấy sản phẩm trong giỏ hàng", env.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCartUserComputesTotal(t *testing.T) {
	gdb, mock := newTestDB(t)
	svc := NewCartService(gdb, nil)

	mock.ExpectQuery("SELECT \\* FROM `cart_items`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "profile_id", "product_item_id", "quantity"}).
			AddRow(1, "uid-1", 5, 2))
	mock.ExpectQuery("SELECT \\* FROM `product_items`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_variant_id", "product_color_id", "price", "quantity"}).
			AddRow(5, 7, 9, "150000.00", 10))
	mock.ExpectQuery("SELECT \\* FROM `product_colors`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "name"}).
			AddRow(9, 3, "Đen"))
	mock.ExpectQuery("SELECT \\* FROM `product_variants`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "label"}).
			AddRow(7, 3, "128GB"))
	mock.ExpectQuery("SELECT \\* FROM `products`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "subcategory_id", "name", "slug"}).
			AddRow(3, 1, "Điện thoại X", "dien-thoai-x"))

	env := svc.GetCartUser(context.Background(), "uid-1")

	require.True(t, env.Success)
	view := env.Data.(*CartView)
	require.Len(t, view.Items, 1)
	assert.True(t, view.Total.Equal(decimal.NewFromInt(300000)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTotalQuantity(t *testing.T) {
	gdb, mock := newTestDB(t)
	svc := NewCartService(gdb, nil)

	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(quantity\\), 0\\) FROM `cart_items`").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(7))

	env := svc.GetTotalQuantity(context.Background(), "uid-1")

	require.True(t, env.Success)
	assert.Equal(t, map[string]int64{"total_quantity": 7}, env.Data)
	assert.NoError(t, mock.ExpectationsWereMet())
}
