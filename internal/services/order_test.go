package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranduykhanh2004/storely/internal/models"
)

func placeOrderInput() *models.PlaceOrderInput {
	return &models.PlaceOrderInput{
		CustomerName:  "Nguyễn Văn A",
		Phone:         "0901234567",
		Address:       "1 Lê Lợi, Q1, TP.HCM",
		PaymentMethod: "cod",
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	gdb, _ := newTestDB(t)
	svc := NewOrderService(gdb, NewCartService(gdb, nil), nil)

	env := svc.PlaceOrder(context.Background(), "uid-1", &models.PlaceOrderInput{})

	assert.Equal(t, http.StatusBadRequest, env.Status)
	assert.Contains(t, env.Errors, "customer_name")
	assert.Contains(t, env.Errors, "phone")
	assert.Contains(t, env.Errors, "address")
	assert.Contains(t, env.Errors, "payment_method")
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	gdb, mock := newTestDB(t)
	svc := NewOrderService(gdb, NewCartService(gdb, nil), nil)

	mock.ExpectQuery("SELECT \\* FROM `cart_items`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	env := svc.PlaceOrder(context.Background(), "uid-1", placeOrderInput())

	assert.Equal(t, http.StatusNotFound, env.Status)
	assert.Equal(t, "Giỏ hàng trống, không thể đặt hàng", env.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func expectCartLoad(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("SELECT \\* FROM `cart_items`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "profile_id", "product_item_id", "quantity"}).
			AddRow(1, "uid-1", 5, 2))
	mock.ExpectQuery("SELECT \\* FROM `product_items`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_variant_id", "product_color_id", "price", "quantity"}).
			AddRow(5, 7, 9, "150000.00", 10))
	mock.ExpectQuery("SELECT \\* FROM `product_colors`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "name", "image_url"}).
			AddRow(9, 3, "Đen", "https://cdn.example/den.png"))
	mock.ExpectQuery("SELECT \\* FROM `product_variants`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "label", "image_url"}).
			AddRow(7, 3, "128GB", ""))
	mock.ExpectQuery("SELECT \\* FROM `products`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "subcategory_id", "name", "slug"}).
			AddRow(3, 1, "Điện thoại X", "dien-thoai-x"))
}

func TestPlaceOrderSnapshotsAndClearsCart(t *testing.T) {
	gdb, mock := newTestDB(t)
	svc := NewOrderService(gdb, NewCartService(gdb, nil), nil)

	expectCartLoad(mock)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `orders`").
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectExec("INSERT INTO `order_items`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("DELETE FROM `cart_items`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	env := svc.PlaceOrder(context.Background(), "uid-1", placeOrderInput())

	require.True(t, env.Success)
	assert.Equal(t, http.StatusCreated, env.Status)
	assert.Equal(t, "Đặt hàng thành công", env.Message)

	order := env.Data.(*models.Order)
	assert.Equal(t, uint(10), order.ID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(300000)))

	require.Len(t, order.Items, 1)
	item := order.Items[0]
	assert.Equal(t, uint(5), item.ProductItemID)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, "Điện thoại X", item.ProductName)
	assert.Equal(t, "Đen", item.ColorName)
	assert.Equal(t, "128GB", item.VariantLabel)
	assert.Equal(t, "https://cdn.example/den.png", item.ThumbnailURL)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrderRollsBackWhenCartClearFails(t *testing.T) {
	gdb, mock := newTestDB(t)
	svc := NewOrderService(gdb, NewCartService(gdb, nil), nil)

	expectCartLoad(mock)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `orders`").
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectExec("INSERT INTO `order_items`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("DELETE FROM `cart_items`").
		WillReturnError(errors.New("deadlock"))
	mock.ExpectRollback()

	env := svc.PlaceOrder(context.Background(), "uid-1", placeOrderInput())

	assert.False(t, env.Success)
	assert.Equal(t, http.StatusInternalServerError, env.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrderStatusInvalid(t *testing.T) {
	gdb, _ := newTestDB(t)
	svc := NewOrderService(gdb, NewCartService(gdb, nil), nil)

	env := svc.UpdateStatus(context.Background(), 1, "lost")

	assert.Equal(t, http.StatusBadRequest, env.Status)
	assert.Equal(t, "Trạng thái đơn hàng không hợp lệ", env.Message)
}

func TestGetUserOrderNotOwned(t *testing.T) {
	gdb, mock := newTestDB(t)
	svc := NewOrderService(gdb, NewCartService(gdb, nil), nil)

	mock.ExpectQuery("SELECT \\* FROM `orders`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	env := svc.GetUserOrder(context.Background(), "uid-2", 10)

	assert.Equal(t, http.StatusNotFound, env.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
