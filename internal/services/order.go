package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/metric"
	"gorm.io/gorm"

	"github.com/tranduykhanh2004/storely/internal/metrics"
	"github.com/tranduykhanh2004/storely/internal/models"
	"github.com/tranduykhanh2004/storely/internal/response"
	"github.com/tranduykhanh2004/storely/internal/validate"
)

var orderSortFields = map[string]string{
	"status":     "status",
	"total":      "total",
	"created_at": "created_at",
}

var orderStatuses = map[string]bool{
	models.OrderStatusPending:   true,
	models.OrderStatusConfirmed: true,
	models.OrderStatusShipping:  true,
	models.OrderStatusCompleted: true,
	models.OrderStatusCancelled: true,
}

// OrderService places orders from carts and serves order history and the
// back-office order views.
type OrderService struct {
	db      *gorm.DB
	cart    *CartService
	metrics *metrics.AppMetrics
}

// NewOrderService creates a new order service.
func NewOrderService(db *gorm.DB, cart *CartService, m *metrics.AppMetrics) *OrderService {
	return &OrderService{db: db, cart: cart, metrics: m}
}

func validatePlaceOrder(in *models.PlaceOrderInput) map[string][]string {
	v := validate.New()
	v.Require("customer_name", in.CustomerName, "Tên người nhận không được để trống")
	v.Require("phone", in.Phone, "Số điện thoại không được để trống")
	v.MaxLen("phone", in.Phone, 20, "Số điện thoại tối đa 20 ký tự")
	v.Require("address", in.Address, "Địa chỉ giao hàng không được để trống")
	if in.Email != "" {
		v.Email("email", in.Email, "Email không hợp lệ")
	}
	v.Require("payment_method", in.PaymentMethod, "Phương thức thanh toán không được để trống")
	return v.Errors()
}

// snapshotLine freezes a cart line into an order item. The display fields
// are copied so later catalog edits cannot rewrite order history.
func snapshotLine(line models.CartItem) models.OrderItem {
	item := models.OrderItem{
		ProductItemID: line.ProductItemID,
		Quantity:      line.Quantity,
	}
	pi := line.ProductItem
	if pi == nil {
		return item
	}
	item.UnitPrice = pi.Price
	if pi.Color != nil {
		item.ColorName = pi.Color.Name
		item.ThumbnailURL = pi.Color.ImageURL
	}
	if pi.Variant != nil {
		item.VariantLabel = pi.Variant.Label
		if item.ThumbnailURL == "" {
			item.ThumbnailURL = pi.Variant.ImageURL
		}
		if pi.Variant.Product != nil {
			item.ProductName = pi.Variant.Product.Name
		}
	}
	return item
}

// PlaceOrder turns the caller's cart into an order. The order, its items and
// the cart clear all run in one transaction.
func (s *OrderService) PlaceOrder(ctx context.Context, profileID string, in *models.PlaceOrderInput) *response.Envelope {
	if errs := validatePlaceOrder(in); errs != nil {
		return response.Validation(errs)
	}

	lines, err := s.cart.loadCart(ctx, profileID)
	if err != nil {
		logrus.WithError(err).WithField("profile_id", profileID).Error("load cart for order")
		return response.Internal()
	}
	if len(lines) == 0 {
		return response.NotFound("Giỏ hàng trống, không thể đặt hàng")
	}

	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		item := snapshotLine(line)
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		items = append(items, item)
	}

	order := models.Order{
		ProfileID:     profileID,
		Status:        models.OrderStatusPending,
		PaymentMethod: in.PaymentMethod,
		CustomerName:  in.CustomerName,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
		Note:          in.Note,
		Total:         total,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		return tx.Where("profile_id = ?", profileID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		logrus.WithError(err).WithField("profile_id", profileID).Error("place order")
		return response.Internal()
	}
	order.Items = items

	if s.metrics != nil {
		attrs := metric.WithAttributes(s.metrics.WithServiceName(nil)...)
		s.metrics.OrdersCreated.Add(ctx, 1, attrs)
		s.metrics.RevenueTotal.Add(ctx, total.InexactFloat64(), attrs)
	}

	return response.Created(&order, "Đặt hàng thành công")
}

// GetOrderHistory lists the caller's orders, newest first, items included.
func (s *OrderService) GetOrderHistory(ctx context.Context, profileID string, opts models.ListOptions) *response.Envelope {
	q := s.db.WithContext(ctx).Model(&models.Order{}).Where("profile_id = ?", profileID)

	var total int64
	if opts.PageSize > 0 {
		if err := q.Count(&total).Error; err != nil {
			logrus.WithError(err).WithField("profile_id", profileID).Error("count order history")
			return response.Internal()
		}
	}

	var orders []models.Order
	err := applyPage(applySort(q, opts, "created_at desc", orderSortFields), opts).
		Preload("Items").
		Find(&orders).Error
	if err != nil {
		logrus.WithError(err).WithField("profile_id", profileID).Error("list order history")
		return response.Internal()
	}

	return response.List(orders, "", opts.Page, opts.PageSize, total)
}

// GetAll lists orders for the back office.
func (s *OrderService) GetAll(ctx context.Context, filter models.OrderFilter, opts models.ListOptions) *response.Envelope {
	q := s.db.WithContext(ctx).Model(&models.Order{})
	if filter.ProfileID != "" {
		q = q.Where("profile_id = ?", filter.ProfileID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Keyword != "" {
		kw := contains(filter.Keyword)
		q = q.Where("customer_name LIKE ? OR phone LIKE ?", kw, kw)
	}

	var total int64
	if opts.PageSize > 0 {
		if err := q.Count(&total).Error; err != nil {
			logrus.WithError(err).Error("count orders")
			return response.Internal()
		}
	}

	var orders []models.Order
	err := applyPage(applySort(q, opts, "created_at desc", orderSortFields), opts).
		Find(&orders).Error
	if err != nil {
		logrus.WithError(err).Error("list orders")
		return response.Internal()
	}

	return response.List(orders, "", opts.Page, opts.PageSize, total)
}

// GetByID returns one order with its items.
func (s *OrderService) GetByID(ctx context.Context, id uint) *response.Envelope {
	var order models.Order
	err := s.db.WithContext(ctx).Preload("Items").First(&order, id).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy đơn hàng")
	}
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("get order")
		return response.Internal()
	}
	return response.Ok(&order, "")
}

// GetUserOrder returns one of the caller's own orders.
func (s *OrderService) GetUserOrder(ctx context.Context, profileID string, id uint) *response.Envelope {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ? AND profile_id = ?", id, profileID).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy đơn hàng")
	}
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("get user order")
		return response.Internal()
	}
	return response.Ok(&order, "")
}

// UpdateStatus moves an order to a new status. Admin only.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status string) *response.Envelope {
	if !orderStatuses[status] {
		return response.BadRequest("Trạng thái đơn hàng không hợp lệ")
	}

	var order models.Order
	err := s.db.WithContext(ctx).First(&order, id).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy đơn hàng")
	}
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("get order for status update")
		return response.Internal()
	}

	order.Status = status
	if status == models.OrderStatusCompleted {
		order.PaymentStatus = "paid"
	}
	if err := s.db.WithContext(ctx).Save(&order).Error; err != nil {
		logrus.WithError(err).WithField("id", id).Error("update order status")
		return response.Internal()
	}

	return response.Ok(&order, "Cập nhật trạng thái đơn hàng thành công")
}
