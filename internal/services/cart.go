package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/metric"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tranduykhanh2004/storely/internal/metrics"
	"github.com/tranduykhanh2004/storely/internal/models"
	"github.com/tranduykhanh2004/storely/internal/response"
	"github.com/tranduykhanh2004/storely/internal/validate"
)

// CartService manages per-profile shopping carts.
type CartService struct {
	db      *gorm.DB
	metrics *metrics.AppMetrics
}

// NewCartService creates a new cart service.
func NewCartService(db *gorm.DB, m *metrics.AppMetrics) *CartService {
	return &CartService{db: db, metrics: m}
}

// CartView is the cart payload returned to the storefront: the lines with
// their resolved product data plus the running total.
type CartView struct {
	Items []models.CartItem `json:"items"`
	Total decimal.Decimal   `json:"total"`
}

func (s *CartService) loadCart(ctx context.Context, profileID string) ([]models.CartItem, error) {
	var items []models.CartItem
	err := s.db.WithContext(ctx).
		Preload("ProductItem").
		Preload("ProductItem.Color").
		Preload("ProductItem.Variant").
		Preload("ProductItem.Variant.Product").
		Where("profile_id = ?", profileID).
		Order("created_at desc").
		Find(&items).Error
	return items, err
}

// GetCartUser returns the caller's cart lines with product details and the
// cart total.
func (s *CartService) GetCartUser(ctx context.Context, profileID string) *response.Envelope {
	items, err := s.loadCart(ctx, profileID)
	if err != nil {
		logrus.WithError(err).WithField("profile_id", profileID).Error("load cart")
		return response.Internal()
	}

	total := decimal.Zero
	for _, it := range items {
		if it.ProductItem != nil {
			total = total.Add(it.ProductItem.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
	}

	return response.Ok(&CartView{Items: items, Total: total}, "")
}

// GetTotalQuantity returns the summed quantity across the caller's cart,
// used for the cart badge.
func (s *CartService) GetTotalQuantity(ctx context.Context, profileID string) *response.Envelope {
	var total int64
	err := s.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("profile_id = ?", profileID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	if err != nil {
		logrus.WithError(err).WithField("profile_id", profileID).Error("cart total quantity")
		return response.Internal()
	}
	return response.Ok(map[string]int64{"total_quantity": total}, "")
}

// AddCartItem adds a product item to the cart. Adding an item that is
// already in the cart increments its quantity instead of creating a second
// line.
func (s *CartService) AddCartItem(ctx context.Context, profileID string, in *models.AddCartItemInput) *response.Envelope {
	v := validate.New()
	v.PositiveID("product_item_id", in.ProductItemID, "Sản phẩm không hợp lệ")
	v.Positive("quantity", in.Quantity, "Số lượng phải lớn hơn 0")
	if errs := v.Errors(); errs != nil {
		return response.Validation(errs)
	}

	var item models.ProductItem
	err := s.db.WithContext(ctx).First(&item, in.ProductItemID).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy sản phẩm")
	}
	if err != nil {
		logrus.WithError(err).WithField("product_item_id", in.ProductItemID).Error("get product item for cart")
		return response.Internal()
	}

	line := models.CartItem{
		ProfileID:     profileID,
		ProductItemID: in.ProductItemID,
		Quantity:      in.Quantity,
	}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "profile_id"}, {Name: "product_item_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("quantity + VALUES(quantity)"),
			}),
		}).
		Create(&line).Error
	if err != nil {
		logrus.WithError(err).WithField("profile_id", profileID).Error("add cart item")
		return response.Internal()
	}

	if s.metrics != nil {
		s.metrics.CartItemsAdded.Add(ctx, int64(in.Quantity), metric.WithAttributes(s.metrics.WithServiceName(nil)...))
	}

	// On the increment path the insert leaves the struct holding the
	// submitted quantity. Re-read so the caller sees the summed line.
	err = s.db.WithContext(ctx).
		First(&line, "profile_id = ? AND product_item_id = ?", profileID, in.ProductItemID).Error
	if err != nil {
		logrus.WithError(err).WithField("profile_id", profileID).Error("reload cart item")
		return response.Internal()
	}

	return response.Created(&line, "Đã thêm sản phẩm vào giỏ hàng")
}

// UpdateQuantity sets the quantity of one of the caller's cart lines.
func (s *CartService) UpdateQuantity(ctx context.Context, profileID string, in *models.UpdateQuantityInput) *response.Envelope {
	v := validate.New()
	v.PositiveID("cart_item_id", in.CartItemID, "Dòng giỏ hàng không hợp lệ")
	v.Positive("quantity", in.Quantity, "Số lượng phải lớn hơn 0")
	if errs := v.Errors(); errs != nil {
		return response.Validation(errs)
	}

	var line models.CartItem
	err := s.db.WithContext(ctx).
		First(&line, "id = ? AND profile_id = ?", in.CartItemID, profileID).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy sản phẩm trong giỏ hàng")
	}
	if err != nil {
		logrus.WithError(err).WithField("cart_item_id", in.CartItemID).Error("get cart item for update")
		return response.Internal()
	}

	line.Quantity = in.Quantity
	if err := s.db.WithContext(ctx).Save(&line).Error; err != nil {
		logrus.WithError(err).WithField("cart_item_id", in.CartItemID).Error("update cart quantity")
		return response.Internal()
	}

	return response.Ok(&line, "Cập nhật giỏ hàng thành công")
}

// DeleteCartItem removes one of the caller's cart lines. Lines belonging to
// other profiles are invisible.
func (s *CartService) DeleteCartItem(ctx context.Context, profileID string, id uint) *response.Envelope {
	var line models.CartItem
	err := s.db.WithContext(ctx).
		First(&line, "id = ? AND profile_id = ?", id, profileID).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy sản phẩm trong giỏ hàng")
	}
	if err != nil {
		logrus.WithError(err).WithField("cart_item_id", id).Error("get cart item for delete")
		return response.Internal()
	}

	if err := s.db.WithContext(ctx).Delete(&line).Error; err != nil {
		logrus.WithError(err).WithField("cart_item_id", id).Error("delete cart item")
		return response.Internal()
	}

	return response.Ok(&line, "Đã xóa sản phẩm khỏi giỏ hàng")
}
