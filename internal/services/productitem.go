package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/tranduykhanh2004/storely/internal/models"
	"github.com/tranduykhanh2004/storely/internal/response"
	"github.com/tranduykhanh2004/storely/internal/validate"
)

var productItemSortFields = map[string]string{
	"price":      "price",
	"quantity":   "quantity",
	"created_at": "created_at",
}

// ProductItemService handles sellable-item CRUD.
type ProductItemService struct {
	db *gorm.DB
}

// NewProductItemService creates a new product-item service.
func NewProductItemService(db *gorm.DB) *ProductItemService {
	return &ProductItemService{db: db}
}

func validateProductItem(in *models.ProductItemInput) map[string][]string {
	v := validate.New()
	v.PositiveID("product_variant_id", in.ProductVariantID, "Phân loại không được để trống")
	v.PositiveID("product_color_id", in.ProductColorID, "Màu không được để trống")
	v.PositiveDecimal("price", in.Price, "Giá phải lớn hơn 0")
	if in.Quantity < 0 {
		v.Add("quantity", "Số lượng không được âm")
	}
	return v.Errors()
}

// GetAll lists sellable items.
func (s *ProductItemService) GetAll(ctx context.Context, filter models.ProductItemFilter, opts models.ListOptions) *response.Envelope {
	q := s.db.WithContext(ctx).Model(&models.ProductItem{})
	if filter.ProductVariantID != 0 {
		q = q.Where("product_variant_id = ?", filter.ProductVariantID)
	}
	if filter.ProductColorID != 0 {
		q = q.Where("product_color_id = ?", filter.ProductColorID)
	}

	var total int64
	if opts.PageSize > 0 {
		if err := q.Count(&total).Error; err != nil {
			logrus.WithError(err).Error("count product items")
			return response.Internal()
		}
	}

	var items []models.ProductItem
	err := applyPage(applySort(q, opts, "created_at desc", productItemSortFields), opts).
		Preload("Variant").
		Preload("Color").
		Find(&items).Error
	if err != nil {
		logrus.WithError(err).Error("list product items")
		return response.Internal()
	}

	return response.List(items, "", opts.Page, opts.PageSize, total)
}

// GetByID returns one sellable item with its variant and color.
func (s *ProductItemService) GetByID(ctx context.Context, id uint) *response.Envelope {
	var item models.ProductItem
	err := s.db.WithContext(ctx).
		Preload("Variant").
		Preload("Variant.Product").
		Preload("Color").
		First(&item, id).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy mặt hàng")
	}
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("get product item")
		return response.Internal()
	}
	return response.Ok(&item, "")
}

// Create validates and persists a sellable item.
func (s *ProductItemService) Create(ctx context.Context, in *models.ProductItemInput) *response.Envelope {
	if errs := validateProductItem(in); errs != nil {
		return response.Validation(errs)
	}

	item := models.ProductItem{
		ProductVariantID: in.ProductVariantID,
		ProductColorID:   in.ProductColorID,
		Price:            in.Price,
		Quantity:         in.Quantity,
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		logrus.WithError(err).Error("create product item")
		return response.Internal()
	}

	return response.Created(&item, "Tạo mặt hàng thành công")
}

// Update modifies a sellable item.
func (s *ProductItemService) Update(ctx context.Context, id uint, in *models.ProductItemInput) *response.Envelope {
	if errs := validateProductItem(in); errs != nil {
		return response.Validation(errs)
	}

	var item models.ProductItem
	err := s.db.WithContext(ctx).First(&item, id).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy mặt hàng")
	}
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("get product item for update")
		return response.Internal()
	}

	item.ProductVariantID = in.ProductVariantID
	item.ProductColorID = in.ProductColorID
	item.Price = in.Price
	item.Quantity = in.Quantity

	if err := s.db.WithContext(ctx).Save(&item).Error; err != nil {
		logrus.WithError(err).WithField("id", id).Error("update product item")
		return response.Internal()
	}

	return response.Ok(&item, "Cập nhật mặt hàng thành công")
}

// Delete removes a sellable item and returns the deleted record.
func (s *ProductItemService) Delete(ctx context.Context, id uint) *response.Envelope {
	var item models.ProductItem
	err := s.db.WithContext(ctx).First(&item, id).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy mặt hàng")
	}
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("get product item for delete")
		return response.Internal()
	}

	if err := s.db.WithContext(ctx).Delete(&item).Error; err != nil {
		logrus.WithError(err).WithField("id", id).Error("delete product item")
		return response.Internal()
	}

	return response.Ok(&item, "Xóa mặt hàng thành công")
}
