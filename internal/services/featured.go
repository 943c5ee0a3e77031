package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/tranduykhanh2004/storely/internal/models"
	"github.com/tranduykhanh2004/storely/internal/response"
	"github.com/tranduykhanh2004/storely/internal/validate"
)

var featuredSortFields = map[string]string{
	"order_number": "order_number",
	"created_at":   "created_at",
}

// FeaturedItemService handles the per-category showcase lists.
type FeaturedItemService struct {
	db *gorm.DB
}

// NewFeaturedItemService creates a new featured-item service.
func NewFeaturedItemService(db *gorm.DB) *FeaturedItemService {
	return &FeaturedItemService{db: db}
}

func validateFeatured(in *models.FeaturedItemInput) map[string][]string {
	v := validate.New()
	v.PositiveID("category_id", in.CategoryID, "Danh mục không được để trống")
	v.PositiveID("product_variant_id", in.ProductVariantID, "Phân loại sản phẩm không được để trống")
	return v.Errors()
}

// GetAll lists featured items in display order.
func (s *FeaturedItemService) GetAll(ctx context.Context, filter models.FeaturedItemFilter, opts models.ListOptions) *response.Envelope {
	q := s.db.WithContext(ctx).Model(&models.FeaturedItem{})
	if filter.CategoryID != 0 {
		q = q.Where("category_id = ?", filter.CategoryID)
	}

	var total int64
	if opts.PageSize > 0 {
		if err := q.Count(&total).Error; err != nil {
			logrus.WithError(err).Error("count featured items")
			return response.Internal()
		}
	}

	var items []models.FeaturedItem
	err := applyPage(applySort(q, opts, "order_number asc", featuredSortFields), opts).
		Preload("Category").
		Preload("Variant").
		Preload("Variant.Product").
		Find(&items).Error
	if err != nil {
		logrus.WithError(err).Error("list featured items")
		return response.Internal()
	}

	return response.List(items, "", opts.Page, opts.PageSize, total)
}

// GetByID returns one featured item.
func (s *FeaturedItemService) GetByID(ctx context.Context, id uint) *response.Envelope {
	var item models.FeaturedItem
	err := s.db.WithContext(ctx).
		Preload("Category").
		Preload("Variant").
		First(&item, id).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy mục nổi bật")
	}
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("get featured item")
		return response.Internal()
	}
	return response.Ok(&item, "")
}

// Create validates and persists a featured item.
func (s *FeaturedItemService) Create(ctx context.Context, in *models.FeaturedItemInput) *response.Envelope {
	if errs := validateFeatured(in); errs != nil {
		return response.Validation(errs)
	}

	item := models.FeaturedItem{
		CategoryID:       in.CategoryID,
		ProductVariantID: in.ProductVariantID,
		OrderNumber:      in.OrderNumber,
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		logrus.WithError(err).Error("create featured item")
		return response.Internal()
	}

	return response.Created(&item, "Tạo mục nổi bật thành công")
}

// Update modifies a featured item.
func (s *FeaturedItemService) Update(ctx context.Context, id uint, in *models.FeaturedItemInput) *response.Envelope {
	if errs := validateFeatured(in); errs != nil {
		return response.Validation(errs)
	}

	var item models.FeaturedItem
	err := s.db.WithContext(ctx).First(&item, id).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy mục nổi bật")
	}
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("get featured item for update")
		return response.Internal()
	}

	item.CategoryID = in.CategoryID
	item.ProductVariantID = in.ProductVariantID
	item.OrderNumber = in.OrderNumber

	if err := s.db.WithContext(ctx).Save(&item).Error; err != nil {
		logrus.WithError(err).WithField("id", id).Error("update featured item")
		return response.Internal()
	}

	return response.Ok(&item, "Cập nhật mục nổi bật thành công")
}

// Delete removes a featured item and returns the deleted record.
func (s *FeaturedItemService) Delete(ctx context.Context, id uint) *response.Envelope {
	var item models.FeaturedItem
	err := s.db.WithContext(ctx).First(&item, id).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy mục nổi bật")
	}
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("get featured item for delete")
		return response.Internal()
	}

	if err := s.db.WithContext(ctx).Delete(&item).Error; err != nil {
		logrus.WithError(err).WithField("id", id).Error("delete featured item")
		return response.Internal()
	}

	return response.Ok(&item, "Xóa mục nổi bật thành công")
}
