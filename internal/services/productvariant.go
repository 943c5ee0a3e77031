package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/tranduykhanh2004/storely/internal/models"
	"github.com/tranduykhanh2004/storely/internal/response"
	"github.com/tranduykhanh2004/storely/internal/validate"
)

var variantSortFields = map[string]string{
	"label":      "label",
	"created_at": "created_at",
}

// ProductVariantService handles variant CRUD.
type ProductVariantService struct {
	db      *gorm.DB
	storage *StorageService
}

// NewProductVariantService creates a new variant service.
func NewProductVariantService(db *gorm.DB, storage *StorageService) *ProductVariantService {
	return &ProductVariantService{db: db, storage: storage}
}

func validateVariant(in *models.ProductVariantInput) map[string][]string {
	v := validate.New()
	v.PositiveID("product_id", in.ProductID, "Sản phẩm không được để trống")
	v.Require("label", in.Label, "Tên phân loại không được để trống")
	v.MaxLen("label", in.Label, 255, "Tên phân loại tối đa 255 ký tự")
	return v.Errors()
}

// GetAll lists variants.
func (s *ProductVariantService) GetAll(ctx context.Context, filter models.ProductVariantFilter, opts models.ListOptions) *response.Envelope {
	q := s.db.WithContext(ctx).Model(&models.ProductVariant{})
	if filter.Keyword != "" {
		q = q.Where("label LIKE ?", contains(filter.Keyword))
	}
	if filter.ProductID != 0 {
		q = q.Where("product_id = ?", filter.ProductID)
	}

	var total int64
	if opts.PageSize > 0 {
		if err := q.Count(&total).Error; err != nil {
			logrus.WithError(err).Error("count variants")
			return response.Internal()
		}
	}

	var variants []models.ProductVariant
	err := applyPage(applySort(q, opts, "created_at desc", variantSortFields), opts).
		Preload("Product").
		Find(&variants).Error
	if err != nil {
		logrus.WithError(err).Error("list variants")
		return response.Internal()
	}

	return response.List(variants, "", opts.Page, opts.PageSize, total)
}

// GetByID returns one variant with its sellable items.
func (s *ProductVariantService) GetByID(ctx context.Context, id uint) *response.Envelope {
	var variant models.ProductVariant
	err := s.db.WithContext(ctx).
		Preload("Product").
		Preload("Items").
		Preload("Items.Color").
		First(&variant, id).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy phân loại sản phẩm")
	}
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("get variant")
		return response.Internal()
	}
	return response.Ok(&variant, "")
}

// Create validates and persists a variant with an optional image upload.
func (s *ProductVariantService) Create(ctx context.Context, in *models.ProductVariantInput, image *UploadFile) *response.Envelope {
	if errs := validateVariant(in); errs != nil {
		return response.Validation(errs)
	}

	if image != nil {
		url, err := s.storage.Upload(ctx, image)
		if err != nil {
			logrus.WithError(err).Error("upload variant image")
			return response.Internal()
		}
		in.ImageURL = url
	}

	variant := models.ProductVariant{
		ProductID: in.ProductID,
		Label:     in.Label,
		ImageURL:  in.ImageURL,
	}
	if err := s.db.WithContext(ctx).Create(&variant).Error; err != nil {
		logrus.WithError(err).Error("create variant")
		return response.Internal()
	}

	return response.Created(&variant, "Tạo phân loại thành công")
}

// Update modifies a variant, replacing its image when a new file is given.
func (s *ProductVariantService) Update(ctx context.Context, id uint, in *models.ProductVariantInput, image *UploadFile) *response.Envelope {
	if errs := validateVariant(in); errs != nil {
		return response.Validation(errs)
	}

	var variant models.ProductVariant
	err := s.db.WithContext(ctx).First(&variant, id).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy phân loại sản phẩm")
	}
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("get variant for update")
		return response.Internal()
	}

	if image != nil {
		url, err := s.storage.Upload(ctx, image)
		if err != nil {
			logrus.WithError(err).Error("upload variant image")
			return response.Internal()
		}
		in.ImageURL = url
	}

	variant.ProductID = in.ProductID
	variant.Label = in.Label
	if in.ImageURL != "" {
		variant.ImageURL = in.ImageURL
	}

	if err := s.db.WithContext(ctx).Save(&variant).Error; err != nil {
		logrus.WithError(err).WithField("id", id).Error("update variant")
		return response.Internal()
	}

	if in.OldImage != "" && in.OldImage != variant.ImageURL {
		s.storage.Cleanup(ctx, in.OldImage)
	}

	return response.Ok(&variant, "Cập nhật phân loại thành công")
}

// Delete removes a variant and returns the deleted record.
func (s *ProductVariantService) Delete(ctx context.Context, id uint) *response.Envelope {
	var variant models.ProductVariant
	err := s.db.WithContext(ctx).First(&variant, id).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy phân loại sản phẩm")
	}
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("get variant for delete")
		return response.Internal()
	}

	if err := s.db.WithContext(ctx).Delete(&variant).Error; err != nil {
		logrus.WithError(err).WithField("id", id).Error("delete variant")
		return response.Internal()
	}

	s.storage.Cleanup(ctx, variant.ImageURL)

	return response.Ok(&variant, "Xóa phân loại thành công")
}
