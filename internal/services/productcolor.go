package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/tranduykhanh2004/storely/internal/models"
	"github.com/tranduykhanh2004/storely/internal/response"
	"github.com/tranduykhanh2004/storely/internal/validate"
)

var colorSortFields = map[string]string{
	"name":       "name",
	"created_at": "created_at",
}

// ProductColorService handles color CRUD.
type ProductColorService struct {
	db      *gorm.DB
	storage *StorageService
}

// NewProductColorService creates a new color service.
func NewProductColorService(db *gorm.DB, storage *StorageService) *ProductColorService {
	return &ProductColorService{db: db, storage: storage}
}

func validateColor(in *models.ProductColorInput) map[string][]string {
	v := validate.New()
	v.PositiveID("product_id", in.ProductID, "Sản phẩm không được để trống")
	v.Require("name", in.Name, "Tên màu không được để trống")
	v.MaxLen("name", in.Name, 255, "Tên màu tối đa 255 ký tự")
	return v.Errors()
}

// GetAll lists colors.
func (s *ProductColorService) GetAll(ctx context.Context, filter models.ProductColorFilter, opts models.ListOptions) *response.Envelope {
	q := s.db.WithContext(ctx).Model(&models.ProductColor{})
	if filter.Keyword != "" {
		q = q.Where("name LIKE ?", contains(filter.Keyword))
	}
	if filter.ProductID != 0 {
		q = q.Where("product_id = ?", filter.ProductID)
	}

	var total int64
	if opts.PageSize > 0 {
		if err := q.Count(&total).Error; err != nil {
			logrus.WithError(err).Error("count colors")
			return response.Internal()
		}
	}

	var colors []models.ProductColor
	err := applyPage(applySort(q, opts, "created_at desc", colorSortFields), opts).
		Preload("Product").
		Find(&colors).Error
	if err != nil {
		logrus.WithError(err).Error("list colors")
		return response.Internal()
	}

	return response.List(colors, "", opts.Page, opts.PageSize, total)
}

// GetByID returns one color.
func (s *ProductColorService) GetByID(ctx context.Context, id uint) *response.Envelope {
	var color models.ProductColor
	err := s.db.WithContext(ctx).Preload("Product").First(&color, id).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy màu sản phẩm")
	}
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("get color")
		return response.Internal()
	}
	return response.Ok(&color, "")
}

// Create validates and persists a color with an optional image upload.
func (s *ProductColorService) Create(ctx context.Context, in *models.ProductColorInput, image *UploadFile) *response.Envelope {
	if errs := validateColor(in); errs != nil {
		return response.Validation(errs)
	}

	if image != nil {
		url, err := s.storage.Upload(ctx, image)
		if err != nil {
			logrus.WithError(err).Error("upload color image")
			return response.Internal()
		}
		in.ImageURL = url
	}

	color := models.ProductColor{
		ProductID: in.ProductID,
		Name:      in.Name,
		ImageURL:  in.ImageURL,
	}
	if err := s.db.WithContext(ctx).Create(&color).Error; err != nil {
		logrus.WithError(err).Error("create color")
		return response.Internal()
	}

	return response.Created(&color, "Tạo màu sản phẩm thành công")
}

// Update modifies a color, replacing its image when a new file is given.
func (s *ProductColorService) Update(ctx context.Context, id uint, in *models.ProductColorInput, image *UploadFile) *response.Envelope {
	if errs := validateColor(in); errs != nil {
		return response.Validation(errs)
	}

	var color models.ProductColor
	err := s.db.WithContext(ctx).First(&color, id).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy màu sản phẩm")
	}
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("get color for update")
		return response.Internal()
	}

	if image != nil {
		url, err := s.storage.Upload(ctx, image)
		if err != nil {
			logrus.WithError(err).Error("upload color image")
			return response.Internal()
		}
		in.ImageURL = url
	}

	color.ProductID = in.ProductID
	color.Name = in.Name
	if in.ImageURL != "" {
		color.ImageURL = in.ImageURL
	}

	if err := s.db.WithContext(ctx).Save(&color).Error; err != nil {
		logrus.WithError(err).WithField("id", id).Error("update color")
		return response.Internal()
	}

	if in.OldImage != "" && in.OldImage != color.ImageURL {
		s.storage.Cleanup(ctx, in.OldImage)
	}

	return response.Ok(&color, "Cập nhật màu sản phẩm thành công")
}

// Delete removes a color and returns the deleted record.
func (s *ProductColorService) Delete(ctx context.Context, id uint) *response.Envelope {
	var color models.ProductColor
	err := s.db.WithContext(ctx).First(&color, id).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy màu sản phẩm")
	}
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("get color for delete")
		return response.Internal()
	}

	if err := s.db.WithContext(ctx).Delete(&color).Error; err != nil {
		logrus.WithError(err).WithField("id", id).Error("delete color")
		return response.Internal()
	}

	s.storage.Cleanup(ctx, color.ImageURL)

	return response.Ok(&color, "Xóa màu sản phẩm thành công")
}
