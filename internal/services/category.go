package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/tranduykhanh2004/storely/internal/models"
	"github.com/tranduykhanh2004/storely/internal/response"
	"github.com/tranduykhanh2004/storely/internal/validate"
	"gorm.io/gorm"
)

var categorySortFields = map[string]string{
	"name":         "name",
	"order_number": "order_number",
	"created_at":   "created_at",
}

// CategoryService handles category CRUD.
type CategoryService struct {
	db      *gorm.DB
	storage *StorageService
}

// NewCategoryService creates a new category service.
func NewCategoryService(db *gorm.DB, storage *StorageService) *CategoryService {
	return &CategoryService{db: db, storage: storage}
}

func validateCategory(in *models.CategoryInput) map[string][]string {
	v := validate.New()
	v.Require("name", in.Name, "Tên danh mục không được để trống")
	v.MaxLen("name", in.Name, 255, "Tên danh mục tối đa 255 ký tự")
	v.Require("slug", in.Slug, "Slug không được để trống")
	v.Slug("slug", in.Slug, "Slug chỉ gồm chữ thường, số và dấu gạch ngang")
	return v.Errors()
}

// GetAll lists categories, default order is the explicit display order.
func (s *CategoryService) GetAll(ctx context.Context, filter models.CategoryFilter, opts models.ListOptions) *response.Envelope {
	q := s.db.WithContext(ctx).Model(&models.Category{})
	if filter.Keyword != "" {
		q = q.Where("name LIKE ?", contains(filter.Keyword))
	}

	var total int64
	if opts.PageSize > 0 {
		if err := q.Count(&total).Error; err != nil {
			logrus.WithError(err).Error("count categories")
			return response.Internal()
		}
	}

	var categories []models.Category
	if err := applyPage(applySort(q, opts, "order_number asc", categorySortFields), opts).Find(&categories).Error; err != nil {
		logrus.WithError(err).Error("list categories")
		return response.Internal()
	}

	return response.List(categories, "", opts.Page, opts.PageSize, total)
}

// GetByID returns one category with its subcategories.
func (s *CategoryService) GetByID(ctx context.Context, id uint) *response.Envelope {
	var category models.Category
	err := s.db.WithContext(ctx).Preload("Subcategories").First(&category, id).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy danh mục")
	}
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("get category")
		return response.Internal()
	}
	return response.Ok(&category, "")
}

// Create validates and persists a category; an optional thumbnail is
// uploaded first and its URL substituted into the record.
func (s *CategoryService) Create(ctx context.Context, in *models.CategoryInput, thumbnail *UploadFile) *response.Envelope {
	if errs := validateCategory(in); errs != nil {
		return response.Validation(errs)
	}

	if thumbnail != nil {
		url, err := s.storage.Upload(ctx, thumbnail)
		if err != nil {
			logrus.WithError(err).Error("upload category thumbnail")
			return response.Internal()
		}
		in.ThumbnailURL = url
	}

	category := models.Category{
		Name:         in.Name,
		Slug:         in.Slug,
		ThumbnailURL: in.ThumbnailURL,
		OrderNumber:  in.OrderNumber,
	}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		if isDuplicate(err) {
			return response.BadRequest("Tên hoặc slug danh mục đã tồn tại")
		}
		logrus.WithError(err).Error("create category")
		return response.Internal()
	}

	return response.Created(&category, "Tạo danh mục thành công")
}

// Update modifies a category, replacing the thumbnail when a new file is
// supplied and best-effort deleting the superseded one.
func (s *CategoryService) Update(ctx context.Context, id uint, in *models.CategoryInput, thumbnail *UploadFile) *response.Envelope {
	if errs := validateCategory(in); errs != nil {
		return response.Validation(errs)
	}

	var category models.Category
	err := s.db.WithContext(ctx).First(&category, id).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy danh mục")
	}
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("get category for update")
		return response.Internal()
	}

	if thumbnail != nil {
		url, err := s.storage.Upload(ctx, thumbnail)
		if err != nil {
			logrus.WithError(err).Error("upload category thumbnail")
			return response.Internal()
		}
		in.ThumbnailURL = url
	}

	category.Name = in.Name
	category.Slug = in.Slug
	category.OrderNumber = in.OrderNumber
	if in.ThumbnailURL != "" {
		category.ThumbnailURL = in.ThumbnailURL
	}

	if err := s.db.WithContext(ctx).Save(&category).Error; err != nil {
		if isDuplicate(err) {
			return response.BadRequest("Tên hoặc slug danh mục đã tồn tại")
		}
		logrus.WithError(err).WithField("id", id).Error("update category")
		return response.Internal()
	}

	if in.OldThumbnail != "" && in.OldThumbnail != category.ThumbnailURL {
		s.storage.Cleanup(ctx, in.OldThumbnail)
	}

	return response.Ok(&category, "Cập nhật danh mục thành công")
}

// Delete removes a category and returns the deleted record.
func (s *CategoryService) Delete(ctx context.Context, id uint) *response.Envelope {
	var category models.Category
	err := s.db.WithContext(ctx).First(&category, id).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy danh mục")
	}
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("get category for delete")
		return response.Internal()
	}

	if err := s.db.WithContext(ctx).Delete(&category).Error; err != nil {
		logrus.WithError(err).WithField("id", id).Error("delete category")
		return response.Internal()
	}

	s.storage.Cleanup(ctx, category.ThumbnailURL)

	return response.Ok(&category, "Xóa danh mục thành công")
}
