package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/tranduykhanh2004/storely/internal/models"
	"github.com/tranduykhanh2004/storely/internal/response"
	"github.com/tranduykhanh2004/storely/internal/validate"
)

var subcategorySortFields = map[string]string{
	"name":       "name",
	"created_at": "created_at",
}

// SubcategoryService handles subcategory CRUD.
type SubcategoryService struct {
	db *gorm.DB
}

// NewSubcategoryService creates a new subcategory service.
func NewSubcategoryService(db *gorm.DB) *SubcategoryService {
	return &SubcategoryService{db: db}
}

func validateSubcategory(in *models.SubcategoryInput) map[string][]string {
	v := validate.New()
	v.PositiveID("category_id", in.CategoryID, "Danh mục cha không được để trống")
	v.Require("name", in.Name, "Tên danh mục con không được để trống")
	v.MaxLen("name", in.Name, 255, "Tên danh mục con tối đa 255 ký tự")
	v.Require("slug", in.Slug, "Slug không được để trống")
	v.Slug("slug", in.Slug, "Slug chỉ gồm chữ thường, số và dấu gạch ngang")
	return v.Errors()
}

// GetAll lists subcategories filtered by keyword and parent category.
func (s *SubcategoryService) GetAll(ctx context.Context, filter models.SubcategoryFilter, opts models.ListOptions) *response.Envelope {
	q := s.db.WithContext(ctx).Model(&models.Subcategory{})
	if filter.Keyword != "" {
		q = q.Where("name LIKE ?", contains(filter.Keyword))
	}
	if filter.CategoryID != 0 {
		q = q.Where("category_id = ?", filter.CategoryID)
	}

	var total int64
	if opts.PageSize > 0 {
		if err := q.Count(&total).Error; err != nil {
			logrus.WithError(err).Error("count subcategories")
			return response.Internal()
		}
	}

	var subcategories []models.Subcategory
	err := applyPage(applySort(q, opts, "created_at desc", subcategorySortFields), opts).
		Preload("Category").
		Find(&subcategories).Error
	if err != nil {
		logrus.WithError(err).Error("list subcategories")
		return response.Internal()
	}

	return response.List(subcategories, "", opts.Page, opts.PageSize, total)
}

// GetByID returns one subcategory with its parent category.
func (s *SubcategoryService) GetByID(ctx context.Context, id uint) *response.Envelope {
	var subcategory models.Subcategory
	err := s.db.WithContext(ctx).Preload("Category").First(&subcategory, id).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy danh mục con")
	}
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("get subcategory")
		return response.Internal()
	}
	return response.Ok(&subcategory, "")
}

// Create validates and persists a subcategory.
func (s *SubcategoryService) Create(ctx context.Context, in *models.SubcategoryInput) *response.Envelope {
	if errs := validateSubcategory(in); errs != nil {
		return response.Validation(errs)
	}

	subcategory := models.Subcategory{
		CategoryID: in.CategoryID,
		Name:       in.Name,
		Slug:       in.Slug,
	}
	if err := s.db.WithContext(ctx).Create(&subcategory).Error; err != nil {
		if isDuplicate(err) {
			return response.BadRequest("Slug danh mục con đã tồn tại")
		}
		logrus.WithError(err).Error("create subcategory")
		return response.Internal()
	}

	return response.Created(&subcategory, "Tạo danh mục con thành công")
}

// Update modifies a subcategory.
func (s *SubcategoryService) Update(ctx context.Context, id uint, in *models.SubcategoryInput) *response.Envelope {
	if errs := validateSubcategory(in); errs != nil {
		return response.Validation(errs)
	}

	var subcategory models.Subcategory
	err := s.db.WithContext(ctx).First(&subcategory, id).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy danh mục con")
	}
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("get subcategory for update")
		return response.Internal()
	}

	subcategory.CategoryID = in.CategoryID
	subcategory.Name = in.Name
	subcategory.Slug = in.Slug

	if err := s.db.WithContext(ctx).Save(&subcategory).Error; err != nil {
		if isDuplicate(err) {
			return response.BadRequest("Slug danh mục con đã tồn tại")
		}
		logrus.WithError(err).WithField("id", id).Error("update subcategory")
		return response.Internal()
	}

	return response.Ok(&subcategory, "Cập nhật danh mục con thành công")
}

// Delete removes a subcategory and returns the deleted record.
func (s *SubcategoryService) Delete(ctx context.Context, id uint) *response.Envelope {
	var subcategory models.Subcategory
	err := s.db.WithContext(ctx).First(&subcategory, id).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy danh mục con")
	}
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("get subcategory for delete")
		return response.Internal()
	}

	if err := s.db.WithContext(ctx).Delete(&subcategory).Error; err != nil {
		logrus.WithError(err).WithField("id", id).Error("delete subcategory")
		return response.Internal()
	}

	return response.Ok(&subcategory, "Xóa danh mục con thành công")
}
