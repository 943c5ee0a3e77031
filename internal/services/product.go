package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/metric"
	"gorm.io/gorm"

	"github.com/tranduykhanh2004/storely/internal/metrics"
	"github.com/tranduykhanh2004/storely/internal/models"
	"github.com/tranduykhanh2004/storely/internal/response"
	"github.com/tranduykhanh2004/storely/internal/validate"
)

var productSortFields = map[string]string{
	"name":       "products.name",
	"created_at": "products.created_at",
}

// ProductService handles product-line CRUD.
type ProductService struct {
	db      *gorm.DB
	metrics *metrics.AppMetrics
}

// NewProductService creates a new product service.
func NewProductService(db *gorm.DB, m *metrics.AppMetrics) *ProductService {
	return &ProductService{db: db, metrics: m}
}

func validateProduct(in *models.ProductInput) map[string][]string {
	v := validate.New()
	v.PositiveID("subcategory_id", in.SubcategoryID, "Danh mục con không được để trống")
	v.Require("name", in.Name, "Tên sản phẩm không được để trống")
	v.MaxLen("name", in.Name, 255, "Tên sản phẩm tối đa 255 ký tự")
	v.Require("slug", in.Slug, "Slug không được để trống")
	v.Slug("slug", in.Slug, "Slug chỉ gồm chữ thường, số và dấu gạch ngang")
	return v.Errors()
}

// GetAll lists products. CategoryID filters through the subcategory join.
func (s *ProductService) GetAll(ctx context.Context, filter models.ProductFilter, opts models.ListOptions) *response.Envelope {
	q := s.db.WithContext(ctx).Model(&models.Product{})
	if filter.Keyword != "" {
		q = q.Where("products.name LIKE ?", contains(filter.Keyword))
	}
	if filter.SubcategoryID != 0 {
		q = q.Where("products.subcategory_id = ?", filter.SubcategoryID)
	}
	if filter.CategoryID != 0 {
		q = q.Joins("JOIN subcategories ON subcategories.id = products.subcategory_id").
			Where("subcategories.category_id = ?", filter.CategoryID)
	}

	var total int64
	if opts.PageSize > 0 {
		if err := q.Count(&total).Error; err != nil {
			logrus.WithError(err).Error("count products")
			return response.Internal()
		}
	}

	var products []models.Product
	err := applyPage(applySort(q, opts, "products.created_at desc", productSortFields), opts).
		Preload("Subcategory").
		Preload("Variants").
		Preload("Colors").
		Find(&products).Error
	if err != nil {
		logrus.WithError(err).Error("list products")
		return response.Internal()
	}

	return response.List(products, "", opts.Page, opts.PageSize, total)
}

// GetByID returns one product with variants, colors and their items.
func (s *ProductService) GetByID(ctx context.Context, id uint) *response.Envelope {
	var product models.Product
	err := s.db.WithContext(ctx).
		Preload("Subcategory").
		Preload("Variants").
		Preload("Variants.Items").
		Preload("Variants.Items.Color").
		Preload("Colors").
		First(&product, id).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy sản phẩm")
	}
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("get product")
		return response.Internal()
	}

	if s.metrics != nil {
		s.metrics.ProductsViewed.Add(ctx, 1, metric.WithAttributes(s.metrics.WithServiceName(nil)...))
	}

	return response.Ok(&product, "")
}

// Create validates and persists a product line.
func (s *ProductService) Create(ctx context.Context, in *models.ProductInput) *response.Envelope {
	if errs := validateProduct(in); errs != nil {
		return response.Validation(errs)
	}

	product := models.Product{
		SubcategoryID: in.SubcategoryID,
		Name:          in.Name,
		Slug:          in.Slug,
		Description:   in.Description,
	}
	if err := s.db.WithContext(ctx).Create(&product).Error; err != nil {
		if isDuplicate(err) {
			return response.BadRequest("Tên hoặc slug sản phẩm đã tồn tại")
		}
		logrus.WithError(err).Error("create product")
		return response.Internal()
	}

	return response.Created(&product, "Tạo sản phẩm thành công")
}

// Update modifies a product line.
func (s *ProductService) Update(ctx context.Context, id uint, in *models.ProductInput) *response.Envelope {
	if errs := validateProduct(in); errs != nil {
		return response.Validation(errs)
	}

	var product models.Product
	err := s.db.WithContext(ctx).First(&product, id).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy sản phẩm")
	}
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("get product for update")
		return response.Internal()
	}

	product.SubcategoryID = in.SubcategoryID
	product.Name = in.Name
	product.Slug = in.Slug
	product.Description = in.Description

	if err := s.db.WithContext(ctx).Save(&product).Error; err != nil {
		if isDuplicate(err) {
			return response.BadRequest("Tên hoặc slug sản phẩm đã tồn tại")
		}
		logrus.WithError(err).WithField("id", id).Error("update product")
		return response.Internal()
	}

	return response.Ok(&product, "Cập nhật sản phẩm thành công")
}

// Delete removes a product line and returns the deleted record.
func (s *ProductService) Delete(ctx context.Context, id uint) *response.Envelope {
	var product models.Product
	err := s.db.WithContext(ctx).First(&product, id).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy sản phẩm")
	}
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("get product for delete")
		return response.Internal()
	}

	if err := s.db.WithContext(ctx).Delete(&product).Error; err != nil {
		logrus.WithError(err).WithField("id", id).Error("delete product")
		return response.Internal()
	}

	return response.Ok(&product, "Xóa sản phẩm thành công")
}
