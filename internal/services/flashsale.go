package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/tranduykhanh2004/storely/internal/models"
	"github.com/tranduykhanh2004/storely/internal/response"
	"github.com/tranduykhanh2004/storely/internal/validate"
)

var flashSaleSortFields = map[string]string{
	"name":       "name",
	"start_at":   "start_at",
	"end_at":     "end_at",
	"created_at": "created_at",
}

// FlashSaleService handles flash sales and their items.
type FlashSaleService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewFlashSaleService creates a new flash-sale service.
func NewFlashSaleService(db *gorm.DB) *FlashSaleService {
	return &FlashSaleService{db: db, now: time.Now}
}

func validateFlashSale(in *models.FlashSaleInput) map[string][]string {
	v := validate.New()
	v.Require("name", in.Name, "Tên chương trình không được để trống")
	if in.StartAt.IsZero() {
		v.Add("start_at", "Thời điểm bắt đầu không được để trống")
	}
	if in.EndAt.IsZero() {
		v.Add("end_at", "Thời điểm kết thúc không được để trống")
	}
	if !in.StartAt.IsZero() && !in.EndAt.IsZero() {
		v.TimeOrder("end_at", in.StartAt, in.EndAt, "Thời điểm kết thúc phải sau thời điểm bắt đầu")
	}
	return v.Errors()
}

func validateFlashSaleItem(in *models.FlashSaleItemInput) map[string][]string {
	v := validate.New()
	v.PositiveID("flash_sale_id", in.FlashSaleID, "Chương trình không được để trống")
	v.PositiveID("product_item_id", in.ProductItemID, "Mặt hàng không được để trống")
	v.PositiveDecimal("sale_price", in.SalePrice, "Giá khuyến mãi phải lớn hơn 0")
	v.Positive("quantity", in.Quantity, "Số lượng phải lớn hơn 0")
	return v.Errors()
}

// GetAll lists flash sales.
func (s *FlashSaleService) GetAll(ctx context.Context, filter models.FlashSaleFilter, opts models.ListOptions) *response.Envelope {
	q := s.db.WithContext(ctx).Model(&models.FlashSale{})
	if filter.Keyword != "" {
		q = q.Where("name LIKE ?", contains(filter.Keyword))
	}

	var total int64
	if opts.PageSize > 0 {
		if err := q.Count(&total).Error; err != nil {
			logrus.WithError(err).Error("count flash sales")
			return response.Internal()
		}
	}

	var sales []models.FlashSale
	err := applyPage(applySort(q, opts, "created_at desc", flashSaleSortFields), opts).
		Find(&sales).Error
	if err != nil {
		logrus.WithError(err).Error("list flash sales")
		return response.Internal()
	}

	return response.List(sales, "", opts.Page, opts.PageSize, total)
}

// GetByID returns one flash sale with its items.
func (s *FlashSaleService) GetByID(ctx context.Context, id uint) *response.Envelope {
	var sale models.FlashSale
	err := s.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.ProductItem").
		Preload("Items.ProductItem.Variant").
		Preload("Items.ProductItem.Color").
		First(&sale, id).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy chương trình khuyến mãi")
	}
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("get flash sale")
		return response.Internal()
	}
	return response.Ok(&sale, "")
}

// GetActive returns the enabled flash sale whose window covers now. When
// several qualify the most recently created wins.
func (s *FlashSaleService) GetActive(ctx context.Context) *response.Envelope {
	now := s.now()

	var sale models.FlashSale
	err := s.db.WithContext(ctx).
		Where("enable = ? AND start_at <= ? AND end_at >= ?", true, now, now).
		Order("created_at desc").
		Preload("Items").
		Preload("Items.ProductItem").
		Preload("Items.ProductItem.Variant").
		Preload("Items.ProductItem.Color").
		First(&sale).Error
	if isNotFound(err) {
		return response.NotFound("Không có chương trình khuyến mãi nào đang diễn ra")
	}
	if err != nil {
		logrus.WithError(err).Error("get active flash sale")
		return response.Internal()
	}
	return response.Ok(&sale, "")
}

// Create validates and persists a flash sale.
func (s *FlashSaleService) Create(ctx context.Context, in *models.FlashSaleInput) *response.Envelope {
	if errs := validateFlashSale(in); errs != nil {
		return response.Validation(errs)
	}

	sale := models.FlashSale{
		Name:    in.Name,
		StartAt: in.StartAt,
		EndAt:   in.EndAt,
		Enable:  in.Enable,
	}
	if err := s.db.WithContext(ctx).Create(&sale).Error; err != nil {
		logrus.WithError(err).Error("create flash sale")
		return response.Internal()
	}

	return response.Created(&sale, "Tạo chương trình khuyến mãi thành công")
}

// Update modifies a flash sale.
func (s *FlashSaleService) Update(ctx context.Context, id uint, in *models.FlashSaleInput) *response.Envelope {
	if errs := validateFlashSale(in); errs != nil {
		return response.Validation(errs)
	}

	var sale models.FlashSale
	err := s.db.WithContext(ctx).First(&sale, id).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy chương trình khuyến mãi")
	}
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("get flash sale for update")
		return response.Internal()
	}

	sale.Name = in.Name
	sale.StartAt = in.StartAt
	sale.EndAt = in.EndAt
	sale.Enable = in.Enable

	if err := s.db.WithContext(ctx).Save(&sale).Error; err != nil {
		logrus.WithError(err).WithField("id", id).Error("update flash sale")
		return response.Internal()
	}

	return response.Ok(&sale, "Cập nhật chương trình khuyến mãi thành công")
}

// Delete removes a flash sale and returns the deleted record.
func (s *FlashSaleService) Delete(ctx context.Context, id uint) *response.Envelope {
	var sale models.FlashSale
	err := s.db.WithContext(ctx).First(&sale, id).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy chương trình khuyến mãi")
	}
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("get flash sale for delete")
		return response.Internal()
	}

	if err := s.db.WithContext(ctx).Delete(&sale).Error; err != nil {
		logrus.WithError(err).WithField("id", id).Error("delete flash sale")
		return response.Internal()
	}

	return response.Ok(&sale, "Xóa chương trình khuyến mãi thành công")
}

// AddItem validates and persists a flash-sale item.
func (s *FlashSaleService) AddItem(ctx context.Context, in *models.FlashSaleItemInput) *response.Envelope {
	if errs := validateFlashSaleItem(in); errs != nil {
		return response.Validation(errs)
	}

	item := models.FlashSaleItem{
		FlashSaleID:   in.FlashSaleID,
		ProductItemID: in.ProductItemID,
		SalePrice:     in.SalePrice,
		Quantity:      in.Quantity,
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		logrus.WithError(err).Error("create flash sale item")
		return response.Internal()
	}

	return response.Created(&item, "Thêm mặt hàng khuyến mãi thành công")
}

// UpdateItem modifies a flash-sale item.
func (s *FlashSaleService) UpdateItem(ctx context.Context, id uint, in *models.FlashSaleItemInput) *response.Envelope {
	if errs := validateFlashSaleItem(in); errs != nil {
		return response.Validation(errs)
	}

	var item models.FlashSaleItem
	err := s.db.WithContext(ctx).First(&item, id).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy mặt hàng khuyến mãi")
	}
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("get flash sale item for update")
		return response.Internal()
	}

	item.FlashSaleID = in.FlashSaleID
	item.ProductItemID = in.ProductItemID
	item.SalePrice = in.SalePrice
	item.Quantity = in.Quantity

	if err := s.db.WithContext(ctx).Save(&item).Error; err != nil {
		logrus.WithError(err).WithField("id", id).Error("update flash sale item")
		return response.Internal()
	}

	return response.Ok(&item, "Cập nhật mặt hàng khuyến mãi thành công")
}

// DeleteItem removes a flash-sale item and returns the deleted record.
func (s *FlashSaleService) DeleteItem(ctx context.Context, id uint) *response.Envelope {
	var item models.FlashSaleItem
	err := s.db.WithContext(ctx).First(&item, id).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy mặt hàng khuyến mãi")
	}
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("get flash sale item for delete")
		return response.Internal()
	}

	if err := s.db.WithContext(ctx).Delete(&item).Error; err != nil {
		logrus.WithError(err).WithField("id", id).Error("delete flash sale item")
		return response.Internal()
	}

	return response.Ok(&item, "Xóa mặt hàng khuyến mãi thành công")
}
