package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/tranduykhanh2004/storely/internal/models"
	"github.com/tranduykhanh2004/storely/internal/response"
	"github.com/tranduykhanh2004/storely/internal/validate"
)

var bannerSortFields = map[string]string{
	"order_number": "banners.order_number",
	"created_at":   "banners.created_at",
}

// BannerService handles banner CRUD. Banners carry a desktop and a mobile
// image, both stored in the object bucket.
type BannerService struct {
	db      *gorm.DB
	storage *StorageService
}

// NewBannerService creates a new banner service.
func NewBannerService(db *gorm.DB, storage *StorageService) *BannerService {
	return &BannerService{db: db, storage: storage}
}

// validateBanner runs on the record after file URLs have been substituted,
// so both images are required to be present by then.
func validateBanner(in *models.BannerInput) map[string][]string {
	v := validate.New()
	v.Require("desktop_url", in.DesktopURL, "Ảnh desktop không được để trống")
	v.Require("mobile_url", in.MobileURL, "Ảnh mobile không được để trống")
	v.URL("link", in.Link, "Đường dẫn không hợp lệ")
	return v.Errors()
}

// GetAll lists banners. The keyword matches the category name or the
// banner link.
func (s *BannerService) GetAll(ctx context.Context, filter models.BannerFilter, opts models.ListOptions) *response.Envelope {
	q := s.db.WithContext(ctx).Model(&models.Banner{})
	if filter.Keyword != "" {
		kw := contains(filter.Keyword)
		q = q.Joins("LEFT JOIN categories ON categories.id = banners.category_id").
			Where("categories.name LIKE ? OR banners.link LIKE ?", kw, kw)
	}
	if filter.CategoryID != 0 {
		q = q.Where("banners.category_id = ?", filter.CategoryID)
	}

	var total int64
	if opts.PageSize > 0 {
		if err := q.Count(&total).Error; err != nil {
			logrus.WithError(err).Error("count banners")
			return response.Internal()
		}
	}

	var banners []models.Banner
	err := applyPage(applySort(q, opts, "banners.order_number asc", bannerSortFields), opts).
		Preload("Category").
		Find(&banners).Error
	if err != nil {
		logrus.WithError(err).Error("list banners")
		return response.Internal()
	}

	return response.List(banners, "", opts.Page, opts.PageSize, total)
}

// GetByID returns one banner.
func (s *BannerService) GetByID(ctx context.Context, id uint) *response.Envelope {
	var banner models.Banner
	err := s.db.WithContext(ctx).Preload("Category").First(&banner, id).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy banner")
	}
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("get banner")
		return response.Internal()
	}
	return response.Ok(&banner, "")
}

// Create uploads the provided image files, substitutes their URLs and
// persists the banner.
func (s *BannerService) Create(ctx context.Context, in *models.BannerInput, desktop, mobile *UploadFile) *response.Envelope {
	if desktop != nil {
		url, err := s.storage.Upload(ctx, desktop)
		if err != nil {
			logrus.WithError(err).Error("upload banner desktop image")
			return response.Internal()
		}
		in.DesktopURL = url
	}
	if mobile != nil {
		url, err := s.storage.Upload(ctx, mobile)
		if err != nil {
			logrus.WithError(err).Error("upload banner mobile image")
			return response.Internal()
		}
		in.MobileURL = url
	}

	if errs := validateBanner(in); errs != nil {
		return response.Validation(errs)
	}

	banner := models.Banner{
		CategoryID:  in.CategoryID,
		DesktopURL:  in.DesktopURL,
		MobileURL:   in.MobileURL,
		Link:        in.Link,
		OrderNumber: in.OrderNumber,
	}
	if err := s.db.WithContext(ctx).Create(&banner).Error; err != nil {
		logrus.WithError(err).Error("create banner")
		return response.Internal()
	}

	return response.Created(&banner, "Tạo banner thành công")
}

// Update modifies a banner, replacing whichever images were re-uploaded
// and best-effort deleting the superseded files.
func (s *BannerService) Update(ctx context.Context, id uint, in *models.BannerInput, desktop, mobile *UploadFile) *response.Envelope {
	var banner models.Banner
	err := s.db.WithContext(ctx).First(&banner, id).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy banner")
	}
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("get banner for update")
		return response.Internal()
	}

	if desktop != nil {
		url, err := s.storage.Upload(ctx, desktop)
		if err != nil {
			logrus.WithError(err).Error("upload banner desktop image")
			return response.Internal()
		}
		in.DesktopURL = url
	} else if in.DesktopURL == "" {
		in.DesktopURL = banner.DesktopURL
	}
	if mobile != nil {
		url, err := s.storage.Upload(ctx, mobile)
		if err != nil {
			logrus.WithError(err).Error("upload banner mobile image")
			return response.Internal()
		}
		in.MobileURL = url
	} else if in.MobileURL == "" {
		in.MobileURL = banner.MobileURL
	}

	if errs := validateBanner(in); errs != nil {
		return response.Validation(errs)
	}

	banner.CategoryID = in.CategoryID
	banner.DesktopURL = in.DesktopURL
	banner.MobileURL = in.MobileURL
	banner.Link = in.Link
	banner.OrderNumber = in.OrderNumber

	if err := s.db.WithContext(ctx).Save(&banner).Error; err != nil {
		logrus.WithError(err).WithField("id", id).Error("update banner")
		return response.Internal()
	}

	var stale []string
	if in.OldDesktop != "" && in.OldDesktop != banner.DesktopURL {
		stale = append(stale, in.OldDesktop)
	}
	if in.OldMobile != "" && in.OldMobile != banner.MobileURL {
		stale = append(stale, in.OldMobile)
	}
	if len(stale) > 0 {
		s.storage.Cleanup(ctx, stale...)
	}

	return response.Ok(&banner, "Cập nhật banner thành công")
}

// Delete removes a banner and returns the deleted record.
func (s *BannerService) Delete(ctx context.Context, id uint) *response.Envelope {
	var banner models.Banner
	err := s.db.WithContext(ctx).First(&banner, id).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy banner")
	}
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("get banner for delete")
		return response.Internal()
	}

	if err := s.db.WithContext(ctx).Delete(&banner).Error; err != nil {
		logrus.WithError(err).WithField("id", id).Error("delete banner")
		return response.Internal()
	}

	s.storage.Cleanup(ctx, banner.DesktopURL, banner.MobileURL)

	return response.Ok(&banner, "Xóa banner thành công")
}
