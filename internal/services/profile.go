package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tranduykhanh2004/storely/internal/models"
	"github.com/tranduykhanh2004/storely/internal/response"
	"github.com/tranduykhanh2004/storely/internal/validate"
)

var profileSortFields = map[string]string{
	"name":       "name",
	"email":      "email",
	"created_at": "created_at",
}

// ProfileService manages user profiles mirrored from the auth provider.
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService creates a new profile service.
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// EnsureProfile creates the profile row for an authenticated user if it does
// not exist yet. Called on sign-up and on first authenticated request.
func (s *ProfileService) EnsureProfile(ctx context.Context, id, name, email string) error {
	profile := models.Profile{
		ID:    id,
		Name:  name,
		Email: email,
		Role:  models.RoleCustomer,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&profile).Error
}

// GetAll lists profiles for the back office.
func (s *ProfileService) GetAll(ctx context.Context, filter models.ProfileFilter, opts models.ListOptions) *response.Envelope {
	q := s.db.WithContext(ctx).Model(&models.Profile{})
	if filter.Keyword != "" {
		kw := contains(filter.Keyword)
		q = q.Where("name LIKE ? OR email LIKE ?", kw, kw)
	}
	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}

	var total int64
	if opts.PageSize > 0 {
		if err := q.Count(&total).Error; err != nil {
			logrus.WithError(err).Error("count profiles")
			return response.Internal()
		}
	}

	var profiles []models.Profile
	err := applyPage(applySort(q, opts, "created_at desc", profileSortFields), opts).
		Find(&profiles).Error
	if err != nil {
		logrus.WithError(err).Error("list profiles")
		return response.Internal()
	}

	return response.List(profiles, "", opts.Page, opts.PageSize, total)
}

// GetByID returns one profile.
func (s *ProfileService) GetByID(ctx context.Context, id string) *response.Envelope {
	var profile models.Profile
	err := s.db.WithContext(ctx).First(&profile, "id = ?", id).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy tài khoản")
	}
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("get profile")
		return response.Internal()
	}
	return response.Ok(&profile, "")
}

// Update lets a user edit their own contact details.
func (s *ProfileService) Update(ctx context.Context, id string, in *models.ProfileInput) *response.Envelope {
	v := validate.New()
	v.Require("name", in.Name, "Tên không được để trống")
	v.MaxLen("name", in.Name, 255, "Tên tối đa 255 ký tự")
	if in.Phone != "" {
		v.MaxLen("phone", in.Phone, 20, "Số điện thoại tối đa 20 ký tự")
	}
	if errs := v.Errors(); errs != nil {
		return response.Validation(errs)
	}

	var profile models.Profile
	err := s.db.WithContext(ctx).First(&profile, "id = ?", id).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy tài khoản")
	}
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("get profile for update")
		return response.Internal()
	}

	profile.Name = in.Name
	profile.Phone = in.Phone
	profile.Address = in.Address

	if err := s.db.WithContext(ctx).Save(&profile).Error; err != nil {
		logrus.WithError(err).WithField("id", id).Error("update profile")
		return response.Internal()
	}

	return response.Ok(&profile, "Cập nhật tài khoản thành công")
}

// SetRole promotes or demotes an account. Admin only.
func (s *ProfileService) SetRole(ctx context.Context, id, role string) *response.Envelope {
	if role != models.RoleCustomer && role != models.RoleAdmin {
		return response.BadRequest("Vai trò không hợp lệ")
	}

	var profile models.Profile
	err := s.db.WithContext(ctx).First(&profile, "id = ?", id).Error
	if isNotFound(err) {
		return response.NotFound("Không tìm thấy tài khoản")
	}
	if err != nil {
		logrus.WithError(err).WithField("id", id).Error("get profile for role change")
		return response.Internal()
	}

	profile.Role = role
	if err := s.db.WithContext(ctx).Save(&profile).Error; err != nil {
		logrus.WithError(err).WithField("id", id).Error("set profile role")
		return response.Internal()
	}

	return response.Ok(&profile, "Cập nhật vai trò thành công")
}
