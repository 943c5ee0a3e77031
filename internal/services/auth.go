package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/tranduykhanh2004/storely/internal/models"
	"github.com/tranduykhanh2004/storely/internal/response"
	"github.com/tranduykhanh2004/storely/internal/supabase"
	"github.com/tranduykhanh2004/storely/internal/validate"
)

// AuthService fronts the Supabase auth endpoints and keeps the local
// profile table in sync.
type AuthService struct {
	client   *supabase.Client
	profiles *ProfileService
}

// NewAuthService creates a new auth service.
func NewAuthService(client *supabase.Client, profiles *ProfileService) *AuthService {
	return &AuthService{client: client, profiles: profiles}
}

// SignUp registers a new account and creates its profile row.
func (s *AuthService) SignUp(ctx context.Context, in *models.SignUpInput) *response.Envelope {
	v := validate.New()
	v.Require("name", in.Name, "Tên không được để trống")
	v.Require("email", in.Email, "Email không được để trống")
	v.Email("email", in.Email, "Email không hợp lệ")
	v.MinLen("password", in.Password, 6, "Mật khẩu phải có ít nhất 6 ký tự")
	v.Equal("confirm_password", in.Password, in.ConfirmPassword, "Mật khẩu xác nhận không khớp")
	if errs := v.Errors(); errs != nil {
		return response.Validation(errs)
	}

	session, err := s.client.SignUp(ctx, in.Email, in.Password)
	if err != nil {
		logrus.WithError(err).WithField("email", in.Email).Warn("sign up")
		return response.BadRequest("Đăng ký thất bại, email có thể đã được sử dụng")
	}

	// With email confirmation pending, Supabase returns the user without
	// a token set. The id is still present either way.
	if uid := session.UserID(); uid != "" {
		if err := s.profiles.EnsureProfile(ctx, uid, in.Name, in.Email); err != nil {
			logrus.WithError(err).WithField("user_id", uid).Error("create profile on sign up")
			return response.Internal()
		}
	}

	return response.Created(session, "Đăng ký thành công")
}

// SignIn exchanges email/password for a session.
func (s *AuthService) SignIn(ctx context.Context, in *models.SignInInput) *response.Envelope {
	v := validate.New()
	v.Require("email", in.Email, "Email không được để trống")
	v.Require("password", in.Password, "Mật khẩu không được để trống")
	if errs := v.Errors(); errs != nil {
		return response.Validation(errs)
	}

	session, err := s.client.SignIn(ctx, in.Email, in.Password)
	if err != nil {
		logrus.WithError(err).WithField("email", in.Email).Warn("sign in")
		return response.Unauthorized("Email hoặc mật khẩu không đúng")
	}

	// A session can exist without a profile row when the account was
	// created outside the API. Backfill it on first sign-in.
	if uid := session.UserID(); uid != "" {
		if err := s.profiles.EnsureProfile(ctx, uid, "", session.UserEmail()); err != nil {
			logrus.WithError(err).WithField("user_id", uid).Warn("ensure profile on sign in")
		}
	}

	return response.Ok(session, "Đăng nhập thành công")
}

// SignOut revokes the caller's token.
func (s *AuthService) SignOut(ctx context.Context, accessToken string) *response.Envelope {
	if accessToken == "" {
		return response.Unauthorized("Bạn chưa đăng nhập")
	}
	if err := s.client.SignOut(ctx, accessToken); err != nil {
		logrus.WithError(err).Warn("sign out")
		return response.BadRequest("Đăng xuất thất bại")
	}
	return response.Ok(nil, "Đăng xuất thành công")
}
