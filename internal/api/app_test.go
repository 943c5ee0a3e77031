package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tranduykhanh2004/storely/internal/auth"
	"github.com/tranduykhanh2004/storely/internal/services"
)

const testSecret = "test-jwt-secret"

func newTestRouter(t *testing.T) (*mux.Router, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	app := NewApp(Services{
		Guard:      auth.NewGuard(gdb),
		Categories: services.NewCategoryService(gdb, nil),
	})

	router := mux.NewRouter()
	router.Use(auth.NewMiddleware(testSecret, nil).Handler)
	app.SetupRoutes(router)
	return router, mock
}

func signToken(t *testing.T, subject string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
}

func TestListCategoriesIsPublic(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectQuery("SELECT \\* FROM `categories`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug"}).
			AddRow(1, "Điện thoại", "dien-thoai"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/category", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "dien-thoai")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCategoryRequiresAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/category", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Bạn chưa đăng nhập")
}

func TestCreateCategoryRejectsNonAdmin(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectQuery("SELECT \\* FROM `profiles`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "role"}).
			AddRow("uid-1", "Khách", "a@b.com", "customer"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/category", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signToken(t, "uid-1"))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Bạn không có quyền thực hiện thao tác này")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCategoryAdminValidation(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectQuery("SELECT \\* FROM `profiles`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "role"}).
			AddRow("uid-9", "Quản trị", "admin@b.com", "admin"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/category", strings.NewReader(`{"name":""}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signToken(t, "uid-9"))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Dữ liệu không hợp lệ")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnknownIDIsBadRequest(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/category/abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
