package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranduykhanh2004/storely/internal/models"
)

func TestCategoryCreateValidation(t *testing.T) {
	gdb, _ := newTestDB(t)
	svc := NewCategoryService(gdb, nil)

	env := svc.Create(context.Background(), &models.CategoryInput{Name: "", Slug: "Không-Hợp-Lệ"}, nil)

	assert.False(t, env.Success)
	assert.Equal(t, http.StatusBadRequest, env.Status)
	assert.Equal(t, "Dữ liệu không hợp lệ", env.Message)
	assert.Contains(t, env.Errors, "name")
	assert.Contains(t, env.Errors, "slug")
}

func TestCategoryCreateSuccess(t *testing.T) {
	gdb, mock := newTestDB(t)
	svc := NewCategoryService(gdb, nil)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `categories`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	env := svc.Create(context.Background(), &models.CategoryInput{
		Name: "Điện thoại", Slug: "dien-thoai", OrderNumber: 1,
	}, nil)

	require.True(t, env.Success)
	assert.Equal(t, http.StatusCreated, env.Status)
	assert.Equal(t, "Tạo danh mục thành công", env.Message)

	category := env.Data.(*models.Category)
	assert.Equal(t, uint(1), category.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryCreateDuplicate(t *testing.T) {
	gdb, mock := newTestDB(t)
	svc := NewCategoryService(gdb, nil)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `categories`").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	env := svc.Create(context.Background(), &models.CategoryInput{
		Name: "Điện thoại", Slug: "dien-thoai",
	}, nil)

	assert.False(t, env.Success)
	assert.Equal(t, http.StatusBadRequest, env.Status)
	assert.Equal(t, "Tên hoặc slug danh mục đã tồn tại", env.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryGetByIDNotFound(t *testing.T) {
	gdb, mock := newTestDB(t)
	svc := NewCategoryService(gdb, nil)

	mock.ExpectQuery("SELECT \\* FROM `categories`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug"}))

	env := svc.GetByID(context.Background(), 42)

	assert.False(t, env.Success)
	assert.Equal(t, http.StatusNotFound, env.Status)
	assert.Equal(t, "Không tìm thấy danh mục", env.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryGetAllPaginated(t *testing.T) {
	gdb, mock := newTestDB(t)
	svc := NewCategoryService(gdb, nil)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `categories`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))
	mock.ExpectQuery("SELECT \\* FROM `categories`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "order_number"}).
			AddRow(11, "Điện thoại", "dien-thoai", 1).
			AddRow(12, "Laptop", "laptop", 2))

	env := svc.GetAll(context.Background(), models.CategoryFilter{}, models.ListOptions{Page: 2, PageSize: 10})

	require.True(t, env.Success)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 2, env.Pagination.Page)
	assert.Equal(t, int64(25), env.Pagination.Total)
	assert.Equal(t, 3, env.Pagination.TotalPages)
	assert.Len(t, env.Data.([]models.Category), 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryGetAllUnpaginatedSkipsCount(t *testing.T) {
	gdb, mock := newTestDB(t)
	svc := NewCategoryService(gdb, nil)

	mock.ExpectQuery("SELECT \\* FROM `categories`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug"}).
			AddRow(1, "Điện thoại", "dien-thoai"))

	env := svc.GetAll(context.Background(), models.CategoryFilter{}, models.ListOptions{})

	require.True(t, env.Success)
	assert.Nil(t, env.Pagination)
	assert.NoError(t, mock.ExpectationsWereMet())
}
