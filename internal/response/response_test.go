package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteUsesEnvelopeStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFound("Không tìm thấy danh mục").Write(rec)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, http.StatusNotFound, env.Status)
	assert.Equal(t, "Không tìm thấy danh mục", env.Message)
}

func TestListPagination(t *testing.T) {
	env := List([]int{1, 2, 3}, "", 2, 10, 25)

	require.NotNil(t, env.Pagination)
	assert.Equal(t, 2, env.Pagination.Page)
	assert.Equal(t, 10, env.Pagination.PageSize)
	assert.Equal(t, int64(25), env.Pagination.Total)
	assert.Equal(t, 3, env.Pagination.TotalPages)
}

func TestListWithoutPageSizeOmitsPagination(t *testing.T) {
	env := List([]int{1}, "", 0, 0, 1)
	assert.Nil(t, env.Pagination)

	rec := httptest.NewRecorder()
	env.Write(rec)
	assert.NotContains(t, rec.Body.String(), "pagination")
}

func TestValidationCarriesFieldErrors(t *testing.T) {
	env := Validation(map[string][]string{"name": {"Tên không được để trống"}})

	assert.Equal(t, http.StatusBadRequest, env.Status)
	assert.Equal(t, "Dữ liệu không hợp lệ", env.Message)
	assert.Equal(t, []string{"Tên không được để trống"}, env.Errors["name"])
}

func TestDefaultMessages(t *testing.T) {
	assert.Equal(t, "Bạn chưa đăng nhập", Unauthorized("").Message)
	assert.Equal(t, "Bạn không có quyền thực hiện thao tác này", Forbidden("").Message)
	assert.Equal(t, http.StatusInternalServerError, Internal().Status)
}

func TestSuccessEnvelopes(t *testing.T) {
	ok := Ok("x", "xong")
	assert.True(t, ok.Success)
	assert.Equal(t, http.StatusOK, ok.Status)

	created := Created("x", "")
	assert.True(t, created.Success)
	assert.Equal(t, http.StatusCreated, created.Status)
}
