package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranduykhanh2004/storely/internal/models"
)

func multipartRequest(t *testing.T, data string, files map[string][]byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("data", data))
	for field, content := range files {
		fw, err := w.CreateFormFile(field, field+".png")
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/category", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestDecodeBodyMultipart(t *testing.T) {
	req := multipartRequest(t, `{"name":"Điện thoại","slug":"dien-thoai"}`, map[string][]byte{
		"thumbnailFile": []byte("png-bytes"),
	})

	var in models.CategoryInput
	require.NoError(t, decodeBody(req, &in))
	assert.Equal(t, "Điện thoại", in.Name)
	assert.Equal(t, "dien-thoai", in.Slug)

	file, err := formFile(req, "thumbnailFile")
	require.NoError(t, err)
	require.NotNil(t, file)
	assert.Equal(t, "thumbnailFile.png", file.Name)
	assert.Equal(t, []byte("png-bytes"), file.Data)

	missing, err := formFile(req, "desktopFile")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDecodeBodyMultipartMissingData(t *testing.T) {
	req := multipartRequest(t, "", nil)

	var in models.CategoryInput
	assert.Error(t, decodeBody(req, &in))
}

func TestDecodeBodyJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/category", bytes.NewReader([]byte(`{"name":"Laptop"}`)))
	req.Header.Set("Content-Type", "application/json")

	var in models.CategoryInput
	require.NoError(t, decodeBody(req, &in))
	assert.Equal(t, "Laptop", in.Name)

	// JSON requests have no multipart form to pull files from.
	file, err := formFile(req, "thumbnailFile")
	require.NoError(t, err)
	assert.Nil(t, file)
}

func TestListOptions(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/category?page=2&pageSize=10&sortField=name&sortOrder=desc", nil)
	opts := listOptions(req)

	assert.Equal(t, 2, opts.Page)
	assert.Equal(t, 10, opts.PageSize)
	assert.Equal(t, "name", opts.SortField)
	assert.Equal(t, "desc", opts.SortOrder)
}

func TestListOptionsDefaultsPage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/category?pageSize=10", nil)
	opts := listOptions(req)

	assert.Equal(t, 1, opts.Page)
	assert.Equal(t, 10, opts.PageSize)
}

func TestListOptionsUnpaginated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/category", nil)
	opts := listOptions(req)

	assert.Zero(t, opts.Page)
	assert.Zero(t, opts.PageSize)
}
