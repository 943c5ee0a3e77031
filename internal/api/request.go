package api

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tranduykhanh2004/storely/internal/models"
	"github.com/tranduykhanh2004/storely/internal/services"
)

const maxUploadBytes = 32 << 20

// decodeBody reads the request payload into dst. JSON bodies decode
// directly; multipart bodies carry the JSON payload in the "data" field with
// files alongside.
func decodeBody(r *http.Request, dst any) error {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return err
		}
		data := r.FormValue("data")
		if data == "" {
			return errors.New("missing data field")
		}
		return json.Unmarshal([]byte(data), dst)
	}
	return json.NewDecoder(r.Body).Decode(dst)
}

// formFile returns the named multipart file, nil when the field is absent.
func formFile(r *http.Request, field string) (*services.UploadFile, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return &services.UploadFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// pathID parses the {id} route variable.
func pathID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// queryUint parses an optional numeric query parameter, 0 when absent.
func queryUint(r *http.Request, name string) uint {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}
	return uint(n)
}

// listOptions reads the shared paging and sorting query parameters.
func listOptions(r *http.Request) models.ListOptions {
	q := r.URL.Query()
	opts := models.ListOptions{
		SortField: q.Get("sortField"),
		SortOrder: q.Get("sortOrder"),
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		opts.Page = page
	}
	if size, err := strconv.Atoi(q.Get("pageSize")); err == nil && size > 0 {
		opts.PageSize = size
	}
	if opts.PageSize > 0 && opts.Page == 0 {
		opts.Page = 1
	}
	return opts
}
