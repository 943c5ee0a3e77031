// Package response defines the uniform envelope returned by every service
// operation and translated 1:1 into the HTTP response.
package response

import (
	"encoding/json"
	"math"
	"net/http"
)

// Pagination describes the page window of a list result.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// Envelope is the shape of every API response. Success implies Data is
// present and Status is 2xx; on failure Status carries the failure class.
type Envelope struct {
	Success    bool                `json:"success"`
	Data       any                 `json:"data,omitempty"`
	Message    string              `json:"message"`
	Status     int                 `json:"status"`
	Pagination *Pagination         `json:"pagination,omitempty"`
	Errors     map[string][]string `json:"error,omitempty"`
}

// Ok returns a 200 envelope.
func Ok(data any, message string) *Envelope {
	return &Envelope{Success: true, Data: data, Message: message, Status: http.StatusOK}
}

// Created returns a 201 envelope.
func Created(data any, message string) *Envelope {
	return &Envelope{Success: true, Data: data, Message: message, Status: http.StatusCreated}
}

// List returns a 200 envelope with a pagination block. Pass pageSize=0 for
// unpaginated results (the pagination block is omitted).
func List(data any, message string, page, pageSize int, total int64) *Envelope {
	env := Ok(data, message)
	if pageSize > 0 {
		env.Pagination = &Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
		}
	}
	return env
}

// BadRequest returns a 400 envelope with a single message.
func BadRequest(message string) *Envelope {
	return &Envelope{Success: false, Message: message, Status: http.StatusBadRequest}
}

// Validation returns a 400 envelope carrying field-keyed error messages.
func Validation(errors map[string][]string) *Envelope {
	return &Envelope{
		Success: false,
		Message: "Dữ liệu không hợp lệ",
		Status:  http.StatusBadRequest,
		Errors:  errors,
	}
}

// Unauthorized returns a 401 envelope.
func Unauthorized(message string) *Envelope {
	if message == "" {
		message = "Bạn chưa đăng nhập"
	}
	return &Envelope{Success: false, Message: message, Status: http.StatusUnauthorized}
}

// Forbidden returns a 403 envelope.
func Forbidden(message string) *Envelope {
	if message == "" {
		message = "Bạn không có quyền thực hiện thao tác này"
	}
	return &Envelope{Success: false, Message: message, Status: http.StatusForbidden}
}

// NotFound returns a 404 envelope.
func NotFound(message string) *Envelope {
	return &Envelope{Success: false, Message: message, Status: http.StatusNotFound}
}

// Internal returns an opaque 500 envelope. Details belong in the server log,
// never in the message.
func Internal() *Envelope {
	return &Envelope{Success: false, Message: "Đã xảy ra lỗi, vui lòng thử lại sau", Status: http.StatusInternalServerError}
}

// Write emits the envelope as JSON using Status as the wire status code.
func (e *Envelope) Write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status)
	json.NewEncoder(w).Encode(e)
}
