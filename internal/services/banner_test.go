package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/tranduykhanh2004/storely/internal/models"
)

func TestBannerGetAllQualifiesSortOnJoin(t *testing.T) {
	gdb, mock := newTestDB(t)
	svc := NewBannerService(gdb, nil)

	// Keyword search joins categories, so order_number exists on both
	// sides and the sort column must be qualified.
	mock.ExpectQuery("FROM `banners` LEFT JOIN categories .* ORDER BY banners\\.order_number asc").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	env := svc.GetAll(context.Background(), models.BannerFilter{Keyword: "sale"}, models.ListOptions{
		SortField: "order_number",
		SortOrder: "asc",
	})

	assert.True(t, env.Success)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBannerCreateRequiresImages(t *testing.T) {
	gdb, _ := newTestDB(t)
	svc := NewBannerService(gdb, nil)

	env := svc.Create(context.Background(), &models.BannerInput{}, nil, nil)

	assert.Equal(t, http.StatusBadRequest, env.Status)
	assert.Contains(t, env.Errors, "desktop_url")
	assert.Contains(t, env.Errors, "mobile_url")
}
