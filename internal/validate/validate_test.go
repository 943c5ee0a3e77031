package validate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRequire(t *testing.T) {
	v := New()
	v.Require("name", "  ", "trống")
	v.Require("slug", "ao-thun", "trống")

	errs := v.Errors()
	assert.Equal(t, []string{"trống"}, errs["name"])
	assert.NotContains(t, errs, "slug")
}

func TestSlug(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"ao-thun-nam", true},
		{"ao", true},
		{"", true}, // emptiness is Require's job
		{"Ao-Thun", false},
		{"ao_thun", false},
		{"-ao-thun", false},
		{"ao-thun-", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			v := New()
			v.Slug("slug", tt.value, "sai")
			assert.Equal(t, tt.valid, v.Valid())
		})
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"a@b.com", true},
		{"", true},
		{"ab.com", false},
		{"a@", false},
		{"@b.com", false},
		{"a@bcom", false},
	}
	for _, tt := range tests {
		v := New()
		v.Email("email", tt.value, "sai")
		assert.Equal(t, tt.valid, v.Valid(), tt.value)
	}
}

func TestDecimalRules(t *testing.T) {
	v := New()
	v.PositiveDecimal("price", decimal.Zero, "phải dương")
	v.NonNegativeDecimal("discount", decimal.NewFromInt(-1), "không âm")
	v.PositiveDecimal("sale_price", decimal.NewFromFloat(9.99), "phải dương")

	errs := v.Errors()
	assert.Contains(t, errs, "price")
	assert.Contains(t, errs, "discount")
	assert.NotContains(t, errs, "sale_price")
}

func TestTimeOrder(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	v := New()
	v.TimeOrder("end_at", start, start, "phải sau")
	assert.False(t, v.Valid())

	v = New()
	v.TimeOrder("end_at", start, start.Add(time.Hour), "phải sau")
	assert.True(t, v.Valid())
}

func TestMaxLenCountsRunes(t *testing.T) {
	v := New()
	v.MaxLen("name", "áo thun", 7, "quá dài")
	assert.True(t, v.Valid())

	v = New()
	v.MaxLen("name", "áo thun", 6, "quá dài")
	assert.False(t, v.Valid())
}

func TestErrorsNilWhenValid(t *testing.T) {
	v := New()
	assert.Nil(t, v.Errors())
	assert.True(t, v.Valid())

	v.Add("x", "lỗi")
	v.Add("x", "lỗi nữa")
	assert.Len(t, v.Errors()["x"], 2)
}
