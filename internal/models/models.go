// Package models defines the persisted entities and the request/filter
// types exchanged with the API layer.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups subcategories and anchors banners and featured items.
type Category struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Name          string        `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Slug          string        `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	ThumbnailURL  string        `gorm:"size:512" json:"thumbnail_url"`
	OrderNumber   int           `gorm:"not null;default:0" json:"order_number"`
	Subcategories []Subcategory `gorm:"foreignKey:CategoryID" json:"subcategories,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Subcategory belongs to a category and groups product lines.
type Subcategory struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CategoryID uint      `gorm:"not null;index" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Slug       string    `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Products   []Product `gorm:"foreignKey:SubcategoryID" json:"products,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Product is a product line; the sellable unit is ProductItem.
type Product struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	SubcategoryID uint             `gorm:"not null;index" json:"subcategory_id"`
	Subcategory   *Subcategory     `gorm:"foreignKey:SubcategoryID" json:"subcategory,omitempty"`
	Name          string           `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Slug          string           `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Description   string           `gorm:"type:text" json:"description"`
	Variants      []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
	Colors        []ProductColor   `gorm:"foreignKey:ProductID" json:"colors,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// ProductVariant is a size/model option of a product.
type ProductVariant struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	ProductID uint          `gorm:"not null;index" json:"product_id"`
	Product   *Product      `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Label     string        `gorm:"size:255;not null" json:"label"`
	ImageURL  string        `gorm:"size:512" json:"image_url"`
	Items     []ProductItem `gorm:"foreignKey:ProductVariantID" json:"items,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// ProductColor is a color option of a product.
type ProductColor struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	ImageURL  string    `gorm:"size:512" json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductItem is the atomic sellable unit: a variant+color combination with
// its own price and availability.
type ProductItem struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	ProductVariantID uint            `gorm:"not null;index" json:"product_variant_id"`
	Variant          *ProductVariant `gorm:"foreignKey:ProductVariantID" json:"variant,omitempty"`
	ProductColorID   uint            `gorm:"not null;index" json:"product_color_id"`
	Color            *ProductColor   `gorm:"foreignKey:ProductColorID" json:"color,omitempty"`
	Price            decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	Quantity         int             `gorm:"not null;default:0" json:"quantity"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// FeaturedItem pins a product variant onto a category showcase.
type FeaturedItem struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	CategoryID       uint            `gorm:"not null;index" json:"category_id"`
	Category         *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	ProductVariantID uint            `gorm:"not null;index" json:"product_variant_id"`
	Variant          *ProductVariant `gorm:"foreignKey:ProductVariantID" json:"variant,omitempty"`
	OrderNumber      int             `gorm:"not null;default:0" json:"order_number"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// CartItem is one line of a profile's cart. One row per
// (profile, product item) pair, enforced by the composite unique index.
type CartItem struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	ProfileID     string       `gorm:"size:36;not null;uniqueIndex:idx_cart_profile_item" json:"profile_id"`
	ProductItemID uint         `gorm:"not null;uniqueIndex:idx_cart_profile_item" json:"product_item_id"`
	ProductItem   *ProductItem `gorm:"foreignKey:ProductItemID" json:"product_item,omitempty"`
	Quantity      int          `gorm:"not null" json:"quantity"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// Order statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipping  = "shipping"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order is a placed order with its shipping and payment fields.
type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	ProfileID     string          `gorm:"size:36;not null;index" json:"profile_id"`
	Status        string          `gorm:"size:32;not null;default:pending" json:"status"`
	PaymentMethod string          `gorm:"size:32;not null" json:"payment_method"`
	PaymentStatus string          `gorm:"size:32;not null;default:unpaid" json:"payment_status"`
	CustomerName  string          `gorm:"size:255;not null" json:"customer_name"`
	Phone         string          `gorm:"size:32;not null" json:"phone"`
	Email         string          `gorm:"size:255" json:"email"`
	Address       string          `gorm:"size:512;not null" json:"address"`
	Note          string          `gorm:"type:text" json:"note"`
	Total         decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"total"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// OrderItem snapshots a cart line at order time. The display fields are
// denormalized on purpose: later catalog edits must not change them.
type OrderItem struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	OrderID       uint            `gorm:"not null;index" json:"order_id"`
	ProductItemID uint            `gorm:"not null" json:"product_item_id"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	ProductName   string          `gorm:"size:255;not null" json:"product_name"`
	ColorName     string          `gorm:"size:255" json:"color_name"`
	VariantLabel  string          `gorm:"size:255" json:"variant_label"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"unit_price"`
	ThumbnailURL  string          `gorm:"size:512" json:"thumbnail_url"`
	CreatedAt     time.Time       `json:"created_at"`
}

// FlashSale is a time-windowed sale. Active = Enable && now in window.
type FlashSale struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	StartAt   time.Time       `gorm:"not null;index" json:"start_at"`
	EndAt     time.Time       `gorm:"not null;index" json:"end_at"`
	Enable    bool            `gorm:"not null;default:false" json:"enable"`
	Items     []FlashSaleItem `gorm:"foreignKey:FlashSaleID" json:"items,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// FlashSaleItem puts a product item on sale with a capped quantity.
type FlashSaleItem struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	FlashSaleID   uint            `gorm:"not null;index" json:"flash_sale_id"`
	ProductItemID uint            `gorm:"not null;index" json:"product_item_id"`
	ProductItem   *ProductItem    `gorm:"foreignKey:ProductItemID" json:"product_item,omitempty"`
	SalePrice     decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"sale_price"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Banner is a display-ordered image pair, optionally tied to a category.
type Banner struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CategoryID  *uint     `gorm:"index" json:"category_id"`
	Category    *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	DesktopURL  string    `gorm:"size:512;not null" json:"desktop_url"`
	MobileURL   string    `gorm:"size:512;not null" json:"mobile_url"`
	Link        string    `gorm:"size:512" json:"link"`
	OrderNumber int       `gorm:"not null;default:0" json:"order_number"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewsFeed is a standalone HTML article.
type NewsFeed struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Slug         string    `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	ThumbnailURL string    `gorm:"size:512" json:"thumbnail_url"`
	Content      string    `gorm:"type:longtext" json:"content"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile roles.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Profile is the user record, keyed by the Supabase user UUID.
type Profile struct {
	ID        string    `gorm:"size:36;primaryKey" json:"id"`
	Name      string    `gorm:"size:255" json:"name"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Phone     string    `gorm:"size:32" json:"phone"`
	Address   string    `gorm:"size:512" json:"address"`
	Role      string    `gorm:"size:32;not null;default:customer" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin reports whether the profile has the admin role.
func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}
