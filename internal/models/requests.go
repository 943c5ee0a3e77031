package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ListOptions carries the shared paging/sorting query parameters. A zero
// PageSize means "no pagination".
type ListOptions struct {
	Page      int
	PageSize  int
	SortField string
	SortOrder string // "asc" or "desc"
}

// CategoryInput is the create/update payload for a category. The thumbnail
// file travels outside the JSON payload as a multipart field.
type CategoryInput struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	ThumbnailURL string `json:"thumbnail_url"`
	OrderNumber  int    `json:"order_number"`
	OldThumbnail string `json:"old_thumbnail,omitempty"`
}

// SubcategoryInput is the create/update payload for a subcategory.
type SubcategoryInput struct {
	CategoryID uint   `json:"category_id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
}

// ProductInput is the create/update payload for a product line.
type ProductInput struct {
	SubcategoryID uint   `json:"subcategory_id"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Description   string `json:"description"`
}

// ProductVariantInput is the create/update payload for a variant.
type ProductVariantInput struct {
	ProductID uint   `json:"product_id"`
	Label     string `json:"label"`
	ImageURL  string `json:"image_url"`
	OldImage  string `json:"old_image,omitempty"`
}

// ProductColorInput is the create/update payload for a color.
type ProductColorInput struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	ImageURL  string `json:"image_url"`
	OldImage  string `json:"old_image,omitempty"`
}

// ProductItemInput is the create/update payload for a sellable item.
type ProductItemInput struct {
	ProductVariantID uint            `json:"product_variant_id"`
	ProductColorID   uint            `json:"product_color_id"`
	Price            decimal.Decimal `json:"price"`
	Quantity         int             `json:"quantity"`
}

// FeaturedItemInput is the create/update payload for a featured item.
type FeaturedItemInput struct {
	CategoryID       uint `json:"category_id"`
	ProductVariantID uint `json:"product_variant_id"`
	OrderNumber      int  `json:"order_number"`
}

// FlashSaleInput is the create/update payload for a flash sale.
type FlashSaleInput struct {
	Name    string    `json:"name"`
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
	Enable  bool      `json:"enable"`
}

// FlashSaleItemInput is the create/update payload for a flash sale item.
type FlashSaleItemInput struct {
	FlashSaleID   uint            `json:"flash_sale_id"`
	ProductItemID uint            `json:"product_item_id"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	Quantity      int             `json:"quantity"`
}

// BannerInput is the create/update payload for a banner.
type BannerInput struct {
	CategoryID  *uint  `json:"category_id"`
	DesktopURL  string `json:"desktop_url"`
	MobileURL   string `json:"mobile_url"`
	Link        string `json:"link"`
	OrderNumber int    `json:"order_number"`
	OldDesktop  string `json:"old_desktop,omitempty"`
	OldMobile   string `json:"old_mobile,omitempty"`
}

// NewsFeedInput is the create/update payload for an article.
type NewsFeedInput struct {
	Slug         string `json:"slug"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url"`
	Content      string `json:"content"`
	OldThumbnail string `json:"old_thumbnail,omitempty"`
}

// ProfileInput is the update payload for a profile.
type ProfileInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// SignUpInput is the auth sign-up payload.
type SignUpInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// SignInInput is the auth sign-in payload.
type SignInInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AddCartItemInput adds a product item to the caller's cart.
type AddCartItemInput struct {
	ProductItemID uint `json:"product_item_id"`
	Quantity      int  `json:"quantity"`
}

// UpdateQuantityInput changes the quantity of a cart line.
type UpdateQuantityInput struct {
	CartItemID uint `json:"cart_item_id"`
	Quantity   int  `json:"quantity"`
}

// PlaceOrderInput carries the shipping fields of a new order. The line
// items come from the caller's cart, never from the request.
type PlaceOrderInput struct {
	CustomerName  string `json:"customer_name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	Note          string `json:"note"`
	PaymentMethod string `json:"payment_method"`
}
