package models

// Typed list filters. Each filter enumerates the predicates its entity
// supports instead of passing an open-ended map to the persistence layer.

// CategoryFilter filters categories by name keyword.
type CategoryFilter struct {
	Keyword string
}

// SubcategoryFilter filters subcategories.
type SubcategoryFilter struct {
	Keyword    string
	CategoryID uint
}

// ProductFilter filters product lines.
type ProductFilter struct {
	Keyword       string
	SubcategoryID uint
	CategoryID    uint
}

// ProductVariantFilter filters variants.
type ProductVariantFilter struct {
	Keyword   string
	ProductID uint
}

// ProductColorFilter filters colors.
type ProductColorFilter struct {
	Keyword   string
	ProductID uint
}

// ProductItemFilter filters sellable items.
type ProductItemFilter struct {
	ProductVariantID uint
	ProductColorID   uint
}

// FeaturedItemFilter filters featured items.
type FeaturedItemFilter struct {
	CategoryID uint
}

// FlashSaleFilter filters flash sales by name keyword.
type FlashSaleFilter struct {
	Keyword string
}

// BannerFilter filters banners. Keyword matches the category name OR the
// banner link (case-insensitive containment on either).
type BannerFilter struct {
	Keyword    string
	CategoryID uint
}

// NewsFeedFilter filters articles by title keyword.
type NewsFeedFilter struct {
	Keyword string
}

// OrderFilter filters orders.
type OrderFilter struct {
	ProfileID string
	Status    string
	Keyword   string // matches customer name or phone
}

// ProfileFilter filters profiles by name/email keyword and role.
type ProfileFilter struct {
	Keyword string
	Role    string
}
