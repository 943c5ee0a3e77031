// Package api wires the HTTP routes to the service layer. Handlers parse
// the request, run the role guard, call one service operation and write the
// returned envelope verbatim.
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tranduykhanh2004/storely/internal/auth"
	"github.com/tranduykhanh2004/storely/internal/models"
	"github.com/tranduykhanh2004/storely/internal/response"
	"github.com/tranduykhanh2004/storely/internal/services"
)

// App holds the services behind the HTTP surface.
type App struct {
	guard *auth.Guard

	auth            *services.AuthService
	profiles        *services.ProfileService
	categories      *services.CategoryService
	subcategories   *services.SubcategoryService
	products        *services.ProductService
	productVariants *services.ProductVariantService
	productColors   *services.ProductColorService
	productItems    *services.ProductItemService
	featuredItems   *services.FeaturedItemService
	flashSales      *services.FlashSaleService
	banners         *services.BannerService
	newsFeeds       *services.NewsFeedService
	cart            *services.CartService
	orders          *services.OrderService
	storage         *services.StorageService
}

// Services groups the dependencies of NewApp.
type Services struct {
	Guard           *auth.Guard
	Auth            *services.AuthService
	Profiles        *services.ProfileService
	Categories      *services.CategoryService
	Subcategories   *services.SubcategoryService
	Products        *services.ProductService
	ProductVariants *services.ProductVariantService
	ProductColors   *services.ProductColorService
	ProductItems    *services.ProductItemService
	FeaturedItems   *services.FeaturedItemService
	FlashSales      *services.FlashSaleService
	Banners         *services.BannerService
	NewsFeeds       *services.NewsFeedService
	Cart            *services.CartService
	Orders          *services.OrderService
	Storage         *services.StorageService
}

// NewApp creates the route handler set.
func NewApp(s Services) *App {
	return &App{
		guard:           s.Guard,
		auth:            s.Auth,
		profiles:        s.Profiles,
		categories:      s.Categories,
		subcategories:   s.Subcategories,
		products:        s.Products,
		productVariants: s.ProductVariants,
		productColors:   s.ProductColors,
		productItems:    s.ProductItems,
		featuredItems:   s.FeaturedItems,
		flashSales:      s.FlashSales,
		banners:         s.Banners,
		newsFeeds:       s.NewsFeeds,
		cart:            s.Cart,
		orders:          s.Orders,
		storage:         s.Storage,
	}
}

// SetupRoutes registers every route on the router. Public reads carry no
// guard; mutations are admin; cart and order routes are per-user.
func (a *App) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/health", a.health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// Auth
	api.HandleFunc("/auth/signup", a.signUp).Methods(http.MethodPost)
	api.HandleFunc("/auth/signin", a.signIn).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", a.signOut).Methods(http.MethodPost)
	api.HandleFunc("/auth/me", a.me).Methods(http.MethodGet)
	api.HandleFunc("/auth/set-role/{id}", a.setRole).Methods(http.MethodPost)

	// Profiles (back office; self-update)
	api.HandleFunc("/profile", a.listProfiles).Methods(http.MethodGet)
	api.HandleFunc("/profile/{id}", a.getProfile).Methods(http.MethodGet)
	api.HandleFunc("/profile", a.updateProfile).Methods(http.MethodPut)

	// Catalog
	api.HandleFunc("/category", a.listCategories).Methods(http.MethodGet)
	api.HandleFunc("/category/{id}", a.getCategory).Methods(http.MethodGet)
	api.HandleFunc("/category", a.createCategory).Methods(http.MethodPost)
	api.HandleFunc("/category/{id}", a.updateCategory).Methods(http.MethodPut)
	api.HandleFunc("/category/{id}", a.deleteCategory).Methods(http.MethodDelete)

	api.HandleFunc("/subcategory", a.listSubcategories).Methods(http.MethodGet)
	api.HandleFunc("/subcategory/{id}", a.getSubcategory).Methods(http.MethodGet)
	api.HandleFunc("/subcategory", a.createSubcategory).Methods(http.MethodPost)
	api.HandleFunc("/subcategory/{id}", a.updateSubcategory).Methods(http.MethodPut)
	api.HandleFunc("/subcategory/{id}", a.deleteSubcategory).Methods(http.MethodDelete)

	api.HandleFunc("/product", a.listProducts).Methods(http.MethodGet)
	api.HandleFunc("/product/{id}", a.getProduct).Methods(http.MethodGet)
	api.HandleFunc("/product", a.createProduct).Methods(http.MethodPost)
	api.HandleFunc("/product/{id}", a.updateProduct).Methods(http.MethodPut)
	api.HandleFunc("/product/{id}", a.deleteProduct).Methods(http.MethodDelete)

	api.HandleFunc("/product-variant", a.listProductVariants).Methods(http.MethodGet)
	api.HandleFunc("/product-variant/{id}", a.getProductVariant).Methods(http.MethodGet)
	api.HandleFunc("/product-variant", a.createProductVariant).Methods(http.MethodPost)
	api.HandleFunc("/product-variant/{id}", a.updateProductVariant).Methods(http.MethodPut)
	api.HandleFunc("/product-variant/{id}", a.deleteProductVariant).Methods(http.MethodDelete)

	api.HandleFunc("/product-color", a.listProductColors).Methods(http.MethodGet)
	api.HandleFunc("/product-color/{id}", a.getProductColor).Methods(http.MethodGet)
	api.HandleFunc("/product-color", a.createProductColor).Methods(http.MethodPost)
	api.HandleFunc("/product-color/{id}", a.updateProductColor).Methods(http.MethodPut)
	api.HandleFunc("/product-color/{id}", a.deleteProductColor).Methods(http.MethodDelete)

	api.HandleFunc("/product-item", a.listProductItems).Methods(http.MethodGet)
	api.HandleFunc("/product-item/{id}", a.getProductItem).Methods(http.MethodGet)
	api.HandleFunc("/product-item", a.createProductItem).Methods(http.MethodPost)
	api.HandleFunc("/product-item/{id}", a.updateProductItem).Methods(http.MethodPut)
	api.HandleFunc("/product-item/{id}", a.deleteProductItem).Methods(http.MethodDelete)

	api.HandleFunc("/featured-item", a.listFeaturedItems).Methods(http.MethodGet)
	api.HandleFunc("/featured-item/{id}", a.getFeaturedItem).Methods(http.MethodGet)
	api.HandleFunc("/featured-item", a.createFeaturedItem).Methods(http.MethodPost)
	api.HandleFunc("/featured-item/{id}", a.updateFeaturedItem).Methods(http.MethodPut)
	api.HandleFunc("/featured-item/{id}", a.deleteFeaturedItem).Methods(http.MethodDelete)

	// Flash sales
	api.HandleFunc("/flash-sale/active", a.getActiveFlashSale).Methods(http.MethodGet)
	api.HandleFunc("/flash-sale", a.listFlashSales).Methods(http.MethodGet)
	api.HandleFunc("/flash-sale/{id}", a.getFlashSale).Methods(http.MethodGet)
	api.HandleFunc("/flash-sale", a.createFlashSale).Methods(http.MethodPost)
	api.HandleFunc("/flash-sale/{id}", a.updateFlashSale).Methods(http.MethodPut)
	api.HandleFunc("/flash-sale/{id}", a.deleteFlashSale).Methods(http.MethodDelete)
	api.HandleFunc("/flash-sale-item", a.addFlashSaleItem).Methods(http.MethodPost)
	api.HandleFunc("/flash-sale-item/{id}", a.updateFlashSaleItem).Methods(http.MethodPut)
	api.HandleFunc("/flash-sale-item/{id}", a.deleteFlashSaleItem).Methods(http.MethodDelete)

	// Content
	api.HandleFunc("/banner", a.listBanners).Methods(http.MethodGet)
	api.HandleFunc("/banner/{id}", a.getBanner).Methods(http.MethodGet)
	api.HandleFunc("/banner", a.createBanner).Methods(http.MethodPost)
	api.HandleFunc("/banner/{id}", a.updateBanner).Methods(http.MethodPut)
	api.HandleFunc("/banner/{id}", a.deleteBanner).Methods(http.MethodDelete)

	api.HandleFunc("/news-feed", a.listNewsFeeds).Methods(http.MethodGet)
	api.HandleFunc("/news-feed/slug/{slug}", a.getNewsFeedBySlug).Methods(http.MethodGet)
	api.HandleFunc("/news-feed/{id}", a.getNewsFeed).Methods(http.MethodGet)
	api.HandleFunc("/news-feed", a.createNewsFeed).Methods(http.MethodPost)
	api.HandleFunc("/news-feed/{id}", a.updateNewsFeed).Methods(http.MethodPut)
	api.HandleFunc("/news-feed/{id}", a.deleteNewsFeed).Methods(http.MethodDelete)

	// Cart
	api.HandleFunc("/cart-item/add-cart-item", a.addCartItem).Methods(http.MethodPost)
	api.HandleFunc("/cart-item/update-quantity", a.updateCartQuantity).Methods(http.MethodPut)
	api.HandleFunc("/cart-item/delete-cart-item/{id}", a.deleteCartItem).Methods(http.MethodDelete)
	api.HandleFunc("/cart-item/get-cart-user", a.getCartUser).Methods(http.MethodGet)
	api.HandleFunc("/cart-item/get-total-quantity", a.getCartTotalQuantity).Methods(http.MethodGet)

	// Orders
	api.HandleFunc("/order/place-order", a.placeOrder).Methods(http.MethodPost)
	api.HandleFunc("/order/get-order-history", a.getOrderHistory).Methods(http.MethodGet)
	api.HandleFunc("/order/get-order-history/{id}", a.getUserOrder).Methods(http.MethodGet)
	api.HandleFunc("/order", a.listOrders).Methods(http.MethodGet)
	api.HandleFunc("/order/{id}", a.getOrder).Methods(http.MethodGet)
	api.HandleFunc("/order/{id}/status", a.updateOrderStatus).Methods(http.MethodPut)

	// Storage passthrough
	api.HandleFunc("/storage", a.uploadFile).Methods(http.MethodPost)
	api.HandleFunc("/storage", a.deleteFile).Methods(http.MethodDelete)
}

func (a *App) health(w http.ResponseWriter, r *http.Request) {
	response.Ok(map[string]string{"status": "ok"}, "").Write(w)
}

// requireAdmin runs the admin guard, writing the failure envelope itself.
func (a *App) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if env := a.guard.IsAdmin(r.Context()); !env.Success {
		env.Write(w)
		return false
	}
	return true
}

// requireUser runs the user guard and returns the caller's profile id.
func (a *App) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	env := a.guard.IsUser(r.Context())
	if !env.Success {
		env.Write(w)
		return "", false
	}
	profile := env.Data.(*models.Profile)
	return profile.ID, true
}
