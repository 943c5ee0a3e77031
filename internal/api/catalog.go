package api

import (
	"net/http"

	"github.com/tranduykhanh2004/storely/internal/models"
	"github.com/tranduykhanh2004/storely/internal/response"
)

// Category

func (a *App) listCategories(w http.ResponseWriter, r *http.Request) {
	filter := models.CategoryFilter{Keyword: r.URL.Query().Get("keyword")}
	a.categories.GetAll(r.Context(), filter, listOptions(r)).Write(w)
}

func (a *App) getCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.BadRequest("ID không hợp lệ").Write(w)
		return
	}
	a.categories.GetByID(r.Context(), id).Write(w)
}

func (a *App) createCategory(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	var in models.CategoryInput
	if err := decodeBody(r, &in); err != nil {
		response.BadRequest("Dữ liệu không hợp lệ").Write(w)
		return
	}
	thumb, err := formFile(r, "thumbnailFile")
	if err != nil {
		response.BadRequest("Tệp tải lên không hợp lệ").Write(w)
		return
	}
	a.categories.Create(r.Context(), &in, thumb).Write(w)
}

func (a *App) updateCategory(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	id, ok := pathID(r)
	if !ok {
		response.BadRequest("ID không hợp lệ").Write(w)
		return
	}
	var in models.CategoryInput
	if err := decodeBody(r, &in); err != nil {
		response.BadRequest("Dữ liệu không hợp lệ").Write(w)
		return
	}
	thumb, err := formFile(r, "thumbnailFile")
	if err != nil {
		response.BadRequest("Tệp tải lên không hợp lệ").Write(w)
		return
	}
	a.categories.Update(r.Context(), id, &in, thumb).Write(w)
}

func (a *App) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	id, ok := pathID(r)
	if !ok {
		response.BadRequest("ID không hợp lệ").Write(w)
		return
	}
	a.categories.Delete(r.Context(), id).Write(w)
}

// Subcategory

func (a *App) listSubcategories(w http.ResponseWriter, r *http.Request) {
	filter := models.SubcategoryFilter{
		Keyword:    r.URL.Query().Get("keyword"),
		CategoryID: queryUint(r, "categoryId"),
	}
	a.subcategories.GetAll(r.Context(), filter, listOptions(r)).Write(w)
}

func (a *App) getSubcategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.BadRequest("ID không hợp lệ").Write(w)
		return
	}
	a.subcategories.GetByID(r.Context(), id).Write(w)
}

func (a *App) createSubcategory(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	var in models.SubcategoryInput
	if err := decodeBody(r, &in); err != nil {
		response.BadRequest("Dữ liệu không hợp lệ").Write(w)
		return
	}
	a.subcategories.Create(r.Context(), &in).Write(w)
}

func (a *App) updateSubcategory(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	id, ok := pathID(r)
	if !ok {
		response.BadRequest("ID không hợp lệ").Write(w)
		return
	}
	var in models.SubcategoryInput
	if err := decodeBody(r, &in); err != nil {
		response.BadRequest("Dữ liệu không hợp lệ").Write(w)
		return
	}
	a.subcategories.Update(r.Context(), id, &in).Write(w)
}

func (a *App) deleteSubcategory(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	id, ok := pathID(r)
	if !ok {
		response.BadRequest("ID không hợp lệ").Write(w)
		return
	}
	a.subcategories.Delete(r.Context(), id).Write(w)
}

// Product

func (a *App) listProducts(w http.ResponseWriter, r *http.Request) {
	filter := models.ProductFilter{
		Keyword:       r.URL.Query().Get("keyword"),
		SubcategoryID: queryUint(r, "subcategoryId"),
		CategoryID:    queryUint(r, "categoryId"),
	}
	a.products.GetAll(r.Context(), filter, listOptions(r)).Write(w)
}

func (a *App) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.BadRequest("ID không hợp lệ").Write(w)
		return
	}
	a.products.GetByID(r.Context(), id).Write(w)
}

func (a *App) createProduct(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	var in models.ProductInput
	if err := decodeBody(r, &in); err != nil {
		response.BadRequest("Dữ liệu không hợp lệ").Write(w)
		return
	}
	a.products.Create(r.Context(), &in).Write(w)
}

func (a *App) updateProduct(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	id, ok := pathID(r)
	if !ok {
		response.BadRequest("ID không hợp lệ").Write(w)
		return
	}
	var in models.ProductInput
	if err := decodeBody(r, &in); err != nil {
		response.BadRequest("Dữ liệu không hợp lệ").Write(w)
		return
	}
	a.products.Update(r.Context(), id, &in).Write(w)
}

func (a *App) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	id, ok := pathID(r)
	if !ok {
		response.BadRequest("ID không hợp lệ").Write(w)
		return
	}
	a.products.Delete(r.Context(), id).Write(w)
}

// Product variant

func (a *App) listProductVariants(w http.ResponseWriter, r *http.Request) {
	filter := models.ProductVariantFilter{
		Keyword:   r.URL.Query().Get("keyword"),
		ProductID: queryUint(r, "productId"),
	}
	a.productVariants.GetAll(r.Context(), filter, listOptions(r)).Write(w)
}

func (a *App) getProductVariant(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.BadRequest("ID không hợp lệ").Write(w)
		return
	}
	a.productVariants.GetByID(r.Context(), id).Write(w)
}

func (a *App) createProductVariant(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	var in models.ProductVariantInput
	if err := decodeBody(r, &in); err != nil {
		response.BadRequest("Dữ liệu không hợp lệ").Write(w)
		return
	}
	image, err := formFile(r, "imageFile")
	if err != nil {
		response.BadRequest("Tệp tải lên không hợp lệ").Write(w)
		return
	}
	a.productVariants.Create(r.Context(), &in, image).Write(w)
}

func (a *App) updateProductVariant(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	id, ok := pathID(r)
	if !ok {
		response.BadRequest("ID không hợp lệ").Write(w)
		return
	}
	var in models.ProductVariantInput
	if err := decodeBody(r, &in); err != nil {
		response.BadRequest("Dữ liệu không hợp lệ").Write(w)
		return
	}
	image, err := formFile(r, "imageFile")
	if err != nil {
		response.BadRequest("Tệp tải lên không hợp lệ").Write(w)
		return
	}
	a.productVariants.Update(r.Context(), id, &in, image).Write(w)
}

func (a *App) deleteProductVariant(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	id, ok := pathID(r)
	if !ok {
		response.BadRequest("ID không hợp lệ").Write(w)
		return
	}
	a.productVariants.Delete(r.Context(), id).Write(w)
}

// Product color

func (a *App) listProductColors(w http.ResponseWriter, r *http.Request) {
	filter := models.ProductColorFilter{
		Keyword:   r.URL.Query().Get("keyword"),
		ProductID: queryUint(r, "productId"),
	}
	a.productColors.GetAll(r.Context(), filter, listOptions(r)).Write(w)
}

func (a *App) getProductColor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.BadRequest("ID không hợp lệ").Write(w)
		return
	}
	a.productColors.GetByID(r.Context(), id).Write(w)
}

func (a *App) createProductColor(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	var in models.ProductColorInput
	if err := decodeBody(r, &in); err != nil {
		response.BadRequest("Dữ liệu không hợp lệ").Write(w)
		return
	}
	image, err := formFile(r, "imageFile")
	if err != nil {
		response.BadRequest("Tệp tải lên không hợp lệ").Write(w)
		return
	}
	a.productColors.Create(r.Context(), &in, image).Write(w)
}

func (a *App) updateProductColor(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	id, ok := pathID(r)
	if !ok {
		response.BadRequest("ID không hợp lệ").Write(w)
		return
	}
	var in models.ProductColorInput
	if err := decodeBody(r, &in); err != nil {
		response.BadRequest("Dữ liệu không hợp lệ").Write(w)
		return
	}
	image, err := formFile(r, "imageFile")
	if err != nil {
		response.BadRequest("Tệp tải lên không hợp lệ").Write(w)
		return
	}
	a.productColors.Update(r.Context(), id, &in, image).Write(w)
}

func (a *App) deleteProductColor(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	id, ok := pathID(r)
	if !ok {
		response.BadRequest("ID không hợp lệ").Write(w)
		return
	}
	a.productColors.Delete(r.Context(), id).Write(w)
}

// Product item

func (a *App) listProductItems(w http.ResponseWriter, r *http.Request) {
	filter := models.ProductItemFilter{
		ProductVariantID: queryUint(r, "productVariantId"),
		ProductColorID:   queryUint(r, "productColorId"),
	}
	a.productItems.GetAll(r.Context(), filter, listOptions(r)).Write(w)
}

func (a *App) getProductItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.BadRequest("ID không hợp lệ").Write(w)
		return
	}
	a.productItems.GetByID(r.Context(), id).Write(w)
}

func (a *App) createProductItem(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	var in models.ProductItemInput
	if err := decodeBody(r, &in); err != nil {
		response.BadRequest("Dữ liệu không hợp lệ").Write(w)
		return
	}
	a.productItems.Create(r.Context(), &in).Write(w)
}

func (a *App) updateProductItem(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	id, ok := pathID(r)
	if !ok {
		response.BadRequest("ID không hợp lệ").Write(w)
		return
	}
	var in models.ProductItemInput
	if err := decodeBody(r, &in); err != nil {
		response.BadRequest("Dữ liệu không hợp lệ").Write(w)
		return
	}
	a.productItems.Update(r.Context(), id, &in).Write(w)
}

func (a *App) deleteProductItem(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	id, ok := pathID(r)
	if !ok {
		response.BadRequest("ID không hợp lệ").Write(w)
		return
	}
	a.productItems.Delete(r.Context(), id).Write(w)
}

// Featured item

func (a *App) listFeaturedItems(w http.ResponseWriter, r *http.Request) {
	filter := models.FeaturedItemFilter{CategoryID: queryUint(r, "categoryId")}
	a.featuredItems.GetAll(r.Context(), filter, listOptions(r)).Write(w)
}

func (a *App) getFeaturedItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.BadRequest("ID không hợp lệ").Write(w)
		return
	}
	a.featuredItems.GetByID(r.Context(), id).Write(w)
}

func (a *App) createFeaturedItem(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	var in models.FeaturedItemInput
	if err := decodeBody(r, &in); err != nil {
		response.BadRequest("Dữ liệu không hợp lệ").Write(w)
		return
	}
	a.featuredItems.Create(r.Context(), &in).Write(w)
}

func (a *App) updateFeaturedItem(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	id, ok := pathID(r)
	if !ok {
		response.BadRequest("ID không hợp lệ").Write(w)
		return
	}
	var in models.FeaturedItemInput
	if err := decodeBody(r, &in); err != nil {
		response.BadRequest("Dữ liệu không hợp lệ").Write(w)
		return
	}
	a.featuredItems.Update(r.Context(), id, &in).Write(w)
}

func (a *App) deleteFeaturedItem(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	id, ok := pathID(r)
	if !ok {
		response.BadRequest("ID không hợp lệ").Write(w)
		return
	}
	a.featuredItems.Delete(r.Context(), id).Write(w)
}
