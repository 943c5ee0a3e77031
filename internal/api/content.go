package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tranduykhanh2004/storely/internal/models"
	"github.com/tranduykhanh2004/storely/internal/response"
)

// Flash sale

func (a *App) getActiveFlashSale(w http.ResponseWriter, r *http.Request) {
	a.flashSales.GetActive(r.Context()).Write(w)
}

func (a *App) listFlashSales(w http.ResponseWriter, r *http.Request) {
	filter := models.FlashSaleFilter{Keyword: r.URL.Query().Get("keyword")}
	a.flashSales.GetAll(r.Context(), filter, listOptions(r)).Write(w)
}

func (a *App) getFlashSale(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.BadRequest("ID không hợp lệ").Write(w)
		return
	}
	a.flashSales.GetByID(r.Context(), id).Write(w)
}

func (a *App) createFlashSale(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	var in models.FlashSaleInput
	if err := decodeBody(r, &in); err != nil {
		response.BadRequest("Dữ liệu không hợp lệ").Write(w)
		return
	}
	a.flashSales.Create(r.Context(), &in).Write(w)
}

func (a *App) updateFlashSale(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	id, ok := pathID(r)
	if !ok {
		response.BadRequest("ID không hợp lệ").Write(w)
		return
	}
	var in models.FlashSaleInput
	if err := decodeBody(r, &in); err != nil {
		response.BadRequest("Dữ liệu không hợp lệ").Write(w)
		return
	}
	a.flashSales.Update(r.Context(), id, &in).Write(w)
}

func (a *App) deleteFlashSale(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	id, ok := pathID(r)
	if !ok {
		response.BadRequest("ID không hợp lệ").Write(w)
		return
	}
	a.flashSales.Delete(r.Context(), id).Write(w)
}

func (a *App) addFlashSaleItem(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	var in models.FlashSaleItemInput
	if err := decodeBody(r, &in); err != nil {
		response.BadRequest("Dữ liệu không hợp lệ").Write(w)
		return
	}
	a.flashSales.AddItem(r.Context(), &in).Write(w)
}

func (a *App) updateFlashSaleItem(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	id, ok := pathID(r)
	if !ok {
		response.BadRequest("ID không hợp lệ").Write(w)
		return
	}
	var in models.FlashSaleItemInput
	if err := decodeBody(r, &in); err != nil {
		response.BadRequest("Dữ liệu không hợp lệ").Write(w)
		return
	}
	a.flashSales.UpdateItem(r.Context(), id, &in).Write(w)
}

func (a *App) deleteFlashSaleItem(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	id, ok := pathID(r)
	if !ok {
		response.BadRequest("ID không hợp lệ").Write(w)
		return
	}
	a.flashSales.DeleteItem(r.Context(), id).Write(w)
}

// Banner

func (a *App) listBanners(w http.ResponseWriter, r *http.Request) {
	filter := models.BannerFilter{
		Keyword:    r.URL.Query().Get("keyword"),
		CategoryID: queryUint(r, "categoryId"),
	}
	a.banners.GetAll(r.Context(), filter, listOptions(r)).Write(w)
}

func (a *App) getBanner(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.BadRequest("ID không hợp lệ").Write(w)
		return
	}
	a.banners.GetByID(r.Context(), id).Write(w)
}

func (a *App) createBanner(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	var in models.BannerInput
	if err := decodeBody(r, &in); err != nil {
		response.BadRequest("Dữ liệu không hợp lệ").Write(w)
		return
	}
	desktop, err := formFile(r, "desktopFile")
	if err != nil {
		response.BadRequest("Tệp tải lên không hợp lệ").Write(w)
		return
	}
	mobile, err := formFile(r, "mobileFile")
	if err != nil {
		response.BadRequest("Tệp tải lên không hợp lệ").Write(w)
		return
	}
	a.banners.Create(r.Context(), &in, desktop, mobile).Write(w)
}

func (a *App) updateBanner(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	id, ok := pathID(r)
	if !ok {
		response.BadRequest("ID không hợp lệ").Write(w)
		return
	}
	var in models.BannerInput
	if err := decodeBody(r, &in); err != nil {
		response.BadRequest("Dữ liệu không hợp lệ").Write(w)
		return
	}
	desktop, err := formFile(r, "desktopFile")
	if err != nil {
		response.BadRequest("Tệp tải lên không hợp lệ").Write(w)
		return
	}
	mobile, err := formFile(r, "mobileFile")
	if err != nil {
		response.BadRequest("Tệp tải lên không hợp lệ").Write(w)
		return
	}
	a.banners.Update(r.Context(), id, &in, desktop, mobile).Write(w)
}

func (a *App) deleteBanner(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	id, ok := pathID(r)
	if !ok {
		response.BadRequest("ID không hợp lệ").Write(w)
		return
	}
	a.banners.Delete(r.Context(), id).Write(w)
}

// News feed

func (a *App) listNewsFeeds(w http.ResponseWriter, r *http.Request) {
	filter := models.NewsFeedFilter{Keyword: r.URL.Query().Get("keyword")}
	a.newsFeeds.GetAll(r.Context(), filter, listOptions(r)).Write(w)
}

func (a *App) getNewsFeed(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.BadRequest("ID không hợp lệ").Write(w)
		return
	}
	a.newsFeeds.GetByID(r.Context(), id).Write(w)
}

func (a *App) getNewsFeedBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	if slug == "" {
		response.BadRequest("Slug không hợp lệ").Write(w)
		return
	}
	a.newsFeeds.GetBySlug(r.Context(), slug).Write(w)
}

func (a *App) createNewsFeed(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	var in models.NewsFeedInput
	if err := decodeBody(r, &in); err != nil {
		response.BadRequest("Dữ liệu không hợp lệ").Write(w)
		return
	}
	thumb, err := formFile(r, "thumbnailFile")
	if err != nil {
		response.BadRequest("Tệp tải lên không hợp lệ").Write(w)
		return
	}
	a.newsFeeds.Create(r.Context(), &in, thumb).Write(w)
}

func (a *App) updateNewsFeed(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	id, ok := pathID(r)
	if !ok {
		response.BadRequest("ID không hợp lệ").Write(w)
		return
	}
	var in models.NewsFeedInput
	if err := decodeBody(r, &in); err != nil {
		response.BadRequest("Dữ liệu không hợp lệ").Write(w)
		return
	}
	thumb, err := formFile(r, "thumbnailFile")
	if err != nil {
		response.BadRequest("Tệp tải lên không hợp lệ").Write(w)
		return
	}
	a.newsFeeds.Update(r.Context(), id, &in, thumb).Write(w)
}

func (a *App) deleteNewsFeed(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	id, ok := pathID(r)
	if !ok {
		response.BadRequest("ID không hợp lệ").Write(w)
		return
	}
	a.newsFeeds.Delete(r.Context(), id).Write(w)
}
