package api

import (
	"net/http"

	"github.com/tranduykhanh2004/storely/internal/models"
	"github.com/tranduykhanh2004/storely/internal/response"
)

// Cart

func (a *App) addCartItem(w http.ResponseWriter, r *http.Request) {
	profileID, ok := a.requireUser(w, r)
	if !ok {
		return
	}
	var in models.AddCartItemInput
	if err := decodeBody(r, &in); err != nil {
		response.BadRequest("Dữ liệu không hợp lệ").Write(w)
		return
	}
	a.cart.AddCartItem(r.Context(), profileID, &in).Write(w)
}

func (a *App) updateCartQuantity(w http.ResponseWriter, r *http.Request) {
	profileID, ok := a.requireUser(w, r)
	if !ok {
		return
	}
	var in models.UpdateQuantityInput
	if err := decodeBody(r, &in); err != nil {
		response.BadRequest("Dữ liệu không hợp lệ").Write(w)
		return
	}
	a.cart.UpdateQuantity(r.Context(), profileID, &in).Write(w)
}

func (a *App) deleteCartItem(w http.ResponseWriter, r *http.Request) {
	profileID, ok := a.requireUser(w, r)
	if !ok {
		return
	}
	id, valid := pathID(r)
	if !valid {
		response.BadRequest("ID không hợp lệ").Write(w)
		return
	}
	a.cart.DeleteCartItem(r.Context(), profileID, id).Write(w)
}

func (a *App) getCartUser(w http.ResponseWriter, r *http.Request) {
	profileID, ok := a.requireUser(w, r)
	if !ok {
		return
	}
	a.cart.GetCartUser(r.Context(), profileID).Write(w)
}

func (a *App) getCartTotalQuantity(w http.ResponseWriter, r *http.Request) {
	profileID, ok := a.requireUser(w, r)
	if !ok {
		return
	}
	a.cart.GetTotalQuantity(r.Context(), profileID).Write(w)
}

// Orders

func (a *App) placeOrder(w http.ResponseWriter, r *http.Request) {
	profileID, ok := a.requireUser(w, r)
	if !ok {
		return
	}
	var in models.PlaceOrderInput
	if err := decodeBody(r, &in); err != nil {
		response.BadRequest("Dữ liệu không hợp lệ").Write(w)
		return
	}
	a.orders.PlaceOrder(r.Context(), profileID, &in).Write(w)
}

func (a *App) getOrderHistory(w http.ResponseWriter, r *http.Request) {
	profileID, ok := a.requireUser(w, r)
	if !ok {
		return
	}
	a.orders.GetOrderHistory(r.Context(), profileID, listOptions(r)).Write(w)
}

func (a *App) getUserOrder(w http.ResponseWriter, r *http.Request) {
	profileID, ok := a.requireUser(w, r)
	if !ok {
		return
	}
	id, valid := pathID(r)
	if !valid {
		response.BadRequest("ID không hợp lệ").Write(w)
		return
	}
	a.orders.GetUserOrder(r.Context(), profileID, id).Write(w)
}

func (a *App) listOrders(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	filter := models.OrderFilter{
		ProfileID: r.URL.Query().Get("profileId"),
		Status:    r.URL.Query().Get("status"),
		Keyword:   r.URL.Query().Get("keyword"),
	}
	a.orders.GetAll(r.Context(), filter, listOptions(r)).Write(w)
}

func (a *App) getOrder(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	id, ok := pathID(r)
	if !ok {
		response.BadRequest("ID không hợp lệ").Write(w)
		return
	}
	a.orders.GetByID(r.Context(), id).Write(w)
}

func (a *App) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	id, ok := pathID(r)
	if !ok {
		response.BadRequest("ID không hợp lệ").Write(w)
		return
	}
	var in struct {
		Status string `json:"status"`
	}
	if err := decodeBody(r, &in); err != nil {
		response.BadRequest("Dữ liệu không hợp lệ").Write(w)
		return
	}
	a.orders.UpdateStatus(r.Context(), id, in.Status).Write(w)
}
