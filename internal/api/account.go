package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tranduykhanh2004/storely/internal/auth"
	"github.com/tranduykhanh2004/storely/internal/models"
	"github.com/tranduykhanh2004/storely/internal/response"
)

// Auth

func (a *App) signUp(w http.ResponseWriter, r *http.Request) {
	var in models.SignUpInput
	if err := decodeBody(r, &in); err != nil {
		response.BadRequest("Dữ liệu không hợp lệ").Write(w)
		return
	}
	a.auth.SignUp(r.Context(), &in).Write(w)
}

func (a *App) signIn(w http.ResponseWriter, r *http.Request) {
	var in models.SignInInput
	if err := decodeBody(r, &in); err != nil {
		response.BadRequest("Dữ liệu không hợp lệ").Write(w)
		return
	}
	a.auth.SignIn(r.Context(), &in).Write(w)
}

func (a *App) signOut(w http.ResponseWriter, r *http.Request) {
	a.auth.SignOut(r.Context(), auth.Token(r.Context())).Write(w)
}

// me returns the caller's profile, resolving the bearer token.
func (a *App) me(w http.ResponseWriter, r *http.Request) {
	a.guard.IsUser(r.Context()).Write(w)
}

func (a *App) setRole(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	id := mux.Vars(r)["id"]
	if id == "" {
		response.BadRequest("ID không hợp lệ").Write(w)
		return
	}
	var in struct {
		Role string `json:"role"`
	}
	if err := decodeBody(r, &in); err != nil {
		response.BadRequest("Dữ liệu không hợp lệ").Write(w)
		return
	}
	a.profiles.SetRole(r.Context(), id, in.Role).Write(w)
}

// Profiles

func (a *App) listProfiles(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	filter := models.ProfileFilter{
		Keyword: r.URL.Query().Get("keyword"),
		Role:    r.URL.Query().Get("role"),
	}
	a.profiles.GetAll(r.Context(), filter, listOptions(r)).Write(w)
}

// getProfile serves a profile to its owner or to an admin.
func (a *App) getProfile(w http.ResponseWriter, r *http.Request) {
	profileID, ok := a.requireUser(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]
	if id != profileID {
		if env := a.guard.IsAdmin(r.Context()); !env.Success {
			env.Write(w)
			return
		}
	}
	a.profiles.GetByID(r.Context(), id).Write(w)
}

func (a *App) updateProfile(w http.ResponseWriter, r *http.Request) {
	profileID, ok := a.requireUser(w, r)
	if !ok {
		return
	}
	var in models.ProfileInput
	if err := decodeBody(r, &in); err != nil {
		response.BadRequest("Dữ liệu không hợp lệ").Write(w)
		return
	}
	a.profiles.Update(r.Context(), profileID, &in).Write(w)
}

// Storage

func (a *App) uploadFile(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.BadRequest("Dữ liệu không hợp lệ").Write(w)
		return
	}
	file, err := formFile(r, "file")
	if err != nil {
		response.BadRequest("Tệp tải lên không hợp lệ").Write(w)
		return
	}
	a.storage.UploadEnvelope(r.Context(), file).Write(w)
}

func (a *App) deleteFile(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}
	var in struct {
		URL string `json:"url"`
	}
	if err := decodeBody(r, &in); err != nil {
		response.BadRequest("Dữ liệu không hợp lệ").Write(w)
		return
	}
	a.storage.DeleteByURL(r.Context(), in.URL).Write(w)
}
