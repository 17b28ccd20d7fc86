package httpserver

import (
	"errors"
	"net/http"

	"frontend_go/internal/domain"
)

type profilePage struct {
	basePage
	Form            domain.ProfileUpdate
	OwnItems        []domain.Item
	PasswordError   string
	PasswordSuccess string
}

func (s *Server) handleProfilePage(w http.ResponseWriter, r *http.Request) {
	page := s.newProfilePage(r)
	if r.URL.Query().Get("updated") == "1" {
		page.Success = "Profile updated successfully"
	}
	s.tpl.Render(w, http.StatusOK, "profile", page)
}

func (s *Server) newProfilePage(r *http.Request) profilePage {
	page := profilePage{basePage: s.newBasePage(r, "Profile")}
	if p := page.Session.Profile; p != nil {
		page.Form = domain.ProfileUpdate{
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Email:     p.Email,
			Phone:     p.Phone,
		}
	}

	items, err := s.backend.OwnItems(r.Context(), page.Session.Token)
	if err != nil {
		// The item list is secondary on this screen; the forms still work.
		page.Error = err.Error()
	}
	page.OwnItems = items
	return page
}

// handleProfileUpdate submits the edit and then re-resolves the session
// profile, so every later render shows the backend's copy.
func (s *Server) handleProfileUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	in := domain.ProfileUpdate{
		FirstName: r.PostFormValue("first_name"),
		LastName:  r.PostFormValue("last_name"),
		Email:     r.PostFormValue("email"),
		Phone:     r.PostFormValue("phone"),
	}

	snap := CurrentSession(r)
	if err := s.backend.UpdateProfile(r.Context(), snap.Token, in); err != nil {
		page := s.newProfilePage(r)
		page.Form = in
		page.Error = err.Error()
		s.tpl.Render(w, http.StatusOK, "profile", page)
		return
	}

	s.sessions.Refresh(r.Context())
	http.Redirect(w, r, "/profile?updated=1", http.StatusSeeOther)
}

// handlePasswordChange enforces the confirmation match before anything goes
// over the wire; a mismatch is a pure client-side validation failure.
func (s *Server) handlePasswordChange(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	in := domain.PasswordChange{
		CurrentPassword: r.PostFormValue("current_password"),
		NewPassword:     r.PostFormValue("new_password"),
		Confirm:         r.PostFormValue("confirm_password"),
	}

	page := s.newProfilePage(r)

	snap := CurrentSession(r)
	if err := s.backend.ChangePassword(r.Context(), snap.Token, in); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			page.PasswordError = "New password and confirmation do not match"
		} else {
			page.PasswordError = err.Error()
		}
		s.tpl.Render(w, http.StatusOK, "profile", page)
		return
	}

	page.PasswordSuccess = "Password changed successfully"
	s.tpl.Render(w, http.StatusOK, "profile", page)
}
