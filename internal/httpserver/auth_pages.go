package httpserver

import (
	"net/http"

	"frontend_go/internal/domain"
)

type authPage struct {
	basePage
	Username string
	Form     domain.RegisterInput
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if s.sessions.Snapshot().IsAuthenticated {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	page := authPage{basePage: basePage{Title: "Login", Session: s.sessions.Snapshot()}}
	if r.URL.Query().Get("registered") == "1" {
		page.Success = "Account created. Please log in."
	}
	s.tpl.Render(w, http.StatusOK, "login", page)
}

func (s *Server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	creds := domain.Credentials{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	page := authPage{
		basePage: basePage{Title: "Login", Session: s.sessions.Snapshot()},
		Username: creds.Username,
	}

	if creds.Username == "" || creds.Password == "" {
		page.Error = "Username and password are required"
		s.tpl.Render(w, http.StatusOK, "login", page)
		return
	}

	token, err := s.backend.Login(r.Context(), creds)
	if err != nil {
		page.Error = err.Error()
		s.tpl.Render(w, http.StatusOK, "login", page)
		return
	}

	if err := s.sessions.Login(r.Context(), token); err != nil {
		page.Error = "Could not establish a session. Please try again."
		s.tpl.Render(w, http.StatusOK, "login", page)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	if s.sessions.Snapshot().IsAuthenticated {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	page := authPage{basePage: basePage{Title: "Register", Session: s.sessions.Snapshot()}}
	s.tpl.Render(w, http.StatusOK, "register", page)
}

func (s *Server) handleRegisterSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	in := domain.RegisterInput{
		Username:  r.PostFormValue("username"),
		Email:     r.PostFormValue("email"),
		Password:  r.PostFormValue("password"),
		FirstName: r.PostFormValue("first_name"),
		LastName:  r.PostFormValue("last_name"),
		Phone:     r.PostFormValue("phone"),
	}

	page := authPage{
		basePage: basePage{Title: "Register", Session: s.sessions.Snapshot()},
		Form:     in,
	}

	// Client-side guard only; the backend revalidates everything.
	switch {
	case in.Username == "" || in.Password == "" || in.Email == "":
		page.Error = "Username, email and password are required"
	case in.Password != r.PostFormValue("confirm_password"):
		page.Error = "Password and confirmation do not match"
	}
	if page.Error != "" {
		s.tpl.Render(w, http.StatusOK, "register", page)
		return
	}

	if err := s.backend.Register(r.Context(), in); err != nil {
		page.Error = err.Error()
		s.tpl.Render(w, http.StatusOK, "register", page)
		return
	}

	http.Redirect(w, r, "/auth/login?registered=1", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.sessions.Logout()
	http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
}
