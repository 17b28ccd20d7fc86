package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"frontend_go/internal/domain"
)

type adminPage struct {
	basePage
	Stats          *domain.Stats
	Users          []domain.AdminUser
	Reports        []domain.Report
	Roles          []string
	ReportStatuses []string
}

// handleAdmin renders the moderation dashboard. The role check here only
// decides what to render; the backend rejects unauthorized calls regardless.
func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	snap := CurrentSession(r)
	if !snap.IsAdmin && !snap.IsGuard {
		s.renderError(w, r, http.StatusForbidden, "This area is restricted to guards and administrators.")
		return
	}

	page := adminPage{
		basePage:       s.newBasePage(r, "Admin Panel"),
		Roles:          []string{domain.RoleStudent, domain.RoleGuard, domain.RoleAdmin},
		ReportStatuses: []string{domain.ReportStatusPending, domain.ReportStatusInvestigating, domain.ReportStatusResolved},
	}
	switch {
	case r.URL.Query().Get("role_updated") == "1":
		page.Success = "User role updated"
	case r.URL.Query().Get("report_updated") == "1":
		page.Success = "Report status updated"
	}

	stats, err := s.backend.Stats(r.Context(), snap.Token)
	if err != nil {
		page.Error = err.Error()
	}
	page.Stats = stats

	users, err := s.backend.Users(r.Context(), snap.Token)
	if err != nil && page.Error == "" {
		page.Error = err.Error()
	}
	page.Users = users

	reports, err := s.backend.Reports(r.Context(), snap.Token)
	if err != nil && page.Error == "" {
		page.Error = err.Error()
	}
	page.Reports = reports

	s.tpl.Render(w, http.StatusOK, "admin", page)
}

// handleUserRole reassigns a role and redirects, so the table is re-fetched
// rather than patched in place.
func (s *Server) handleUserRole(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		s.renderError(w, r, http.StatusNotFound, "User not found")
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	snap := CurrentSession(r)
	role := r.PostFormValue("role")
	if err := s.backend.UpdateUserRole(r.Context(), snap.Token, userID, role); err != nil {
		s.renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	http.Redirect(w, r, "/admin?role_updated=1", http.StatusSeeOther)
}

func (s *Server) handleReportStatus(w http.ResponseWriter, r *http.Request) {
	reportID, err := strconv.Atoi(chi.URLParam(r, "reportID"))
	if err != nil {
		s.renderError(w, r, http.StatusNotFound, "Report not found")
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	snap := CurrentSession(r)
	status := r.PostFormValue("status")
	comment := r.PostFormValue("comment")
	if err := s.backend.UpdateReportStatus(r.Context(), snap.Token, reportID, status, comment); err != nil {
		s.renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	http.Redirect(w, r, "/admin?report_updated=1", http.StatusSeeOther)
}
