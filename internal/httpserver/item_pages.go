package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"frontend_go/internal/api"
	"frontend_go/internal/domain"
)

type dashboardPage struct {
	basePage
	Items []domain.Item
	Query string
}

// handleDashboard renders the public item feed, optionally filtered by the
// search box. A failed fetch renders the page with an inline error and an
// empty list, never a crash.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	page := dashboardPage{
		basePage: s.newBasePage(r, "Dashboard"),
		Query:    r.URL.Query().Get("q"),
	}

	var items []domain.Item
	var err error
	if page.Query != "" {
		items, err = s.backend.Search(r.Context(), page.Query)
	} else {
		items, err = s.backend.List(r.Context())
	}
	if err != nil {
		page.Error = err.Error()
	}
	page.Items = items

	s.tpl.Render(w, http.StatusOK, "dashboard", page)
}

type itemDetailPage struct {
	basePage
	Item    *domain.Item
	IsOwner bool
	// Statuses the owner may still move the item to.
	NextStatuses []string
}

func (s *Server) handleItemDetail(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.Atoi(chi.URLParam(r, "itemID"))
	if err != nil {
		s.renderError(w, r, http.StatusNotFound, "Item not found")
		return
	}

	var success string
	switch {
	case r.URL.Query().Get("created") == "1":
		success = "Item reported successfully!"
	case r.URL.Query().Get("sent") == "1":
		success = "Message sent"
	case r.URL.Query().Get("updated") == "1":
		success = "Item status updated"
	case r.URL.Query().Get("reported") == "1":
		success = "Report filed. A guard will review it."
	}

	s.renderItemDetail(w, r, itemID, "", success)
}

func (s *Server) renderItemDetail(w http.ResponseWriter, r *http.Request, itemID int, errMsg, success string) {
	page := itemDetailPage{basePage: s.newBasePage(r, "Item")}
	page.Error = errMsg
	page.Success = success

	item, err := s.backend.Get(r.Context(), itemID)
	if err != nil {
		// Missing items get an explicit empty state on the same screen.
		page.Error = err.Error()
		s.tpl.Render(w, http.StatusOK, "item_detail", page)
		return
	}

	page.Item = item
	page.Title = item.Title
	if item.UserID != nil && page.Session.Profile != nil {
		page.IsOwner = *item.UserID == page.Session.Profile.ID
	}
	if page.IsOwner {
		for _, st := range []string{
			domain.ItemStatusFound,
			domain.ItemStatusClaimed,
			domain.ItemStatusResolved,
		} {
			if st != item.Status {
				page.NextStatuses = append(page.NextStatuses, st)
			}
		}
	}

	s.tpl.Render(w, http.StatusOK, "item_detail", page)
}

// handleItemStatus applies an owner's status change and re-renders from the
// server's copy; the local view is never patched.
func (s *Server) handleItemStatus(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.Atoi(chi.URLParam(r, "itemID"))
	if err != nil {
		s.renderError(w, r, http.StatusNotFound, "Item not found")
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	snap := CurrentSession(r)
	status := r.PostFormValue("status")
	if _, err := s.backend.UpdateStatus(r.Context(), snap.Token, itemID, status); err != nil {
		s.renderItemDetail(w, r, itemID, err.Error(), "")
		return
	}

	http.Redirect(w, r, "/items/"+strconv.Itoa(itemID)+"?updated=1", http.StatusSeeOther)
}

// handleItemMessage sends an item-bound message to the item's owner from the
// contact form on the detail page.
func (s *Server) handleItemMessage(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.Atoi(chi.URLParam(r, "itemID"))
	if err != nil {
		s.renderError(w, r, http.StatusNotFound, "Item not found")
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	content := r.PostFormValue("content")
	if content == "" {
		s.renderItemDetail(w, r, itemID, "Message content is required", "")
		return
	}

	item, err := s.backend.Get(r.Context(), itemID)
	if err != nil {
		s.renderItemDetail(w, r, itemID, err.Error(), "")
		return
	}
	if item.UserID == nil {
		s.renderItemDetail(w, r, itemID, "This item has no contactable owner", "")
		return
	}

	snap := CurrentSession(r)
	in := domain.MessageInput{
		ReceiverID: *item.UserID,
		Content:    content,
		ItemID:     &item.ID,
	}
	if err := s.backend.SendMessage(r.Context(), snap.Token, in); err != nil {
		s.renderItemDetail(w, r, itemID, err.Error(), "")
		return
	}

	http.Redirect(w, r, "/items/"+strconv.Itoa(itemID)+"?sent=1", http.StatusSeeOther)
}

// handleItemReportUser files an abuse report against the item's owner.
func (s *Server) handleItemReportUser(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.Atoi(chi.URLParam(r, "itemID"))
	if err != nil {
		s.renderError(w, r, http.StatusNotFound, "Item not found")
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	reason := r.PostFormValue("reason")
	if reason == "" {
		s.renderItemDetail(w, r, itemID, "A reason is required to file a report", "")
		return
	}

	item, err := s.backend.Get(r.Context(), itemID)
	if err != nil {
		s.renderItemDetail(w, r, itemID, err.Error(), "")
		return
	}
	if item.UserID == nil {
		s.renderItemDetail(w, r, itemID, "This item has no reportable owner", "")
		return
	}

	snap := CurrentSession(r)
	in := domain.ReportInput{
		ReportedID: *item.UserID,
		ItemID:     &item.ID,
		Reason:     reason,
	}
	if err := s.backend.CreateReport(r.Context(), snap.Token, in); err != nil {
		s.renderItemDetail(w, r, itemID, err.Error(), "")
		return
	}

	http.Redirect(w, r, "/items/"+strconv.Itoa(itemID)+"?reported=1", http.StatusSeeOther)
}

type reportItemPage struct {
	basePage
	Kind       string // "lost" or "found"
	Categories []string
	Form       domain.ItemReport
}

func (s *Server) handleReportLostPage(w http.ResponseWriter, r *http.Request) {
	s.renderReportForm(w, r, domain.ItemTypeLost, domain.ItemReport{Category: domain.Categories[0]}, "")
}

func (s *Server) handleReportFoundPage(w http.ResponseWriter, r *http.Request) {
	s.renderReportForm(w, r, domain.ItemTypeFound, domain.ItemReport{Category: domain.Categories[0]}, "")
}

func (s *Server) renderReportForm(w http.ResponseWriter, r *http.Request, kind string, form domain.ItemReport, errMsg string) {
	title := "Report Lost Item"
	if kind == domain.ItemTypeFound {
		title = "Report Found Item"
	}
	page := reportItemPage{
		basePage:   s.newBasePage(r, title),
		Kind:       kind,
		Categories: domain.Categories,
		Form:       form,
	}
	page.Error = errMsg
	s.tpl.Render(w, http.StatusOK, "report_item", page)
}

func (s *Server) handleReportLostSubmit(w http.ResponseWriter, r *http.Request) {
	s.handleReportSubmit(w, r, domain.ItemTypeLost)
}

func (s *Server) handleReportFoundSubmit(w http.ResponseWriter, r *http.Request) {
	s.handleReportSubmit(w, r, domain.ItemTypeFound)
}

func (s *Server) handleReportSubmit(w http.ResponseWriter, r *http.Request, kind string) {
	// The form posts multipart only when an image is attached.
	if err := r.ParseMultipartForm(10 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	in := domain.ItemReport{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Category:    r.PostFormValue("category"),
		Location:    r.PostFormValue("location"),
	}
	if kind == domain.ItemTypeLost {
		if raw := r.PostFormValue("lost_time"); raw != "" {
			if t, err := time.ParseInLocation("2006-01-02T15:04", raw, time.Local); err == nil {
				in.LostTime = &t
			}
		}
	}

	if in.Title == "" || in.Category == "" || in.Location == "" {
		s.renderReportForm(w, r, kind, in, "Title, category, and location are required")
		return
	}

	var upload *api.Upload
	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()
		upload = &api.Upload{Filename: header.Filename, Content: file}
	} else if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
		s.renderReportForm(w, r, kind, in, "Could not read the attached image")
		return
	}

	snap := CurrentSession(r)
	var item *domain.Item
	if kind == domain.ItemTypeFound {
		item, err = s.backend.ReportFound(r.Context(), snap.Token, in, upload)
	} else {
		item, err = s.backend.ReportLost(r.Context(), snap.Token, in, upload)
	}
	if err != nil {
		s.renderReportForm(w, r, kind, in, err.Error())
		return
	}

	http.Redirect(w, r, "/items/"+strconv.Itoa(item.ID)+"?created=1", http.StatusSeeOther)
}
