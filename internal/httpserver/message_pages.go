package httpserver

import (
	"net/http"
	"strconv"

	"frontend_go/internal/domain"
)

type messagesPage struct {
	basePage
	Conversations []domain.Conversation
	Messages      []domain.Message
	SelectedID    int
	SelectedName  string
}

// handleMessages renders the two-pane inbox: conversations on the left, the
// thread for the selected counterpart on the right. With no explicit
// selection the first conversation is opened, matching the source behavior.
func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	page := messagesPage{basePage: s.newBasePage(r, "Messages")}
	snap := page.Session

	conversations, err := s.backend.Conversations(r.Context(), snap.Token)
	if err != nil {
		page.Error = err.Error()
		s.tpl.Render(w, http.StatusOK, "messages", page)
		return
	}
	page.Conversations = conversations

	selected := 0
	if raw := r.URL.Query().Get("with"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			selected = id
		}
	}
	if selected == 0 && len(conversations) > 0 {
		selected = conversations[0].UserID
	}
	if selected == 0 {
		s.tpl.Render(w, http.StatusOK, "messages", page)
		return
	}

	page.SelectedID = selected
	for _, c := range conversations {
		if c.UserID == selected {
			page.SelectedName = c.Username
			break
		}
	}

	messages, err := s.backend.Messages(r.Context(), snap.Token, selected)
	if err != nil {
		page.Error = err.Error()
	}
	page.Messages = messages

	s.tpl.Render(w, http.StatusOK, "messages", page)
}

// handleSendMessage performs the mutating call and redirects back to the
// thread, so what renders next is always a fresh fetch of what the backend
// holds; nothing is appended locally.
func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	receiverID, err := strconv.Atoi(r.PostFormValue("receiver_id"))
	if err != nil || receiverID <= 0 {
		s.renderError(w, r, http.StatusBadRequest, "Unknown message recipient")
		return
	}
	content := r.PostFormValue("content")
	if content == "" {
		http.Redirect(w, r, "/messages?with="+strconv.Itoa(receiverID), http.StatusSeeOther)
		return
	}

	snap := CurrentSession(r)
	in := domain.MessageInput{ReceiverID: receiverID, Content: content}
	if err := s.backend.SendMessage(r.Context(), snap.Token, in); err != nil {
		page := messagesPage{basePage: s.newBasePage(r, "Messages")}
		page.Error = err.Error()
		page.SelectedID = receiverID
		s.tpl.Render(w, http.StatusOK, "messages", page)
		return
	}

	http.Redirect(w, r, "/messages?with="+strconv.Itoa(receiverID), http.StatusSeeOther)
}
