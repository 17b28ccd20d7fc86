package domain

import "time"

// User roles as the backend reports them.
const (
	RoleStudent = "student"
	RoleGuard   = "guard"
	RoleAdmin   = "admin"
)

// Item lifecycle statuses.
const (
	ItemStatusLost     = "lost"
	ItemStatusFound    = "found"
	ItemStatusClaimed  = "claimed"
	ItemStatusResolved = "resolved"
)

// Report types for the two submission flows.
const (
	ItemTypeLost  = "lost"
	ItemTypeFound = "found"
)

// Abuse-report statuses managed through the admin surface.
const (
	ReportStatusPending       = "pending"
	ReportStatusInvestigating = "investigating"
	ReportStatusResolved      = "resolved"
)

// Categories offered by the report forms.
var Categories = []string{
	"Electronics",
	"Clothing",
	"Accessories",
	"Books",
	"Documents",
	"Keys",
	"Wallet",
	"Other",
}

// Profile is the authenticated user's account as resolved from the backend.
// It is never computed locally, only re-fetched.
type Profile struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// Item is a lost or found item as the backend reports it.
type Item struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Location    string     `json:"location"`
	Status      string     `json:"status"`
	Type        string     `json:"type"`
	CreatedAt   time.Time  `json:"created_at"`
	ImageURL    *string    `json:"image_url,omitempty"`
	UserID      *int       `json:"user_id,omitempty"`
	LostTime    *time.Time `json:"lost_time,omitempty"`
}

// Conversation is the backend's projection of a two-party message thread.
type Conversation struct {
	UserID          int       `json:"user_id"`
	Username        string    `json:"username"`
	LastMessage     string    `json:"last_message"`
	LastMessageTime time.Time `json:"last_message_time"`
	UnreadCount     int       `json:"unread_count"`
}

// Message is a single direct message, immutable once created. Read state is
// mutated by the backend, never here.
type Message struct {
	ID         int       `json:"id"`
	SenderID   int       `json:"sender_id"`
	ReceiverID int       `json:"receiver_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	IsRead     bool      `json:"is_read"`
	ItemID     *int      `json:"item_id,omitempty"`
	ItemTitle  *string   `json:"item_title,omitempty"`
}

// Report is an abuse report visible on the moderation dashboard.
type Report struct {
	ID               int       `json:"id"`
	ReporterID       int       `json:"reporter_id"`
	ReporterUsername string    `json:"reporter_username"`
	ReportedID       int       `json:"reported_id"`
	ReportedUsername string    `json:"reported_username"`
	Reason           string    `json:"reason"`
	Status           string    `json:"status"`
	Comment          string    `json:"comment"`
	CreatedAt        time.Time `json:"created_at"`
}

// AdminUser is a row in the admin user listing.
type AdminUser struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

// Stats are the aggregate numbers on the admin dashboard.
type Stats struct {
	TotalUsers     int `json:"total_users"`
	TotalItems     int `json:"total_items"`
	LostItems      int `json:"lost_items"`
	FoundItems     int `json:"found_items"`
	ResolvedItems  int `json:"resolved_items"`
	ItemsThisMonth int `json:"items_this_month"`
}

// RegisterInput is the registration request payload.
type RegisterInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// Credentials is the login request payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// PasswordChange carries the password-change payload. Confirm never leaves
// the client; it only gates the call.
type PasswordChange struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	Confirm         string `json:"-"`
}

// ItemReport is a lost or found item submission.
type ItemReport struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Location    string     `json:"location"`
	LostTime    *time.Time `json:"lost_time,omitempty"`
}

// MessageInput is a direct-message submission, optionally bound to an item.
type MessageInput struct {
	ReceiverID int    `json:"receiver_id"`
	Content    string `json:"content"`
	ItemID     *int   `json:"item_id,omitempty"`
}

// ReportInput files an abuse report against a user.
type ReportInput struct {
	ReportedID int    `json:"reported_id"`
	ItemID     *int   `json:"item_id,omitempty"`
	Reason     string `json:"reason"`
}

// RoleUpdate reassigns a user's role (admin surface).
type RoleUpdate struct {
	Role string `json:"role"`
}

// StatusUpdate changes an item's or report's status.
type StatusUpdate struct {
	Status  string `json:"status"`
	Comment string `json:"comment,omitempty"`
}
