// Package session holds per-chat registration state between Telegram updates.
package session

type State string

const (
	StateIdle          State = ""
	StateAwaitingName  State = "awaiting_name"
	StateAwaitingPhone State = "awaiting_phone"
	StateAwaitingRole  State = "awaiting_role"
)

// Session is the transient memory of one registration dialog.
type Session struct {
	State       State  `json:"state"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
}

// Store is the minimal persistence interface the flow depends on. A missing
// session reads back as the zero Session (idle).
type Store interface {
	Get(chatID int64) (Session, error)
	Put(chatID int64, s Session) error
	Clear(chatID int64) error
}
