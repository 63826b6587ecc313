package bot

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/henokhm/ride-hailing-bot/internal/models"
	"github.com/henokhm/ride-hailing-bot/internal/session"
	"github.com/henokhm/ride-hailing-bot/internal/store"
)

// Keyboard tells the transport which reply affordance to attach.
type Keyboard int

const (
	KeyboardNone Keyboard = iota
	KeyboardRemove
	KeyboardContact
	KeyboardRole
)

type Reply struct {
	Text     string
	Keyboard Keyboard
}

// Flow is the registration state machine: collect name, collect phone via a
// contact share, collect role, then persist the user. State lives in the
// session store, keyed by chat id.
type Flow struct {
	store    *store.Store
	sessions session.Store
}

func NewFlow(st *store.Store, sessions session.Store) *Flow {
	return &Flow{store: st, sessions: sessions}
}

// Start routes a returning user to a welcome-back reply and puts everyone
// else at the top of the registration form.
func (f *Flow) Start(chatID int64) Reply {
	u, err := f.store.GetUser(chatID)
	if err == nil {
		return Reply{
			Text:     fmt.Sprintf("Welcome back, %s! You are registered as a %s.", u.FullName, u.Role),
			Keyboard: KeyboardRemove,
		}
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Printf("start: looking up user %d: %v", chatID, err)
		return Reply{Text: "Something went wrong, please try /start again."}
	}

	if err := f.sessions.Put(chatID, session.Session{State: session.StateAwaitingName}); err != nil {
		log.Printf("start: saving session for %d: %v", chatID, err)
		return Reply{Text: "Something went wrong, please try /start again."}
	}
	return Reply{
		Text:     "Hi there, welcome to Ride Hailing Bot. What's your name?",
		Keyboard: KeyboardRemove,
	}
}

// Text handles a free-text message against the current state.
func (f *Flow) Text(chatID int64, text string) Reply {
	sess, err := f.sessions.Get(chatID)
	if err != nil {
		log.Printf("text: loading session for %d: %v", chatID, err)
		return Reply{Text: "Something went wrong, please try again."}
	}

	switch sess.State {
	case session.StateAwaitingName:
		return f.processName(chatID, sess, text)
	case session.StateAwaitingPhone:
		// free text is not a contact share
		return Reply{Text: "Please use the button below to share your phone number.", Keyboard: KeyboardContact}
	case session.StateAwaitingRole:
		return f.processRole(chatID, sess, text)
	default:
		return Reply{Text: "Send /start to begin registration."}
	}
}

// Contact handles a structured contact share.
func (f *Flow) Contact(chatID int64, phoneNumber string) Reply {
	sess, err := f.sessions.Get(chatID)
	if err != nil {
		log.Printf("contact: loading session for %d: %v", chatID, err)
		return Reply{Text: "Something went wrong, please try again."}
	}

	if sess.State != session.StateAwaitingPhone {
		return f.prompt(sess.State)
	}

	sess.PhoneNumber = phoneNumber
	sess.State = session.StateAwaitingRole
	if err := f.sessions.Put(chatID, sess); err != nil {
		log.Printf("contact: saving session for %d: %v", chatID, err)
		return Reply{Text: "Something went wrong, please share your phone number again.", Keyboard: KeyboardContact}
	}
	return Reply{
		Text:     fmt.Sprintf("Your phone number is %s. Are you a driver or a passenger?", phoneNumber),
		Keyboard: KeyboardRole,
	}
}

// Profile answers /me with the registered record.
func (f *Flow) Profile(chatID int64) Reply {
	u, err := f.store.GetUser(chatID)
	if errors.Is(err, store.ErrNotFound) {
		return Reply{Text: "You are not registered yet. Send /start to begin."}
	}
	if err != nil {
		log.Printf("profile: looking up user %d: %v", chatID, err)
		return Reply{Text: "Something went wrong, please try again."}
	}
	return Reply{Text: fmt.Sprintf("%s (%s), phone %s.", u.FullName, u.Role, u.PhoneNumber)}
}

func (f *Flow) processName(chatID int64, sess session.Session, text string) Reply {
	if len(strings.Fields(text)) != 2 {
		return Reply{Text: "Please enter your full name, e.g. Abebe Kebede."}
	}

	sess.FullName = strings.Join(strings.Fields(text), " ")
	sess.State = session.StateAwaitingPhone
	if err := f.sessions.Put(chatID, sess); err != nil {
		log.Printf("name: saving session for %d: %v", chatID, err)
		return Reply{Text: "Something went wrong, please send your name again."}
	}
	return Reply{
		Text:     fmt.Sprintf("Great to meet you, %s! Please share your phone number with us.", sess.FullName),
		Keyboard: KeyboardContact,
	}
}

func (f *Flow) processRole(chatID int64, sess session.Session, text string) Reply {
	role := models.Role(strings.TrimSpace(text))
	if !role.Valid() {
		return Reply{Text: "Please choose Driver or Passenger.", Keyboard: KeyboardRole}
	}

	u, err := f.store.CreateUser(chatID, sess.FullName, sess.PhoneNumber, role)
	if errors.Is(err, store.ErrDuplicate) {
		// registered from another device mid-dialog
		_ = f.sessions.Clear(chatID)
		return Reply{Text: "You are already registered.", Keyboard: KeyboardRemove}
	}
	if err != nil {
		log.Printf("role: creating user %d: %v", chatID, err)
		return Reply{Text: "Something went wrong saving your details, please send your role again.", Keyboard: KeyboardRole}
	}

	if err := f.sessions.Clear(chatID); err != nil {
		log.Printf("role: clearing session for %d: %v", chatID, err)
	}
	return Reply{
		Text:     fmt.Sprintf("Thank you, %s! You are registered as a %s.", u.FullName, u.Role),
		Keyboard: KeyboardRemove,
	}
}

// prompt re-issues the affordance for the step the dialog is stuck on.
func (f *Flow) prompt(state session.State) Reply {
	switch state {
	case session.StateAwaitingName:
		return Reply{Text: "Please enter your full name, e.g. Abebe Kebede."}
	case session.StateAwaitingPhone:
		return Reply{Text: "Please use the button below to share your phone number.", Keyboard: KeyboardContact}
	case session.StateAwaitingRole:
		return Reply{Text: "Please choose Driver or Passenger.", Keyboard: KeyboardRole}
	default:
		return Reply{Text: "Send /start to begin registration."}
	}
}
