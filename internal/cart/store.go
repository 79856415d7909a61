package cart

import (
	"encoding/json"
	"fmt"

	"github.com/gin-contrib/sessions"
)

// Store persists a visitor's cart between requests.
type Store interface {
	Load() (Cart, error)
	Save(Cart) error
}

// SessionKey is the session entry holding the serialized cart.
const SessionKey = "shopping_cart"

// SessionStore keeps the cart as JSON inside the visitor's session cookie.
type SessionStore struct {
	session sessions.Session
}

// NewSessionStore wraps a request's session.
func NewSessionStore(s sessions.Session) *SessionStore {
	return &SessionStore{session: s}
}

// Load restores the cart. Missing data yields an empty cart; corrupt data
// yields an empty cart and an error.
func (s *SessionStore) Load() (Cart, error) {
	raw, ok := s.session.Get(SessionKey).(string)
	if !ok || raw == "" {
		return Cart{}, nil
	}
	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return Cart{}, fmt.Errorf("decode cart: %w", err)
	}
	return Apply(Cart{}, Load(items)), nil
}

// Save writes the cart and flushes the session.
func (s *SessionStore) Save(c Cart) error {
	if c.Empty() {
		s.session.Delete(SessionKey)
		return s.session.Save()
	}
	raw, err := json.Marshal(c.Items())
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	s.session.Set(SessionKey, string(raw))
	return s.session.Save()
}
