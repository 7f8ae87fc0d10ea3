package form

import (
	"sync"

	"github.com/pkg/errors"
)

// ErrBusy is returned when an operation is started while another one is in flight.
var ErrBusy = errors.New("operation already in progress")

// Status tracks the in-flight operation and the error shown to the user.
// It is safe for concurrent use.
type Status struct {
	mu      sync.Mutex
	loading bool
	err     string
}

// Begin marks an operation as started and clears the current error.
// It returns ErrBusy if one is already running.
func (s *Status) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return ErrBusy
	}
	s.loading = true
	s.err = ""
	return nil
}

// End marks the current operation as finished.
func (s *Status) End() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func (s *Status) Fail(msg string) {
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
}

func (s *Status) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Error returns the message shown to the user, "" when there is none.
func (s *Status) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// UserMessager is implemented by errors carrying a message meant for the user.
type UserMessager interface {
	UserMessage() string
}

// MessageOf returns the user message carried by `err`, or `fallback`.
func MessageOf(err error, fallback string) string {
	var um UserMessager
	if errors.As(err, &um) {
		if msg := um.UserMessage(); msg != "" {
			return msg
		}
	}
	return fallback
}
