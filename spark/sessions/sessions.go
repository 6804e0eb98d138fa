// Package sessions holds the in-memory conversation state for spark
// submissions. A session exists for a user exactly while a submission is in
// progress; absence of an entry means the user is idle. Nothing here survives
// a process restart.
package sessions

import "sync"

// State identifies the step a submission conversation is waiting on.
type State string

const (
	// StateIdle indicates there is no active submission for the user.
	StateIdle State = "idle"
	// StateAwaitingQuestion waits for the spark question text.
	StateAwaitingQuestion State = "awaiting_question"
	// StateAwaitingDescription waits for the background/context text.
	StateAwaitingDescription State = "awaiting_description"
	// StateAwaitingImage waits for an optional image, image link, or skip.
	StateAwaitingImage State = "awaiting_image"
)

// ImageKind tags the variant stored in an ImageRef.
type ImageKind string

const (
	// ImageNone means no image was supplied.
	ImageNone ImageKind = ""
	// ImageFile references a photo already stored on the Telegram side.
	ImageFile ImageKind = "file"
	// ImageURL references an external image by link.
	ImageURL ImageKind = "url"
)

// ImageRef is a tagged reference to the submission image: a Telegram file ID,
// an external URL, or nothing. At most one variant is set.
type ImageRef struct {
	Kind   ImageKind
	FileID string
	URL    string
}

// FileRef builds a platform photo reference.
func FileRef(fileID string) ImageRef {
	return ImageRef{Kind: ImageFile, FileID: fileID}
}

// URLRef builds an external link reference.
func URLRef(url string) ImageRef {
	return ImageRef{Kind: ImageURL, URL: url}
}

// Draft accumulates the fields collected across the submission steps.
type Draft struct {
	Question       string
	Description    string
	AdditionalInfo string
	Image          ImageRef
}

// Session is the per-user submission record.
type Session struct {
	State State
	Draft Draft
}

// Store keeps sessions keyed by Telegram user ID. All methods are safe for
// concurrent use; the transport may dispatch different users' updates on
// separate goroutines.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewStore constructs an empty in-memory store.
func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

// Get returns a copy of the user's session and whether one exists.
// When no session exists the returned session carries StateIdle.
func (s *Store) Get(userID int64) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[userID]; ok {
		return *sess, true
	}
	return Session{State: StateIdle}, false
}

// Start creates a fresh session in StateAwaitingQuestion, silently discarding
// any in-progress submission for the user.
func (s *Store) Start(userID int64) Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := &Session{State: StateAwaitingQuestion}
	s.sessions[userID] = sess
	return *sess
}

// Update applies fn to the user's session under the store lock and reports
// whether a session existed. fn must not call back into the store.
func (s *Store) Update(userID int64, fn func(*Session)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return false
	}
	fn(sess)
	return true
}

// End removes the user's session. It is a no-op when no session exists.
func (s *Store) End(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// InProgress reports whether the user currently has an active submission.
func (s *Store) InProgress(userID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[userID]
	return ok
}

// Len returns the number of active sessions, for diagnostics.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
