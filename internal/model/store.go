package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nikbrunner/shelf/internal/logger"
)

// Persister reads and writes the whole collection.
type Persister interface {
	// Load returns the persisted collection. Missing state is an empty collection.
	Load() ([]Bookmark, error)
	// Save replaces the persisted collection.
	Save(bookmarks []Bookmark) error
	// Clear removes the persisted state.
	Clear() error
}

// Level is the severity of a Notification.
type Level int

const (
	LevelSuccess Level = iota
	LevelError
	LevelInfo
)

// Notification is a transient user-facing message.
type Notification struct {
	Level   Level
	Message string
}

// Notifier receives notifications for every store action.
type Notifier interface {
	Notify(n Notification)
}

type discardNotifier struct{}

func (discardNotifier) Notify(Notification) {}

// Patch holds the fields to change on Update. Nil fields are left untouched.
type Patch struct {
	Title       *string
	URL         *string
	Description *string
	IsHidden    *bool
}

// ImportResult counts the outcome of Import.
type ImportResult struct {
	Added   int
	Skipped int
}

// Store owns the ordered collection and mirrors it to a Persister.
type Store struct {
	bookmarks      []Bookmark
	persister      Persister
	notifier       Notifier
	log            logger.Logger
	faviconService string
	now            func() time.Time
}

// StoreParams holds parameters for creating a new Store.
type StoreParams struct {
	Persister      Persister
	Notifier       Notifier      // optional, discards when nil
	Logger         logger.Logger // optional, no-op when nil
	FaviconService string        // optional, DefaultFaviconService when empty
	Now            func() time.Time
}

// NewStore creates an empty Store. Call Open to rehydrate it.
func NewStore(params StoreParams) *Store {
	s := &Store{
		bookmarks:      []Bookmark{},
		persister:      params.Persister,
		notifier:       params.Notifier,
		log:            params.Logger,
		faviconService: params.FaviconService,
		now:            params.Now,
	}
	if s.notifier == nil {
		s.notifier = discardNotifier{}
	}
	if s.log == nil {
		s.log = logger.NewNop()
	}
	if s.faviconService == "" {
		s.faviconService = DefaultFaviconService
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Open rehydrates the collection from the persister.
// Malformed state is logged and discarded; the store starts empty.
func (s *Store) Open() error {
	bookmarks, err := s.persister.Load()
	if err == nil {
		err = Validate(bookmarks)
	}
	if err != nil {
		if errors.Is(err, ErrMalformedState) {
			s.log.Warn("discarding malformed stored bookmarks", logger.Error(err))
			s.bookmarks = []Bookmark{}
			return nil
		}
		return fmt.Errorf("load bookmarks: %w", err)
	}
	if bookmarks == nil {
		bookmarks = []Bookmark{}
	}
	s.bookmarks = bookmarks
	s.log.Debug("bookmarks loaded", logger.Int("count", len(bookmarks)))
	return nil
}

// Bookmarks returns a copy of the collection in manual order.
func (s *Store) Bookmarks() []Bookmark {
	out := make([]Bookmark, len(s.bookmarks))
	copy(out, s.bookmarks)
	return out
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.bookmarks)
}

// Get finds a bookmark by ID.
func (s *Store) Get(id string) (Bookmark, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.bookmarks[i], true
	}
	return Bookmark{}, false
}

// HasURL reports whether a non-folder bookmark already holds rawURL.
func (s *Store) HasURL(rawURL string) bool {
	return s.urlOwner(rawURL) >= 0
}

// Add creates a bookmark from params and appends it.
// Titles are stored trimmed.
func (s *Store) Add(params NewBookmarkParams) (Bookmark, error) {
	params.Title = strings.TrimSpace(params.Title)
	if params.Title == "" {
		return Bookmark{}, s.reject("Bookmark not added", ErrMissingTitle)
	}
	if !params.IsFolder {
		if params.URL == "" {
			return Bookmark{}, s.reject("Bookmark not added", ErrMissingURL)
		}
		if s.HasURL(params.URL) {
			return Bookmark{}, s.reject("Bookmark not added", fmt.Errorf("%w: %s", ErrDuplicateURL, params.URL))
		}
	}

	b := s.newBookmark(params)
	s.bookmarks = append(s.bookmarks, b)

	what := "Bookmark"
	if b.IsFolder {
		what = "Folder"
	}
	if err := s.persist(what + " added"); err != nil {
		return b, err
	}
	return b, nil
}

// Update applies patch to the bookmark with the given ID, keeping its position.
func (s *Store) Update(id string, patch Patch) (Bookmark, error) {
	i := s.indexOf(id)
	if i < 0 {
		return Bookmark{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	b := s.bookmarks[i]
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return Bookmark{}, s.reject("Bookmark not updated", ErrMissingTitle)
		}
		b.Title = title
	}
	if patch.Description != nil {
		b.Description = *patch.Description
	}
	if patch.IsHidden != nil {
		b.IsHidden = *patch.IsHidden
	}
	if patch.URL != nil && !b.IsFolder && *patch.URL != b.URL {
		newURL := *patch.URL
		if newURL == "" {
			return Bookmark{}, s.reject("Bookmark not updated", ErrMissingURL)
		}
		if owner := s.urlOwner(newURL); owner >= 0 && owner != i {
			return Bookmark{}, s.reject("Bookmark not updated", fmt.Errorf("%w: %s", ErrDuplicateURL, newURL))
		}
		b.URL = newURL
		b.Favicon = FaviconURL(s.faviconService, newURL)
	}

	s.bookmarks[i] = b
	if err := s.persist("Bookmark updated"); err != nil {
		return b, err
	}
	return b, nil
}

// Remove deletes the bookmark with the given ID.
func (s *Store) Remove(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.bookmarks = append(s.bookmarks[:i], s.bookmarks[i+1:]...)
	return s.persist("Bookmark deleted")
}

// RemoveMany deletes every bookmark whose ID is in ids with a single write.
// It returns how many records were removed.
func (s *Store) RemoveMany(ids []string) (int, error) {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	kept := make([]Bookmark, 0, len(s.bookmarks))
	for _, b := range s.bookmarks {
		if !drop[b.ID] {
			kept = append(kept, b)
		}
	}

	removed := len(s.bookmarks) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	s.bookmarks = kept
	return removed, s.persist(fmt.Sprintf("%d bookmarks deleted", removed))
}

// Reorder moves the record at from to to, shifting the records in between.
// Out-of-range or equal indices are a no-op.
func (s *Store) Reorder(from, to int) error {
	n := len(s.bookmarks)
	if from == to || from < 0 || to < 0 || from >= n || to >= n {
		return nil
	}

	moved := s.bookmarks[from]
	if from < to {
		copy(s.bookmarks[from:to], s.bookmarks[from+1:to+1])
	} else {
		copy(s.bookmarks[to+1:from+1], s.bookmarks[to:from])
	}
	s.bookmarks[to] = moved

	return s.persist("Bookmark reordered")
}

// ApplyDrag reorders according to a finished drag gesture.
func (s *Store) ApplyDrag(result DragResult) error {
	switch r := result.(type) {
	case Move:
		return s.Reorder(r.From, r.To)
	default:
		return nil
	}
}

// Clear empties the collection and erases the persisted state.
func (s *Store) Clear() error {
	s.bookmarks = []Bookmark{}
	if err := s.persister.Clear(); err != nil {
		s.log.Error("failed to clear stored bookmarks", logger.Error(err))
		s.notifier.Notify(Notification{Level: LevelError, Message: "Failed to clear bookmarks"})
		return fmt.Errorf("clear bookmarks: %w", err)
	}
	s.log.Info("bookmarks cleared")
	s.notifier.Notify(Notification{Level: LevelSuccess, Message: "All bookmarks cleared"})
	return nil
}

// Import appends the candidates whose URL is not already present,
// in order, with a single write.
func (s *Store) Import(candidates []Candidate) (ImportResult, error) {
	var result ImportResult

	seen := make(map[string]bool, len(s.bookmarks)+len(candidates))
	for _, b := range s.bookmarks {
		if !b.IsFolder && b.URL != "" {
			seen[b.URL] = true
		}
	}

	for _, c := range candidates {
		c.Title = strings.TrimSpace(c.Title)
		if c.URL == "" || c.Title == "" || seen[c.URL] {
			result.Skipped++
			continue
		}
		seen[c.URL] = true
		s.bookmarks = append(s.bookmarks, s.newBookmark(NewBookmarkParams{
			Title:       c.Title,
			URL:         c.URL,
			Description: c.Description,
			DateAdded:   c.DateAdded,
		}))
		result.Added++
	}

	if result.Added == 0 {
		s.notifier.Notify(Notification{Level: LevelInfo, Message: "No new bookmarks to import"})
		return result, nil
	}

	s.log.Info("bookmarks imported", logger.Int("added", result.Added), logger.Int("skipped", result.Skipped))
	msg := fmt.Sprintf("Imported %d bookmarks", result.Added)
	if result.Skipped > 0 {
		msg += fmt.Sprintf(" (%d duplicates skipped)", result.Skipped)
	}
	return result, s.persist(msg)
}

// newBookmark builds a record with a fresh ID, timestamp and favicon.
func (s *Store) newBookmark(params NewBookmarkParams) Bookmark {
	dateAdded := params.DateAdded
	if dateAdded == nil {
		dateAdded = Millis(s.now())
	}

	b := Bookmark{
		ID:          GenerateUUID(),
		Title:       params.Title,
		Description: params.Description,
		DateAdded:   dateAdded,
		IsFolder:    params.IsFolder,
	}
	if !params.IsFolder {
		b.URL = params.URL
		b.Favicon = FaviconURL(s.faviconService, params.URL)
	}
	return b
}

// persist writes the whole collection and notifies on the outcome.
func (s *Store) persist(success string) error {
	if err := s.persister.Save(s.bookmarks); err != nil {
		s.log.Error("failed to save bookmarks", logger.Error(err))
		s.notifier.Notify(Notification{Level: LevelError, Message: "Failed to save bookmarks"})
		return fmt.Errorf("save bookmarks: %w", err)
	}
	s.notifier.Notify(Notification{Level: LevelSuccess, Message: success})
	return nil
}

// reject notifies about a refused action and returns err unchanged.
func (s *Store) reject(action string, err error) error {
	s.notifier.Notify(Notification{Level: LevelError, Message: action + ": " + err.Error()})
	return err
}

func (s *Store) indexOf(id string) int {
	for i := range s.bookmarks {
		if s.bookmarks[i].ID == id {
			return i
		}
	}
	return -1
}

// urlOwner returns the index of the non-folder bookmark holding rawURL, or -1.
func (s *Store) urlOwner(rawURL string) int {
	if rawURL == "" {
		return -1
	}
	for i := range s.bookmarks {
		b := &s.bookmarks[i]
		if !b.IsFolder && b.URL == rawURL {
			return i
		}
	}
	return -1
}
