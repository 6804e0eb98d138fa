package sessions

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLifecycle(t *testing.T) {
	store := NewStore()

	sess, ok := store.Get(42)
	assert.False(t, ok)
	assert.Equal(t, StateIdle, sess.State)
	assert.False(t, store.InProgress(42))

	started := store.Start(42)
	assert.Equal(t, StateAwaitingQuestion, started.State)
	assert.True(t, store.InProgress(42))
	assert.Equal(t, 1, store.Len())

	updated := store.Update(42, func(s *Session) {
		s.Draft.Question = "Will it rain?"
		s.State = StateAwaitingDescription
	})
	require.True(t, updated)

	sess, ok = store.Get(42)
	require.True(t, ok)
	assert.Equal(t, StateAwaitingDescription, sess.State)
	assert.Equal(t, "Will it rain?", sess.Draft.Question)

	store.End(42)
	assert.False(t, store.InProgress(42))
	assert.Equal(t, 0, store.Len())
}

func TestStoreStartDiscardsInProgress(t *testing.T) {
	store := NewStore()
	store.Start(7)
	store.Update(7, func(s *Session) {
		s.Draft.Question = "old question"
		s.State = StateAwaitingImage
	})

	fresh := store.Start(7)
	assert.Equal(t, StateAwaitingQuestion, fresh.State)
	assert.Empty(t, fresh.Draft.Question)

	sess, ok := store.Get(7)
	require.True(t, ok)
	assert.Equal(t, StateAwaitingQuestion, sess.State)
	assert.Empty(t, sess.Draft.Question)
	assert.Equal(t, 1, store.Len())
}

func TestStoreEndIdempotent(t *testing.T) {
	store := NewStore()
	store.Start(1)
	store.End(1)
	store.End(1)
	assert.False(t, store.InProgress(1))
}

func TestStoreUpdateWithoutSession(t *testing.T) {
	store := NewStore()
	called := false
	ok := store.Update(99, func(*Session) { called = true })
	assert.False(t, ok)
	assert.False(t, called)
}

func TestStoreGetReturnsCopy(t *testing.T) {
	store := NewStore()
	store.Start(5)

	sess, _ := store.Get(5)
	sess.Draft.Question = "mutated on the copy"

	again, _ := store.Get(5)
	assert.Empty(t, again.Draft.Question)
}

func TestStoreConcurrentUsers(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		userID := int64(i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Start(userID)
			store.Update(userID, func(s *Session) {
				s.Draft.Question = "q"
				s.State = StateAwaitingDescription
			})
			if userID%2 == 0 {
				store.End(userID)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 25, store.Len())
	for i := 0; i < 50; i++ {
		assert.Equal(t, i%2 == 1, store.InProgress(int64(i)))
	}
}

func TestImageRefConstructors(t *testing.T) {
	file := FileRef("abc123")
	assert.Equal(t, ImageFile, file.Kind)
	assert.Equal(t, "abc123", file.FileID)
	assert.Empty(t, file.URL)

	link := URLRef("https://example.com/pic.png")
	assert.Equal(t, ImageURL, link.Kind)
	assert.Equal(t, "https://example.com/pic.png", link.URL)
	assert.Empty(t, link.FileID)

	var none ImageRef
	assert.Equal(t, ImageNone, none.Kind)
}
