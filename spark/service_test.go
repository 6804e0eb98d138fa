package spark

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trepalabs/sparkbot/spark/sessions"

	tele "gopkg.in/telebot.v4"
)

const testAdminID int64 = 777

type sentMessage struct {
	kind   string // text, photo_file, photo_bytes
	chatID int64
	text   string // message text or photo caption
	fileID string
	data   []byte
	markup *tele.ReplyMarkup
}

type fakeTransport struct {
	mu   sync.Mutex
	sent []sentMessage

	photoFileErr  error
	photoBytesErr error
	textErrFor    map[int64]error
}

func (f *fakeTransport) record(msg sentMessage) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
}

func (f *fakeTransport) SendText(_ context.Context, chatID int64, text string, markup *tele.ReplyMarkup) error {
	if err := f.textErrFor[chatID]; err != nil {
		return err
	}
	f.record(sentMessage{kind: "text", chatID: chatID, text: text, markup: markup})
	return nil
}

func (f *fakeTransport) SendPhotoFile(_ context.Context, chatID int64, fileID, caption string) error {
	if f.photoFileErr != nil {
		return f.photoFileErr
	}
	f.record(sentMessage{kind: "photo_file", chatID: chatID, text: caption, fileID: fileID})
	return nil
}

func (f *fakeTransport) SendPhotoBytes(_ context.Context, chatID int64, data []byte, caption string) error {
	if f.photoBytesErr != nil {
		return f.photoBytesErr
	}
	f.record(sentMessage{kind: "photo_bytes", chatID: chatID, text: caption, data: data})
	return nil
}

func (f *fakeTransport) messages() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.sent...)
}

type fakeFetcher struct {
	data []byte
	err  error
	urls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.urls = append(f.urls, url)
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

func newTestService(transport *fakeTransport, fetcher *fakeFetcher) (*Service, *sessions.Store) {
	store := sessions.NewStore()
	return NewService(store, transport, fetcher, testAdminID), store
}

func testUser() User {
	return User{ID: 100, FirstName: "Ada", LastName: "Lovelace", Username: "adal"}
}

// answerUpToImage drives a submission to the image step.
func answerUpToImage(t *testing.T, svc *Service, user User) {
	t.Helper()
	ctx := context.Background()

	reply := svc.Begin(ctx, user.ID)
	require.Equal(t, textQuestionPrompt, reply.Text)

	reply = svc.Text(ctx, user, "Will X happen?")
	require.Equal(t, textDescriptionPrompt, reply.Text)

	reply = svc.Text(ctx, user, "I saw a trend on social media.")
	require.Equal(t, textImagePrompt, reply.Text)
}

func TestTextWithoutSessionPrompts(t *testing.T) {
	svc, _ := newTestService(&fakeTransport{}, &fakeFetcher{})

	reply := svc.Text(context.Background(), testUser(), "hello there")

	assert.Equal(t, textUseSendspark, reply.Text)
	assert.True(t, reply.Keyboard)
}

func TestFullFlowWithoutImage(t *testing.T) {
	transport := &fakeTransport{}
	svc, store := newTestService(transport, &fakeFetcher{})
	user := testUser()
	ctx := context.Background()

	answerUpToImage(t, svc, user)

	reply := svc.Text(ctx, user, "no")
	assert.Empty(t, reply.Text)

	msgs := transport.messages()
	require.Len(t, msgs, 2)

	// Admin notification comes first.
	assert.Equal(t, "text", msgs[0].kind)
	assert.Equal(t, testAdminID, msgs[0].chatID)
	assert.Contains(t, msgs[0].text, "Question: Will X happen?")
	assert.Contains(t, msgs[0].text, "Description/Source: I saw a trend on social media.")
	assert.Contains(t, msgs[0].text, "User: Ada Lovelace (@adal)")
	assert.NotContains(t, msgs[0].text, "Image URL:")

	// Then the user confirmation with the reply keyboard.
	assert.Equal(t, "text", msgs[1].kind)
	assert.Equal(t, user.ID, msgs[1].chatID)
	assert.Equal(t, textConfirmation, msgs[1].text)
	assert.NotNil(t, msgs[1].markup)

	assert.False(t, store.InProgress(user.ID))
}

func TestSkipKeywordCases(t *testing.T) {
	for _, keyword := range []string{"no", "NO", "None", "n"} {
		t.Run(keyword, func(t *testing.T) {
			transport := &fakeTransport{}
			svc, store := newTestService(transport, &fakeFetcher{})
			user := testUser()

			answerUpToImage(t, svc, user)
			reply := svc.Text(context.Background(), user, keyword)

			assert.Empty(t, reply.Text)
			msgs := transport.messages()
			require.Len(t, msgs, 2)
			assert.Equal(t, "text", msgs[0].kind)
			assert.False(t, store.InProgress(user.ID))
		})
	}
}

func TestImageURLDownloadAndSend(t *testing.T) {
	transport := &fakeTransport{}
	fetcher := &fakeFetcher{data: []byte{0x89, 0x50, 0x4e, 0x47}}
	svc, store := newTestService(transport, fetcher)
	user := testUser()

	answerUpToImage(t, svc, user)
	reply := svc.Text(context.Background(), user, "https://example.com/chart.png")
	assert.Empty(t, reply.Text)

	require.Equal(t, []string{"https://example.com/chart.png"}, fetcher.urls)

	msgs := transport.messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "photo_bytes", msgs[0].kind)
	assert.Equal(t, testAdminID, msgs[0].chatID)
	assert.Equal(t, fetcher.data, msgs[0].data)
	assert.Contains(t, msgs[0].text, "Image URL: https://example.com/chart.png")

	assert.Equal(t, textConfirmation, msgs[1].text)
	assert.False(t, store.InProgress(user.ID))
}

func TestImageURLFetchFailureFallsBackToText(t *testing.T) {
	transport := &fakeTransport{}
	fetcher := &fakeFetcher{err: errors.New("connection refused")}
	svc, store := newTestService(transport, fetcher)
	user := testUser()

	answerUpToImage(t, svc, user)
	svc.Text(context.Background(), user, "https://example.com/broken.png")

	msgs := transport.messages()
	require.Len(t, msgs, 2)

	// The admin still receives the submission as text, URL included.
	assert.Equal(t, "text", msgs[0].kind)
	assert.Equal(t, testAdminID, msgs[0].chatID)
	assert.Contains(t, msgs[0].text, "Image URL: https://example.com/broken.png")

	assert.Equal(t, textConfirmation, msgs[1].text)
	assert.False(t, store.InProgress(user.ID))
}

func TestImageURLSendFailureFallsBackToText(t *testing.T) {
	transport := &fakeTransport{photoBytesErr: errors.New("wrong file identifier")}
	fetcher := &fakeFetcher{data: []byte("not actually an image")}
	svc, store := newTestService(transport, fetcher)
	user := testUser()

	answerUpToImage(t, svc, user)
	svc.Text(context.Background(), user, "https://example.com/page.html")

	msgs := transport.messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "text", msgs[0].kind)
	assert.Contains(t, msgs[0].text, "Image URL: https://example.com/page.html")
	assert.False(t, store.InProgress(user.ID))
}

func TestPhotoUploadFinalizes(t *testing.T) {
	transport := &fakeTransport{}
	svc, store := newTestService(transport, &fakeFetcher{})
	user := testUser()

	answerUpToImage(t, svc, user)
	reply := svc.Photo(context.Background(), user, "file-abc")
	assert.Empty(t, reply.Text)

	msgs := transport.messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "photo_file", msgs[0].kind)
	assert.Equal(t, testAdminID, msgs[0].chatID)
	assert.Equal(t, "file-abc", msgs[0].fileID)
	assert.Contains(t, msgs[0].text, "Question: Will X happen?")
	assert.NotContains(t, msgs[0].text, "Image URL:")

	assert.Equal(t, textConfirmation, msgs[1].text)
	assert.False(t, store.InProgress(user.ID))
}

func TestPhotoSendFailureStillConfirmsAndCleans(t *testing.T) {
	transport := &fakeTransport{photoFileErr: errors.New("file too big")}
	svc, store := newTestService(transport, &fakeFetcher{})
	user := testUser()

	answerUpToImage(t, svc, user)
	svc.Photo(context.Background(), user, "file-abc")

	msgs := transport.messages()
	require.Len(t, msgs, 2)

	// Caption falls back to a plain text notification.
	assert.Equal(t, "text", msgs[0].kind)
	assert.Equal(t, testAdminID, msgs[0].chatID)
	assert.Contains(t, msgs[0].text, "Question: Will X happen?")

	assert.Equal(t, textConfirmation, msgs[1].text)
	assert.False(t, store.InProgress(user.ID))
}

func TestPhotoOutsideImageStep(t *testing.T) {
	svc, store := newTestService(&fakeTransport{}, &fakeFetcher{})
	user := testUser()
	ctx := context.Background()

	svc.Begin(ctx, user.ID)
	reply := svc.Photo(ctx, user, "file-abc")

	assert.Equal(t, textUnexpectedImage, reply.Text)
	assert.True(t, store.InProgress(user.ID))
}

func TestPhotoWithoutSession(t *testing.T) {
	svc, _ := newTestService(&fakeTransport{}, &fakeFetcher{})

	reply := svc.Photo(context.Background(), testUser(), "file-abc")

	assert.Equal(t, textUseSendsparkPhoto, reply.Text)
	assert.True(t, reply.Keyboard)
}

func TestCancelIsIdempotent(t *testing.T) {
	svc, store := newTestService(&fakeTransport{}, &fakeFetcher{})
	user := testUser()
	ctx := context.Background()

	svc.Begin(ctx, user.ID)
	first := svc.Cancel(ctx, user.ID)
	second := svc.Cancel(ctx, user.ID)

	assert.Equal(t, textCancelled, first.Text)
	assert.Equal(t, first, second)
	assert.False(t, store.InProgress(user.ID))
}

func TestBeginDiscardsPreviousDraft(t *testing.T) {
	transport := &fakeTransport{}
	svc, _ := newTestService(transport, &fakeFetcher{})
	user := testUser()
	ctx := context.Background()

	svc.Begin(ctx, user.ID)
	svc.Text(ctx, user, "old abandoned question")

	// Restart mid-flow; the previous draft must not leak into the new one.
	reply := svc.Begin(ctx, user.ID)
	assert.Equal(t, textQuestionPrompt, reply.Text)

	svc.Text(ctx, user, "fresh question")
	svc.Text(ctx, user, "fresh context")
	svc.Text(ctx, user, "no")

	msgs := transport.messages()
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0].text, "Question: fresh question")
	assert.NotContains(t, msgs[0].text, "old abandoned question")
}

func TestNonURLTextBecomesAdditionalInfo(t *testing.T) {
	transport := &fakeTransport{}
	svc, store := newTestService(transport, &fakeFetcher{})
	user := testUser()

	answerUpToImage(t, svc, user)
	svc.Text(context.Background(), user, "it was all over the group chats")

	msgs := transport.messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "text", msgs[0].kind)
	assert.Contains(t, msgs[0].text, "Additional Info: it was all over the group chats")
	assert.NotContains(t, msgs[0].text, "Image URL:")
	assert.False(t, store.InProgress(user.ID))
}

func TestConfirmationFailureStillEndsSession(t *testing.T) {
	user := testUser()
	transport := &fakeTransport{textErrFor: map[int64]error{user.ID: errors.New("blocked by user")}}
	svc, store := newTestService(transport, &fakeFetcher{})

	answerUpToImage(t, svc, user)
	svc.Text(context.Background(), user, "no")

	msgs := transport.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, testAdminID, msgs[0].chatID)
	assert.False(t, store.InProgress(user.ID))
}

func TestQuestionAndDescriptionStored(t *testing.T) {
	svc, store := newTestService(&fakeTransport{}, &fakeFetcher{})
	user := testUser()
	ctx := context.Background()

	svc.Begin(ctx, user.ID)
	svc.Text(ctx, user, "Will X happen?")

	sess, ok := store.Get(user.ID)
	require.True(t, ok)
	assert.Equal(t, sessions.StateAwaitingDescription, sess.State)
	assert.Equal(t, "Will X happen?", sess.Draft.Question)

	svc.Text(ctx, user, "background")
	sess, _ = store.Get(user.ID)
	assert.Equal(t, sessions.StateAwaitingImage, sess.State)
	assert.Equal(t, "background", sess.Draft.Description)
}
