package spark

import (
	"context"
	"log/slog"
	"strings"

	"github.com/trepalabs/sparkbot/core/logger"
	"github.com/trepalabs/sparkbot/core/telegram/keyboard"
	"github.com/trepalabs/sparkbot/spark/sessions"

	tele "gopkg.in/telebot.v4"
)

const logComponent = "service.sparks"

// Reply is a user-bound response produced by the state machine. An empty Text
// means there is nothing left to send (the finalizer already replied).
type Reply struct {
	Text     string
	Keyboard bool
}

// SendsparkKeyboard builds the persistent reply keyboard with the single
// /sendspark button that accompanies most replies.
func SendsparkKeyboard() *tele.ReplyMarkup {
	return keyboard.ReplyButtons([]string{"/sendspark"})
}

// Service sequences spark submissions: it owns the session transitions and
// the finalization that forwards a completed spark to the admin recipient.
type Service struct {
	store     *sessions.Store
	transport Transport
	fetcher   Fetcher
	adminID   int64
}

// NewService wires the submission service.
func NewService(store *sessions.Store, transport Transport, fetcher Fetcher, adminID int64) *Service {
	return &Service{
		store:     store,
		transport: transport,
		fetcher:   fetcher,
		adminID:   adminID,
	}
}

// InProgress reports whether the user has an active submission.
func (s *Service) InProgress(userID int64) bool {
	return s.store.InProgress(userID)
}

// Begin starts a fresh submission, discarding any in-progress one.
func (s *Service) Begin(ctx context.Context, userID int64) Reply {
	s.store.Start(userID)
	logger.Info(ctx, logComponent, "submission.started",
		slog.Int64("user_id", userID),
		slog.Int("sessions", s.store.Len()),
	)
	return Reply{Text: textQuestionPrompt}
}

// Cancel destroys the user's submission if one exists. Cancelling twice is a
// no-op the second time and yields the same reply.
func (s *Service) Cancel(ctx context.Context, userID int64) Reply {
	s.store.End(userID)
	logger.Info(ctx, logComponent, "submission.cancelled",
		slog.Int64("user_id", userID),
	)
	return Reply{Text: textCancelled, Keyboard: true}
}

// IdlePrompt is the reply for text received outside any submission.
func (s *Service) IdlePrompt() Reply {
	return Reply{Text: textUseSendspark, Keyboard: true}
}

// IdlePhotoPrompt is the reply for a photo received outside any submission.
func (s *Service) IdlePhotoPrompt() Reply {
	return Reply{Text: textUseSendsparkPhoto, Keyboard: true}
}

// Text advances the submission with a free-text message.
func (s *Service) Text(ctx context.Context, user User, text string) Reply {
	sess, ok := s.store.Get(user.ID)
	if !ok {
		return s.IdlePrompt()
	}

	switch sess.State {
	case sessions.StateAwaitingQuestion:
		s.store.Update(user.ID, func(ss *sessions.Session) {
			ss.Draft.Question = text
			ss.State = sessions.StateAwaitingDescription
		})
		s.logTransition(ctx, user.ID, sessions.StateAwaitingDescription)
		return Reply{Text: textDescriptionPrompt}

	case sessions.StateAwaitingDescription:
		s.store.Update(user.ID, func(ss *sessions.Session) {
			ss.Draft.Description = text
			ss.State = sessions.StateAwaitingImage
		})
		s.logTransition(ctx, user.ID, sessions.StateAwaitingImage)
		return Reply{Text: textImagePrompt}

	case sessions.StateAwaitingImage:
		var draft sessions.Draft
		updated := s.store.Update(user.ID, func(ss *sessions.Session) {
			switch classifyImageReply(text) {
			case imageReplyLink:
				ss.Draft.Image = sessions.URLRef(strings.TrimSpace(text))
			case imageReplyExtra:
				ss.Draft.AdditionalInfo = text
			}
			draft = ss.Draft
		})
		if !updated {
			return s.IdlePrompt()
		}
		s.finalize(ctx, user, draft)
		return Reply{}
	}

	return s.IdlePrompt()
}

// Photo advances the submission with an uploaded photo reference.
func (s *Service) Photo(ctx context.Context, user User, fileID string) Reply {
	sess, ok := s.store.Get(user.ID)
	if !ok {
		return s.IdlePhotoPrompt()
	}
	if sess.State != sessions.StateAwaitingImage {
		return Reply{Text: textUnexpectedImage}
	}

	var draft sessions.Draft
	updated := s.store.Update(user.ID, func(ss *sessions.Session) {
		ss.Draft.Image = sessions.FileRef(fileID)
		draft = ss.Draft
	})
	if !updated {
		return s.IdlePhotoPrompt()
	}
	s.finalize(ctx, user, draft)
	return Reply{}
}

// finalize forwards the completed spark to the admin, confirms to the user,
// and destroys the session. Outbound failures are logged and never propagate;
// confirmation and cleanup run regardless of delivery outcome.
func (s *Service) finalize(ctx context.Context, user User, draft sessions.Draft) {
	caption := buildNotification(user, draft)

	var notifyErr error
	switch draft.Image.Kind {
	case sessions.ImageFile:
		notifyErr = s.transport.SendPhotoFile(ctx, s.adminID, draft.Image.FileID, caption)
		if notifyErr != nil {
			logger.Warn(ctx, logComponent, "notify.photo.fail",
				slog.Int64("user_id", user.ID),
				slog.String("image", "file"),
				slog.String("err", notifyErr.Error()),
			)
			notifyErr = s.transport.SendText(ctx, s.adminID, caption, nil)
		}

	case sessions.ImageURL:
		data, err := s.fetcher.Fetch(ctx, draft.Image.URL)
		if err == nil {
			err = s.transport.SendPhotoBytes(ctx, s.adminID, data, caption)
		}
		if err != nil {
			logger.Warn(ctx, logComponent, "notify.photo.fallback",
				slog.Int64("user_id", user.ID),
				slog.String("image", "url"),
				slog.String("fetch_url", logger.SanitizeLimit(draft.Image.URL, 256)),
				slog.String("err", err.Error()),
			)
			notifyErr = s.transport.SendText(ctx, s.adminID, caption, nil)
		}

	default:
		notifyErr = s.transport.SendText(ctx, s.adminID, caption, nil)
	}

	if notifyErr != nil {
		logger.Error(ctx, logComponent, "notify.fail",
			slog.Int64("user_id", user.ID),
			slog.Int64("admin_id", s.adminID),
			slog.String("err", notifyErr.Error()),
		)
	} else {
		logger.Info(ctx, logComponent, "submission.forwarded",
			slog.Int64("user_id", user.ID),
			slog.Int64("admin_id", s.adminID),
			slog.String("image", string(draft.Image.Kind)),
		)
	}

	if err := s.transport.SendText(ctx, user.ID, textConfirmation, SendsparkKeyboard()); err != nil {
		logger.Warn(ctx, logComponent, "confirm.fail",
			slog.Int64("user_id", user.ID),
			slog.String("err", err.Error()),
		)
	}

	s.store.End(user.ID)
}

func (s *Service) logTransition(ctx context.Context, userID int64, next sessions.State) {
	logger.Debug(ctx, logComponent, "submission.advanced",
		slog.Int64("user_id", userID),
		slog.String("state", string(next)),
	)
}
