package bot

import (
	"fmt"

	"github.com/trepalabs/sparkbot/core/telegram/helpers"
	"github.com/trepalabs/sparkbot/spark"

	tele "gopkg.in/telebot.v4"
)

func senderUser(c tele.Context) spark.User {
	from := c.Sender()
	if from == nil {
		return spark.User{}
	}
	return spark.User{
		ID:        from.ID,
		FirstName: from.FirstName,
		LastName:  from.LastName,
		Username:  from.Username,
	}
}

// sendReply delivers a state machine reply to the current chat. An empty reply
// means the service already responded out of band.
func sendReply(c tele.Context, reply spark.Reply) error {
	if reply.Text == "" {
		return nil
	}
	if reply.Keyboard {
		return helpers.SendText(c, reply.Text, &tele.SendOptions{ReplyMarkup: spark.SendsparkKeyboard()})
	}
	return helpers.SendText(c, reply.Text)
}

func (a *App) handleStart(c tele.Context) error {
	name := ""
	if from := c.Sender(); from != nil {
		name = from.FirstName
	}
	return helpers.SendMD(c, fmt.Sprintf(welcomeTemplate, name), spark.SendsparkKeyboard())
}

func (a *App) handleHelp(c tele.Context) error {
	return helpers.SendMD(c, helpText)
}

func (a *App) handleSendspark(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	return sendReply(c, a.service().Begin(ctx, c.Sender().ID))
}

func (a *App) handleCancel(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	return sendReply(c, a.service().Cancel(ctx, c.Sender().ID))
}

// handleFallback answers text that matched neither a conversation nor a command.
func (a *App) handleFallback(c tele.Context) error {
	return sendReply(c, a.service().IdlePrompt())
}

// handleStrayPhoto answers photos uploaded outside any submission.
func (a *App) handleStrayPhoto(c tele.Context) error {
	return sendReply(c, a.service().IdlePhotoPrompt())
}

// InProgress reports whether the sender has an active submission. Part of the
// message routing contract.
func (a *App) InProgress(userID int64) bool {
	return a.service().InProgress(userID)
}

// HandleText forwards conversation text to the submission service.
func (a *App) HandleText(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	return sendReply(c, a.service().Text(ctx, senderUser(c), c.Text()))
}

// HandlePhoto forwards an uploaded photo to the submission service.
func (a *App) HandlePhoto(c tele.Context) error {
	photo := c.Message().Photo
	if photo == nil {
		return nil
	}
	ctx := helpers.BuildContext(c)
	return sendReply(c, a.service().Photo(ctx, senderUser(c), photo.FileID))
}
