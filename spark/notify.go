package spark

import (
	"fmt"
	"strings"

	"github.com/trepalabs/sparkbot/spark/sessions"
)

// User carries the submitter's identity as presented to the admin.
type User struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string
}

// DisplayName joins the first and optional last name.
func (u User) DisplayName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

const (
	fallbackQuestion    = "No question provided"
	fallbackDescription = "No description provided"
)

// buildNotification assembles the admin-facing notification text for a
// completed submission. For URL-referenced images the literal link is always
// appended, so the admin keeps it even when the download fails.
func buildNotification(user User, draft sessions.Draft) string {
	question := draft.Question
	if question == "" {
		question = fallbackQuestion
	}
	description := draft.Description
	if description == "" {
		description = fallbackDescription
	}
	username := "no username"
	if user.Username != "" {
		username = user.Username
	}

	var b strings.Builder
	b.WriteString("🌟 NEW SPARK RECEIVED 🌟\n\n")
	fmt.Fprintf(&b, "User: %s (@%s)\n", user.DisplayName(), username)
	fmt.Fprintf(&b, "User ID: %d\n\n", user.ID)
	fmt.Fprintf(&b, "Question: %s\n\n", question)
	fmt.Fprintf(&b, "Description/Source: %s", description)

	if draft.AdditionalInfo != "" {
		fmt.Fprintf(&b, "\n\nAdditional Info: %s", draft.AdditionalInfo)
	}
	if draft.Image.Kind == sessions.ImageURL {
		fmt.Fprintf(&b, "\n\nImage URL: %s", draft.Image.URL)
	}

	return b.String()
}
