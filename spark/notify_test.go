package spark

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trepalabs/sparkbot/spark/sessions"
)

func TestBuildNotification(t *testing.T) {
	user := User{ID: 1234, FirstName: "Ada", LastName: "Lovelace", Username: "adal"}
	draft := sessions.Draft{
		Question:    "Will remote work decline in 2027?",
		Description: "Saw a thread about return-to-office mandates.",
	}

	got := buildNotification(user, draft)

	assert.Contains(t, got, "🌟 NEW SPARK RECEIVED 🌟")
	assert.Contains(t, got, "User: Ada Lovelace (@adal)")
	assert.Contains(t, got, "User ID: 1234")
	assert.Contains(t, got, "Question: Will remote work decline in 2027?")
	assert.Contains(t, got, "Description/Source: Saw a thread about return-to-office mandates.")
	assert.NotContains(t, got, "Additional Info:")
	assert.NotContains(t, got, "Image URL:")
}

func TestBuildNotificationFallbacks(t *testing.T) {
	user := User{ID: 9, FirstName: "Sam"}

	got := buildNotification(user, sessions.Draft{})

	assert.Contains(t, got, "User: Sam (@no username)")
	assert.Contains(t, got, "Question: No question provided")
	assert.Contains(t, got, "Description/Source: No description provided")
}

func TestBuildNotificationAdditionalInfo(t *testing.T) {
	user := User{ID: 9, FirstName: "Sam", Username: "sam"}
	draft := sessions.Draft{
		Question:       "q",
		Description:    "d",
		AdditionalInfo: "mentioned by three different podcasts",
	}

	got := buildNotification(user, draft)
	assert.Contains(t, got, "Additional Info: mentioned by three different podcasts")
}

func TestBuildNotificationImageURL(t *testing.T) {
	user := User{ID: 9, FirstName: "Sam", Username: "sam"}
	draft := sessions.Draft{
		Question:    "q",
		Description: "d",
		Image:       sessions.URLRef("https://example.com/chart.png"),
	}

	got := buildNotification(user, draft)
	assert.Contains(t, got, "Image URL: https://example.com/chart.png")
}

func TestBuildNotificationImageFileOmitsURLLine(t *testing.T) {
	user := User{ID: 9, FirstName: "Sam", Username: "sam"}
	draft := sessions.Draft{
		Question:    "q",
		Description: "d",
		Image:       sessions.FileRef("file-id"),
	}

	got := buildNotification(user, draft)
	assert.NotContains(t, got, "Image URL:")
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", User{FirstName: "Ada", LastName: "Lovelace"}.DisplayName())
	assert.Equal(t, "Ada", User{FirstName: "Ada"}.DisplayName())
}
