package telegram

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trepalabs/sparkbot/core/logger"
	"github.com/trepalabs/sparkbot/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

func TestMain(m *testing.M) {
	if err := logger.InitLogger(nil); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func noopHandler(tele.Context) error { return nil }

func TestRegistryRegisterAndLookup(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/sendspark", commands.Command{
		Handler:     noopHandler,
		Description: "Submit a spark",
		Aliases:     []string{"spark"},
	})

	key, cmd, ok := reg.LookupCommand("/sendspark")
	require.True(t, ok)
	assert.Equal(t, "/sendspark", key)
	assert.Equal(t, "Submit a spark", cmd.Description)

	key, _, ok = reg.LookupCommand("spark")
	require.True(t, ok)
	assert.Equal(t, "/sendspark", key)

	_, _, ok = reg.LookupCommand("/unknown")
	assert.False(t, ok)
}

func TestRegistryRejectsInvalidRegistrations(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("", commands.Command{Handler: noopHandler, Description: "x"})
	reg.RegisterCommand("start", commands.Command{Handler: noopHandler, Description: "no slash"})
	reg.RegisterCommand("/nohandler", commands.Command{Description: "x"})
	reg.RegisterCommand("/nodesc", commands.Command{Handler: noopHandler})

	assert.Empty(t, reg.Commands())
}

func TestRegistryDuplicateKeepsFirst(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/help", commands.Command{Handler: noopHandler, Description: "first"})
	reg.RegisterCommand("/help", commands.Command{Handler: noopHandler, Description: "second"})

	_, cmd, ok := reg.LookupCommand("/help")
	require.True(t, ok)
	assert.Equal(t, "first", cmd.Description)
}

func TestRegistryListCommandsFiltersHidden(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/start", commands.Command{Handler: noopHandler, Description: "start"})
	reg.RegisterCommand("/debug", commands.Command{Handler: noopHandler, Description: "debug", Hidden: true})

	visible := reg.ListCommands(true)
	require.Len(t, visible, 1)
	assert.Equal(t, "/start", visible[0].Text)

	all := reg.ListCommands(false)
	assert.Len(t, all, 2)
}

func TestRegistryTextFallback(t *testing.T) {
	reg := NewRegistry()
	assert.Nil(t, reg.TextFallback())

	reg.SetTextFallback(noopHandler)
	assert.NotNil(t, reg.TextFallback())
}
