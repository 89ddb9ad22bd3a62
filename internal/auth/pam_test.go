//go:build linux && cgo

package auth

import (
	"testing"

	"github.com/msteinert/pam/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversation(t *testing.T) {
	conv := conversation("alice", "secret")

	got, err := conv(pam.PromptEchoOff, "Password: ")
	require.NoError(t, err)
	assert.Equal(t, "secret", got)

	got, err = conv(pam.PromptEchoOn, "login: ")
	require.NoError(t, err)
	assert.Equal(t, "alice", got)

	got, err = conv(pam.TextInfo, "Last login: yesterday")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = conv(pam.ErrorMsg, "account expires soon")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = conv(pam.Style(99), "")
	assert.ErrorIs(t, err, errUnexpectedPrompt)
}
