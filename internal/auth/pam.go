//go:build linux && cgo

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/msteinert/pam/v2"
	"github.com/rs/zerolog/log"
)

// PAMAuthenticator verifies credentials through a libpam transaction.
type PAMAuthenticator struct {
	service string
}

// NewPAMAuthenticator creates an authenticator for the given PAM service.
func NewPAMAuthenticator(service string) *PAMAuthenticator {
	return &PAMAuthenticator{service: service}
}

// Verify runs pam_authenticate and pam_acct_mgmt for username.
func (p *PAMAuthenticator) Verify(ctx context.Context, username, password string) error {
	if err := ctx.Err(); err != nil {
		return reject(err)
	}

	tx, err := pam.StartFunc(p.service, username, conversation(username, password))
	if err != nil {
		return reject(fmt.Errorf("pam start %s: %w", p.service, err))
	}

	defer func() {
		if errEnd := tx.End(); errEnd != nil {
			log.Warn().Err(errEnd).Str("service", p.service).Msg("failed to end pam transaction")
		}
	}()

	if err = tx.Authenticate(pam.Silent); err != nil {
		return reject(fmt.Errorf("pam authenticate: %w", err))
	}

	if err = tx.AcctMgmt(pam.Silent); err != nil {
		return reject(fmt.Errorf("pam account: %w", err))
	}

	return nil
}

// errUnexpectedPrompt is returned to PAM for conversation styles we cannot answer.
var errUnexpectedPrompt = errors.New("unexpected pam prompt style")

// conversation answers password prompts with password and login prompts with username.
func conversation(username, password string) func(pam.Style, string) (string, error) {
	return func(style pam.Style, msg string) (string, error) {
		switch style {
		case pam.PromptEchoOff:
			return password, nil
		case pam.PromptEchoOn:
			return username, nil
		case pam.ErrorMsg:
			log.Debug().Str("pam", msg).Msg("pam error message")
			return "", nil
		case pam.TextInfo:
			log.Debug().Str("pam", msg).Msg("pam info message")
			return "", nil
		default:
			return "", fmt.Errorf("%w: %d", errUnexpectedPrompt, style)
		}
	}
}
