package auth

import "errors"

var (
	// ErrCredentialRejected is matched by every *CredentialRejectedError.
	// The host declined the username/password pair; callers must not learn why.
	ErrCredentialRejected = errors.New("credentials rejected")

	// ErrIdentityLookupFailed is returned by Provider.Login when the numeric id
	// of a user that just authenticated cannot be resolved.
	ErrIdentityLookupFailed = errors.New("identity lookup failed")

	// ErrEmptyUsername is the rejection cause for requests without a username.
	ErrEmptyUsername = errors.New("empty username")

	// ErrVerifyTimeout is the rejection cause when the host credential service
	// does not answer in time.
	ErrVerifyTimeout = errors.New("credential verification timed out")

	// ErrPAMUnavailable is the rejection cause on builds without PAM support.
	ErrPAMUnavailable = errors.New("pam authentication is not available in this build")

	// ErrUserNotFound is returned when a user is absent from a host account database.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserLocked is the rejection cause for accounts with a locked or empty hash.
	ErrUserLocked = errors.New("user is locked")

	// ErrInvalidPassword is the rejection cause for a password that does not match.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrUnsupportedHash is returned when a shadow hash format cannot be verified in process.
	ErrUnsupportedHash = errors.New("unsupported password hash")

	// ErrUnknownBackend is returned by NewAuthenticator for an unknown backend name.
	ErrUnknownBackend = errors.New("unknown authentication backend")

	// ErrAuthBackend wraps failures of the su(1) fallback itself.
	ErrAuthBackend = errors.New("auth backend error")

	// ErrSuAsRoot is the rejection cause when the su(1) fallback would run as root.
	// root is never asked for a password, so su cannot prove one.
	ErrSuAsRoot = errors.New("su fallback refused for a root process")

	// ErrNoPasswordPrompt is the rejection cause when su(1) exits without asking for a password.
	ErrNoPasswordPrompt = errors.New("su did not ask for a password")

	// ErrLookupTimeout is returned when the host account lookup does not answer in time.
	ErrLookupTimeout = errors.New("host account lookup timed out")
)

// CredentialRejectedError carries the host service error behind a rejection.
type CredentialRejectedError struct {
	Err error
}

func (e *CredentialRejectedError) Error() string {
	if e.Err == nil {
		return ErrCredentialRejected.Error()
	}

	return ErrCredentialRejected.Error() + ": " + e.Err.Error()
}

// Is makes errors.Is(err, ErrCredentialRejected) true for any rejection.
func (e *CredentialRejectedError) Is(target error) bool {
	return target == ErrCredentialRejected
}

func (e *CredentialRejectedError) Unwrap() error {
	return e.Err
}

// reject wraps err into a *CredentialRejectedError unless it already is one.
func reject(err error) error {
	var rejected *CredentialRejectedError
	if errors.As(err, &rejected) {
		return err
	}

	return &CredentialRejectedError{Err: err}
}
