package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/GehirnInc/crypt"
	"github.com/GehirnInc/crypt/md5_crypt"
	"github.com/GehirnInc/crypt/sha256_crypt"
	"github.com/GehirnInc/crypt/sha512_crypt"
	"golang.org/x/crypto/bcrypt"

	"github.com/hostauth/hostauth/internal/hostfs"
)

// ShadowAuthenticator verifies passwords against the crypt(3) hashes of the
// host shadow file. Hash formats the crypt library cannot verify are handed
// to su(1) when the shadow file belongs to the running system.
type ShadowAuthenticator struct {
	root        string
	readTimeout time.Duration
	allowSu     bool
}

// NewShadowAuthenticator creates an authenticator reading <root>/etc/shadow.
func NewShadowAuthenticator(root string, readTimeout time.Duration) *ShadowAuthenticator {
	return &ShadowAuthenticator{
		root:        root,
		readTimeout: readTimeout,
		// su only consults the live system, not a mounted host root
		allowSu: root == "" || root == "/",
	}
}

// Verify checks password against the shadow hash of username.
func (s *ShadowAuthenticator) Verify(ctx context.Context, username, password string) error {
	path, err := hostfs.Path(s.root, hostfs.EtcShadowRel)
	if err != nil {
		return reject(err)
	}

	b, err := hostfs.ReadFile(ctx, path, s.readTimeout)
	if err != nil {
		return reject(err)
	}

	hash, err := shadowHash(string(b), username)
	if err != nil {
		return reject(err)
	}

	if isLockedHash(hash) {
		return reject(ErrUserLocked)
	}

	ok, err := verifyCrypt(hash, password)
	switch {
	case err == nil && ok:
		return nil
	case err == nil:
		return reject(ErrInvalidPassword)
	case s.allowSu:
		if errSu := verifyWithSu(ctx, username, password); errSu != nil {
			return reject(errSu)
		}

		return nil
	default:
		return reject(err)
	}
}

// shadowHash returns the second field of the shadow line for username.
func shadowHash(content, username string) (string, error) {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, ":", 3) //nolint:mnd // name:hash:rest
		if len(parts) < 2 || parts[0] != username {
			continue
		}

		return parts[1], nil
	}

	return "", fmt.Errorf("%w: %s", ErrUserNotFound, username)
}

func isLockedHash(hash string) bool {
	return hash == "" || strings.HasPrefix(hash, "!") || strings.HasPrefix(hash, "*")
}

// verifyCrypt checks md5-crypt ($1$), sha256-crypt ($5$), sha512-crypt ($6$)
// and bcrypt ($2a$, $2b$, $2y$) hashes.
// Other formats (yescrypt $y$, scrypt $7$ ...) yield ErrUnsupportedHash.
func verifyCrypt(hash, password string) (bool, error) {
	var c crypt.Crypter

	switch {
	case strings.HasPrefix(hash, "$6$"):
		c = sha512_crypt.New()
	case strings.HasPrefix(hash, "$5$"):
		c = sha256_crypt.New()
	case strings.HasPrefix(hash, "$1$"):
		c = md5_crypt.New()
	case strings.HasPrefix(hash, "$2a$"), strings.HasPrefix(hash, "$2b$"), strings.HasPrefix(hash, "$2y$"):
		return verifyBcrypt(hash, password)
	default:
		return false, fmt.Errorf("%w: %.3s", ErrUnsupportedHash, hash)
	}

	if err := c.Verify(hash, []byte(password)); err != nil {
		if err == crypt.ErrKeyMismatch { //nolint:errorlint // sentinel from crypt
			return false, nil
		}

		return false, fmt.Errorf("verify hash: %w", err)
	}

	return true, nil
}

func verifyBcrypt(hash, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("verify bcrypt hash: %w", err)
	}
}
