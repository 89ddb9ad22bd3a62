package auth

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/GehirnInc/crypt/sha512_crypt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hostauth/hostauth/internal/hostfs"
)

func writeHostShadow(t *testing.T, content string) string {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "etc"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, hostfs.EtcShadowRel), []byte(content), 0o600))

	return root
}

func TestShadowAuthenticator(t *testing.T) {
	hash, err := sha512_crypt.New().Generate([]byte("secret"), []byte("$6$saltsalt"))
	require.NoError(t, err)

	shadow := fmt.Sprintf(
		"root:!:19000:0:99999:7:::\nalice:%s:19000:0:99999:7:::\nbob:*:19000::::::\ncarol:$y$j9T$abc$def:19000::::::\n",
		hash,
	)
	root := writeHostShadow(t, shadow)
	s := NewShadowAuthenticator(root, time.Second)

	// host root mounts never shell out to su
	assert.False(t, s.allowSu)

	testCases := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "accepted", username: "alice", password: "secret"},
		{name: "wrong password", username: "alice", password: "nope", wantErr: ErrInvalidPassword},
		{name: "locked with bang", username: "root", password: "secret", wantErr: ErrUserLocked},
		{name: "locked with star", username: "bob", password: "secret", wantErr: ErrUserLocked},
		{name: "unknown user", username: "dave", password: "secret", wantErr: ErrUserNotFound},
		{name: "unsupported hash", username: "carol", password: "secret", wantErr: ErrUnsupportedHash},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := s.Verify(context.Background(), tc.username, tc.password)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrCredentialRejected)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestShadowAuthenticator_MissingFile(t *testing.T) {
	err := NewShadowAuthenticator(t.TempDir(), time.Second).Verify(context.Background(), "alice", "secret")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCredentialRejected)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewShadowAuthenticator_SuOnlyOnLiveSystem(t *testing.T) {
	assert.True(t, NewShadowAuthenticator("", time.Second).allowSu)
	assert.True(t, NewShadowAuthenticator("/", time.Second).allowSu)
	assert.False(t, NewShadowAuthenticator("/host", time.Second).allowSu)
}

func TestShadowHash(t *testing.T) {
	content := "# comment\n\nalice:$6$x$y:1::::::\r\nbob\n"

	hash, err := shadowHash(content, "alice")
	require.NoError(t, err)
	assert.Equal(t, "$6$x$y", hash)

	_, err = shadowHash(content, "bob")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestIsLockedHash(t *testing.T) {
	assert.True(t, isLockedHash(""))
	assert.True(t, isLockedHash("!"))
	assert.True(t, isLockedHash("!$6$abc"))
	assert.True(t, isLockedHash("*"))
	assert.False(t, isLockedHash("$6$abc$def"))
}

func TestVerifyCrypt(t *testing.T) {
	sha512, err := sha512_crypt.New().Generate([]byte("secret"), []byte("$6$saltsalt"))
	require.NoError(t, err)

	bc, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	testCases := []struct {
		name     string
		hash     string
		password string
		want     bool
		wantErr  error
	}{
		{name: "sha512 match", hash: sha512, password: "secret", want: true},
		{name: "sha512 mismatch", hash: sha512, password: "nope"},
		{name: "bcrypt match", hash: string(bc), password: "secret", want: true},
		{name: "bcrypt mismatch", hash: string(bc), password: "nope"},
		{name: "yescrypt", hash: "$y$j9T$abc$def", password: "secret", wantErr: ErrUnsupportedHash},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := verifyCrypt(tc.hash, tc.password)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}
