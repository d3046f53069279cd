package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChallengeResponse_MatchesHMACContract(t *testing.T) {
	secret := "consumer-secret"
	token := "challenge-token"

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(token))
	expected := "sha256=" + base64.StdEncoding.EncodeToString(mac.Sum(nil))

	assert.Equal(t, expected, ChallengeResponse(secret, token))
}

func TestChallengeResponse_Deterministic(t *testing.T) {
	first := ChallengeResponse("s3cr3t", "abc123")
	second := ChallengeResponse("s3cr3t", "abc123")
	assert.Equal(t, first, second)
}

func TestChallengeResponse_Format(t *testing.T) {
	resp := ChallengeResponse("key", "nonce")

	require.True(t, strings.HasPrefix(resp, "sha256="))

	// The digest part must be valid base64 of a 32-byte SHA-256 mac.
	digest, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(resp, "sha256="))
	require.NoError(t, err)
	assert.Len(t, digest, sha256.Size)
}

func TestChallengeResponse_DependsOnSecretAndToken(t *testing.T) {
	base := ChallengeResponse("secret-a", "token-a")
	assert.NotEqual(t, base, ChallengeResponse("secret-b", "token-a"))
	assert.NotEqual(t, base, ChallengeResponse("secret-a", "token-b"))
}
