package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// ChallengeResponse answers a CRC challenge: the base64-encoded
// HMAC-SHA256 of the token keyed by the app's consumer secret, prefixed
// with "sha256=". The format is fixed by Twitter's webhook registration
// contract and must match bit-exactly.
func ChallengeResponse(consumerSecret, token string) string {
	mac := hmac.New(sha256.New, []byte(consumerSecret))
	mac.Write([]byte(token))
	return "sha256=" + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
