package clerk

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bodylog/internal/domain"
)

const testSecret = "whsec_MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw"

func sign(t *testing.T, secret, msgID, timestamp string, payload []byte) string {
	t.Helper()
	key, err := base64.StdEncoding.DecodeString(secret[len(secretPrefix):])
	require.NoError(t, err)
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(msgID + "." + timestamp + "."))
	mac.Write(payload)
	return "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestVerifyValidSignature(t *testing.T) {
	v, err := NewVerifier(testSecret, 0)
	require.NoError(t, err)

	payload := []byte(`{"data":{"id":"user_1"}}`)
	sig := sign(t, testSecret, "msg_1", "1614265330", payload)

	require.NoError(t, v.Verify(payload, "msg_1", sig, "1614265330"))
}

func TestVerifyAcceptsAnyMatchingCandidate(t *testing.T) {
	v, err := NewVerifier(testSecret, 0)
	require.NoError(t, err)

	payload := []byte(`{}`)
	good := sign(t, testSecret, "msg_1", "1614265330", payload)
	header := "v1,bm9wZQ== v2,aWdub3JlZA== " + good

	require.NoError(t, v.Verify(payload, "msg_1", header, "1614265330"))
}

func TestVerifyMutatedPayloadFails(t *testing.T) {
	v, err := NewVerifier(testSecret, 0)
	require.NoError(t, err)

	payload := []byte(`{"data":{"id":"user_1"}}`)
	sig := sign(t, testSecret, "msg_1", "1614265330", payload)

	payload[0] = '['
	err = v.Verify(payload, "msg_1", sig, "1614265330")
	require.True(t, errors.Is(err, domain.ErrInvalidSignature))
}

func TestVerifyMutatedSignatureFails(t *testing.T) {
	v, err := NewVerifier(testSecret, 0)
	require.NoError(t, err)

	payload := []byte(`{}`)
	sig := sign(t, testSecret, "msg_1", "1614265330", payload)
	sig = sig[:len(sig)-5] + "AAAA="

	err = v.Verify(payload, "msg_1", sig, "1614265330")
	require.True(t, errors.Is(err, domain.ErrInvalidSignature))
}

func TestVerifyMissingHeaders(t *testing.T) {
	v, err := NewVerifier(testSecret, 0)
	require.NoError(t, err)

	payload := []byte(`{}`)
	sig := sign(t, testSecret, "msg_1", "1614265330", payload)

	tests := []struct {
		name      string
		msgID     string
		signature string
		timestamp string
	}{
		{"no id", "", sig, "1614265330"},
		{"no signature", "msg_1", "", "1614265330"},
		{"no timestamp", "msg_1", sig, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Verify(payload, tc.msgID, tc.signature, tc.timestamp)
			require.True(t, errors.Is(err, domain.ErrMissingHeader))
		})
	}
}

func TestVerifyTimestampTolerance(t *testing.T) {
	v, err := NewVerifier(testSecret, 5*time.Minute)
	require.NoError(t, err)

	payload := []byte(`{}`)
	stale := "1614265330"
	sig := sign(t, testSecret, "msg_1", stale, payload)
	err = v.Verify(payload, "msg_1", sig, stale)
	require.True(t, errors.Is(err, domain.ErrInvalidSignature))

	fresh := strconv.FormatInt(time.Now().Unix(), 10)
	sig = sign(t, testSecret, "msg_1", fresh, payload)
	require.NoError(t, v.Verify(payload, "msg_1", sig, fresh))
}

func TestVerifyBadSecret(t *testing.T) {
	_, err := NewVerifier("whsec_%%%", 0)
	require.Error(t, err)
}
