// Package clerk integrates with the Clerk identity provider: verification of
// signed webhook deliveries, resolution of registration payloads, and the
// outbound user-metadata API.
package clerk

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"bodylog/internal/domain"
)

const secretPrefix = "whsec_"

// Verifier checks webhook authenticity using the Svix signing convention:
// HMAC-SHA256 over "{id}.{timestamp}.{payload}" with a base64-decoded shared
// secret, compared against the "v1,<base64 digest>" candidates carried in the
// signature header.
type Verifier struct {
	key       []byte
	tolerance time.Duration
}

// NewVerifier builds a Verifier from the "whsec_"-prefixed base64 secret.
// A tolerance of zero disables the timestamp skew check.
func NewVerifier(secret string, tolerance time.Duration) (*Verifier, error) {
	key, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(secret, secretPrefix))
	if err != nil {
		return nil, fmt.Errorf("decode webhook secret: %w", err)
	}
	return &Verifier{key: key, tolerance: tolerance}, nil
}

// Verify checks the delivery headers and payload. It returns
// domain.ErrMissingHeader when any header value is empty and
// domain.ErrInvalidSignature when no signature candidate matches.
func (v *Verifier) Verify(payload []byte, msgID, signature, timestamp string) error {
	if msgID == "" {
		return fmt.Errorf("%w: %s", domain.ErrMissingHeader, HeaderMessageID)
	}
	if signature == "" {
		return fmt.Errorf("%w: %s", domain.ErrMissingHeader, HeaderSignature)
	}
	if timestamp == "" {
		return fmt.Errorf("%w: %s", domain.ErrMissingHeader, HeaderTimestamp)
	}

	if v.tolerance > 0 {
		if err := v.checkTimestamp(timestamp); err != nil {
			return err
		}
	}

	mac := hmac.New(sha256.New, v.key)
	mac.Write([]byte(msgID))
	mac.Write([]byte("."))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	for _, candidate := range strings.Fields(signature) {
		version, sig, ok := strings.Cut(candidate, ",")
		if !ok || version != "v1" {
			continue
		}
		if hmac.Equal([]byte(sig), []byte(expected)) {
			return nil
		}
	}
	return domain.ErrInvalidSignature
}

func (v *Verifier) checkTimestamp(timestamp string) error {
	sec, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: bad timestamp %q", domain.ErrInvalidSignature, timestamp)
	}
	skew := time.Since(time.Unix(sec, 0))
	if skew < 0 {
		skew = -skew
	}
	if skew > v.tolerance {
		return fmt.Errorf("%w: timestamp outside tolerance", domain.ErrInvalidSignature)
	}
	return nil
}
