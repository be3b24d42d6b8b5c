package clerk

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"bodylog/internal/domain"
)

// Webhook delivery headers, fixed by the Svix signing convention.
const (
	HeaderMessageID = "svix-id"
	HeaderSignature = "svix-signature"
	HeaderTimestamp = "svix-timestamp"
)

// registrationPayload mirrors the slice of the Clerk event body this service
// reads. The event type is deliberately not branched on: every verified
// delivery is treated as a registration.
type registrationPayload struct {
	Data struct {
		ID             string `json:"id"`
		EmailAddresses []struct {
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
	} `json:"data"`
	Type string `json:"type"`
}

// ParseRegistration reads the request body exactly once, verifies the Svix
// signature, and extracts a normalized registration request. The body is
// never handed to the JSON parser unless verification succeeds.
//
// Ensure the HTTP handler does not consume r.Body before calling this.
func ParseRegistration(r *http.Request, verifier *Verifier) (*domain.AccountRegisterRequest, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("read webhook body: %w", err)
	}

	if err := verifier.Verify(body,
		r.Header.Get(HeaderMessageID),
		r.Header.Get(HeaderSignature),
		r.Header.Get(HeaderTimestamp),
	); err != nil {
		return nil, err
	}

	var payload registrationPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}

	if payload.Data.ID == "" {
		return nil, fmt.Errorf("%w: data.id is missing", domain.ErrInvalidPayload)
	}
	if len(payload.Data.EmailAddresses) == 0 || payload.Data.EmailAddresses[0].EmailAddress == "" {
		return nil, fmt.Errorf("%w: data.email_addresses is empty", domain.ErrInvalidPayload)
	}

	return &domain.AccountRegisterRequest{
		Email:      payload.Data.EmailAddresses[0].EmailAddress,
		ProviderID: payload.Data.ID,
	}, nil
}
