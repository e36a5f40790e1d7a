package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

const signaturePrefix = "sha256="

// GenerateSignedPayload serializes event and signs it with HMAC-SHA256 at the given time.
// Returns the JSON payload, the signature header value and the unix timestamp that was signed.
func GenerateSignedPayload(secret string, event WebhookEvent, at time.Time) (payload []byte, signature string, timestamp int64, err error) {
	payload, err = json.Marshal(event)
	if err != nil {
		return nil, "", 0, fmt.Errorf("failed to marshal event: %w", err)
	}

	timestamp = at.Unix()
	signature = Sign(secret, timestamp, event.EventID, payload)
	return payload, signature, timestamp, nil
}

// Sign computes the signature header value of a payload.
// The signed message is {timestamp}.{event_id}.{json_body}.
func Sign(secret string, timestamp int64, eventID string, payload []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(fmt.Sprintf("%d.%s.", timestamp, eventID)))
	h.Write(payload)
	return signaturePrefix + hex.EncodeToString(h.Sum(nil))
}

// VerifySignature checks a signature header against the payload in constant time
func VerifySignature(secret string, timestamp int64, eventID string, payload []byte, signature string) bool {
	expected := Sign(secret, timestamp, eventID, payload)
	return hmac.Equal([]byte(expected), []byte(signature))
}
