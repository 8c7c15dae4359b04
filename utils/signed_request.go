package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
)

// Signed requests carry the sensitive login payload together with an
// HMAC-SHA256 signature over the exact data bytes, computed with a secret
// shared with trusted clients. The signature is checked before the payload
// is ever parsed.

var ErrBadSignature = errors.New("signature mismatch")

type SignedPayload struct {
	Data      json.RawMessage `json:"data"`
	Signature string          `json:"signature"`
}

// SignPayload produces a signed envelope for data. Used by clients and
// tests; the server only verifies.
func SignPayload(key []byte, data any) (*SignedPayload, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &SignedPayload{Data: raw, Signature: computeSignature(key, raw)}, nil
}

// VerifySignedBody checks the envelope's signature and returns the inner
// data bytes on success.
func VerifySignedBody(key, body []byte) (json.RawMessage, error) {
	var payload SignedPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	if len(payload.Data) == 0 || payload.Signature == "" {
		return nil, ErrBadSignature
	}

	expected, err := hex.DecodeString(payload.Signature)
	if err != nil {
		return nil, ErrBadSignature
	}
	mac := hmac.New(sha256.New, key)
	mac.Write(payload.Data)
	if !hmac.Equal(mac.Sum(nil), expected) {
		return nil, ErrBadSignature
	}
	return payload.Data, nil
}

func computeSignature(key, data []byte) string {
	mac := hmac.New(sha256.New, key)
	mac.Write(data)
	return hex.EncodeToString(mac.Sum(nil))
}
