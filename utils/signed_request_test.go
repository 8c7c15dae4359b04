package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func TestSignAndVerify(t *testing.T) {
	key := []byte("shared-secret")

	payload, err := SignPayload(key, credentials{Username: "alice", Password: "hunter22"})
	require.NoError(t, err)

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	data, err := VerifySignedBody(key, body)
	require.NoError(t, err)

	var got credentials
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "hunter22", got.Password)
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	payload, err := SignPayload([]byte("key-one"), credentials{Username: "alice"})
	require.NoError(t, err)
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	_, err = VerifySignedBody([]byte("key-two"), body)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestVerifyRejectsTamperedData(t *testing.T) {
	key := []byte("shared-secret")
	payload, err := SignPayload(key, credentials{Username: "alice"})
	require.NoError(t, err)

	payload.Data = json.RawMessage(`{"username":"mallory"}`)
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	_, err = VerifySignedBody(key, body)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestVerifyRejectsMissingPieces(t *testing.T) {
	key := []byte("shared-secret")

	_, err := VerifySignedBody(key, []byte(`{"data":{"username":"alice"}}`))
	assert.ErrorIs(t, err, ErrBadSignature)

	_, err = VerifySignedBody(key, []byte(`{"signature":"abcd"}`))
	assert.ErrorIs(t, err, ErrBadSignature)

	_, err = VerifySignedBody(key, []byte(`not json`))
	assert.Error(t, err)

	_, err = VerifySignedBody(key, []byte(`{"data":{"a":1},"signature":"zz-not-hex"}`))
	assert.ErrorIs(t, err, ErrBadSignature)
}
