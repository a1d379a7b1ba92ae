package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// DecodeEnvelope reads the success envelope and unmarshals its data into v
func DecodeEnvelope(t *testing.T, resp *http.Response, v interface{}) Envelope {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	var envelope Envelope
	err = json.Unmarshal(body, &envelope)
	require.NoError(t, err, "failed to unmarshal envelope: %s", string(body))
	require.True(t, envelope.Success, "expected success envelope: %s", string(body))

	if v != nil {
		err = json.Unmarshal(envelope.Data, v)
		require.NoError(t, err, "failed to unmarshal envelope data: %s", string(envelope.Data))
	}
	return envelope
}

// AssertErrorEnvelope verifies the error envelope and its status code
func AssertErrorEnvelope(t *testing.T, resp *http.Response, expectedStatus int) ErrorEnvelope {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	var envelope ErrorEnvelope
	err = json.Unmarshal(body, &envelope)
	require.NoError(t, err, "failed to unmarshal error envelope: %s", string(body))
	assert.False(t, envelope.Success, "expected error envelope")
	assert.Equal(t, expectedStatus, envelope.StatusCode, "envelope status mismatch")
	return envelope
}

// AssertNoSensitiveFields verifies a raw JSON object never carries the
// password hash or refresh token
func AssertNoSensitiveFields(t *testing.T, raw json.RawMessage) {
	t.Helper()

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "passwordHash")
	assert.NotContains(t, fields, "password")
	assert.NotContains(t, fields, "refreshToken")
}
