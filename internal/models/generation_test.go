package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGenerationRequestDefaults(t *testing.T) {
	req, err := ParseGenerationRequest([]byte(`{"message": "hello"}`))
	require.NoError(t, err)

	assert.Equal(t, "hello", req.Message)
	assert.Equal(t, 512, *req.MaxNewTokens)
	assert.True(t, *req.DoSample)
	assert.Equal(t, 0.7, *req.Temperature)
	assert.Equal(t, 0.9, *req.TopP)
}

func TestParseGenerationRequestKeepsExplicitValues(t *testing.T) {
	body := `{"message": "hi", "max_new_tokens": 0, "do_sample": false, "temperature": 0, "top_p": 3.5}`

	req, err := ParseGenerationRequest([]byte(body))
	require.NoError(t, err)

	// Zero values and out-of-range values are forwarded as sent.
	assert.Equal(t, 0, *req.MaxNewTokens)
	assert.False(t, *req.DoSample)
	assert.Equal(t, 0.0, *req.Temperature)
	assert.Equal(t, 3.5, *req.TopP)
}

func TestParseGenerationRequestErrors(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantMessage string
		isParse     bool
	}{
		{name: "empty object", body: `{}`, wantMessage: "`message` field is required"},
		{name: "absent body", body: ``, wantMessage: "`message` field is required"},
		{name: "empty message", body: `{"message": ""}`, wantMessage: "`message` field is required"},
		{name: "null message", body: `{"message": null}`, wantMessage: "`message` field is required"},
		{name: "malformed json", body: `{"message": `, isParse: true},
		{name: "array body", body: `[]`, isParse: true},
		{name: "wrong parameter type", body: `{"message": "hi", "do_sample": "yes"}`, isParse: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGenerationRequest([]byte(tt.body))
			require.Error(t, err)

			if tt.isParse {
				assert.True(t, IsParseError(err), "expected parse error, got %T", err)
				return
			}
			assert.True(t, IsValidationError(err), "expected validation error, got %T", err)
			assert.Equal(t, tt.wantMessage, err.Error())
		})
	}
}

func TestToPayload(t *testing.T) {
	req, err := ParseGenerationRequest([]byte(`{"message": "hello", "temperature": 1}`))
	require.NoError(t, err)

	data, err := json.Marshal(req.ToPayload())
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"prompt": "hello",
		"max_new_tokens": 512,
		"do_sample": true,
		"temperature": 1,
		"top_p": 0.9
	}`, string(data))
}

func TestResponseTimeOrNull(t *testing.T) {
	var withTime DownstreamResult
	require.NoError(t, json.Unmarshal([]byte(`{"generated_text": "hi", "response_time": 1.2}`), &withTime))
	assert.Equal(t, "1.2", string(withTime.ResponseTimeOrNull()))

	var withoutTime DownstreamResult
	require.NoError(t, json.Unmarshal([]byte(`{"generated_text": "hi"}`), &withoutTime))
	assert.Equal(t, "null", string(withoutTime.ResponseTimeOrNull()))

	var nullTime DownstreamResult
	require.NoError(t, json.Unmarshal([]byte(`{"generated_text": "hi", "response_time": null}`), &nullTime))
	assert.Equal(t, "null", string(nullTime.ResponseTimeOrNull()))
}
