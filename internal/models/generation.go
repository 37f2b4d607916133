package models

import (
	"encoding/json"
	"strings"
)

// Generation parameter defaults applied when the caller omits a field
const (
	DefaultMaxNewTokens = 512
	DefaultDoSample     = true
	DefaultTemperature  = 0.7
	DefaultTopP         = 0.9
)

// GenerationRequest is the chat request carried in the inbound event body.
// Optional parameters are pointers so that an absent field can be told apart
// from a zero value.
type GenerationRequest struct {
	Message      string   `json:"message" validate:"required"`
	MaxNewTokens *int     `json:"max_new_tokens,omitempty"`
	DoSample     *bool    `json:"do_sample,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty"`
	TopP         *float64 `json:"top_p,omitempty"`
}

// OutboundPayload is the JSON body POSTed to the generation service
type OutboundPayload struct {
	Prompt       string  `json:"prompt"`
	MaxNewTokens int     `json:"max_new_tokens"`
	DoSample     bool    `json:"do_sample"`
	Temperature  float64 `json:"temperature"`
	TopP         float64 `json:"top_p"`
}

// DownstreamResult is the decoded response of the generation service.
// ResponseTime is opaque and forwarded untouched.
type DownstreamResult struct {
	GeneratedText *string         `json:"generated_text"`
	ResponseTime  json.RawMessage `json:"response_time,omitempty"`
}

// ParseGenerationRequest decodes an inbound body, validates it and applies
// the parameter defaults. An empty body is treated as an empty JSON object.
func ParseGenerationRequest(body []byte) (*GenerationRequest, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		body = []byte("{}")
	}

	var req GenerationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, &ParseError{Err: err}
	}

	if err := ValidateStruct(&req); err != nil {
		return nil, err
	}

	req.ApplyDefaults()
	return &req, nil
}

// ApplyDefaults fills every absent generation parameter with its default
func (r *GenerationRequest) ApplyDefaults() {
	if r.MaxNewTokens == nil {
		v := DefaultMaxNewTokens
		r.MaxNewTokens = &v
	}
	if r.DoSample == nil {
		v := DefaultDoSample
		r.DoSample = &v
	}
	if r.Temperature == nil {
		v := DefaultTemperature
		r.Temperature = &v
	}
	if r.TopP == nil {
		v := DefaultTopP
		r.TopP = &v
	}
}

// ToPayload builds the outbound payload. Defaults must already be applied.
func (r *GenerationRequest) ToPayload() *OutboundPayload {
	return &OutboundPayload{
		Prompt:       r.Message,
		MaxNewTokens: *r.MaxNewTokens,
		DoSample:     *r.DoSample,
		Temperature:  *r.Temperature,
		TopP:         *r.TopP,
	}
}

// ResponseTimeOrNull returns the downstream response_time, or JSON null when absent
func (d *DownstreamResult) ResponseTimeOrNull() json.RawMessage {
	if len(d.ResponseTime) == 0 {
		return json.RawMessage("null")
	}
	return d.ResponseTime
}
