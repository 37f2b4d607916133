package lambda

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
)

// Request represents a generic HTTP request for serverless functions
type Request struct {
	RequestID   string                 `json:"request_id"`
	Method      string                 `json:"method"`
	Path        string                 `json:"path"`
	Headers     map[string]string      `json:"headers"`
	QueryParams map[string]string      `json:"query_params"`
	Body        []byte                 `json:"body"`
	PathParams  map[string]string      `json:"path_params"`
	Claims      map[string]interface{} `json:"claims,omitempty"`
}

// Response represents a generic HTTP response for serverless functions
type Response struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Body       []byte            `json:"body"`
}

// HandlerFunc is a framework-agnostic handler. It always produces a response.
type HandlerFunc func(ctx context.Context, req *Request) *Response

// FromAPIGatewayProxy converts an API Gateway REST proxy event to a generic request.
// Cognito claims, when present, are taken from requestContext.authorizer.claims.
func FromAPIGatewayProxy(event events.APIGatewayProxyRequest) *Request {
	return &Request{
		RequestID:   event.RequestContext.RequestID,
		Method:      event.HTTPMethod,
		Path:        event.Path,
		Headers:     event.Headers,
		QueryParams: event.QueryStringParameters,
		Body:        []byte(event.Body),
		PathParams:  event.PathParameters,
		Claims:      authorizerClaims(event.RequestContext.Authorizer),
	}
}

// ToAPIGatewayProxy converts the response to an API Gateway proxy response
func (r *Response) ToAPIGatewayProxy() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: r.StatusCode,
		Headers:    r.Headers,
		Body:       string(r.Body),
	}
}

// Handle adapts a HandlerFunc to the API Gateway proxy signature expected by
// the Lambda runtime. The returned error is always nil.
func Handle(h HandlerFunc) func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return h(ctx, FromAPIGatewayProxy(event)).ToAPIGatewayProxy(), nil
	}
}

func authorizerClaims(authorizer map[string]interface{}) map[string]interface{} {
	if authorizer == nil {
		return nil
	}
	claims, ok := authorizer["claims"].(map[string]interface{})
	if !ok {
		return nil
	}
	return claims
}

// CallerIdentity returns the caller's email, falling back to the Cognito
// username. It is empty when the request carries no usable claims.
func (r *Request) CallerIdentity() string {
	for _, key := range []string{"email", "cognito:username"} {
		if value, ok := r.Claims[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}
