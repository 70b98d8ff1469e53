// Package lambda runs the HTTP API behind an AWS Lambda Function URL.
package lambda

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"unicode/utf8"

	"music_hub/internal/core/ports"

	"github.com/aws/aws-lambda-go/events"
)

type Adapter struct {
	handler http.Handler
	log     ports.LoggerPort
}

func NewAdapter(handler http.Handler, logger ports.LoggerPort) *Adapter {
	return &Adapter{
		handler: handler,
		log:     logger,
	}
}

// Handle converts the invocation into an *http.Request, runs it through the
// router and converts the recorded response back.
func (a *Adapter) Handle(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	req, err := newRequest(ctx, event)
	if err != nil {
		a.log.Error("failed to convert lambda event", err)
		return events.LambdaFunctionURLResponse{}, err
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	return newResponse(rec), nil
}

func newRequest(ctx context.Context, event events.LambdaFunctionURLRequest) (*http.Request, error) {
	method := event.RequestContext.HTTP.Method
	if method == "" {
		method = http.MethodGet
	}

	path := event.RawPath
	if path == "" {
		path = "/"
	}
	target := path
	if event.RawQueryString != "" {
		target += "?" + event.RawQueryString
	}

	var body io.Reader = strings.NewReader(event.Body)
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return nil, fmt.Errorf("invalid base64 body: %w", err)
		}
		body = bytes.NewReader(decoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("invalid request %s %s: %w", method, target, err)
	}

	for name, value := range event.Headers {
		req.Header.Set(name, value)
	}
	for _, cookie := range event.Cookies {
		req.Header.Add("Cookie", cookie)
	}
	req.Host = req.Header.Get("Host")
	req.RemoteAddr = event.RequestContext.HTTP.SourceIP

	return req, nil
}

func newResponse(rec *httptest.ResponseRecorder) events.LambdaFunctionURLResponse {
	resp := events.LambdaFunctionURLResponse{
		StatusCode: rec.Code,
		Headers:    make(map[string]string, len(rec.Header())),
	}
	for name, values := range rec.Header() {
		resp.Headers[name] = strings.Join(values, ", ")
	}

	body := rec.Body.Bytes()
	if utf8.Valid(body) {
		resp.Body = string(body)
	} else {
		resp.Body = base64.StdEncoding.EncodeToString(body)
		resp.IsBase64Encoded = true
	}
	return resp
}
