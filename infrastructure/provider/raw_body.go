package provider

import (
	"bytes"
	"context"
	"io"
	"net/http"
)

type rawBodyKey struct{}

type rawBody struct {
	data []byte
}

// withRawBody marks ctx so the call made with it keeps a copy of the response body.
func withRawBody(ctx context.Context) (context.Context, *rawBody) {
	rb := &rawBody{}
	return context.WithValue(ctx, rawBodyKey{}, rb), rb
}

// rawBodyTransport copies response bodies for requests whose context asks for it.
// The generated client decodes into structs that drop zero values, so the copy
// is the only way to hand the upstream body on untouched.
type rawBodyTransport struct {
	base http.RoundTripper
}

func (t *rawBodyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	rb, ok := req.Context().Value(rawBodyKey{}).(*rawBody)
	if !ok {
		return resp, nil
	}

	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	rb.data = data
	resp.Body = io.NopCloser(bytes.NewReader(data))

	return resp, nil
}
