// Package api is the REST client for the storefront backend. Every response
// travels in a `{ status, message, data }` envelope; errors carry the
// server's message when one is present. Authentication is a session cookie
// held by the http.Client's jar, not a bearer token.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// maxBodySize bounds how much of a response body is read.
const maxBodySize = 4 << 20

// Client talks to the storefront backend. It never retries a failed call:
// retry is a user-initiated action.
type Client struct {
	http *http.Client
	base *url.URL
}

// New creates a Client for the backend rooted at base. The http.Client is
// expected to carry the session cookie jar and any transport middleware.
func New(base *url.URL, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{http: httpClient, base: base}
}

// envelope is the backend's standard response wrapper.
type envelope struct {
	Status  string
	Message string
	Data    jx.Raw
}

// parseEnvelope extracts the envelope fields without decoding the payload,
// which is kept raw for the caller to unmarshal into its own shape.
func parseEnvelope(data []byte) (envelope, error) {
	var env envelope
	d := jx.DecodeBytes(data)
	if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "status":
			s, err := d.Str()
			env.Status = s
			return err
		case "message":
			s, err := d.Str()
			env.Message = s
			return err
		case "data":
			raw, err := d.Raw()
			env.Data = raw
			return err
		default:
			return d.Skip()
		}
	}); err != nil {
		return env, errors.Wrap(err, "parse envelope")
	}
	return env, nil
}

// do performs a JSON request. A non-nil body is marshaled as the request
// payload; a non-nil out receives the envelope's data payload. Responses
// whose envelope has no data key are decoded from the body root, which some
// endpoints (login) use.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "marshal request")
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.JoinPath(path).String(), rd)
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.roundTrip(req, out)
}

// filePart is an upload attached to a multipart request.
type filePart struct {
	Field    string
	Filename string
	Reader   io.Reader
}

// doMultipart performs a multipart/form-data request with the given string
// fields and file parts, used by the endpoints that accept image uploads.
func (c *Client) doMultipart(ctx context.Context, method, path string, fields map[string]string, files []filePart, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return errors.Wrap(err, "write form field")
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			return errors.Wrap(err, "create form file")
		}
		if _, err := io.Copy(part, f.Reader); err != nil {
			return errors.Wrapf(err, "copy file %q", f.Filename)
		}
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(err, "close multipart writer")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.JoinPath(path).String(), &buf)
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.roundTrip(req, out)
}

func (c *Client) roundTrip(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "send request")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return errors.Wrap(err, "read response")
	}

	if len(data) == 0 {
		if resp.StatusCode >= http.StatusBadRequest {
			return &Error{StatusCode: resp.StatusCode}
		}
		if out == nil {
			return nil
		}
		return errors.New("empty response body")
	}

	// Error bodies are best-effort JSON: keep the server message when the
	// envelope parses, fall back to the bare status otherwise.
	env, envErr := parseEnvelope(data)
	if resp.StatusCode >= http.StatusBadRequest {
		return &Error{StatusCode: resp.StatusCode, Message: env.Message}
	}
	if envErr != nil {
		return envErr
	}
	if out == nil {
		return nil
	}

	payload := []byte(env.Data)
	if len(payload) == 0 {
		payload = data
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return errors.Wrap(err, "decode payload")
	}
	return nil
}
