// HTTP REST client.
//
// The client is a thin transport over the codec: it builds the prefix URL,
// sends and receives blobs, and leaves all interpretation of payloads to
// the caller. Responses advertised as gzip are decompressed transparently.
// The server's action vocabulary rides in the ?action query parameter.
package infinity

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
)

// Config holds client configuration options.
type Config struct {
	HTTPClient *http.Client  // custom transport; nil builds one from Timeout
	Timeout    time.Duration // request timeout (default 30s, ignored when HTTPClient is set)
}

// Client talks to one database over its REST interface. The host carries
// everything up to the database prefix, e.g.
// https://example.com:37411/infinitydb/data/demo/writeable. A Client is
// safe for concurrent use once configured.
type Client struct {
	host     string
	user     string
	password string
	http     *http.Client
}

// NewClient makes a client for the database at host.
func NewClient(host string, config Config) *Client {
	if config.HTTPClient == nil {
		if config.Timeout == 0 {
			config.Timeout = 30 * time.Second
		}
		config.HTTPClient = &http.Client{Timeout: config.Timeout}
	}
	return &Client{
		host: strings.TrimSuffix(host, "/"),
		http: config.HTTPClient,
	}
}

// SetUserPassword sets basic-auth credentials for subsequent requests.
func (c *Client) SetUserPassword(user, password string) {
	c.user = user
	c.password = password
}

// Get fetches whatever lives under the prefix: dialect JSON, or the blob
// itself when the prefix holds one.
func (c *Client) Get(ctx context.Context, prefix ...Component) (Blob, error) {
	return c.do(ctx, http.MethodGet, "", nil, prefix)
}

// GetAsJSON fetches the prefix as dialect JSON even where a blob is
// stored, so suffixes other than the blob's own remain visible.
func (c *Client) GetAsJSON(ctx context.Context, prefix ...Component) (Blob, error) {
	return c.do(ctx, http.MethodGet, "as-json", nil, prefix)
}

// GetBlob fetches the blob stored at the prefix.
func (c *Client) GetBlob(ctx context.Context, prefix ...Component) (Blob, error) {
	return c.do(ctx, http.MethodGet, "get-blob", nil, prefix)
}

// PutBlob stores a blob at the prefix.
func (c *Client) PutBlob(ctx context.Context, blob Blob, prefix ...Component) error {
	_, err := c.do(ctx, http.MethodPut, "put", &blob, prefix)
	return err
}

// PutJSON writes a tree at the prefix, replacing what was there.
func (c *Client) PutJSON(ctx context.Context, e Element, prefix ...Component) error {
	blob, err := NewElementBlob(e)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodPut, "", &blob, prefix)
	return err
}

// PostJSON merges a tree under the prefix. The response body, when
// non-empty, is an Item token string naming the written position.
func (c *Client) PostJSON(ctx context.Context, e Element, prefix ...Component) (Item, error) {
	blob, err := NewElementBlob(e)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, http.MethodPost, "", &blob, prefix)
	if err != nil {
		return nil, err
	}
	body := strings.TrimSpace(resp.String())
	if body == "" {
		return nil, nil
	}
	return ParseItem(body)
}

// Delete removes everything under the prefix.
func (c *Client) Delete(ctx context.Context, prefix ...Component) error {
	_, err := c.do(ctx, http.MethodDelete, "", nil, prefix)
	return err
}

// ExecuteQuery runs the server-side query iface.method with a JSON request
// blob and returns its JSON response.
func (c *Client) ExecuteQuery(ctx context.Context, iface, method string, req Blob) (Blob, error) {
	return c.do(ctx, http.MethodPost, "execute-query", &req,
		[]Component{String(iface), String(method)})
}

// ExecuteGetBlobQuery runs a query that answers with a raw blob, such as
// an image.
func (c *Client) ExecuteGetBlobQuery(ctx context.Context, iface, method string) (Blob, error) {
	return c.do(ctx, http.MethodGet, "execute-get-blob-query", nil,
		[]Component{String(iface), String(method)})
}

// ExecutePutBlobQuery runs a query that consumes a raw blob.
func (c *Client) ExecutePutBlobQuery(ctx context.Context, iface, method string, req Blob) (Blob, error) {
	return c.do(ctx, http.MethodPost, "execute-put-blob-query", &req,
		[]Component{String(iface), String(method)})
}

func (c *Client) do(ctx context.Context, method, action string, blob *Blob, prefix []Component) (Blob, error) {
	if method == http.MethodGet && blob != nil {
		return Blob{}, fmt.Errorf("%w: GET cannot send a blob", ErrStructure)
	}
	url := QuotedURL(c.host, prefix...)
	if action != "" {
		url += "?action=" + action
	}
	var body io.Reader
	if blob != nil {
		body = bytes.NewReader(blob.Data)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return Blob{}, err
	}
	if c.user != "" {
		req.SetBasicAuth(c.user, c.password)
	}
	if blob != nil && blob.ContentType != "" {
		req.Header.Set("Content-Type", blob.ContentType)
	}
	// Ask for gzip ourselves and decompress below; setting the header
	// disables the transport's hidden decompression, keeping the
	// content-length and encoding visible.
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := c.http.Do(req)
	if err != nil {
		return Blob{}, err
	}
	defer resp.Body.Close()

	reader := io.Reader(resp.Body)
	if strings.Contains(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return Blob{}, err
		}
		defer gz.Close()
		reader = gz
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return Blob{}, err
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Blob{}, fmt.Errorf("%w: %w: %s", ErrStatus, ErrNotFound, resp.Status)
	case resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent:
		return Blob{}, fmt.Errorf("%w: %s: %s", ErrStatus, resp.Status, strings.TrimSpace(string(data)))
	}
	return Blob{Data: data, ContentType: resp.Header.Get("Content-Type")}, nil
}
