// Package odoo is a minimal XML-RPC client for the two Odoo external API
// calls the sync job needs: authenticate and search_read.
package odoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/kolo/xmlrpc"
)

const (
	ModelPartner = "res.partner"
	ModelMove    = "account.move"

	commonPath = "/xmlrpc/2/common"
	objectPath = "/xmlrpc/2/object"
)

// ErrAuthenticationFailed is returned when Odoo rejects the credentials,
// which it signals with a false or zero uid rather than a fault.
var ErrAuthenticationFailed = errors.New("authentication with Odoo failed")

// Session is an authenticated Odoo user. It is valid for one sync run.
type Session struct {
	UID int64
}

type Client interface {
	Authenticate(ctx context.Context) (*Session, error)
	SearchRead(ctx context.Context, session *Session, model string, fields []string) ([]Record, error)
}

type Credentials struct {
	URL      string
	DB       string
	Username string
	Password string
}

type XMLRPCClient struct {
	creds     Credentials
	transport http.RoundTripper
	timeout   time.Duration
}

// NewXMLRPCClient builds a client for the server at creds.URL. A zero timeout
// disables the per-call deadline.
func NewXMLRPCClient(creds Credentials, timeout time.Duration) *XMLRPCClient {
	return &XMLRPCClient{
		creds:     creds,
		transport: http.DefaultTransport,
		timeout:   timeout,
	}
}

// WithTransport replaces the HTTP transport, mainly for tests.
func (c *XMLRPCClient) WithTransport(rt http.RoundTripper) *XMLRPCClient {
	c.transport = rt
	return c
}

func (c *XMLRPCClient) Authenticate(ctx context.Context) (*Session, error) {
	var reply any
	args := []any{c.creds.DB, c.creds.Username, c.creds.Password, map[string]any{}}
	if err := c.call(ctx, commonPath, "authenticate", args, &reply); err != nil {
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	uid, ok := reply.(int64)
	if !ok || uid == 0 {
		return nil, ErrAuthenticationFailed
	}
	return &Session{UID: uid}, nil
}

// SearchRead fetches every record of model with an empty domain, limited to
// fields. Records come back in server order.
func (c *XMLRPCClient) SearchRead(ctx context.Context, session *Session, model string, fields []string) ([]Record, error) {
	if session == nil {
		return nil, errors.New("search_read requires an authenticated session")
	}

	fieldList := make([]any, len(fields))
	for i, f := range fields {
		fieldList[i] = f
	}

	var reply any
	args := []any{
		c.creds.DB,
		session.UID,
		c.creds.Password,
		model,
		"search_read",
		[]any{[]any{}},
		map[string]any{"fields": fieldList},
	}
	if err := c.call(ctx, objectPath, "execute_kw", args, &reply); err != nil {
		return nil, fmt.Errorf("failed to search_read %s: %w", model, err)
	}

	items, ok := reply.([]any)
	if !ok {
		if reply == nil {
			return []Record{}, nil
		}
		return nil, fmt.Errorf("unexpected search_read reply for %s: %T", model, reply)
	}

	records := make([]Record, 0, len(items))
	for i, item := range items {
		fieldsMap, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("unexpected %s record at index %d: %T", model, i, item)
		}
		records = append(records, Record(fieldsMap))
	}
	return records, nil
}

// call performs one XML-RPC request. kolo/xmlrpc has no context support, so
// a client is built per call over a transport that carries ctx.
func (c *XMLRPCClient) call(ctx context.Context, path, method string, args []any, reply any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return c.transport.RoundTrip(req.WithContext(ctx))
	})

	client, err := xmlrpc.NewClient(c.creds.URL+path, rt)
	if err != nil {
		return fmt.Errorf("failed to create xmlrpc client: %w", err)
	}
	defer client.Close()

	return client.Call(method, args, reply)
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
