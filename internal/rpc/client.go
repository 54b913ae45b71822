package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Operation is one procedure call as handed to a [Link]. Input is the
// transformer-encoded input, nil for procedures without input.
type Operation struct {
	Type  OpType
	Path  string
	Input json.RawMessage
}

// Response is the transport result of one operation: exactly one of Data
// or Error is set, both still transformer-encoded.
type Response struct {
	Data  json.RawMessage
	Error json.RawMessage
}

// Link carries operations to the server.
type Link interface {
	Do(ctx context.Context, op Operation) (Response, error)
	Close() error
}

// Client encodes typed calls, sends them through a [Link] and decodes the
// results. It is safe for concurrent use.
type Client struct {
	link        Link
	transformer Transformer
}

// NewClient returns a client sending through link and encoding with
// transformer.
func NewClient(link Link, transformer Transformer) *Client {
	return &Client{link: link, transformer: transformer}
}

// Query calls the query at path.
func (c *Client) Query(ctx context.Context, path string, in, out any) error {
	return c.Do(ctx, OpQuery, path, in, out)
}

// Mutate calls the mutation at path.
func (c *Client) Mutate(ctx context.Context, path string, in, out any) error {
	return c.Do(ctx, OpMutation, path, in, out)
}

// Do calls the procedure at path. in may be nil or [Void] for procedures
// without input; out may be nil when the result is not needed.
func (c *Client) Do(ctx context.Context, opType OpType, path string, in, out any) error {
	op := Operation{Type: opType, Path: path}
	if !isVoid(in) {
		input, err := c.transformer.Serialize(in)
		if err != nil {
			return fmt.Errorf("error encoding input of %s: %w", path, err)
		}
		op.Input = input
	}

	resp, err := c.link.Do(ctx, op)
	if err != nil {
		return err
	}

	if resp.Error != nil {
		rpcErr := &Error{}
		if err = c.transformer.Deserialize(resp.Error, rpcErr); err != nil {
			return fmt.Errorf("%w: undecodable error of %s: %w", ErrBadResponse, path, err)
		}
		if rpcErr.Data.Path == "" {
			rpcErr.Data.Path = path
		}
		return rpcErr
	}

	if out == nil || isVoid(out) {
		return nil
	}
	if resp.Data == nil {
		return fmt.Errorf("%w: %s returned no data", ErrBadResponse, path)
	}
	if err = c.transformer.Deserialize(resp.Data, out); err != nil {
		return fmt.Errorf("error decoding output of %s: %w", path, err)
	}
	return nil
}

// Close releases the link.
func (c *Client) Close() error {
	return c.link.Close()
}

func isVoid(v any) bool {
	switch v.(type) {
	case nil, Void, *Void:
		return true
	}
	return false
}

// IsRPCError reports whether err carries a server-side procedure error.
func IsRPCError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
