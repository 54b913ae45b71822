package rpc

import "context"

// OpType tells queries from mutations.
type OpType string

const (
	OpQuery    OpType = "query"
	OpMutation OpType = "mutation"
)

// Void is the input or output of a procedure that takes or returns nothing.
type Void struct{}

// Procedure is a typed handle on a remote procedure. Declare one per
// procedure and share it between the router registration and the callers:
//
//	var Greeting = rpc.NewQuery[GreetingInput, GreetingOutput]("greeting")
//
//	out, err := Greeting.Call(ctx, client, GreetingInput{Name: "Jane"})
type Procedure[I, O any] struct {
	Path string
	Type OpType
}

// NewQuery declares a query procedure.
func NewQuery[I, O any](path string) Procedure[I, O] {
	return Procedure[I, O]{Path: path, Type: OpQuery}
}

// NewMutation declares a mutation procedure.
func NewMutation[I, O any](path string) Procedure[I, O] {
	return Procedure[I, O]{Path: path, Type: OpMutation}
}

// Call invokes the procedure through c.
func (p Procedure[I, O]) Call(ctx context.Context, c *Client, in I) (O, error) {
	var out O
	err := c.Do(ctx, p.Type, p.Path, in, &out)
	return out, err
}
