package ai

import (
	"context"
	"fmt"
)

// NotImplementedClient stands in for vendors that are listed in the model
// catalog but have no working backend yet. It returns a fixed
// user-readable notice instead of failing the turn.
type NotImplementedClient struct {
	vendor string
}

// NewNotImplementedClient creates a stub backend for the named vendor.
func NewNotImplementedClient(vendor string) *NotImplementedClient {
	return &NotImplementedClient{vendor: vendor}
}

func (c *NotImplementedClient) Complete(ctx context.Context, req Request) (Response, error) {
	return Response{Text: fmt.Sprintf("Modelo %s ainda não implementado.", c.vendor)}, nil
}
