package services

import (
	"context"
	"ima/entity"
)

// Transport delivers a field set to the merchant handler and returns the raw response body.
type Transport interface {
	Send(ctx context.Context, fields *entity.Fields) (string, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, fields *entity.Fields) (string, error)

func (f TransportFunc) Send(ctx context.Context, fields *entity.Fields) (string, error) {
	return f(ctx, fields)
}
