package internal

import (
	"context"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestRequestID(t *testing.T) {
	require.Equal(t, "", GetRequestID(context.Background()))

	ctx := WithRequestID(context.Background())
	reqID := GetRequestID(ctx)
	_, err := uuid.Parse(reqID)
	require.NoError(t, err)

	require.Equal(t, reqID, GetRequestID(WithRequestID(ctx)))
}
