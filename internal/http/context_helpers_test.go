package httpx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserIDContext(t *testing.T) {
	ctx := context.Background()

	_, ok := UserIDFromContext(ctx)
	assert.False(t, ok)

	assert.Equal(t, ctx, SetUserIDInContext(ctx, ""))

	id, ok := UserIDFromContext(SetUserIDInContext(ctx, "u1"))
	assert.True(t, ok)
	assert.Equal(t, "u1", id)
}
