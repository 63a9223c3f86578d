package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	id "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain"
)

func TestCaller(t *testing.T) {
	t.Run("zero value when unset", func(t *testing.T) {
		c := Caller(context.Background())
		assert.False(t, c.Authenticated())
		assert.False(t, c.Admin)
	})

	t.Run("round-trips", func(t *testing.T) {
		userID := id.UserID(uuid.New())
		ctx := WithCaller(context.Background(), CallerInfo{UserID: userID, Admin: true})
		c := Caller(ctx)
		assert.Equal(t, userID, c.UserID)
		assert.True(t, c.Admin)
		assert.True(t, c.Authenticated())
	})
}

func TestNow(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, fixed, Now(WithTime(context.Background(), fixed)))
	assert.WithinDuration(t, time.Now(), Now(context.Background()), time.Second)
}

func TestMetadata(t *testing.T) {
	ctx := WithClientMetadata(WithRequestID(context.Background(), "req-1"), "10.0.0.1", "Firefox 120 (Linux)")
	assert.Equal(t, "req-1", RequestID(ctx))
	assert.Equal(t, "10.0.0.1", ClientIP(ctx))
	assert.Equal(t, "Firefox 120 (Linux)", UserAgent(ctx))
}
