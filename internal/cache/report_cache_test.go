package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/okovalen/freelance-platform-api/internal/cache"
)

func TestKey(t *testing.T) {
	c := cache.New(nil, time.Second)
	require.Equal(t, "reports:users:role-stats", c.Key("users", "role-stats"))
	require.Equal(t, "reports:views:top-freelancers:10", c.Key("views", "top-freelancers", "10"))
}

func TestDisabledCacheIsSafe(t *testing.T) {
	ctx := context.Background()

	c := cache.New(nil, time.Second)
	var out []string
	require.False(t, c.Get(ctx, c.Key("x"), &out))
	c.Set(ctx, c.Key("x"), []string{"a"})
	c.Invalidate(ctx)

	// nil receiver must behave the same, handlers never guard for it
	var nc *cache.ReportCache
	require.False(t, nc.Get(ctx, "reports:x", &out))
	nc.Set(ctx, "reports:x", []string{"a"})
	nc.Invalidate(ctx)
}
