package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/fmaia/pdfgrab/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter_Wait(t *testing.T) {
	t.Parallel()

	t.Run("first request per domain passes immediately", func(t *testing.T) {
		t.Parallel()
		limiter := crawl.NewDomainLimiter(0.01)

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "https://a.test/x.pdf"))
		require.NoError(t, limiter.Wait(context.Background(), "https://b.test/y.pdf"))

		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("paces repeated requests to the same domain", func(t *testing.T) {
		t.Parallel()
		limiter := crawl.NewDomainLimiter(20)

		start := time.Now()
		for i := 0; i < 3; i++ {
			require.NoError(t, limiter.Wait(context.Background(), "https://a.test/x.pdf"))
		}

		// Burst of 1 at 20 rps: the second and third waits cost 50ms each.
		assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
	})

	t.Run("respects context cancelation", func(t *testing.T) {
		t.Parallel()
		limiter := crawl.NewDomainLimiter(0.001)
		require.NoError(t, limiter.Wait(context.Background(), "https://a.test/x.pdf"))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		err := limiter.Wait(ctx, "https://a.test/x.pdf")

		require.Error(t, err)
	})
}
