package middlewares

import (
	"math"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// LocalTokenBucket is the per-process fallback used when no Redis is configured.
// Idle buckets expire from the cache, so memory follows active clients only.
type LocalTokenBucket struct {
	quota   Quota
	limit   rate.Limit
	burst   int
	buckets *cache.Cache
}

func NewLocalTokenBucket(ratePerSecond float64, burst int, q Quota) *LocalTokenBucket {
	// a bucket idle this long is full again and can be dropped
	idle := time.Duration(math.Ceil(float64(burst)/ratePerSecond)) * time.Second
	if idle < time.Minute {
		idle = time.Minute
	}
	return &LocalTokenBucket{
		quota:   q,
		limit:   rate.Limit(ratePerSecond),
		burst:   burst,
		buckets: cache.New(idle, 2*idle),
	}
}

func (tb *LocalTokenBucket) limiter(key string) *rate.Limiter {
	if v, found := tb.buckets.Get(key); found {
		l := v.(*rate.Limiter)
		tb.buckets.SetDefault(key, l)
		return l
	}
	l := rate.NewLimiter(tb.limit, tb.burst)
	if err := tb.buckets.Add(key, l, cache.DefaultExpiration); err != nil {
		// lost a race with another request for the same key
		if v, found := tb.buckets.Get(key); found {
			return v.(*rate.Limiter)
		}
	}
	return l
}

func (tb *LocalTokenBucket) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cost := tb.quota.cost(r, tb.burst)
		if cost == 0 {
			next.ServeHTTP(w, r)
			return
		}
		key := tb.quota.Key(r)
		lim := tb.limiter(key)
		now := time.Now()
		res := lim.ReserveN(now, cost)

		if delay := res.DelayFrom(now); !res.OK() || delay > 0 {
			res.CancelAt(now)
			limitHeaders(w, "token-bucket-local", int64(tb.burst), 0)
			tooManyRequests(w, r, "token-bucket-local", key, int64(math.Ceil(delay.Seconds())))
			return
		}
		limitHeaders(w, "token-bucket-local", int64(tb.burst), int64(lim.TokensAt(now)))
		next.ServeHTTP(w, r)
	})
}
