package middlewares

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// takeTokens refills a bucket from the server clock and tries to take
// ARGV[3] tokens. Returns {allowed, whole tokens left, retry after ms}.
var takeTokens = redis.NewScript(`
local rate = tonumber(ARGV[1])
local cap  = tonumber(ARGV[2])
local cost = tonumber(ARGV[3])

local t = redis.call('TIME')
local now = tonumber(t[1]) * 1000 + math.floor(tonumber(t[2]) / 1000)

local state = redis.call('HMGET', KEYS[1], 'tokens', 'ts')
local tokens = tonumber(state[1]) or cap
local ts = tonumber(state[2]) or now

if now > ts then
  tokens = math.min(cap, tokens + (now - ts) * rate / 1000.0)
end

local allowed, wait = 0, 0
if tokens >= cost then
  tokens = tokens - cost
  allowed = 1
else
  wait = math.ceil((cost - tokens) * 1000.0 / rate)
end

redis.call('HSET', KEYS[1], 'tokens', tokens, 'ts', now)
redis.call('PEXPIRE', KEYS[1], math.ceil(cap * 1000.0 / rate))

return {allowed, math.floor(tokens), wait}
`)

// RedisTokenBucket shares one bucket per quota key across every replica.
type RedisTokenBucket struct {
	rdb      *redis.Client
	quota    Quota
	ratePerS float64
	burst    int
}

func NewRedisTokenBucket(rdb *redis.Client, ratePerSecond float64, burst int, q Quota) *RedisTokenBucket {
	return &RedisTokenBucket{rdb: rdb, quota: q, ratePerS: ratePerSecond, burst: burst}
}

func (tb *RedisTokenBucket) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cost := tb.quota.cost(r, tb.burst)
		if cost == 0 {
			next.ServeHTTP(w, r)
			return
		}
		ctx := r.Context()
		key := tb.quota.Key(r)

		res, err := takeTokens.Run(ctx, tb.rdb, []string{key},
			strconv.FormatFloat(tb.ratePerS, 'f', -1, 64), tb.burst, cost).Slice()
		if err != nil || len(res) != 3 {
			zerolog.Ctx(ctx).Warn().Err(err).Str("limiter", "token-bucket").Msg("redis error, allowing request")
			next.ServeHTTP(w, r)
			return
		}

		limitHeaders(w, "token-bucket", int64(tb.burst), toInt64(res[1]))
		if toInt64(res[0]) != 1 {
			tooManyRequests(w, r, "token-bucket", key, (toInt64(res[2])+999)/1000)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RedisSlidingWindow caps the total spend per key over a trailing window.
// A request adds one ZSET member per token; rejected requests are taken back.
type RedisSlidingWindow struct {
	rdb    *redis.Client
	quota  Quota
	limit  int
	window time.Duration
}

func NewRedisSlidingWindow(rdb *redis.Client, limit int, window time.Duration, q Quota) *RedisSlidingWindow {
	return &RedisSlidingWindow{rdb: rdb, quota: q, limit: limit, window: window}
}

func (sw *RedisSlidingWindow) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cost := sw.quota.cost(r, sw.limit)
		if cost == 0 {
			next.ServeHTTP(w, r)
			return
		}
		ctx := r.Context()
		key := sw.quota.Key(r)
		now := time.Now()
		windowMs := sw.window.Milliseconds()

		batch := uuid.NewString()[:8]
		spent := make([]redis.Z, cost)
		for i := range spent {
			spent[i] = redis.Z{
				Score:  float64(now.UnixMilli()),
				Member: batch + ":" + strconv.Itoa(i),
			}
		}

		pipe := sw.rdb.TxPipeline()
		pipe.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatInt(now.UnixMilli()-windowMs, 10))
		pipe.ZAdd(ctx, key, spent...)
		count := pipe.ZCard(ctx, key)
		oldest := pipe.ZRangeWithScores(ctx, key, 0, 0)
		pipe.PExpire(ctx, key, sw.window+time.Second)
		if _, err := pipe.Exec(ctx); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("limiter", "sliding-window").Msg("redis error, allowing request")
			next.ServeHTTP(w, r)
			return
		}

		used := count.Val()
		if used <= int64(sw.limit) {
			limitHeaders(w, "sliding-window", int64(sw.limit), int64(sw.limit)-used)
			next.ServeHTTP(w, r)
			return
		}

		members := make([]any, len(spent))
		for i, z := range spent {
			members[i] = z.Member
		}
		if err := sw.rdb.ZRem(ctx, key, members...).Err(); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("limiter", "sliding-window").Msg("could not release rejected spend")
		}

		retrySec := int64(1)
		if first := oldest.Val(); len(first) == 1 {
			retrySec = (int64(first[0].Score) + windowMs - now.UnixMilli() + 999) / 1000
		}
		limitHeaders(w, "sliding-window", int64(sw.limit), max(int64(sw.limit)-(used-int64(cost)), 0))
		tooManyRequests(w, r, "sliding-window", key, retrySec)
	})
}

// toInt64 reads a Lua reply; Redis turns Lua numbers into integers.
func toInt64(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case string:
		i, _ := strconv.ParseInt(t, 10, 64)
		return i
	default:
		return 0
	}
}
