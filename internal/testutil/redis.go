package testutil

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisDBs is the range of logical databases tests may claim; DB 0 holds the
// claim keys.
const redisDBs = 15

// Redis returns a client on an empty logical database claimed for this test,
// so packages running in parallel don't flush each other. TEST_REDIS_ADDR
// picks the server (default localhost:6379) and TEST_REDIS_DB pins the
// database.
func Redis(t testing.TB) *redis.Client {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	control := redis.NewClient(&redis.Options{Addr: addr})
	defer closeQuietly(t, "redis control client", control)
	if err := control.Ping(ctx).Err(); err != nil {
		unavailable(t, "Redis at "+addr, err)
	}

	db, err := strconv.Atoi(os.Getenv("TEST_REDIS_DB"))
	if err != nil {
		db = claimRedisDB(ctx, t, addr, control)
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	t.Cleanup(func() { closeQuietly(t, "redis client", client) })
	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("flush redis db %d: %v", db, err)
	}
	return client
}

func claimRedisDB(ctx context.Context, t testing.TB, addr string, control *redis.Client) int {
	owner := fmt.Sprintf("%d:%d", os.Getpid(), time.Now().UnixNano())
	for db := 1; db <= redisDBs; db++ {
		key := fmt.Sprintf("jobboard:test:db:%d", db)
		ok, err := control.SetNX(ctx, key, owner, 30*time.Minute).Result()
		if err != nil || !ok {
			continue
		}
		t.Cleanup(func() {
			release := redis.NewClient(&redis.Options{Addr: addr})
			defer closeQuietly(t, "redis release client", release)
			relCtx, relCancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer relCancel()
			if err := release.Del(relCtx, key).Err(); err != nil {
				t.Logf("release redis db %d: %v", db, err)
			}
		})
		return db
	}
	t.Logf("no free redis db at %s, sharing db 1", addr)
	return 1
}
