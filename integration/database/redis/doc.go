// Package redis connects to Redis with retries and exposes a health check.
//
//	client, err := redis.Connect(ctx, redis.Config{
//		ConnectionURL: "redis://localhost:6379/0",
//		RetryAttempts: 3,
//		RetryInterval: time.Second,
//	})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	store := session.NewRedisStore(client)
//
// Both redis:// and rediss:// (TLS) URLs are accepted. Connect verifies the
// server with PING before returning, so a nil error means the client is usable.
package redis
