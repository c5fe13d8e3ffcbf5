package internal

import (
	"context"
	"net/http"

	"github.com/2beens/familyfit/pkg"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

type redisPinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// newHealthHandler reports ok while redis, which backs the mutation rate limits, is reachable.
func newHealthHandler(rdb redisPinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := rdb.Ping(r.Context()).Err(); err != nil {
			log.Warnf("health check, redis ping: %s", err)
			pkg.WriteResponse(w, pkg.ContentType.Text, "redis unavailable", http.StatusServiceUnavailable)
			return
		}
		pkg.WriteTextResponseOK(w, "ok")
	}
}
