package common

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/khanghh/vbs/params"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ReadinessCheck returns an error when a dependency is unreachable.
type ReadinessCheck func(ctx context.Context) error

func DatabaseCheck(db *gorm.DB) ReadinessCheck {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}

func RedisCheck(rdb redis.UniversalClient) ReadinessCheck {
	return func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}
}

func HealthCheckHandler(checks ...ReadinessCheck) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/livez", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				slog.Debug("Readiness check failed", "error", err)
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})

	return mux
}

// StartHealthCheckServer serves /livez and /readyz until ctx is done, then
// closes done.
func StartHealthCheckServer(ctx context.Context, done chan struct{}, checks ...ReadinessCheck) {
	server := &http.Server{
		Addr:    params.HealthCheckServerAddr,
		Handler: HealthCheckHandler(checks...),
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		server.Close()
	case err := <-serverErr:
		slog.Error("Health check server stopped", "error", err)
	}
	close(done)
}
