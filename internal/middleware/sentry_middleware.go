package middleware

import (
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
)

// SentryMiddleware attaches a Sentry hub to each request, tags events with
// the request method and path, and reports panics before re-raising them.
func SentryMiddleware(next http.Handler) http.Handler {
	sentryHandler := sentryhttp.New(sentryhttp.Options{
		Repanic:         true,
		WaitForDelivery: true,
		Timeout:         2 * time.Second,
	})

	tagged := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hub := sentry.GetHubFromContext(r.Context()); hub != nil {
			hub.ConfigureScope(func(scope *sentry.Scope) {
				scope.SetTag("http.method", r.Method)
				scope.SetTag("http.path", r.URL.Path)
			})
		}
		next.ServeHTTP(w, r)
	})

	return sentryHandler.Handle(tagged)
}
