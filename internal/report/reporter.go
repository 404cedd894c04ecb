package report

import (
	"os"
	"runtime"

	"github.com/getsentry/sentry-go"
)

// ConfigureScope tags every event with the deployment and the host serving it.
func ConfigureScope(env, version string) {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}

	sentry.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTags(map[string]string{
			"service":     "trainsearch",
			"env":         env,
			"app_version": version,
			"go_version":  runtime.Version(),
		})
		scope.SetContext("host_info", sentry.Context{
			"hostname": host,
			"num_cpu":  runtime.NumCPU(),
		})
	})
}

// SentryReportOptions is what gets attached to a reported error.
// An empty Level reports at sentry.LevelError.
type SentryReportOptions struct {
	ExtraContext map[string]interface{}
	Tags         map[string]string
	Level        sentry.Level
}

// ReportErrorWithSentryOptions captures err in a scope of its own. Nil errors are dropped.
func ReportErrorWithSentryOptions(err error, opts SentryReportOptions) {
	if err == nil {
		return
	}
	level := opts.Level
	if level == "" {
		level = sentry.LevelError
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(level)
		scope.SetTags(opts.Tags)
		if len(opts.ExtraContext) > 0 {
			scope.SetContext("extra", opts.ExtraContext)
		}
		sentry.CaptureException(err)
	})
}
