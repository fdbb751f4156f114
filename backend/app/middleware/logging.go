package middleware

import (
	"culinary-calc/backend/global"
	"net/http"
	"time"
)

type statusWriter struct {
	http.ResponseWriter
	status int
	route  string
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) SetRoute(pattern string) { w.route = pattern }

func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		ev := global.Logger.Info()
		switch {
		case sw.status >= 500:
			ev = global.Logger.Error()
		case sw.status >= 400:
			ev = global.Logger.Warn()
		}
		if sw.route != "" {
			ev = ev.Str("route", sw.route)
		}
		ev.Str("ip", ClientIPFrom(r)).Str("method", r.Method).Str("path", r.URL.Path).
			Int("status", sw.status).Dur("duration", time.Since(start)).Msg("request")
	})
}
