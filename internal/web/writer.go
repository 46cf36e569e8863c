// ABOUTME: ResponseWriter wrapper latching header writes, and the cookie sink over it
// ABOUTME: Lets cookie delivery failure be detected instead of silently dropped

package web

import (
	"errors"
	"net/http"
)

// statusWriter wraps http.ResponseWriter and records when the response
// header goes out, along with the status code for access logging.
type statusWriter struct {
	http.ResponseWriter
	wroteHeader bool
	status      int
}

func wrapWriter(w http.ResponseWriter) *statusWriter {
	return &statusWriter{ResponseWriter: w, status: http.StatusOK}
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.wroteHeader = true
	}
	return w.ResponseWriter.Write(b)
}

// errOutputStarted reports a cookie that can no longer reach the client.
var errOutputStarted = errors.New("response output already begun")

// cookieSink delivers session cookies onto the wrapped writer. Once the
// header has gone out the cookie cannot be delivered, which the session
// manager treats as an environment failure, not an auth failure.
type cookieSink struct {
	w *statusWriter
}

func (s *cookieSink) SetCookie(c *http.Cookie) error {
	if s.w.wroteHeader {
		return errOutputStarted
	}
	http.SetCookie(s.w, c)
	return nil
}
