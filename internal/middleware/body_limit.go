// file: internal/middleware/body_limit.go
package middleware

import (
	"net/http"
	"strings"
)

// BodyLimit caps request body sizes. Multipart uploads get the larger
// upload cap; everything else gets the JSON body cap.
func BodyLimit(jsonLimit, uploadLimit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limit := jsonLimit
			if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
				limit = uploadLimit
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
