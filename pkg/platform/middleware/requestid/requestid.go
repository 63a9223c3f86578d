package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/yvesls/ethicalsoft-compliance-sub000/pkg/requestcontext"
)

// Header carries the request id in and out.
const Header = "X-Request-ID"

// Middleware reuses an incoming X-Request-ID or generates one, echoes it on
// the response and stores it in the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(Header)
		if reqID == "" || len(reqID) > 128 {
			reqID = uuid.NewString()
		}
		w.Header().Set(Header, reqID)
		next.ServeHTTP(w, r.WithContext(requestcontext.WithRequestID(r.Context(), reqID)))
	})
}
