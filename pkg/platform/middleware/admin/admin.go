package admin

import (
	"log/slog"
	"net/http"

	dErrors "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain-errors"
	"github.com/yvesls/ethicalsoft-compliance-sub000/pkg/platform/httputil"
	"github.com/yvesls/ethicalsoft-compliance-sub000/pkg/requestcontext"
)

// RequireAdmin rejects callers whose token does not carry the admin claim.
// It must run after auth.RequireAuth.
func RequireAdmin(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			caller := requestcontext.Caller(ctx)
			if !caller.Admin {
				logger.WarnContext(ctx, "admin route denied",
					"user_id", caller.UserID,
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "administrator role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
