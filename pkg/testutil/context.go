package testutil

import (
	"net/http"

	"github.com/google/uuid"

	id "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain"
	"github.com/yvesls/ethicalsoft-compliance-sub000/pkg/requestcontext"
)

// WithCaller attaches an authenticated caller to the request context,
// as the auth middleware would after validating a token.
func WithCaller(req *http.Request, userID uuid.UUID, admin bool) *http.Request {
	ctx := requestcontext.WithCaller(req.Context(), requestcontext.CallerInfo{
		UserID: id.UserID(userID),
		Admin:  admin,
	})
	return req.WithContext(ctx)
}
