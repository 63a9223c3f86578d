package admin

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/yvesls/ethicalsoft-compliance-sub000/pkg/testutil"
)

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := RequireAdmin(slog.New(slog.DiscardHandler))(next)

	for name, tc := range map[string]struct {
		admin bool
		want  int
	}{
		"admin passes":       {admin: true, want: http.StatusNoContent},
		"non-admin rejected": {admin: false, want: http.StatusForbidden},
	} {
		t.Run(name, func(t *testing.T) {
			req := testutil.WithCaller(httptest.NewRequest(http.MethodPost, "/", nil), uuid.New(), tc.admin)
			rr := testutil.DoRequest(handler, req)
			assert.Equal(t, tc.want, rr.Code)
		})
	}

	t.Run("anonymous caller rejected", func(t *testing.T) {
		rr := testutil.DoRequest(handler, httptest.NewRequest(http.MethodPost, "/", nil))
		testutil.AssertError(t, rr, http.StatusForbidden, "forbidden")
	})
}
