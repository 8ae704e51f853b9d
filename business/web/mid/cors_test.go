package mid_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ardanlabs/ledger/business/web/mid"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_Cors(t *testing.T) {
	type table struct {
		name    string
		origins string
		origin  string
		allow   string
	}

	tt := []table{
		{name: "any", origins: "*", origin: "https://a.example", allow: "*"},
		{name: "listed", origins: "https://a.example, https://b.example", origin: "https://b.example", allow: "https://b.example"},
		{name: "unlisted", origins: "https://a.example", origin: "https://c.example", allow: ""},
		{name: "empty", origins: "", origin: "https://a.example", allow: ""},
	}

	t.Log("Given the need to answer cross origin requests from configured origins.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen handling an origin %s request.", testID, tst.name)
				{
					called := false
					next := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
						called = true
						return nil
					}
					h := mid.Cors(mid.ParseOrigins(tst.origins)...)(next)

					r := httptest.NewRequest(http.MethodGet, "/v1/genesis", nil)
					r.Header.Set("Origin", tst.origin)
					w := httptest.NewRecorder()

					if err := h(context.Background(), w, r); err != nil || !called {
						t.Fatalf("\t%s\tTest %d:\tShould call the next handler: %v", failed, testID, err)
					}

					if got := w.Header().Get("Access-Control-Allow-Origin"); got != tst.allow {
						t.Fatalf("\t%s\tTest %d:\tShould allow %q, got %q.", failed, testID, tst.allow, got)
					}
					t.Logf("\t%s\tTest %d:\tShould allow %q.", success, testID, tst.allow)
				}
			}

			t.Run(tst.name, f)
		}
	}
}
