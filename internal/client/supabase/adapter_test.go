package supabaseclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GregMSThompson/flowadmin/internal/dto"
	"github.com/GregMSThompson/flowadmin/internal/errs"
	"github.com/GregMSThompson/flowadmin/pkg/helpers"
)

func TestSelectBuildsPostgrestQuery(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("Content-Range", "0-1/7")
		w.WriteHeader(http.StatusPartialContent)
		w.Write([]byte(`[{"id":"a"},{"id":"b"}]`))
	}))
	defer srv.Close()

	a := NewAdapter(srv.URL+"/", "service-key", srv.Client())
	res, err := a.Select(context.Background(), dto.SelectQuery{
		Table:   "posts",
		Columns: "id",
		Eq:      map[string]string{"user_id": "u1"},
		Order:   "created_at.desc",
		From:    helpers.Ptr(0),
		To:      helpers.Ptr(1),
		Count:   true,
	})
	if err != nil {
		t.Fatalf("Select error: %v", err)
	}

	if got.URL.Path != "/rest/v1/posts" {
		t.Fatalf("path = %s", got.URL.Path)
	}
	q := got.URL.Query()
	if q.Get("select") != "id" || q.Get("user_id") != "eq.u1" || q.Get("order") != "created_at.desc" {
		t.Fatalf("unexpected query: %s", got.URL.RawQuery)
	}
	if got.Header.Get("apikey") != "service-key" || got.Header.Get("Authorization") != "Bearer service-key" {
		t.Fatalf("missing service key headers: %v", got.Header)
	}
	if got.Header.Get("Range") != "0-1" || got.Header.Get("Prefer") != "count=exact" {
		t.Fatalf("missing range/count headers: %v", got.Header)
	}
	if len(res.Rows) != 2 || res.Count != 7 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestUpdateSendsFilterAndBody(t *testing.T) {
	var method, query string
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		query = r.URL.RawQuery
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	a := NewAdapter(srv.URL, "k", srv.Client())
	err := a.Update(context.Background(), "users", map[string]string{"id": "uid-1"}, map[string]bool{"is_admin": true})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if method != http.MethodPatch || query != "id=eq.uid-1" {
		t.Fatalf("unexpected request %s ?%s", method, query)
	}
	if body["is_admin"] != true {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestErrorStatusBecomesExternalServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"boom"}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	a := NewAdapter(srv.URL, "k", srv.Client())
	err := a.Insert(context.Background(), "users", []map[string]string{{"id": "x"}})

	var ext *errs.ExternalServiceError
	if !errors.As(err, &ext) {
		t.Fatalf("expected ExternalServiceError, got %v", err)
	}
	if !ext.Transient || ext.Service != "supabase" {
		t.Fatalf("unexpected error: %+v", ext)
	}
}

func TestParseContentRange(t *testing.T) {
	cases := map[string]int{"0-9/42": 42, "*/0": 0}
	for h, want := range cases {
		got, ok := parseContentRange(h)
		if !ok || got != want {
			t.Fatalf("parseContentRange(%q) = %d,%v", h, got, ok)
		}
	}
	if _, ok := parseContentRange("0-9/*"); ok {
		t.Fatalf("unknown total should not parse")
	}
}
