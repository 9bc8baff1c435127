package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Tarun1516/yaakai/domain"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(ClientConfig{
		Endpoint:  srv.URL,
		ProjectID: "proj_test",
	})
	return c, srv
}

func TestClient_NetworkErrorClassification(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // unreachable from here on

	c := NewClient(ClientConfig{Endpoint: srv.URL, ProjectID: "proj_test"})
	accounts := NewAccountAPI(c)

	_, err := accounts.CurrentSession(context.Background())
	if !domain.IsNetworkError(err) {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestClient_UnauthorizedClassification(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"message": "User (role: guests) missing scope (account)",
			"code":    401,
		})
	}))
	accounts := NewAccountAPI(c)

	_, err := accounts.CurrentSession(context.Background())
	if !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if domain.IsNetworkError(err) {
		t.Fatal("unauthorized must not classify as network error")
	}
}

func TestClient_RemoteMessageVerbatim(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]any{
			"message": "A user with the same email already exists",
			"code":    409,
		})
	}))
	accounts := NewAccountAPI(c)

	_, err := accounts.CreateAccount(context.Background(), "u1", "a@b.c", "secret123", "A")
	if err == nil {
		t.Fatal("expected error")
	}

	var re *domain.RemoteError
	if !errors.As(err, &re) {
		t.Fatalf("expected RemoteError, got %T", err)
	}
	if re.Message != "A user with the same email already exists" {
		t.Errorf("message = %q, want the service message verbatim", re.Message)
	}
	if domain.RemoteMessage(err) != "A user with the same email already exists" {
		t.Errorf("RemoteMessage = %q, want unwrapped message", domain.RemoteMessage(err))
	}
}

func TestClient_ProjectAndSessionHeaders(t *testing.T) {
	var gotProject, gotSession string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotProject = r.Header.Get("X-Appwrite-Project")
		gotSession = r.Header.Get("X-Appwrite-Session")
		switch r.URL.Path {
		case "/account/sessions/email":
			json.NewEncoder(w).Encode(map[string]any{"$id": "sess_1", "userId": "u1", "secret": "secret_abc"})
		default:
			json.NewEncoder(w).Encode(map[string]any{"$id": "u1", "email": "a@b.c", "name": "A"})
		}
	}))
	accounts := NewAccountAPI(c)

	if err := accounts.CreateSession(context.Background(), "a@b.c", "secret123"); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if gotProject != "proj_test" {
		t.Errorf("project header = %q, want proj_test", gotProject)
	}
	if gotSession != "" {
		t.Error("session header must be absent before sign-in")
	}

	if _, err := accounts.CurrentSession(context.Background()); err != nil {
		t.Fatalf("CurrentSession: %v", err)
	}
	if gotSession != "secret_abc" {
		t.Errorf("session header = %q, want secret from sign-in", gotSession)
	}
}

func TestDatabaseAPI_ListFiltersByOwner(t *testing.T) {
	var gotQuery string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("queries[]")
		json.NewEncoder(w).Encode(map[string]any{
			"total": 1,
			"documents": []map[string]any{
				{
					"$id":        "line_1",
					"$createdAt": "2026-01-01T00:00:00Z",
					"userId":     "u1",
					"productId":  "checkblock",
					"name":       "CheckBlock",
					"price":      float64(13999),
					"quantity":   float64(2),
				},
			},
		})
	}))
	docs := NewDatabaseAPI(c, "db_main")

	out, err := docs.List(context.Background(), "cart_items", "userId", "u1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if gotQuery != `equal("userId", ["u1"])` {
		t.Errorf("query = %q", gotQuery)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 document, got %d", len(out))
	}
	if out[0].ID != "line_1" {
		t.Errorf("ID = %q", out[0].ID)
	}
	if _, ok := out[0].Fields["$createdAt"]; ok {
		t.Error("system fields must be stripped")
	}
	if out[0].StringField("productId") != "checkblock" {
		t.Errorf("productId = %q", out[0].StringField("productId"))
	}
}

func TestDatabaseAPI_CreateSendsCallerID(t *testing.T) {
	var gotBody map[string]any
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{"$id": "line_9", "quantity": float64(1)})
	}))
	docs := NewDatabaseAPI(c, "db_main")

	doc, err := docs.Create(context.Background(), "cart_items", "line_9", map[string]any{"quantity": 1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if gotBody["documentId"] != "line_9" {
		t.Errorf("documentId = %v, want caller-assigned ID", gotBody["documentId"])
	}
	if doc.ID != "line_9" {
		t.Errorf("doc.ID = %q", doc.ID)
	}
}
