package integration

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mikopa/backend/internal/config"
	clientdomain "github.com/mikopa/backend/internal/domain/client"
	loandomain "github.com/mikopa/backend/internal/domain/loan"
	"github.com/mikopa/backend/internal/http/handlers"
	postgresrepo "github.com/mikopa/backend/internal/repository/postgres"
	"github.com/mikopa/backend/internal/server"
	"github.com/mikopa/backend/test/integration/testutil"
)

// newAPIRouter wires the full stack against a real database. Tests using
// it skip when no database is reachable.
func newAPIRouter(t *testing.T) (*gin.Engine, *pgxpool.Pool) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	pool := testutil.NewTestPool(t)
	t.Cleanup(pool.Close)
	testutil.ApplyMigrations(t, pool)
	testutil.ResetTables(t, pool)

	clientRepo := postgresrepo.NewClientRepository(pool)
	loanRepo := postgresrepo.NewLoanRepository(pool)
	logger := slog.Default()

	r := server.NewRouter(config.Config{Env: "test"}, logger, server.Dependencies{
		Pinger:        pool,
		ClientHandler: handlers.NewClientHandler(clientdomain.NewService(clientRepo), logger),
		LoanHandler:   handlers.NewLoanHandler(loandomain.NewService(clientRepo, loanRepo), logger),
	})
	return r, pool
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload map[string]any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	decoded := map[string]any{}
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode response %q: %v", w.Body.String(), err)
		}
	}
	return w, decoded
}

func createClient(t *testing.T, r *gin.Engine, phoneNumber, fullName string) string {
	t.Helper()

	w, resp := doJSON(t, r, http.MethodPost, "/client", map[string]any{
		"phone_number": phoneNumber,
		"full_name":    fullName,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create client: expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	data, _ := resp["data"].(map[string]any)
	uid, _ := data["uid"].(string)
	if uid == "" {
		t.Fatalf("create client: missing uid in %v", resp)
	}
	return uid
}
