package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"mhimmo/internal/core/auth"
	"mhimmo/internal/core/config"
	"mhimmo/internal/messaging"
	"mhimmo/internal/persistence"
	"mhimmo/internal/session"
	"mhimmo/internal/store"
	"mhimmo/internal/transport/http/handler"
)

var fixedNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type harness struct {
	t      *testing.T
	api    *gin.Engine
	admin  *gin.Engine
	store  *store.Store
	kv     *persistence.Memory
	jwt    *auth.JWTer
	tokens map[string]string
}

func newHarness(t *testing.T, strict bool) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	kv := persistence.NewMemory()
	adapter := persistence.NewAdapter(kv, persistence.Keys{}, nil)
	ds, _, err := adapter.Load(ctx, persistence.Bootstrap(fixedNow))
	require.NoError(t, err)

	tick := fixedNow
	st := store.New(store.Options{
		StrictContracts: strict,
		Now: func() time.Time {
			tick = tick.Add(time.Second)
			return tick
		},
		Mirror: adapter,
	})
	st.Restore(ds)

	creds, err := session.LoadCredentials(ctx, kv, persistence.Keys{}, bcrypt.MinCost, persistence.BootstrapCredentials)
	require.NoError(t, err)

	j := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "mhimmo", TTL: time.Hour}
	d := handler.Deps{Store: st, Messages: messaging.NewIndex(st, nil), Creds: creds, JWT: j, Log: zap.NewNop()}
	return &harness{
		t:      t,
		api:    NewAPIEngine(zap.NewNop(), config.Limits{}, d),
		admin:  NewAdminEngine(zap.NewNop(), config.Limits{}, d),
		store:  st,
		kv:     kv,
		jwt:    j,
		tokens: map[string]string{},
	}
}

// token issues a bearer token for a stored user id.
func (h *harness) token(userID string) string {
	if tok, ok := h.tokens[userID]; ok {
		return tok
	}
	u, ok := h.store.UserByID(userID)
	require.True(h.t, ok, userID)
	tok, _, err := h.jwt.Issue(u.Identity())
	require.NoError(h.t, err)
	h.tokens[userID] = tok
	return tok
}

func do(t *testing.T, e *gin.Engine, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func (h *harness) call(method, path, asUser string, body any) *httptest.ResponseRecorder {
	h.t.Helper()
	var tok string
	if asUser != "" {
		tok = h.token(asUser)
	}
	return do(h.t, h.api, method, path, tok, body)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type errBody struct {
	Error string `json:"error"`
}
