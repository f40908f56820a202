package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authpkg "github.com/acadsharsh/mockera12/pkg/auth"
)

type fixedValidator struct {
	user *authpkg.UserContext
}

func (v *fixedValidator) ValidateToken(ctx context.Context, token string) (*authpkg.UserContext, error) {
	if v.user != nil && token == v.user.Token {
		return v.user, nil
	}
	return nil, authpkg.ErrInvalidToken
}

func okHandler(seen **authpkg.UserContext) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, err := authpkg.GetUserFromContext(r.Context()); err == nil {
			*seen = user
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	user := &authpkg.UserContext{UserID: 7, Role: "student", Token: "good-token"}
	mw := AuthMiddleware(&fixedValidator{user: user})

	t.Run("missing header", func(t *testing.T) {
		var seen *authpkg.UserContext
		rec := httptest.NewRecorder()
		mw(okHandler(&seen)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, seen)
	})

	t.Run("invalid token", func(t *testing.T) {
		var seen *authpkg.UserContext
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		rec := httptest.NewRecorder()
		mw(okHandler(&seen)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Nil(t, seen)
	})

	t.Run("bearer token reaches the handler", func(t *testing.T) {
		var seen *authpkg.UserContext
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		mw(okHandler(&seen)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, uint64(7), seen.UserID)
	})

	t.Run("bare token without the Bearer prefix is accepted", func(t *testing.T) {
		var seen *authpkg.UserContext
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "good-token")
		rec := httptest.NewRecorder()
		mw(okHandler(&seen)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen)
	})
}

func TestRequireRole(t *testing.T) {
	mw := RequireRole("creator")

	serve := func(user *authpkg.UserContext) *httptest.ResponseRecorder {
		var seen *authpkg.UserContext
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if user != nil {
			req = req.WithContext(authpkg.ContextWithUser(req.Context(), user))
		}
		rec := httptest.NewRecorder()
		mw(okHandler(&seen)).ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusUnauthorized, serve(nil).Code)
	assert.Equal(t, http.StatusForbidden, serve(&authpkg.UserContext{UserID: 7, Role: "student"}).Code)
	assert.Equal(t, http.StatusOK, serve(&authpkg.UserContext{UserID: 99, Role: "creator"}).Code)
}

func TestThrottleMiddleware(t *testing.T) {
	serveAs := func(h http.Handler, userID uint64) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(authpkg.ContextWithUser(req.Context(),
			&authpkg.UserContext{UserID: userID, Role: "student"}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	t.Run("excess requests get 429 with Retry-After", func(t *testing.T) {
		var seen *authpkg.UserContext
		h := ThrottleMiddleware(2, time.Minute)(okHandler(&seen))

		assert.Equal(t, http.StatusOK, serveAs(h, 7).Code)
		assert.Equal(t, http.StatusOK, serveAs(h, 7).Code)

		rec := serveAs(h, 7)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	})

	t.Run("limits are per user", func(t *testing.T) {
		var seen *authpkg.UserContext
		h := ThrottleMiddleware(1, time.Minute)(okHandler(&seen))

		assert.Equal(t, http.StatusOK, serveAs(h, 7).Code)
		assert.Equal(t, http.StatusTooManyRequests, serveAs(h, 7).Code)
		assert.Equal(t, http.StatusOK, serveAs(h, 8).Code)
	})

	t.Run("window resets after the period", func(t *testing.T) {
		var seen *authpkg.UserContext
		h := ThrottleMiddleware(1, 20*time.Millisecond)(okHandler(&seen))

		assert.Equal(t, http.StatusOK, serveAs(h, 7).Code)
		assert.Equal(t, http.StatusTooManyRequests, serveAs(h, 7).Code)

		time.Sleep(30 * time.Millisecond)
		assert.Equal(t, http.StatusOK, serveAs(h, 7).Code)
	})

	t.Run("unauthenticated requests pass through", func(t *testing.T) {
		var seen *authpkg.UserContext
		h := ThrottleMiddleware(1, time.Minute)(okHandler(&seen))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
