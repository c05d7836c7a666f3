package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/slashrage/jalapeno-business/internal/models"
	"github.com/slashrage/jalapeno-business/internal/service"
)

type stubAuthService struct {
	user *models.User
	err  error
}

func (s *stubAuthService) Register(ctx context.Context, req service.RegisterRequest) (*models.User, string, error) {
	return nil, "", nil
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	return nil, "", nil
}

func (s *stubAuthService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.user, nil
}

func (s *stubAuthService) UpdateUser(ctx context.Context, userID string, req service.UpdateUserRequest) (*models.User, error) {
	return s.user, nil
}

func (s *stubAuthService) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) (string, error) {
	return "", nil
}

func (s *stubAuthService) GetUserFromToken(tokenString string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *stubAuthService) SeedAdmin(ctx context.Context) error {
	return nil
}

func TestAuthMiddleware(t *testing.T) {
	user := &models.User{UserID: primitive.NewObjectID(), Email: "user@example.com", Role: "admin"}

	okHandler := func(t *testing.T) (http.Handler, *bool) {
		called := false
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			assert.Equal(t, user.UserID.Hex(), r.Context().Value("userID"))
			assert.Equal(t, "user@example.com", r.Context().Value("email"))
			assert.Equal(t, "admin", r.Context().Value("role"))
			w.WriteHeader(http.StatusOK)
		}), &called
	}

	t.Run("Валидный токен пропускается", func(t *testing.T) {
		next, called := okHandler(t)
		mw := AuthMiddleware(&stubAuthService{user: user})

		req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		rec := httptest.NewRecorder()

		mw(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, *called)
	})

	t.Run("Без заголовка Authorization", func(t *testing.T) {
		mw := AuthMiddleware(&stubAuthService{user: user})

		req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
		rec := httptest.NewRecorder()

		mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("обработчик не должен вызываться")
		})).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Неверный формат заголовка", func(t *testing.T) {
		mw := AuthMiddleware(&stubAuthService{user: user})

		req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()

		mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("обработчик не должен вызываться")
		})).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRateLimiter(t *testing.T) {
	t.Run("Превышение лимита дает 429", func(t *testing.T) {
		rl := NewRateLimiter(3, time.Minute)
		handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		for i := 0; i < 3; i++ {
			req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
			req.RemoteAddr = "10.0.0.1:1234"
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code)
		}

		req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	})

	t.Run("Лимиты считаются отдельно по IP", func(t *testing.T) {
		rl := NewRateLimiter(1, time.Minute)
		handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		first := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
		first.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, first)
		assert.Equal(t, http.StatusOK, rec.Code)

		second := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
		second.RemoteAddr = "10.0.0.2:1234"
		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, second)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestChain(t *testing.T) {
	// порядок применения: последний в списке оборачивает снаружи
	var order []string
	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	handler := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), tag("inner"), tag("outer"))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}
