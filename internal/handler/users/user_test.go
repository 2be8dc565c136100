package users

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fresh-or-rotten/internal/cache"
	"fresh-or-rotten/internal/database"
	"fresh-or-rotten/internal/middleware"
	"fresh-or-rotten/internal/model"
	"fresh-or-rotten/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newProfileCtx(e *echo.Echo, user *model.User) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/main/42", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(middleware.ContextUserKey, user)
	}
	return c, rec
}

func newTimeCtx(e *echo.Echo, body string, user *model.User) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPatch, "/users/42/time", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(middleware.ContextUserKey, user)
	}
	return c, rec
}

func restore() {
	countProducts = store.CountProducts
	updateUserClockOffset = store.UpdateUserClockOffset
}

func TestProfileHandler(t *testing.T) {
	e := echo.New()
	owner := &model.User{ID: 7, TelegramID: 42}

	t.Run("user not resolved", func(t *testing.T) {
		t.Cleanup(restore)
		cch := &cache.FakeCache{}
		ctx, rec := newProfileCtx(e, nil)
		err := ProfileHandler(nil, cch)(ctx)
		require.NoError(t, err)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("cache hit", func(t *testing.T) {
		t.Cleanup(restore)
		counted := false
		countProducts = func(context.Context, database.DB, int) (int, error) {
			counted = true
			return 0, nil
		}
		cch := &cache.FakeCache{
			GetFn: func(_ context.Context, key string) *redis.StringCmd {
				require.Equal(t, "profile:count:7", key)
				return redis.NewStringResult("5", nil)
			},
		}
		ctx, rec := newProfileCtx(e, owner)
		err := ProfileHandler(nil, cch)(ctx)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "\"count_products\":5")
		require.False(t, counted)
	})

	t.Run("cache miss counts and stores", func(t *testing.T) {
		t.Cleanup(restore)
		countProducts = func(_ context.Context, _ database.DB, userID int) (int, error) {
			require.Equal(t, 7, userID)
			return 3, nil
		}
		var setKey string
		var setVal any
		cch := &cache.FakeCache{
			GetFn: func(context.Context, string) *redis.StringCmd {
				return redis.NewStringResult("", redis.Nil)
			},
			SetFn: func(_ context.Context, key string, val any, ttl time.Duration) *redis.StatusCmd {
				setKey = key
				setVal = val
				require.Equal(t, profileCountTTL, ttl)
				return redis.NewStatusResult("OK", nil)
			},
		}
		ctx, rec := newProfileCtx(e, owner)
		err := ProfileHandler(nil, cch)(ctx)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "\"count_products\":3")
		require.Equal(t, "profile:count:7", setKey)
		require.Equal(t, 3, setVal)
	})

	t.Run("corrupt cache value falls back to count", func(t *testing.T) {
		t.Cleanup(restore)
		countProducts = func(context.Context, database.DB, int) (int, error) { return 2, nil }
		cch := &cache.FakeCache{
			GetFn: func(context.Context, string) *redis.StringCmd {
				return redis.NewStringResult("junk", nil)
			},
			SetFn: func(context.Context, string, any, time.Duration) *redis.StatusCmd {
				return redis.NewStatusResult("OK", nil)
			},
		}
		ctx, rec := newProfileCtx(e, owner)
		err := ProfileHandler(nil, cch)(ctx)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "\"count_products\":2")
	})

	t.Run("count error", func(t *testing.T) {
		t.Cleanup(restore)
		countProducts = func(context.Context, database.DB, int) (int, error) {
			return 0, errors.New("count fail")
		}
		cch := &cache.FakeCache{
			GetFn: func(context.Context, string) *redis.StringCmd {
				return redis.NewStringResult("", redis.Nil)
			},
		}
		ctx, rec := newProfileCtx(e, owner)
		err := ProfileHandler(nil, cch)(ctx)
		require.NoError(t, err)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("cache set failure ignored", func(t *testing.T) {
		t.Cleanup(restore)
		countProducts = func(context.Context, database.DB, int) (int, error) { return 1, nil }
		cch := &cache.FakeCache{
			GetFn: func(context.Context, string) *redis.StringCmd {
				return redis.NewStringResult("", redis.Nil)
			},
			SetFn: func(context.Context, string, any, time.Duration) *redis.StatusCmd {
				return redis.NewStatusResult("", errors.New("set fail"))
			},
		}
		ctx, rec := newProfileCtx(e, owner)
		err := ProfileHandler(nil, cch)(ctx)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "\"count_products\":1")
	})
}

func TestUpdateUserTimeHandler(t *testing.T) {
	e := echo.New()
	owner := &model.User{ID: 7, TelegramID: 42}

	t.Run("bind error", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, rec := newTimeCtx(e, "%", owner)
		err := UpdateUserTimeHandler(nil)(ctx)
		require.NoError(t, err)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "invalid form data")
	})

	t.Run("user not resolved", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, rec := newTimeCtx(e, "time=2", nil)
		err := UpdateUserTimeHandler(nil)(ctx)
		require.NoError(t, err)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("store error", func(t *testing.T) {
		t.Cleanup(restore)
		updateUserClockOffset = func(context.Context, database.DB, int, int) error {
			return errors.New("fail update")
		}
		ctx, rec := newTimeCtx(e, "time=2", owner)
		err := UpdateUserTimeHandler(nil)(ctx)
		require.NoError(t, err)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("accepts any integer", func(t *testing.T) {
		for _, tc := range []struct {
			body  string
			hours int
		}{
			{"time=2", 2},
			{"time=-11", -11},
			{"time=0", 0},
		} {
			t.Cleanup(restore)
			var got int
			updateUserClockOffset = func(_ context.Context, _ database.DB, userID, hours int) error {
				require.Equal(t, 7, userID)
				got = hours
				return nil
			}
			ctx, rec := newTimeCtx(e, tc.body, owner)
			err := UpdateUserTimeHandler(nil)(ctx)
			require.NoError(t, err)
			require.Equal(t, http.StatusNoContent, rec.Code)
			require.Equal(t, tc.hours, got)
		}
	})
}
