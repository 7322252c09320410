package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/mock"
	"github.com/MKhiriev/go-sync-keeper/internal/service"
	"github.com/MKhiriev/go-sync-keeper/internal/utils"
	"github.com/MKhiriev/go-sync-keeper/models"
)

func newAuthHandler(authSvc service.AuthService) *Handler {
	return &Handler{
		logger:   logger.Nop(),
		services: &service.Services{AuthService: authSvc},
	}
}

func authRequest(authHeader string) *http.Request {
	req := injectNopLogger(httptest.NewRequest(http.MethodGet, "/api/sync", nil))
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	return req
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		wantToken  string
		parsed     models.Token
		parseErr   error
		wantStatus int
		wantError  string
		wantUserID string
	}{
		{
			name:       "no header",
			wantStatus: http.StatusUnauthorized,
			wantError:  ErrEmptyAuthorizationHeader.Error(),
		},
		{
			name:       "no scheme",
			authHeader: "BearerTokenWithoutSpace",
			wantStatus: http.StatusUnauthorized,
			wantError:  ErrInvalidAuthorizationHeader.Error(),
		},
		{
			name:       "basic auth",
			authHeader: "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
			wantError:  ErrInvalidAuthorizationHeader.Error(),
		},
		{
			name:       "valid token",
			authHeader: "Bearer valid-token",
			wantToken:  "valid-token",
			parsed:     models.Token{UserID: "user-42"},
			wantStatus: http.StatusOK,
			wantUserID: "user-42",
		},
		{
			name:       "lower-case scheme",
			authHeader: "bearer valid-token",
			wantToken:  "valid-token",
			parsed:     models.Token{UserID: "user-42"},
			wantStatus: http.StatusOK,
			wantUserID: "user-42",
		},
		{
			name:       "expired token",
			authHeader: "Bearer expired-token",
			wantToken:  "expired-token",
			parseErr:   service.ErrTokenIsExpired,
			wantStatus: http.StatusUnauthorized,
			wantError:  service.ErrTokenIsExpired.Error(),
		},
		{
			name:       "invalid token",
			authHeader: "Bearer bad-token",
			wantToken:  "bad-token",
			parseErr:   service.ErrTokenIsExpiredOrInvalid,
			wantStatus: http.StatusUnauthorized,
			wantError:  http.StatusText(http.StatusUnauthorized),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			authSvc := mock.NewMockAuthService(ctrl)
			if tt.wantToken != "" {
				authSvc.EXPECT().ParseToken(gomock.Any(), tt.wantToken).Return(tt.parsed, tt.parseErr)
			}

			var gotUserID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUserID, _ = utils.GetUserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			rec := httptest.NewRecorder()
			newAuthHandler(authSvc).auth(next).ServeHTTP(rec, authRequest(tt.authHeader))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantUserID, gotUserID)
			if tt.wantError != "" {
				assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
				var body models.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.wantError, body.Error)
			}
		})
	}
}

func TestAuth_DoesNotMutateIncomingRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	authSvc := mock.NewMockAuthService(ctrl)
	authSvc.EXPECT().ParseToken(gomock.Any(), "token").Return(models.Token{UserID: "1"}, nil)

	req := authRequest("Bearer token")
	originalCtx := req.Context()

	newAuthHandler(authSvc).auth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).
		ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, originalCtx, req.Context())
	_, found := utils.GetUserIDFromContext(req.Context())
	assert.False(t, found)
}

func TestAuth_ConcurrentRequests(t *testing.T) {
	ctrl := gomock.NewController(t)
	authSvc := mock.NewMockAuthService(ctrl)
	authSvc.EXPECT().ParseToken(gomock.Any(), "concurrent-token").Return(models.Token{UserID: "7"}, nil).AnyTimes()

	middleware := newAuthHandler(authSvc).auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, _ := utils.GetUserIDFromContext(r.Context())
		w.Write([]byte(userID))
	}))

	var wg sync.WaitGroup
	for range 50 {
		wg.Go(func() {
			rec := httptest.NewRecorder()
			middleware.ServeHTTP(rec, authRequest("Bearer concurrent-token"))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "7", rec.Body.String())
		})
	}
	wg.Wait()
}
