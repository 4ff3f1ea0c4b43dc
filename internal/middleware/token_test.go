package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomescape/reservation-service/internal/auth"
	"github.com/roomescape/reservation-service/internal/model"
)

func testTokens() *auth.TokenService {
	return auth.NewTokenService("middleware-test-secret", time.Hour)
}

// whoami is a protected probe handler that echoes the identity TokenAuth
// placed in context.
func whoami(c echo.Context) error {
	claims, err := Identity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"id": claims.MemberID, "role": claims.Role})
}

func perform(t *testing.T, tokens *auth.TokenService, mw []echo.MiddlewareFunc, decorate func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.GET("/probe", whoami, mw...)
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if decorate != nil {
		decorate(req)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) (title, detail string) {
	t.Helper()
	var body struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Title, body.Detail
}

func TestTokenAuthFromCookie(t *testing.T) {
	tokens := testTokens()
	tok, err := tokens.Issue(model.Member{ID: 5, Name: "고객", Role: model.RoleCustomer})
	require.NoError(t, err)

	rec := perform(t, tokens, []echo.MiddlewareFunc{TokenAuth(tokens)}, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "token", Value: tok})
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":5`)
	assert.Contains(t, rec.Body.String(), `"role":"CUSTOMER"`)
}

func TestTokenAuthFromBearerHeader(t *testing.T) {
	tokens := testTokens()
	tok, err := tokens.Issue(model.Member{ID: 5, Role: model.RoleAdmin})
	require.NoError(t, err)

	rec := perform(t, tokens, []echo.MiddlewareFunc{TokenAuth(tokens)}, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+tok)
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"ADMIN"`)
}

func TestTokenAuthMissingToken(t *testing.T) {
	tokens := testTokens()

	rec := perform(t, tokens, []echo.MiddlewareFunc{TokenAuth(tokens)}, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	title, detail := errorBody(t, rec)
	assert.Equal(t, "인증에 실패했습니다.", title)
	assert.Equal(t, "로그인이 필요합니다.", detail)
}

func TestTokenAuthInvalidToken(t *testing.T) {
	tokens := testTokens()

	rec := perform(t, tokens, []echo.MiddlewareFunc{TokenAuth(tokens)}, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "token", Value: "not-a-jwt"})
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	_, detail := errorBody(t, rec)
	assert.Equal(t, "유효하지 않은 토큰입니다.", detail)
}

func TestTokenAuthWrongSecret(t *testing.T) {
	tokens := testTokens()
	foreign := auth.NewTokenService("some-other-secret", time.Hour)
	tok, err := foreign.Issue(model.Member{ID: 5, Role: model.RoleCustomer})
	require.NoError(t, err)

	rec := perform(t, tokens, []echo.MiddlewareFunc{TokenAuth(tokens)}, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "token", Value: tok})
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRoleMatch(t *testing.T) {
	tokens := testTokens()
	tok, err := tokens.Issue(model.Member{ID: 5, Role: model.RoleCustomer})
	require.NoError(t, err)

	mw := []echo.MiddlewareFunc{TokenAuth(tokens), RequireRole(model.RoleCustomer)}
	rec := perform(t, tokens, mw, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "token", Value: tok})
	})

	assert.Equal(t, http.StatusOK, rec.Code)
}

// The role model is flat: ADMIN holds no implicit customer privileges,
// and a customer never passes an admin gate.
func TestRequireRoleFlatModel(t *testing.T) {
	tokens := testTokens()
	adminTok, err := tokens.Issue(model.Member{ID: 9, Role: model.RoleAdmin})
	require.NoError(t, err)
	customerTok, err := tokens.Issue(model.Member{ID: 5, Role: model.RoleCustomer})
	require.NoError(t, err)

	cases := []struct {
		name string
		tok  string
		gate echo.MiddlewareFunc
		want int
	}{
		{"admin against customer-only gate", adminTok, RequireRole(model.RoleCustomer), http.StatusForbidden},
		{"customer against admin-only gate", customerTok, RequireRole(model.RoleAdmin), http.StatusForbidden},
		{"admin against admin gate", adminTok, RequireRole(model.RoleAdmin), http.StatusOK},
		{"either role listed explicitly", adminTok, RequireRole(model.RoleCustomer, model.RoleAdmin), http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := perform(t, tokens, []echo.MiddlewareFunc{TokenAuth(tokens), tc.gate}, func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: "token", Value: tc.tok})
			})
			assert.Equal(t, tc.want, rec.Code)
			if tc.want == http.StatusForbidden {
				title, _ := errorBody(t, rec)
				assert.Equal(t, "권한이 없습니다.", title)
			}
		})
	}
}

func TestRequireRoleWithoutIdentity(t *testing.T) {
	// RequireRole alone, with no TokenAuth in front, fails closed.
	rec := perform(t, testTokens(), []echo.MiddlewareFunc{RequireRole(model.RoleCustomer)}, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
