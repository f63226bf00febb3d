//go:build unit

package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"playa-admin/internal/domain/user"
	"playa-admin/internal/handler/api"
	"playa-admin/internal/pkg/errs"
	"playa-admin/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type stubAuthCommands struct {
	result *commands.LoginResult
	err    error

	gotEmail    string
	gotPassword string
}

func (s *stubAuthCommands) Login(_ context.Context, email, plainPassword string) (*commands.LoginResult, error) {
	s.gotEmail = email
	s.gotPassword = plainPassword
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubAuthCommands) Refresh(_ context.Context, _ uuid.UUID) (*commands.LoginResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubAuthCommands) Me(_ context.Context, _ uuid.UUID) (*commands.MeResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &commands.MeResult{
		UserID: s.result.UserID,
		Name:   s.result.Name,
		Email:  s.result.Email,
		Role:   s.result.Role,
	}, nil
}

type AuthHandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
	cmds   *stubAuthCommands
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.cmds = &stubAuthCommands{}
	handler := api.NewAuthHandler(s.cmds)
	s.router.POST("/auth/login", handler.Login)

	fakeAuth := func(c *gin.Context) {
		c.Set("user_id", uuid.New())
		c.Set("user_role", user.RoleOwner)
	}
	s.router.GET("/auth/me", fakeAuth, handler.Me)
	s.router.POST("/auth/refresh", fakeAuth, handler.Refresh)
}

func (s *AuthHandlerTestSuite) TestLoginSuccess() {
	s.cmds.result = &commands.LoginResult{
		Token:  "signed-token",
		UserID: uuid.New(),
		Name:   "Marta",
		Email:  "marta@example.com",
		Role:   "OWNER",
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"marta@example.com","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "signed-token")
	s.Contains(w.Body.String(), "marta@example.com")
	s.Equal("marta@example.com", s.cmds.gotEmail)
	s.Equal("secret", s.cmds.gotPassword)
}

func (s *AuthHandlerTestSuite) TestLoginInvalidCredentials() {
	s.cmds.err = errs.ErrInvalidCredentials

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"marta@example.com","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusUnauthorized, w.Code)
	s.Contains(w.Body.String(), "Credenciales inválidas")
}

func (s *AuthHandlerTestSuite) TestLoginMalformedBody() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Empty(s.cmds.gotEmail)
}

func (s *AuthHandlerTestSuite) TestMe() {
	s.cmds.result = &commands.LoginResult{
		UserID: uuid.New(),
		Name:   "Marta",
		Email:  "marta@example.com",
		Role:   "OWNER",
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "marta@example.com")
	s.NotContains(w.Body.String(), "token")
}

func (s *AuthHandlerTestSuite) TestRefreshDeactivatedUser() {
	s.cmds.err = errs.ErrUserNotFound

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusNotFound, w.Code)
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
