package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/meetapp/adapters/persistence"
	"github.com/khoahotran/meetapp/internal/application/service"
	authUC "github.com/khoahotran/meetapp/internal/application/usecase/auth"
	meetupUC "github.com/khoahotran/meetapp/internal/application/usecase/meetup"
	userUC "github.com/khoahotran/meetapp/internal/application/usecase/user"
	"github.com/khoahotran/meetapp/internal/config"
	"github.com/khoahotran/meetapp/pkg/auth"
	"github.com/khoahotran/meetapp/pkg/logger"
)

type AuthE2ETestSuite struct {
	suite.Suite
	Router   *gin.Engine
	dbPool   *pgxpool.Pool
	email    string
	testPass string
}

func (s *AuthE2ETestSuite) SetupSuite() {
	cfg, err := config.LoadConfig("../..")
	if err != nil {
		s.T().Fatalf("Failed to load config for E2E test: %v", err)
	}

	dbPool, err := pgxpool.New(context.Background(), cfg.DB.DSN)
	if err != nil {
		s.T().Fatalf("E2E test failed to connect postgres: %v", err)
	}
	s.dbPool = dbPool

	appLogger := logger.NewZapLogger("development")

	s.email = "e2e_test@example.com"
	s.testPass = "e2e_test_password_123"
	hash, _ := auth.HashPassword(s.testPass)
	query := `INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3) ON CONFLICT (email) DO UPDATE SET password_hash = $3`
	if _, err = dbPool.Exec(context.Background(), query, "E2E", s.email, hash); err != nil {
		s.T().Fatalf("E2E test failed to seed user: %v", err)
	}

	userRepo := persistence.NewPostgresUserRepo(dbPool, appLogger)
	fileRepo := persistence.NewPostgresFileRepo(dbPool, appLogger)
	meetupRepo := persistence.NewPostgresMeetupRepo(dbPool, appLogger)
	avatars := service.NewAvatarResolver(fileRepo, appLogger)
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)

	gin.SetMode(gin.TestMode)
	s.Router = NewRouter(RouterDeps{
		Auth: NewAuthHandler(authUC.NewLoginUseCase(userRepo, avatars, jwtSvc, appLogger), appLogger),
		Users: NewUserHandler(
			userUC.NewCreateUserUseCase(userRepo, appLogger),
			userUC.NewUpdateUserUseCase(userRepo, fileRepo, avatars, appLogger),
			appLogger,
		),
		Files: NewFileHandler(nil, appLogger),
		Meetups: NewMeetupHandler(
			meetupUC.NewListMeetupsUseCase(meetupRepo, appLogger),
			meetupUC.NewGetMeetupUseCase(meetupRepo, appLogger),
			appLogger,
		),
		AuthMiddleware: AuthMiddleware(jwtSvc, appLogger),
		Logger:         appLogger,
	})
}

func (s *AuthE2ETestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
}

func TestAuthE2E(t *testing.T) {
	if os.Getenv("E2E_TESTS") == "" {
		t.Skip("Skipping E2E tests. Set E2E_TESTS=1 to run.")
	}
	suite.Run(t, new(AuthE2ETestSuite))
}

func (s *AuthE2ETestSuite) post(path string, body gin.H) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	return rr
}

func (s *AuthE2ETestSuite) Test_Login_Flow() {
	rrBad := s.post("/api/sessions", gin.H{"email": s.email, "password": "wrongpassword"})
	assert.Equal(s.T(), http.StatusUnauthorized, rrBad.Code)

	rrGood := s.post("/api/sessions", gin.H{"email": s.email, "password": s.testPass})
	assert.Equal(s.T(), http.StatusOK, rrGood.Code)

	var loginResponse struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(rrGood.Body.Bytes(), &loginResponse)
	assert.NotEmpty(s.T(), loginResponse.Token)

	reqAuth := httptest.NewRequest(http.MethodGet, "/api/meetups", nil)
	reqAuth.Header.Set("Authorization", "Bearer "+loginResponse.Token)
	rrAuth := httptest.NewRecorder()
	s.Router.ServeHTTP(rrAuth, reqAuth)
	assert.Equal(s.T(), http.StatusOK, rrAuth.Code)

	reqNoAuth := httptest.NewRequest(http.MethodGet, "/api/meetups", nil)
	rrNoAuth := httptest.NewRecorder()
	s.Router.ServeHTTP(rrNoAuth, reqNoAuth)
	assert.Equal(s.T(), http.StatusUnauthorized, rrNoAuth.Code)
}
