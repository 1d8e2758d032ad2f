package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/edison-energies/catalogue/internal/models"
	"github.com/edison-energies/catalogue/internal/repo"
	"github.com/edison-energies/catalogue/internal/service"
)

type testEnv struct {
	t     *testing.T
	e     *echo.Echo
	store *repo.GormRepo

	catalogue *CatalogueHTTP
	da        *DAHTTP
	auth      *AuthHTTP
	files     *FileHTTP

	uploadDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Product{},
		&models.Family{},
		&models.User{},
		&models.PurchaseRequest{},
		&models.DAArticle{},
		&models.UploadedFile{},
	))

	store := &repo.GormRepo{DB: db}
	uploadDir := t.TempDir()

	return &testEnv{
		t:         t,
		e:         echo.New(),
		store:     store,
		catalogue: &CatalogueHTTP{Svc: &service.CatalogueService{Repo: store}},
		da:        &DAHTTP{Svc: &service.DAService{Repo: store}},
		auth:      &AuthHTTP{Svc: &service.AuthService{Repo: store, JWTSecret: []byte("test-secret")}},
		files:     &FileHTTP{Svc: &service.FileService{Repo: store, Dir: uploadDir}},
		uploadDir: uploadDir,
	}
}

func (env *testEnv) doJSON(method, target string, body any) (*httptest.ResponseRecorder, echo.Context) {
	env.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(env.t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)
	return rec, c
}

func requireHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	he := new(echo.HTTPError)
	require.ErrorAs(t, err, &he)
	require.Equal(t, code, he.Code)
}
