package repo

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/edison-energies/catalogue/internal/models"
)

func setupRepo(t *testing.T) *GormRepo {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.PurchaseRequest{}, &models.DAArticle{}))
	return &GormRepo{DB: db}
}

// The unique index is the only duplicate guard: a second insert with the
// same reference must fail at the storage layer, with no pre-check involved.
func TestCreateProductDuplicateKey(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	first := models.Product{Reference: "CAB001", Designation: "a", Unit: "U", Family: "Divers", Icon: "x"}
	require.NoError(t, r.CreateProduct(ctx, &first))

	second := models.Product{Reference: "CAB001", Designation: "b", Unit: "U", Family: "Divers", Icon: "x"}
	err := r.CreateProduct(ctx, &second)
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	stored, err := r.GetProduct(ctx, "CAB001")
	require.NoError(t, err)
	require.Equal(t, "a", stored.Designation)
}

func TestOverwriteProductNotFound(t *testing.T) {
	r := setupRepo(t)

	prod := models.Product{Designation: "x", Unit: "U", Family: "Divers", Icon: "x"}
	_, err := r.OverwriteProduct(context.Background(), "MISSING", &prod)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCreateRequestDuplicateNumber(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	req := models.PurchaseRequest{
		DANumber: "DA-20260830-ABC123", UserEmail: "a@b.fr", UserName: "A", Site: "Nantes",
		Status:   models.DAStatusPending,
		Articles: []models.DAArticle{{Reference: "X", Designation: "x", Quantity: 1, Unit: "U", Price: 1}},
	}
	require.NoError(t, r.CreateRequest(ctx, &req))

	clash := models.PurchaseRequest{
		DANumber: "DA-20260830-ABC123", UserEmail: "c@d.fr", UserName: "C", Site: "Brest",
		Status:   models.DAStatusPending,
		Articles: []models.DAArticle{{Reference: "Y", Designation: "y", Quantity: 2, Unit: "U", Price: 2}},
	}
	require.ErrorIs(t, r.CreateRequest(ctx, &clash), gorm.ErrDuplicatedKey)

	// The losing transaction leaves no articles behind.
	var articles int64
	require.NoError(t, r.DB.Model(&models.DAArticle{}).Count(&articles).Error)
	require.EqualValues(t, 1, articles)
}
