package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/edison-energies/catalogue/internal/models"
	"github.com/edison-energies/catalogue/internal/transport"
)

func validDARequest() transport.CreateDARequest {
	return transport.CreateDARequest{
		UserEmail: "t.tesson@edison-energies.com",
		UserName:  "Thomas Tesson",
		Site:      "Nantes",
		Articles: []transport.CreateDAArticle{
			{Reference: "CAB001", Designation: "Câble", Quantity: 10, Unit: "M", Price: 2.45},
			{Reference: "DIS001", Designation: "Disjoncteur", Quantity: 2, Price: 8.90},
		},
		Comments: "chantier B12",
	}
}

type fakeNotifier struct {
	called int
	fail   bool
}

func (f *fakeNotifier) NotifyDA(_ context.Context, _ *models.PurchaseRequest) error {
	f.called++
	if f.fail {
		return errors.New("smtp unreachable")
	}
	return nil
}

func TestSubmitDA(t *testing.T) {
	store := setupTestRepo(t)
	svc := &DAService{Repo: store}
	ctx := context.Background()

	da, notification, err := svc.SubmitDA(ctx, validDARequest())
	require.NoError(t, err)
	require.Equal(t, NotificationSkipped, notification)

	require.True(t, strings.HasPrefix(da.DANumber, "DA-"))
	require.Equal(t, models.DAStatusPending, da.Status)
	require.Len(t, da.Articles, 2)

	stored, err := store.GetRequest(ctx, da.DANumber)
	require.NoError(t, err)
	require.Equal(t, da.DANumber, stored.DANumber)
	require.Len(t, stored.Articles, 2)
	require.Equal(t, models.DefaultUnit, stored.Articles[1].Unit)
	for _, a := range stored.Articles {
		require.Equal(t, da.DANumber, a.DANumber)
	}
}

func TestSubmitDAValidation(t *testing.T) {
	store := setupTestRepo(t)
	svc := &DAService{Repo: store}
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*transport.CreateDARequest)
	}{
		{"empty articles", func(r *transport.CreateDARequest) { r.Articles = nil }},
		{"missing email", func(r *transport.CreateDARequest) { r.UserEmail = " " }},
		{"missing site", func(r *transport.CreateDARequest) { r.Site = "" }},
		{"zero quantity", func(r *transport.CreateDARequest) { r.Articles[0].Quantity = 0 }},
		{"negative quantity", func(r *transport.CreateDARequest) { r.Articles[1].Quantity = -3 }},
		{"negative price", func(r *transport.CreateDARequest) { r.Articles[0].Price = -0.5 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validDARequest()
			tc.mutate(&req)

			_, _, err := svc.SubmitDA(ctx, req)
			require.ErrorIs(t, err, ErrValidation)
		})
	}

	// Nothing may have been persisted for any rejected submission.
	var headers, articles int64
	require.NoError(t, store.DB.Model(&models.PurchaseRequest{}).Count(&headers).Error)
	require.NoError(t, store.DB.Model(&models.DAArticle{}).Count(&articles).Error)
	require.Zero(t, headers)
	require.Zero(t, articles)
}

func TestSubmitDARollbackOnArticleFailure(t *testing.T) {
	store := setupTestRepo(t)
	svc := &DAService{Repo: store}
	ctx := context.Background()

	// Force the article insert to fail mid-transaction.
	require.NoError(t, store.DB.Migrator().DropTable(&models.DAArticle{}))

	_, _, err := svc.SubmitDA(ctx, validDARequest())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrValidation)

	var headers int64
	require.NoError(t, store.DB.Model(&models.PurchaseRequest{}).Count(&headers).Error)
	require.Zero(t, headers, "header must be rolled back when an article insert fails")
}

func TestSubmitDANotificationOutcomes(t *testing.T) {
	store := setupTestRepo(t)
	ctx := context.Background()

	ok := &fakeNotifier{}
	svc := &DAService{Repo: store, Mailer: ok}
	da, notification, err := svc.SubmitDA(ctx, validDARequest())
	require.NoError(t, err)
	require.Equal(t, NotificationSent, notification)
	require.Equal(t, 1, ok.called)

	// Notification failure is a warning, never an error: the request stays.
	failing := &fakeNotifier{fail: true}
	svc = &DAService{Repo: store, Mailer: failing}
	da2, notification, err := svc.SubmitDA(ctx, validDARequest())
	require.NoError(t, err)
	require.Equal(t, NotificationFailed, notification)

	_, err = store.GetRequest(ctx, da.DANumber)
	require.NoError(t, err)
	_, err = store.GetRequest(ctx, da2.DANumber)
	require.NoError(t, err)
}

func TestSubmitDAGeneratesUniqueNumbers(t *testing.T) {
	svc := &DAService{Repo: setupTestRepo(t)}
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		da, _, err := svc.SubmitDA(ctx, validDARequest())
		require.NoError(t, err)
		require.False(t, seen[da.DANumber], "da_number %s issued twice", da.DANumber)
		seen[da.DANumber] = true
	}
}

func TestUpdateStatusLifecycle(t *testing.T) {
	svc := &DAService{Repo: setupTestRepo(t)}
	ctx := context.Background()

	da, _, err := svc.SubmitDA(ctx, validDARequest())
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, da.DANumber, models.DAStatusApproved)
	require.NoError(t, err)
	require.Equal(t, models.DAStatusApproved, updated.Status)

	// Terminal states accept no further transitions.
	_, err = svc.UpdateStatus(ctx, da.DANumber, models.DAStatusRejected)
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateStatus(ctx, da.DANumber, "archived")
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateStatus(ctx, "DA-00000000-XXXXXX", models.DAStatusApproved)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteRequestCascadesToArticles(t *testing.T) {
	store := setupTestRepo(t)
	svc := &DAService{Repo: store}
	ctx := context.Background()

	da, _, err := svc.SubmitDA(ctx, validDARequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRequest(ctx, da.DANumber))

	var headers, articles int64
	require.NoError(t, store.DB.Model(&models.PurchaseRequest{}).Count(&headers).Error)
	require.NoError(t, store.DB.Model(&models.DAArticle{}).Count(&articles).Error)
	require.Zero(t, headers)
	require.Zero(t, articles)

	require.ErrorIs(t, svc.DeleteRequest(ctx, da.DANumber), gorm.ErrRecordNotFound)
}

func TestSubmitDAWithAttachment(t *testing.T) {
	svc := &DAService{Repo: setupTestRepo(t)}
	ctx := context.Background()

	req := validDARequest()
	req.AttachmentFilename = "0d1f7c52.pdf"

	da, _, err := svc.SubmitDA(ctx, req)
	require.NoError(t, err)
	require.Equal(t, "0d1f7c52.pdf", da.AttachmentFilename)
}
