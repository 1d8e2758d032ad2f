package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edison-energies/catalogue/internal/logging"
	"github.com/edison-energies/catalogue/internal/models"
	"github.com/edison-energies/catalogue/internal/repo"
	"github.com/edison-energies/catalogue/internal/transport"
)

// Notifier delivers the outbound notification for a submitted purchase
// request. Delivery is best-effort: a failure is reported as a warning in
// the response, never as an error.
type Notifier interface {
	NotifyDA(ctx context.Context, req *models.PurchaseRequest) error
}

// Notification outcomes reported alongside a created purchase request.
const (
	NotificationSent    = "sent"
	NotificationSkipped = "skipped"
	NotificationFailed  = "failed"
)

// maxDANumberAttempts bounds the retries when a generated da_number collides
// with an existing request. Exhausting it fails the submission loudly.
const maxDANumberAttempts = 3

type DAService struct {
	Repo   *repo.GormRepo
	Mailer Notifier  // optional
	Events Publisher // optional
}

func newDANumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("DA-%s-%s", now.UTC().Format("20060102"), suffix)
}

func validateDARequest(req transport.CreateDARequest) error {
	if strings.TrimSpace(req.UserEmail) == "" {
		return fmt.Errorf("%w: user_email is required", ErrValidation)
	}
	if strings.TrimSpace(req.Site) == "" {
		return fmt.Errorf("%w: site is required", ErrValidation)
	}
	if len(req.Articles) == 0 {
		return fmt.Errorf("%w: at least one article is required", ErrValidation)
	}
	for i, a := range req.Articles {
		if strings.TrimSpace(a.Reference) == "" {
			return fmt.Errorf("%w: article %d: reference is required", ErrValidation, i)
		}
		if a.Quantity <= 0 {
			return fmt.Errorf("%w: article %d (%s): quantity must be > 0", ErrValidation, i, a.Reference)
		}
		if a.Price < 0 {
			return fmt.Errorf("%w: article %d (%s): price must be >= 0", ErrValidation, i, a.Reference)
		}
	}
	return nil
}

// SubmitDA validates and persists a purchase request with its articles as
// one unit: either the header and every article land, or nothing does.
// After the commit it attempts the configured notifications.
func (s *DAService) SubmitDA(ctx context.Context, req transport.CreateDARequest) (*models.PurchaseRequest, string, error) {
	l := logging.FromContext(ctx).With("svc", "da.submit")

	if err := validateDARequest(req); err != nil {
		return nil, "", err
	}

	var da *models.PurchaseRequest
	for attempt := 0; ; attempt++ {
		candidate := &models.PurchaseRequest{
			DANumber:           newDANumber(time.Now()),
			UserEmail:          strings.TrimSpace(req.UserEmail),
			UserName:           req.UserName,
			Site:               strings.TrimSpace(req.Site),
			Status:             models.DAStatusPending,
			AttachmentFilename: req.AttachmentFilename,
			Comments:           req.Comments,
			Articles:           buildArticles(req.Articles),
		}

		err := s.Repo.CreateRequest(ctx, candidate)
		if err == nil {
			da = candidate
			break
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			l.Error("da_submit_failed", "error", err)
			return nil, "", fmt.Errorf("persisting purchase request: %w", err)
		}
		if attempt+1 >= maxDANumberAttempts {
			l.Error("da_submit_failed", "reason", "da number collisions exhausted retries")
			return nil, "", fmt.Errorf("allocating da number: %w", err)
		}
		l.Warn("da_number_collision", "da_number", candidate.DANumber, "attempt", attempt+1)
	}

	l.Info("da_submitted", "da_number", da.DANumber, "articles", len(da.Articles))

	notification := NotificationSkipped
	if s.Mailer != nil {
		if err := s.Mailer.NotifyDA(ctx, da); err != nil {
			l.Warn("da_notification_failed", "da_number", da.DANumber, "error", err)
			notification = NotificationFailed
		} else {
			notification = NotificationSent
		}
	}

	if s.Events != nil {
		event := map[string]any{
			"type":       "da_submitted",
			"da_number":  da.DANumber,
			"user_email": da.UserEmail,
			"site":       da.Site,
			"articles":   len(da.Articles),
		}
		if err := s.Events.Publish(ctx, da.DANumber, event); err != nil {
			l.Warn("event publish failed", "da_number", da.DANumber, "error", err)
		}
	}

	return da, notification, nil
}

func buildArticles(items []transport.CreateDAArticle) []models.DAArticle {
	articles := make([]models.DAArticle, 0, len(items))
	for _, a := range items {
		unit := a.Unit
		if unit == "" {
			unit = models.DefaultUnit
		}
		articles = append(articles, models.DAArticle{
			Reference:   strings.TrimSpace(a.Reference),
			Designation: a.Designation,
			Quantity:    a.Quantity,
			Unit:        unit,
			Price:       a.Price,
		})
	}
	return articles
}

func (s *DAService) GetRequest(ctx context.Context, daNumber string) (*models.PurchaseRequest, error) {
	return s.Repo.GetRequest(ctx, daNumber)
}

func (s *DAService) ListRequests(ctx context.Context, status string) ([]models.PurchaseRequest, error) {
	return s.Repo.ListRequests(ctx, status)
}

// UpdateStatus moves a pending request to one of its terminal states.
// Requests never leave a terminal state.
func (s *DAService) UpdateStatus(ctx context.Context, daNumber, status string) (*models.PurchaseRequest, error) {
	switch status {
	case models.DAStatusApproved, models.DAStatusRejected, models.DAStatusFulfilled:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	current, err := s.Repo.GetRequest(ctx, daNumber)
	if err != nil {
		return nil, err
	}
	if current.Status != models.DAStatusPending {
		return nil, fmt.Errorf("%w: request %s is %s, only pending requests can change status",
			ErrValidation, daNumber, current.Status)
	}

	if err := s.Repo.UpdateRequestStatus(ctx, daNumber, status); err != nil {
		return nil, err
	}
	return s.Repo.GetRequest(ctx, daNumber)
}

// DeleteRequest cancels a request and removes its articles with it.
func (s *DAService) DeleteRequest(ctx context.Context, daNumber string) error {
	return s.Repo.DeleteRequest(ctx, daNumber)
}
