package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/harukimori/inventory-backend/internal/model"
	"github.com/harukimori/inventory-backend/internal/repository"
	"github.com/harukimori/inventory-backend/internal/warranty"
)

type NotificationService interface {
	Notify(ctx context.Context, userUID, typ, title, body string, itemID *string)
	List(ctx context.Context, userUID string, unreadOnly bool, limit int) ([]model.Notification, int64, error)
	MarkAllRead(ctx context.Context, userUID string) error
	SweepWarrantyAlerts(ctx context.Context, now time.Time) (int, error)
	SweepUserWarrantyAlerts(ctx context.Context, userUID string, now time.Time) (int, error)
}

type notificationService struct {
	repo     repository.NotificationRepository
	itemRepo repository.ItemRepository
}

func NewNotificationService(repo repository.NotificationRepository, itemRepo repository.ItemRepository) NotificationService {
	return &notificationService{repo: repo, itemRepo: itemRepo}
}

// Notify is best-effort; it logs errors but does not return them to avoid
// breaking main flows.
func (s *notificationService) Notify(ctx context.Context, userUID, typ, title, body string, itemID *string) {
	if userUID == "" || typ == "" {
		return
	}
	n := &model.Notification{
		UserUID: userUID,
		Type:    typ,
		Title:   title,
		Body:    body,
		ItemID:  itemID,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		log.Printf("[notify] uid=%s type=%s err=%v", userUID, typ, err)
	}
}

func (s *notificationService) List(ctx context.Context, userUID string, unreadOnly bool, limit int) ([]model.Notification, int64, error) {
	if userUID == "" {
		return nil, 0, nil
	}
	list, err := s.repo.ListByUser(ctx, userUID, unreadOnly, limit)
	if err != nil {
		return nil, 0, err
	}
	cnt, err := s.repo.CountUnread(ctx, userUID)
	if err != nil {
		return list, 0, err
	}
	return list, cnt, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userUID string) error {
	if userUID == "" {
		return nil
	}
	return s.repo.MarkAllRead(ctx, userUID)
}

// SweepWarrantyAlerts creates one alert per item whose warranty lapses inside
// the expiring window. Items already alerted are skipped, so the daily sweep
// stays quiet after the first notification.
func (s *notificationService) SweepWarrantyAlerts(ctx context.Context, now time.Time) (int, error) {
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, warranty.ExpiringWindowDays)
	items, err := s.itemRepo.ListExpiringBetween(ctx, from, to)
	if err != nil {
		return 0, err
	}
	return s.alertExpiring(ctx, items, now), nil
}

// SweepUserWarrantyAlerts is the per-user variant run on dashboard load, so
// a fresh expiry shows up without waiting for the next daily tick.
func (s *notificationService) SweepUserWarrantyAlerts(ctx context.Context, userUID string, now time.Time) (int, error) {
	if userUID == "" {
		return 0, nil
	}
	items, err := s.itemRepo.ListByOwner(ctx, userUID)
	if err != nil {
		return 0, err
	}
	expiring := make([]model.InventoryItem, 0, len(items))
	for _, it := range items {
		if warranty.Evaluate(it.WarrantyExpiry, now).Status == warranty.StatusExpiringSoon {
			expiring = append(expiring, it)
		}
	}
	return s.alertExpiring(ctx, expiring, now), nil
}

func (s *notificationService) alertExpiring(ctx context.Context, items []model.InventoryItem, now time.Time) int {
	created := 0
	for _, it := range items {
		exists, err := s.repo.ExistsForItem(ctx, it.OwnerUID, model.NotificationTypeWarrantyExpiring, it.ID)
		if err != nil {
			log.Printf("[sweep] item=%s stage=dedupe err=%v", it.ID, err)
			continue
		}
		if exists {
			continue
		}
		result := warranty.Evaluate(it.WarrantyExpiry, now)
		s.Notify(ctx, it.OwnerUID,
			model.NotificationTypeWarrantyExpiring,
			fmt.Sprintf("Warranty expiring: %s", it.Name),
			fmt.Sprintf("The warranty for %s is %s.", it.Name, labelSentence(result)),
			&it.ID,
		)
		created++
	}
	return created
}

func labelSentence(r warranty.Result) string {
	if r.DaysRemaining == nil {
		return "not tracked"
	}
	d := *r.DaysRemaining
	switch {
	case d == 0:
		return "expiring today"
	case d == 1:
		return "expiring tomorrow"
	default:
		return fmt.Sprintf("expiring in %d days", d)
	}
}
