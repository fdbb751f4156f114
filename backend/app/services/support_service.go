package services

import (
	"context"
	"culinary-calc/backend/app/cache"
	"culinary-calc/backend/app/models"
	"culinary-calc/backend/app/repo"
	"fmt"
	"strings"
)

type SupportService struct {
	tickets *repo.TicketRepository
	stats   *cache.StatsCache
}

func NewSupportService(tickets *repo.TicketRepository, stats *cache.StatsCache) *SupportService {
	return &SupportService{tickets: tickets, stats: stats}
}

// CreateTicket opens a ticket for userID. Priority defaults to medium.
func (s *SupportService) CreateTicket(ctx context.Context, userID, subject, message, priority string) (*models.SupportTicket, error) {
	subject = strings.TrimSpace(subject)
	message = strings.TrimSpace(message)
	if subject == "" || message == "" {
		return nil, fmt.Errorf("%w: subject and message are required", ErrInvalidInput)
	}
	p := models.PriorityMedium
	if priority != "" {
		p = models.TicketPriority(priority)
		if !p.Valid() {
			return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, priority)
		}
	}
	t := &models.SupportTicket{UserID: userID, Subject: subject, Message: message, Priority: p, Status: models.TicketOpen}
	if err := s.tickets.Create(ctx, t); err != nil {
		return nil, err
	}
	invalidateStats(ctx, s.stats)
	return t, nil
}

func (s *SupportService) ListOwn(ctx context.Context, userID string) ([]models.SupportTicket, error) {
	return s.tickets.ListByUser(ctx, userID)
}
