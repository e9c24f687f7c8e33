package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"valet_parking/internal/domain"
	"valet_parking/internal/metrics"
	"valet_parking/internal/repository"
)

type PaymentService struct {
	paymentRepo repository.PaymentRepository
}

func NewPaymentService(paymentRepo repository.PaymentRepository) *PaymentService {
	return &PaymentService{paymentRepo: paymentRepo}
}

func (s *PaymentService) ListForUser(ctx context.Context, userID int) ([]domain.PaymentHistoryItem, error) {
	return s.paymentRepo.ListByUser(ctx, userID)
}

// ApplyStatusUpdate records a status reported by the payment processor.
func (s *PaymentService) ApplyStatusUpdate(ctx context.Context, update domain.PaymentStatusUpdate) (*domain.Payment, error) {
	if update.PaymentID <= 0 {
		return nil, fmt.Errorf("%w: payment_id is required", ErrValidation)
	}
	if !update.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrValidation, update.Status)
	}
	p, err := s.paymentRepo.UpdateStatus(ctx, update.PaymentID, update.Status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("payment %d: %w", update.PaymentID, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("PaymentService.ApplyStatusUpdate: %w", err)
	}
	metrics.PaymentStatusUpdates.WithLabelValues(string(p.Status)).Inc()
	log.Printf("PaymentService: payment %d is now %s", p.ID, p.Status)
	return p, nil
}

// HandleQueueMessage decodes a processor message. It returns nil for messages
// that can never succeed so the consumer drops them instead of redelivering.
func (s *PaymentService) HandleQueueMessage(ctx context.Context, body string) error {
	var update domain.PaymentStatusUpdate
	if err := json.Unmarshal([]byte(body), &update); err != nil {
		log.Printf("PaymentService: dropping malformed message: %v", err)
		return nil
	}
	_, err := s.ApplyStatusUpdate(ctx, update)
	if errors.Is(err, ErrValidation) || errors.Is(err, repository.ErrNotFound) {
		log.Printf("PaymentService: dropping message: %v", err)
		return nil
	}
	return err
}
