package service

import (
	"context"
	"errors"
	"testing"

	"valet_parking/internal/domain"
	"valet_parking/internal/repository"
)

func TestApplyStatusUpdate(t *testing.T) {
	repo := &fakePaymentRepo{payments: map[int]*domain.Payment{
		3: {ID: 3, UserID: 7, Amount: 100, Status: domain.PaymentPending},
	}}
	svc := NewPaymentService(repo)

	p, err := svc.ApplyStatusUpdate(context.Background(), domain.PaymentStatusUpdate{PaymentID: 3, Status: domain.PaymentCompleted})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if p.Status != domain.PaymentCompleted {
		t.Fatalf("expected COMPLETED, got %s", p.Status)
	}
	if _, err := svc.ApplyStatusUpdate(context.Background(), domain.PaymentStatusUpdate{PaymentID: 3, Status: "PAID"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, err := svc.ApplyStatusUpdate(context.Background(), domain.PaymentStatusUpdate{PaymentID: 9, Status: domain.PaymentFailed}); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestHandleQueueMessage(t *testing.T) {
	repo := &fakePaymentRepo{payments: map[int]*domain.Payment{
		3: {ID: 3, UserID: 7, Status: domain.PaymentPending},
	}}
	svc := NewPaymentService(repo)

	tests := []struct {
		name string
		body string
	}{
		{"applies update", `{"payment_id": 3, "status": "REFUNDED"}`},
		{"drops malformed json", `{"payment_id": `},
		{"drops unknown status", `{"payment_id": 3, "status": "LOST"}`},
		{"drops unknown payment", `{"payment_id": 42, "status": "FAILED"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.HandleQueueMessage(context.Background(), tt.body); err != nil {
				t.Fatalf("expected message to be consumed, got %v", err)
			}
		})
	}
	if repo.payments[3].Status != domain.PaymentRefunded {
		t.Fatalf("expected REFUNDED, got %s", repo.payments[3].Status)
	}
}
