package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"valet_parking/internal/domain"
)

type fakeSQS struct {
	mu       sync.Mutex
	batches  [][]types.Message
	deleted  []string
	received chan struct{}
}

func (f *fakeSQS) ReceiveMessage(ctx context.Context, _ *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	f.mu.Lock()
	if len(f.batches) == 0 {
		f.mu.Unlock()
		select {
		case f.received <- struct{}{}:
		default:
		}
		<-ctx.Done()
		return nil, ctx.Err()
	}
	batch := f.batches[0]
	f.batches = f.batches[1:]
	f.mu.Unlock()
	return &sqs.ReceiveMessageOutput{Messages: batch}, nil
}

func (f *fakeSQS) DeleteMessage(_ context.Context, in *sqs.DeleteMessageInput, _ ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, *in.ReceiptHandle)
	return &sqs.DeleteMessageOutput{}, nil
}

type handlerFunc func(ctx context.Context, body string) error

func (h handlerFunc) HandleQueueMessage(ctx context.Context, body string) error { return h(ctx, body) }

func TestSQSConsumerDeletesOnlyHandledMessages(t *testing.T) {
	client := &fakeSQS{
		received: make(chan struct{}, 1),
		batches: [][]types.Message{{
			{MessageId: aws.String("1"), ReceiptHandle: aws.String("ok"), Body: aws.String("apply")},
			{MessageId: aws.String("2"), ReceiptHandle: aws.String("retry"), Body: aws.String("fail")},
			{MessageId: aws.String("3"), ReceiptHandle: aws.String("empty")},
		}},
	}
	consumer := NewSQSConsumer(client, "https://sqs.local/payments", handlerFunc(func(_ context.Context, body string) error {
		if body == "fail" {
			return errors.New("database unavailable")
		}
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		consumer.Start(ctx)
		close(done)
	}()

	select {
	case <-client.received:
	case <-time.After(2 * time.Second):
		t.Fatalf("consumer never drained the batch")
	}
	cancel()
	<-done

	if len(client.deleted) != 2 || client.deleted[0] != "ok" || client.deleted[1] != "empty" {
		t.Fatalf("expected ok and empty to be deleted, got %v", client.deleted)
	}
}

func TestRoutingKey(t *testing.T) {
	ev := domain.ParkedCarEvent{Type: domain.EventDriverAssigned}
	if got := RoutingKey(ev); got != "parked_car.driver_assigned" {
		t.Fatalf("unexpected routing key %q", got)
	}
}
