package consumer

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/domain"
)

type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) ListEvents(ctx context.Context) ([]domain.AttributionEvent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AttributionEvent), args.Error(1)
}

func (m *MockEventRepository) AppendEvent(ctx context.Context, event *domain.AttributionEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) AppendEvents(ctx context.Context, events []*domain.AttributionEvent) (int, error) {
	args := m.Called(ctx, events)
	return args.Int(0), args.Error(1)
}

func createTestEnvelope(name string, acked, nacked *int32) *Envelope {
	event := &domain.AttributionEvent{
		ID:        "evt-" + name,
		EventName: name,
		Timestamp: time.Unix(testTimestamp, 0).UTC(),
	}
	ack := func(ctx context.Context) error {
		atomic.AddInt32(acked, 1)
		return nil
	}
	nack := func(ctx context.Context) error {
		atomic.AddInt32(nacked, 1)
		return nil
	}
	return NewEnvelope(event, ack, nack)
}

func TestBatchWriter_FlushOnBatchSize(t *testing.T) {
	var acked, nacked int32

	mockRepo := new(MockEventRepository)
	mockRepo.On("AppendEvents", mock.Anything, mock.MatchedBy(func(events []*domain.AttributionEvent) bool {
		return len(events) == 3
	})).Return(3, nil)

	writer := NewBatchWriter(mockRepo, BatchWriterConfig{
		MaxBatchSize: 3,
		FlushTimeout: 10 * time.Second,
	}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan *Envelope, 3)
	go writer.Start(ctx, in)

	for i := 0; i < 3; i++ {
		in <- createTestEnvelope("page_view", &acked, &nacked)
	}

	time.Sleep(100 * time.Millisecond)

	mockRepo.AssertExpectations(t)
	assert.Equal(t, int32(3), atomic.LoadInt32(&acked))
	assert.Equal(t, int32(0), atomic.LoadInt32(&nacked))
}

func TestBatchWriter_FlushOnTimeout(t *testing.T) {
	var acked, nacked int32

	mockRepo := new(MockEventRepository)
	mockRepo.On("AppendEvents", mock.Anything, mock.MatchedBy(func(events []*domain.AttributionEvent) bool {
		return len(events) == 1
	})).Return(1, nil)

	writer := NewBatchWriter(mockRepo, BatchWriterConfig{
		MaxBatchSize: 100,
		FlushTimeout: 50 * time.Millisecond,
	}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan *Envelope, 1)
	go writer.Start(ctx, in)

	in <- createTestEnvelope("page_view", &acked, &nacked)

	time.Sleep(200 * time.Millisecond)

	mockRepo.AssertExpectations(t)
	assert.Equal(t, int32(1), atomic.LoadInt32(&acked))
}

func TestBatchWriter_AppendFailureNacks(t *testing.T) {
	var acked, nacked int32

	mockRepo := new(MockEventRepository)
	mockRepo.On("AppendEvents", mock.Anything, mock.Anything).
		Return(0, errors.New("sheet unavailable"))

	writer := NewBatchWriter(mockRepo, BatchWriterConfig{
		MaxBatchSize: 2,
		FlushTimeout: 10 * time.Second,
	}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan *Envelope, 2)
	go writer.Start(ctx, in)

	in <- createTestEnvelope("page_view", &acked, &nacked)
	in <- createTestEnvelope("phone_click", &acked, &nacked)

	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, int32(0), atomic.LoadInt32(&acked))
	assert.Equal(t, int32(2), atomic.LoadInt32(&nacked), "failed batches are left for redelivery")
}

func TestBatchWriter_PartialAppendNacks(t *testing.T) {
	var acked, nacked int32

	mockRepo := new(MockEventRepository)
	mockRepo.On("AppendEvents", mock.Anything, mock.Anything).Return(1, nil)

	writer := NewBatchWriter(mockRepo, BatchWriterConfig{
		MaxBatchSize: 2,
		FlushTimeout: 10 * time.Second,
	}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan *Envelope, 2)
	go writer.Start(ctx, in)

	in <- createTestEnvelope("page_view", &acked, &nacked)
	in <- createTestEnvelope("phone_click", &acked, &nacked)

	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, int32(0), atomic.LoadInt32(&acked))
	assert.Equal(t, int32(2), atomic.LoadInt32(&nacked))
}

func TestBatchWriter_FlushOnChannelClose(t *testing.T) {
	var acked, nacked int32

	mockRepo := new(MockEventRepository)
	mockRepo.On("AppendEvents", mock.Anything, mock.MatchedBy(func(events []*domain.AttributionEvent) bool {
		return len(events) == 2
	})).Return(2, nil)

	writer := NewBatchWriter(mockRepo, BatchWriterConfig{
		MaxBatchSize: 100,
		FlushTimeout: 10 * time.Second,
	}, zap.NewNop())

	in := make(chan *Envelope, 2)
	in <- createTestEnvelope("page_view", &acked, &nacked)
	in <- createTestEnvelope("phone_click", &acked, &nacked)
	close(in)

	done := make(chan struct{})
	go func() {
		writer.Start(context.Background(), in)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("batch writer did not stop after channel close")
	}

	mockRepo.AssertExpectations(t)
	assert.Equal(t, int32(2), atomic.LoadInt32(&acked))
}
