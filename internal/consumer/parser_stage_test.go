package consumer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/domain"
)

type MockQueueConsumer struct {
	mock.Mock
}

func (m *MockQueueConsumer) ReceiveMessages(ctx context.Context, input *awssqs.ReceiveMessageInput) (*awssqs.ReceiveMessageOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*awssqs.ReceiveMessageOutput), args.Error(1)
}

func (m *MockQueueConsumer) DeleteMessage(ctx context.Context, input *awssqs.DeleteMessageInput) (*awssqs.DeleteMessageOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*awssqs.DeleteMessageOutput), args.Error(1)
}

func (m *MockQueueConsumer) QueueURL() string {
	args := m.Called()
	return args.String(0)
}

type MockMessageParser struct {
	mock.Mock
}

func (m *MockMessageParser) Parse(body []byte) (*domain.AttributionEvent, error) {
	args := m.Called(body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AttributionEvent), args.Error(1)
}

func TestParserStage_ValidMessageForwarded(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	mockParser := new(MockMessageParser)

	event := &domain.AttributionEvent{ID: "evt-1", EventName: "page_view"}
	mockParser.On("Parse", mock.Anything).Return(event, nil)

	stage := NewParserStage(mockConsumer, mockParser, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan types.Message, 1)
	out := make(chan *Envelope, 1)
	go stage.Start(ctx, in, out)

	in <- types.Message{
		MessageId:     aws.String("msg-1"),
		Body:          aws.String(`{"event_name": "page_view"}`),
		ReceiptHandle: aws.String("handle-1"),
	}

	select {
	case envelope := <-out:
		assert.Equal(t, event, envelope.Event)
	case <-time.After(time.Second):
		t.Fatal("expected an envelope on the output channel")
	}

	mockConsumer.AssertNotCalled(t, "DeleteMessage", mock.Anything, mock.Anything)
}

func TestParserStage_MalformedMessageDeleted(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	mockConsumer.On("QueueURL").Return("http://localhost:9324/queue/events")
	mockConsumer.On("DeleteMessage", mock.Anything, mock.MatchedBy(func(input *awssqs.DeleteMessageInput) bool {
		return aws.ToString(input.ReceiptHandle) == "handle-bad"
	})).Return(&awssqs.DeleteMessageOutput{}, nil)

	mockParser := new(MockMessageParser)
	mockParser.On("Parse", mock.Anything).Return(nil, errors.New("invalid json"))

	stage := NewParserStage(mockConsumer, mockParser, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan types.Message, 1)
	out := make(chan *Envelope, 1)
	go stage.Start(ctx, in, out)

	in <- types.Message{
		MessageId:     aws.String("msg-bad"),
		Body:          aws.String(`not json`),
		ReceiptHandle: aws.String("handle-bad"),
	}

	time.Sleep(100 * time.Millisecond)

	mockConsumer.AssertExpectations(t)
	assert.Empty(t, out, "malformed messages never reach the writer")
}

func TestParserStage_AckDeletesMessage(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	mockConsumer.On("QueueURL").Return("http://localhost:9324/queue/events")
	mockConsumer.On("DeleteMessage", mock.Anything, mock.Anything).
		Return(&awssqs.DeleteMessageOutput{}, nil)

	mockParser := new(MockMessageParser)
	mockParser.On("Parse", mock.Anything).
		Return(&domain.AttributionEvent{ID: "evt-1", EventName: "page_view"}, nil)

	stage := NewParserStage(mockConsumer, mockParser, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan types.Message, 1)
	out := make(chan *Envelope, 1)
	go stage.Start(ctx, in, out)

	in <- types.Message{
		MessageId:     aws.String("msg-1"),
		Body:          aws.String(`{"event_name": "page_view"}`),
		ReceiptHandle: aws.String("handle-1"),
	}

	envelope := <-out
	assert.NoError(t, envelope.Ack(ctx))

	mockConsumer.AssertExpectations(t)
}

func TestParserStage_ClosesOutputOnInputClose(t *testing.T) {
	stage := NewParserStage(new(MockQueueConsumer), new(MockMessageParser), zap.NewNop())

	in := make(chan types.Message)
	out := make(chan *Envelope)
	go stage.Start(context.Background(), in, out)

	close(in)

	select {
	case _, ok := <-out:
		assert.False(t, ok, "output channel must close when input closes")
	case <-time.After(time.Second):
		t.Fatal("output channel did not close")
	}
}
