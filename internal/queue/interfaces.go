package queue

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/dto"
)

// EventPublisher defines the interface for publishing tracking events to a
// queue
type EventPublisher interface {
	PublishEvent(ctx context.Context, event *dto.TrackEventRequest, eventID string) error
}

// QueueConsumer defines the interface for consuming messages from a queue
type QueueConsumer interface {
	ReceiveMessages(ctx context.Context, input *sqs.ReceiveMessageInput) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, input *sqs.DeleteMessageInput) (*sqs.DeleteMessageOutput, error)
	QueueURL() string
}
