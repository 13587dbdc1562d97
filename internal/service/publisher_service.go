package service

import (
	"context"
	"encoding/json"
	"fmt"

	"course-rag-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPublisherService interface {
	PublishCourseIndex(ctx context.Context, courseTitle string) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (p *publisherService) PublishCourseIndex(ctx context.Context, courseTitle string) error {
	payload, err := json.Marshal(dto.IndexCourseMessage{CourseTitle: courseTitle})
	if err != nil {
		return fmt.Errorf("marshal index message: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := p.pubSub.Publish(p.topicName, msg); err != nil {
		return fmt.Errorf("publish index message: %w", err)
	}
	return nil
}
