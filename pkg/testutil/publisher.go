package testutil

import (
	"context"
	"sync"

	"github.com/questx-lab/rewards/pkg/errorx"
	"github.com/questx-lab/rewards/pkg/pubsub"
)

type MockPublisher struct {
	PublishFunc func(context.Context, string, *pubsub.Pack) error
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, pack)
	}

	return errorx.New(errorx.NotImplemented, "Not implemented")
}

// RecordPublisher stores every published pack.
type RecordPublisher struct {
	mutex sync.Mutex
	Packs map[string][]*pubsub.Pack
}

func NewRecordPublisher() *RecordPublisher {
	return &RecordPublisher{Packs: map[string][]*pubsub.Pack{}}
}

func (p *RecordPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.Packs[topic] = append(p.Packs[topic], pack)
	return nil
}

func (p *RecordPublisher) Count(topic string) int {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return len(p.Packs[topic])
}
