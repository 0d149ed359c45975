package kafka

import (
	"context"
	"testing"

	"github.com/Shopify/sarama"
	"github.com/Shopify/sarama/mocks"
	"github.com/questx-lab/rewards/pkg/pubsub"
	"github.com/stretchr/testify/require"
)

func TestPublisher_Publish(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		require.Equal(t, `{"type":"badge_earned"}`, string(val))
		return nil
	})

	p := &publisher{clientID: "test", producer: producer}
	err := p.Publish(context.Background(), "gamification.rewards", &pubsub.Pack{
		Key: []byte("user1"),
		Msg: []byte(`{"type":"badge_earned"}`),
	})
	require.NoError(t, err)

	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)
	err = p.Publish(context.Background(), "gamification.rewards", &pubsub.Pack{Msg: []byte("x")})
	require.ErrorIs(t, err, sarama.ErrOutOfBrokers)

	require.NoError(t, p.Stop(context.Background()))
}

func TestSplitAddrs(t *testing.T) {
	require.Equal(t, []string{"k1:9092", "k2:9092"}, SplitAddrs(" k1:9092, ,k2:9092"))
	require.Empty(t, SplitAddrs(""))
}
