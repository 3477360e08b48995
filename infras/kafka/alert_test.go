package kafka_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"garagebook/config"
	"garagebook/infras/kafka"
	kafkaMocks "garagebook/infras/kafka/mocks"
	"garagebook/infras/notifier"
)

func TestAlertPublisher_Notify(t *testing.T) {
	tests := []struct {
		name      string
		topic     string
		nilClient bool
		setupMock func(client *kafkaMocks.MockClient)
		wantErr   error
		anyErr    bool
	}{
		{
			name:      "no topic",
			setupMock: func(_ *kafkaMocks.MockClient) {},
			wantErr:   notifier.ErrNotConfigured,
		},
		{
			name:      "no client",
			topic:     "garage.alerts",
			nilClient: true,
			setupMock: func(_ *kafkaMocks.MockClient) {},
			wantErr:   notifier.ErrNotConfigured,
		},
		{
			name:  "no brokers",
			topic: "garage.alerts",
			setupMock: func(client *kafkaMocks.MockClient) {
				client.EXPECT().Enabled().Return(false)
			},
			wantErr: notifier.ErrNotConfigured,
		},
		{
			name:  "published",
			topic: "garage.alerts",
			setupMock: func(client *kafkaMocks.MockClient) {
				client.EXPECT().Enabled().Return(true)
				client.EXPECT().
					SendMessages(gomock.Any(), "garage.alerts", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
						require.Len(t, messages, 1)
						assert.Equal(t, "alert", messages[0].Key)

						event, ok := messages[0].Value.(kafka.AlertEvent)
						require.True(t, ok)
						assert.Equal(t, "1 conflict", event.Subject)
						assert.Equal(t, "details", event.Body)

						return nil
					})
			},
		},
		{
			name:  "broker error",
			topic: "garage.alerts",
			setupMock: func(client *kafkaMocks.MockClient) {
				client.EXPECT().Enabled().Return(true)
				client.EXPECT().SendMessages(gomock.Any(), "garage.alerts", gomock.Any()).Return(errors.New("leader not available"))
			},
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := kafkaMocks.NewMockClient(ctrl)
			tt.setupMock(client)

			cfg := &config.Config{}
			cfg.Alert.Kafka.Topic = tt.topic

			var publisher *kafka.AlertPublisher
			if tt.nilClient {
				publisher = kafka.NewAlertPublisher(nil, cfg)
			} else {
				publisher = kafka.NewAlertPublisher(client, cfg)
			}

			err := publisher.Notify(context.Background(), "1 conflict", "details")

			assert.Equal(t, "kafka", publisher.Name())

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				assert.Error(t, err)
				assert.NotErrorIs(t, err, notifier.ErrNotConfigured)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestMessage_ToKafkaMessage(t *testing.T) {
	message := kafka.Message{Key: "alert", Value: kafka.AlertEvent{Subject: "s", Body: "b"}}

	kafkaMessage, err := message.ToKafkaMessage()
	require.NoError(t, err)

	assert.Equal(t, []byte("alert"), kafkaMessage.Key)
	assert.Contains(t, string(kafkaMessage.Value), `"subject":"s"`)

	_, err = (&kafka.Message{Value: make(chan int)}).ToKafkaMessage()
	assert.Error(t, err)
}

func TestClient_DisabledWithoutBrokers(t *testing.T) {
	client := kafka.New(&config.Config{})

	assert.False(t, client.Enabled())
}
