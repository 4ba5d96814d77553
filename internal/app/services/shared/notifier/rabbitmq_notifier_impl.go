package notifier

import (
	"context"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type rabbitMQNotifier struct {
	Connection *amqp091.Connection
	QueueName  string
	Log        *zap.Logger
}

func NewRabbitMQNotifier(connection *amqp091.Connection, queueName string, logger *zap.Logger) contracts.CompletionNotifier {
	return &rabbitMQNotifier{
		Connection: connection,
		QueueName:  queueName,
		Log:        logger,
	}
}

func (n *rabbitMQNotifier) PublishFormCompleted(ctx context.Context, event *models.FormCompletedEvent) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	n.Log.Info("rabbitMQNotifier.PublishFormCompleted called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, event.SessionID),
		zap.String(constvars.LoggingQueueKey, n.QueueName),
	)

	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	channel, err := n.Connection.Channel()
	if err != nil {
		return exceptions.ErrRabbitMQPublish(err, n.QueueName)
	}
	defer channel.Close()

	_, err = channel.QueueDeclare(n.QueueName, true, false, false, false, nil)
	if err != nil {
		return exceptions.ErrRabbitMQPublish(err, n.QueueName)
	}

	err = channel.PublishWithContext(ctx, "", n.QueueName, false, false, amqp091.Publishing{
		ContentType: constvars.MIMEApplicationJSON,
		Body:        body,
	})
	if err != nil {
		return exceptions.ErrRabbitMQPublish(err, n.QueueName)
	}

	return nil
}
