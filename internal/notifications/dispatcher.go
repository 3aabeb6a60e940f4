// internal/notifications/dispatcher.go
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/google/uuid"

	"github.com/oogway7h/ShopIA-web/internal/common/errors"
	"github.com/oogway7h/ShopIA-web/internal/common/logger"
	"github.com/oogway7h/ShopIA-web/internal/common/metrics"
	"github.com/oogway7h/ShopIA-web/internal/models"
)

// PushSender is the SNS surface the dispatcher needs.
type PushSender interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

// EmailSender is the SES surface the dispatcher needs.
type EmailSender interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

// Dispatcher sends user notifications over SNS (push) and SES (email).
// Either sender may be nil when that channel is disabled.
type Dispatcher struct {
	push     PushSender
	email    EmailSender
	topicARN string
	from     string
	log      logger.Logger

	now   func() time.Time
	newID func() string
}

func NewDispatcher(push PushSender, email EmailSender, topicARN, from string, log logger.Logger) *Dispatcher {
	return &Dispatcher{
		push:     push,
		email:    email,
		topicARN: topicARN,
		from:     from,
		log:      log,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// SendPush publishes the notification to the configured topic.
func (d *Dispatcher) SendPush(ctx context.Context, n *models.Notificacion) error {
	if d.push == nil {
		return errors.NewNotificationSendFailedError(models.ChannelPush, fmt.Errorf("push channel disabled"))
	}
	d.stamp(n, models.ChannelPush)

	payload, err := json.Marshal(map[string]string{
		"id":         n.ID,
		"usuario_id": n.UsuarioID,
		"titulo":     n.Titulo,
		"mensaje":    n.Mensaje,
	})
	if err != nil {
		return errors.NewNotificationSendFailedError(models.ChannelPush, err)
	}

	_, err = d.push.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(d.topicARN),
		Subject:  aws.String(n.Titulo),
		Message:  aws.String(string(payload)),
	})
	if err != nil {
		metrics.NotificationsSent.WithLabelValues(models.ChannelPush, "failure").Inc()
		return errors.NewNotificationSendFailedError(models.ChannelPush, err)
	}

	n.Enviada = true
	metrics.NotificationsSent.WithLabelValues(models.ChannelPush, "success").Inc()
	return nil
}

// SendEmail delivers the notification to the given address.
func (d *Dispatcher) SendEmail(ctx context.Context, n *models.Notificacion, to string) error {
	if d.email == nil {
		return errors.NewNotificationSendFailedError(models.ChannelEmail, fmt.Errorf("email channel disabled"))
	}
	d.stamp(n, models.ChannelEmail)

	_, err := d.email.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(d.from),
		Destination: &sestypes.Destination{
			ToAddresses: []string{to},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(n.Titulo)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(n.Mensaje)},
			},
		},
	})
	if err != nil {
		metrics.NotificationsSent.WithLabelValues(models.ChannelEmail, "failure").Inc()
		return errors.NewNotificationSendFailedError(models.ChannelEmail, err)
	}

	n.Enviada = true
	metrics.NotificationsSent.WithLabelValues(models.ChannelEmail, "success").Inc()
	return nil
}

// NotifyVenta fans out the order-confirmed notification. Push is best
// effort; an email failure is returned.
func (d *Dispatcher) NotifyVenta(ctx context.Context, venta models.Venta, email string) error {
	n := &models.Notificacion{
		UsuarioID: venta.UsuarioID,
		Titulo:    "Compra confirmada",
		Mensaje:   fmt.Sprintf("Tu compra %s por S/ %.2f fue registrada.", venta.ID, venta.MontoTotal),
	}

	if d.push != nil {
		if err := d.SendPush(ctx, n); err != nil {
			d.log.WithError(err).Warn("push notification failed", map[string]interface{}{
				"venta_id": venta.ID,
			})
		}
	}
	if d.email != nil && email != "" {
		emailNotif := &models.Notificacion{
			UsuarioID: venta.UsuarioID,
			Titulo:    n.Titulo,
			Mensaje:   n.Mensaje,
		}
		return d.SendEmail(ctx, emailNotif, email)
	}
	return nil
}

func (d *Dispatcher) stamp(n *models.Notificacion, canal string) {
	if n.ID == "" {
		n.ID = d.newID()
	}
	n.Canal = canal
	if n.CreatedAt.IsZero() {
		n.CreatedAt = d.now()
	}
}
