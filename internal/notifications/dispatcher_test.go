// internal/notifications/dispatcher_test.go
package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oogway7h/ShopIA-web/internal/common/errors"
	"github.com/oogway7h/ShopIA-web/internal/common/logger"
	"github.com/oogway7h/ShopIA-web/internal/models"
)

type fakePush struct {
	inputs []*sns.PublishInput
	err    error
}

func (f *fakePush) Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error) {
	f.inputs = append(f.inputs, input)
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{}, nil
}

type fakeEmail struct {
	inputs []*ses.SendEmailInput
	err    error
}

func (f *fakeEmail) SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
	f.inputs = append(f.inputs, input)
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{}, nil
}

func newTestDispatcher(t *testing.T, push *fakePush, email *fakeEmail) *Dispatcher {
	t.Helper()
	var p PushSender
	if push != nil {
		p = push
	}
	var e EmailSender
	if email != nil {
		e = email
	}
	d := NewDispatcher(p, e, "arn:aws:sns:us-east-1:000000000000:shopia-events", "no-reply@shopia.example", logger.NewTestLogger(t))
	d.now = func() time.Time { return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) }
	d.newID = func() string { return "n-1" }
	return d
}

func TestSendPush(t *testing.T) {
	push := &fakePush{}
	d := newTestDispatcher(t, push, nil)

	n := &models.Notificacion{UsuarioID: "u-1", Titulo: "Compra confirmada", Mensaje: "detalle"}
	require.NoError(t, d.SendPush(context.Background(), n))

	require.Len(t, push.inputs, 1)
	assert.Equal(t, "Compra confirmada", *push.inputs[0].Subject)
	assert.Contains(t, *push.inputs[0].Message, `"usuario_id":"u-1"`)
	assert.True(t, n.Enviada)
	assert.Equal(t, "n-1", n.ID)
	assert.Equal(t, models.ChannelPush, n.Canal)
}

func TestSendPushFailure(t *testing.T) {
	push := &fakePush{err: assert.AnError}
	d := newTestDispatcher(t, push, nil)

	n := &models.Notificacion{UsuarioID: "u-1", Titulo: "t", Mensaje: "m"}
	err := d.SendPush(context.Background(), n)
	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeNotificationSendFailed, stdErr.Code)
	assert.False(t, n.Enviada)
}

func TestSendEmail(t *testing.T) {
	email := &fakeEmail{}
	d := newTestDispatcher(t, nil, email)

	n := &models.Notificacion{UsuarioID: "u-1", Titulo: "Compra confirmada", Mensaje: "detalle"}
	require.NoError(t, d.SendEmail(context.Background(), n, "ana@example.com"))

	require.Len(t, email.inputs, 1)
	assert.Equal(t, []string{"ana@example.com"}, email.inputs[0].Destination.ToAddresses)
	assert.Equal(t, "no-reply@shopia.example", *email.inputs[0].Source)
	assert.True(t, n.Enviada)
}

func TestSendPushChannelDisabled(t *testing.T) {
	d := newTestDispatcher(t, nil, nil)
	err := d.SendPush(context.Background(), &models.Notificacion{})
	assert.Error(t, err)
}

func TestNotifyVentaPushFailureStillEmails(t *testing.T) {
	push := &fakePush{err: assert.AnError}
	email := &fakeEmail{}
	d := newTestDispatcher(t, push, email)

	venta := models.Venta{ID: "v-1", UsuarioID: "u-1", MontoTotal: 349.90}
	require.NoError(t, d.NotifyVenta(context.Background(), venta, "ana@example.com"))
	assert.Len(t, email.inputs, 1)
}

func TestNotifyVentaWithoutEmailAddress(t *testing.T) {
	push := &fakePush{}
	email := &fakeEmail{}
	d := newTestDispatcher(t, push, email)

	require.NoError(t, d.NotifyVenta(context.Background(), models.Venta{ID: "v-1", UsuarioID: "u-1"}, ""))
	assert.Len(t, push.inputs, 1)
	assert.Empty(t, email.inputs)
}
