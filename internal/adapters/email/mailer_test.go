package email

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSESMailer_Send(t *testing.T) {
	client := &fakeSES{}
	m := newSESMailer(client, "bookings@example.com", "Bookings", testLogger())

	err := m.Send(context.Background(), "owner@example.com", "Hello", "<p>hi</p>", "hi")
	require.NoError(t, err)

	in := client.input
	require.NotNil(t, in)
	assert.Equal(t, "Bookings <bookings@example.com>", aws.ToString(in.Source))
	assert.Equal(t, []string{"owner@example.com"}, in.Destination.ToAddresses)
	assert.Equal(t, "Hello", aws.ToString(in.Message.Subject.Data))
	assert.Equal(t, "<p>hi</p>", aws.ToString(in.Message.Body.Html.Data))
	assert.Equal(t, "hi", aws.ToString(in.Message.Body.Text.Data))
}

func TestSESMailer_SendTextOnly(t *testing.T) {
	client := &fakeSES{}
	m := newSESMailer(client, "bookings@example.com", "", testLogger())

	require.NoError(t, m.Send(context.Background(), "owner@example.com", "Hello", "", "hi"))
	assert.Equal(t, "bookings@example.com", aws.ToString(client.input.Source))
	assert.Nil(t, client.input.Message.Body.Html)
	assert.NotNil(t, client.input.Message.Body.Text)
}

func TestSESMailer_SendError(t *testing.T) {
	client := &fakeSES{err: errors.New("throttled")}
	m := newSESMailer(client, "bookings@example.com", "", testLogger())

	err := m.Send(context.Background(), "owner@example.com", "Hello", "", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}

func TestNewMailer(t *testing.T) {
	tests := []struct {
		name     string
		config   MailerConfig
		wantNoop bool
		wantErr  bool
	}{
		{"noop", MailerConfig{Provider: ProviderNoop}, true, false},
		{"unknown falls back to noop", MailerConfig{Provider: "carrier-pigeon"}, true, false},
		{"ses", MailerConfig{Provider: ProviderSES, FromAddress: "a@example.com", SES: SESConfig{Region: "eu-west-1"}}, false, false},
		{"ses without from", MailerConfig{Provider: ProviderSES}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMailer(tt.config, testLogger())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			_, isNoop := m.(*noopMailer)
			assert.Equal(t, tt.wantNoop, isNoop)
		})
	}
}
