package facades

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

func newTestSMTPFacade(t *testing.T, send SendFunc) *EmailSMTPFacade {
	t.Helper()
	f, err := NewEmailSMTPFacade("smtp.example.com", 587, "user", "pass", "noreply@example.com")
	require.NoError(t, err)
	f.send = send
	return f
}

func render(t *testing.T, msg *mail.Msg) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func TestEmailSMTPFacade_Send(t *testing.T) {
	var got *mail.Msg
	f := newTestSMTPFacade(t, func(_ context.Context, msg *mail.Msg) error {
		got = msg
		return nil
	})

	err := f.Send(context.Background(), "a@x.com", "Email Verification", "Your verification code is: abc123")
	require.NoError(t, err)
	require.NotNil(t, got)

	raw := render(t, got)
	assert.Regexp(t, `(?m)^From: <noreply@example.com>\r$`, raw)
	assert.Regexp(t, `(?m)^To: <a@x.com>\r$`, raw)
	assert.Regexp(t, `(?m)^Subject: Email Verification\r$`, raw)
	assert.Regexp(t, `(?m)^Date: .+\r$`, raw)
	assert.Regexp(t, `(?m)^Message-ID: <.+@.+>\r$`, raw)
	assert.Contains(t, raw, "Your verification code is: abc123")
}

func TestEmailSMTPFacade_NonASCIISubjectIsEncoded(t *testing.T) {
	var got *mail.Msg
	f := newTestSMTPFacade(t, func(_ context.Context, msg *mail.Msg) error {
		got = msg
		return nil
	})

	require.NoError(t, f.Send(context.Background(), "a@x.com", "Код подтверждения", "abc123"))

	raw := render(t, got)
	assert.Regexp(t, `(?m)^Subject: =\?UTF-8\?`, raw)
	assert.NotContains(t, raw, "Код подтверждения")
}

func TestEmailSMTPFacade_PassesContextToSender(t *testing.T) {
	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "v")

	f := newTestSMTPFacade(t, func(got context.Context, _ *mail.Msg) error {
		assert.Equal(t, "v", got.Value(ctxKey{}))
		return nil
	})

	assert.NoError(t, f.Send(ctx, "a@x.com", "s", "b"))
}

func TestEmailSMTPFacade_SendError(t *testing.T) {
	f := newTestSMTPFacade(t, func(context.Context, *mail.Msg) error {
		return errors.New("connection refused")
	})

	err := f.Send(context.Background(), "a@x.com", "s", "b")
	assert.ErrorContains(t, err, "connection refused")
}

func TestEmailSMTPFacade_InvalidRecipient(t *testing.T) {
	called := false
	f := newTestSMTPFacade(t, func(context.Context, *mail.Msg) error {
		called = true
		return nil
	})

	err := f.Send(context.Background(), "not an address", "s", "b")
	assert.ErrorContains(t, err, "smtp message")
	assert.False(t, called)
}

func TestEmailSMTPFacade_CanceledContext(t *testing.T) {
	called := false
	f := newTestSMTPFacade(t, func(context.Context, *mail.Msg) error {
		called = true
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.Send(ctx, "a@x.com", "s", "b")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestNewEmailSMTPFacade_InvalidConfig(t *testing.T) {
	_, err := NewEmailSMTPFacade("", 25, "", "", "noreply@example.com")
	assert.Error(t, err)

	_, err = NewEmailSMTPFacade("localhost", 0, "", "", "noreply@example.com")
	assert.Error(t, err)

	f, err := NewEmailSMTPFacade("localhost", 25, "", "", "noreply@example.com")
	require.NoError(t, err)
	assert.NotNil(t, f.send)
}
