package email

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"gopkg.in/gomail.v2"

	"hrportal/internal/platform/config"
)

type recordingDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *recordingDialer) DialAndSend(m ...*gomail.Message) error {
	d.sent = append(d.sent, m...)
	return d.err
}

func TestNewReturnsNoopWhenDisabled(t *testing.T) {
	mailer := New(config.Email{Enabled: false, Host: "smtp.example.com"})
	if _, ok := mailer.(noopMailer); !ok {
		t.Fatalf("expected noop mailer, got %T", mailer)
	}
	mailer = New(config.Email{Enabled: true})
	if _, ok := mailer.(noopMailer); !ok {
		t.Fatalf("expected noop mailer without host, got %T", mailer)
	}
}

func TestSendBuildsMessage(t *testing.T) {
	d := &recordingDialer{}
	m := &smtpMailer{dialer: d}

	if err := m.Send(context.Background(), "hr@company.com", "john@company.com", "Leave approved", "Enjoy"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(d.sent) != 1 {
		t.Fatalf("expected one message, got %d", len(d.sent))
	}
	if got := d.sent[0].GetHeader("To"); len(got) != 1 || got[0] != "john@company.com" {
		t.Fatalf("unexpected To header %v", got)
	}

	var buf bytes.Buffer
	if _, err := d.sent[0].WriteTo(&buf); err != nil {
		t.Fatalf("write message: %v", err)
	}
	if !strings.Contains(buf.String(), "Subject: Leave approved") {
		t.Fatalf("subject missing:\n%s", buf.String())
	}
}

func TestSendSkipsEmptyRecipientAndWrapsErrors(t *testing.T) {
	d := &recordingDialer{err: errors.New("connection refused")}
	m := &smtpMailer{dialer: d}

	if err := m.Send(context.Background(), "a", " ", "s", "b"); err != nil {
		t.Fatalf("expected empty recipient to be skipped, got %v", err)
	}
	if len(d.sent) != 0 {
		t.Fatal("nothing should be dialed for empty recipient")
	}
	if err := m.Send(context.Background(), "a", "b@company.com", "s", "b"); err == nil || !strings.Contains(err.Error(), "send email") {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
