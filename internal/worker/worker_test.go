package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/momo-deepdive/backend/pkg/queue"
)

type recordingSender struct {
	to, subject, body string
	err               error
}

func (r *recordingSender) Send(to, subject, body string) error {
	r.to, r.subject, r.body = to, subject, body
	return r.err
}

func emailJob(t *testing.T, payload queue.EmailPayload) *queue.Job {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	return &queue.Job{ID: "job-1", Type: payload.EmailType, Payload: raw}
}

func TestProcessDeliversEmail(t *testing.T) {
	sender := &recordingSender{}
	p := NewEmailProcessor(sender, nil, nil)

	job := emailJob(t, queue.EmailPayload{
		EmailType:      queue.EmailMagicLink,
		RecipientEmail: "guest@example.com",
		Subject:        "Dein Login-Link",
		BodyText:       "https://example.com/?signin=abc",
	})
	if err := p.Process(context.Background(), job); err != nil {
		t.Fatal(err)
	}
	if sender.to != "guest@example.com" || sender.subject != "Dein Login-Link" {
		t.Errorf("sent to=%q subject=%q", sender.to, sender.subject)
	}
}

func TestProcessRejectsEmptyRecipient(t *testing.T) {
	p := NewEmailProcessor(&recordingSender{}, nil, nil)
	job := emailJob(t, queue.EmailPayload{EmailType: queue.EmailConfirmation})
	if err := p.Process(context.Background(), job); err == nil {
		t.Error("empty recipient accepted")
	}
}

func TestProcessPropagatesSendErrors(t *testing.T) {
	sendErr := errors.New("relay refused")
	p := NewEmailProcessor(&recordingSender{err: sendErr}, nil, nil)
	job := emailJob(t, queue.EmailPayload{EmailType: queue.EmailMagicLink, RecipientEmail: "guest@example.com"})
	if err := p.Process(context.Background(), job); !errors.Is(err, sendErr) {
		t.Errorf("err = %v, want %v", err, sendErr)
	}
}
