package whatsapp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type recordedSend struct {
	to   string
	from string
	body string
}

func newTwilioTestServer(t *testing.T, sends *[]recordedSend, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/2010-04-01/Accounts/AC123/Messages.json" {
			t.Errorf("path = %q", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "AC123" || pass != "secret" {
			t.Errorf("basic auth = %q/%q", user, pass)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		*sends = append(*sends, recordedSend{
			to:   r.PostFormValue("To"),
			from: r.PostFormValue("From"),
			body: r.PostFormValue("Body"),
		})
		w.WriteHeader(status)
		w.Write([]byte(`{"sid":"SM1"}`))
	}))
}

func TestTwilioSendAddsWhatsAppPrefix(t *testing.T) {
	var sends []recordedSend
	srv := newTwilioTestServer(t, &sends, http.StatusCreated)
	defer srv.Close()

	s := NewTwilioSender("AC123", "secret", "+14155238886", 0).WithBaseURL(srv.URL)
	if err := s.Send(context.Background(), "+919876543210", "hello"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if len(sends) != 1 {
		t.Fatalf("got %d sends, want 1", len(sends))
	}
	if sends[0].to != "whatsapp:+919876543210" {
		t.Errorf("to = %q", sends[0].to)
	}
	if sends[0].from != "whatsapp:+14155238886" {
		t.Errorf("from = %q", sends[0].from)
	}
	if sends[0].body != "hello" {
		t.Errorf("body = %q", sends[0].body)
	}
}

func TestTwilioSendSurfacesAPIError(t *testing.T) {
	var sends []recordedSend
	srv := newTwilioTestServer(t, &sends, http.StatusUnauthorized)
	defer srv.Close()

	s := NewTwilioSender("AC123", "secret", "+14155238886", 0).WithBaseURL(srv.URL)
	if err := s.Send(context.Background(), "+919876543210", "hello"); err == nil {
		t.Fatal("want error on non-2xx status")
	}
}

func TestTwilioSendChunkedPreservesOrder(t *testing.T) {
	var sends []recordedSend
	srv := newTwilioTestServer(t, &sends, http.StatusCreated)
	defer srv.Close()

	s := NewTwilioSender("AC123", "secret", "+14155238886", time.Millisecond).WithBaseURL(srv.URL)
	chunks := []string{"(1/3) first", "(2/3) second", "(3/3) third"}
	if err := s.SendChunked(context.Background(), "+919876543210", chunks); err != nil {
		t.Fatalf("SendChunked: %v", err)
	}

	if len(sends) != 3 {
		t.Fatalf("got %d sends, want 3", len(sends))
	}
	for i, chunk := range chunks {
		if sends[i].body != chunk {
			t.Errorf("send %d = %q, want %q (order must be preserved)", i, sends[i].body, chunk)
		}
	}
}

func TestTwilioSendChunkedStopsOnFailure(t *testing.T) {
	var sends []recordedSend
	srv := newTwilioTestServer(t, &sends, http.StatusServiceUnavailable)
	defer srv.Close()

	s := NewTwilioSender("AC123", "secret", "+14155238886", 0).WithBaseURL(srv.URL)
	err := s.SendChunked(context.Background(), "+919876543210", []string{"one", "two"})
	if err == nil {
		t.Fatal("want error")
	}
	if len(sends) != 1 {
		t.Errorf("got %d sends, want 1 (abort after first failure)", len(sends))
	}
}
