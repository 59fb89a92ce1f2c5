package whatsapp

import (
	"net/http"
)

// Enqueuer hands an inbound message off for processing. Enqueue reports
// whether the message was accepted; the webhook is acked either way, since
// Twilio retries on its own schedule.
type Enqueuer interface {
	Enqueue(from, body string) bool
}

type Handler struct {
	queue Enqueuer
}

func NewHandler(queue Enqueuer) *Handler {
	return &Handler{queue: queue}
}

// emptyTwiML tells Twilio not to send an auto-reply; the real answer goes
// out through the Messages API once the job completes.
const emptyTwiML = `<?xml version="1.0" encoding="UTF-8"?><Response></Response>`

// HandleWebhook — inbound message from Twilio (form-encoded).
func (h *Handler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	from := r.PostFormValue("From")
	body := r.PostFormValue("Body")
	if from == "" || body == "" {
		http.Error(w, "missing From or Body", http.StatusBadRequest)
		return
	}

	h.queue.Enqueue(from, body)

	// Ack synchronously; the queue owns completion and failure reporting.
	w.Header().Set("Content-Type", "text/xml")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(emptyTwiML))
}
