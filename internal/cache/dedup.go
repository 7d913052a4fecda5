package cache

import (
	"strings"
	"time"
)

// WebhookDedup suppresses duplicate webhook deliveries. Zoho redelivers on
// slow responses; a processed document number is remembered for the
// configured TTL and later deliveries of the same document are dropped.
type WebhookDedup struct {
	seen Cache[string, struct{}]
	ttl  time.Duration
}

// NewWebhookDedup builds a dedup guard with the given retention window.
func NewWebhookDedup(ttl time.Duration) *WebhookDedup {
	return &WebhookDedup{
		seen: NewTTLCache[string, struct{}](),
		ttl:  ttl,
	}
}

// Seen reports whether the document was already processed within the TTL.
func (d *WebhookDedup) Seen(tin, docType, number string) bool {
	_, ok := d.seen.Get(dedupKey(tin, docType, number))
	return ok
}

// Mark records the document as processed.
func (d *WebhookDedup) Mark(tin, docType, number string) {
	d.seen.Set(dedupKey(tin, docType, number), struct{}{}, d.ttl)
}

// Forget clears the document, allowing an immediate retry after a failure.
func (d *WebhookDedup) Forget(tin, docType, number string) {
	d.seen.Delete(dedupKey(tin, docType, number))
}

func dedupKey(tin, docType, number string) string {
	return strings.Join([]string{tin, docType, number}, "|")
}
