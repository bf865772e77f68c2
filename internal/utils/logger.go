package utils

import (
	"log"
	"strings"
)

// LogEvent prints one standardized log line per domain event. Module is
// the owning area (payment, settlement, orders, pricing, receipts) and
// action the step within it (initiate, verify, callback, completed, ...).
// Message should be a short key=value summary, never a raw payload.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	if req == "" {
		req = "-"
	}
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, req, message)
}
