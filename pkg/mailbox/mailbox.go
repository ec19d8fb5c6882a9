package mailbox

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/umputun/mailscope/pkg/config"
)

// Message is a mailbox message matched by the sender filter
type Message struct {
	UID     string    // unique identifier within the mailbox
	From    string    // sender address as reported by the server
	Subject string    // message subject, may be empty
	Body    string    // normalized plain-text body
	Date    time.Time // message date in UTC
}

// Scanner scans the newest messages of a remote mailbox and returns the first
// one matching the configured sender filter. A nil message with a nil error
// means no message in the scan window matched.
type Scanner interface {
	Scan(ctx context.Context) (*Message, error)
}

// New creates a scanner for the configured mail retrieval protocol
func New(mail config.MailConfig, filter config.FilterConfig) (Scanner, error) {
	switch mail.Protocol {
	case "imap":
		return NewIMAPScanner(mail, filter), nil
	case "pop3":
		return NewPOP3Scanner(mail, filter), nil
	default:
		return nil, fmt.Errorf("unsupported protocol: %s", mail.Protocol)
	}
}

// matchSender compares a message sender against the filter address,
// case-insensitive and trimmed, using exact or substring mode
func matchSender(from, sender, mode string) bool {
	fromAddr := strings.ToLower(strings.TrimSpace(from))
	senderQ := strings.ToLower(strings.TrimSpace(sender))

	if mode == "substring" {
		return strings.Contains(fromAddr, senderQ)
	}
	return fromAddr == senderQ
}

// normalizeDate converts a message date to UTC, assuming UTC when the source
// carried no usable zone information
func normalizeDate(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return t.UTC()
}
