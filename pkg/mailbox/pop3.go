package mailbox

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/emersion/go-message/mail"
	pop3client "github.com/knadh/go-pop3"

	"github.com/umputun/mailscope/pkg/config"
)

// POP3Scanner scans a mailbox over POP3/POP3S. Like the IMAP scanner it
// opens a fresh session per Scan call.
type POP3Scanner struct {
	mail   config.MailConfig
	filter config.FilterConfig
}

// NewPOP3Scanner creates a new POP3 scanner
func NewPOP3Scanner(mail config.MailConfig, filter config.FilterConfig) *POP3Scanner {
	return &POP3Scanner{mail: mail, filter: filter}
}

// Scan retrieves the newest messages up to the configured scan limit and
// returns the first one matching the sender filter, newest first.
// Returns (nil, nil) when nothing in the scan window matches.
func (s *POP3Scanner) Scan(ctx context.Context) (*Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	addr := net.JoinHostPort(s.mail.Host, strconv.Itoa(s.mail.Port))

	client := pop3client.New(pop3client.Opt{
		Host:       s.mail.Host,
		Port:       s.mail.Port,
		TLSEnabled: s.mail.TLS,
	})
	conn, err := client.NewConn()
	if err != nil {
		return nil, fmt.Errorf("pop3 connect %s: %w", addr, err)
	}
	defer conn.Quit()

	if err := conn.Auth(s.mail.User, s.mail.Password); err != nil {
		return nil, fmt.Errorf("pop3 auth %s: %w", s.mail.User, err)
	}

	msgs, err := conn.List(0)
	if err != nil {
		return nil, fmt.Errorf("pop3 list: %w", err)
	}

	// highest message number is the newest, walk backwards
	scanned := 0
	for i := len(msgs) - 1; i >= 0 && scanned < s.filter.ScanLimit; i-- {
		scanned++

		rawBuf, err := conn.RetrRaw(msgs[i].ID)
		if err != nil {
			return nil, fmt.Errorf("pop3 retrieve %d: %w", msgs[i].ID, err)
		}
		raw := rawBuf.Bytes()

		header, err := parseHeader(raw)
		if err != nil {
			continue // unparseable message can't be matched by sender
		}
		if !matchSender(header.from, s.filter.Sender, s.filter.Match) {
			continue
		}

		uid := msgs[i].UID
		if uid == "" {
			uid = header.messageID
		}
		if uid == "" {
			uid = strconv.Itoa(msgs[i].ID)
		}

		return &Message{
			UID:     uid,
			From:    header.from,
			Subject: header.subject,
			Body:    messageBody(bytes.NewReader(raw)),
			Date:    normalizeDate(header.date),
		}, nil
	}

	return nil, nil
}

type msgHeader struct {
	from      string
	subject   string
	messageID string
	date      time.Time
}

// parseHeader extracts the addressing headers from raw message bytes
func parseHeader(raw []byte) (msgHeader, error) {
	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		return msgHeader{}, fmt.Errorf("parse message: %w", err)
	}
	defer mr.Close()

	var h msgHeader
	if addrs, err := mr.Header.AddressList("From"); err == nil && len(addrs) > 0 {
		h.from = addrs[0].Address
	}
	if subject, err := mr.Header.Subject(); err == nil {
		h.subject = subject
	}
	h.messageID = mr.Header.Get("Message-ID")
	if date, err := mr.Header.Date(); err == nil {
		h.date = date
	}
	return h, nil
}
