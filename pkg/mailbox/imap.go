package mailbox

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"sort"
	"strconv"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"

	"github.com/umputun/mailscope/pkg/config"
)

// IMAPScanner scans a mailbox over IMAP/IMAPS. Each Scan call opens and
// releases its own session, no connection is held between polls.
type IMAPScanner struct {
	mail   config.MailConfig
	filter config.FilterConfig
}

// NewIMAPScanner creates a new IMAP scanner
func NewIMAPScanner(mail config.MailConfig, filter config.FilterConfig) *IMAPScanner {
	return &IMAPScanner{mail: mail, filter: filter}
}

// Scan fetches the newest messages up to the configured scan limit and
// returns the first one matching the sender filter, newest first.
// Returns (nil, nil) when nothing in the scan window matches.
func (s *IMAPScanner) Scan(ctx context.Context) (*Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	addr := net.JoinHostPort(s.mail.Host, strconv.Itoa(s.mail.Port))

	var client *imapclient.Client
	var err error
	if s.mail.TLS {
		client, err = imapclient.DialTLS(addr, &imapclient.Options{
			TLSConfig: &tls.Config{ServerName: s.mail.Host},
		})
	} else {
		client, err = imapclient.DialInsecure(addr, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("imap connect %s: %w", addr, err)
	}
	defer client.Close()

	if err := client.Login(s.mail.User, s.mail.Password).Wait(); err != nil {
		return nil, fmt.Errorf("imap login %s: %w", s.mail.User, err)
	}
	defer client.Logout()

	sel, err := client.Select(s.mail.Mailbox, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("imap select %s: %w", s.mail.Mailbox, err)
	}

	total := sel.NumMessages
	if total == 0 {
		return nil, nil
	}

	// fetch only the newest scan_limit messages
	first := uint32(1)
	if limit := uint32(s.filter.ScanLimit); total > limit { //nolint:gosec // scan limit is a small positive config value
		first = total - limit + 1
	}
	var seqSet imap.SeqSet
	seqSet.AddRange(first, total)

	fetchOptions := &imap.FetchOptions{
		UID:      true,
		Envelope: true,
		BodySection: []*imap.FetchItemBodySection{
			{Peek: true},
		},
	}

	buffers, err := client.Fetch(seqSet, fetchOptions).Collect()
	if err != nil {
		return nil, fmt.Errorf("imap fetch: %w", err)
	}

	// newest first
	sort.Slice(buffers, func(i, j int) bool { return buffers[i].SeqNum > buffers[j].SeqNum })

	bodySection := &imap.FetchItemBodySection{Peek: true}
	for _, buf := range buffers {
		if buf.Envelope == nil || len(buf.Envelope.From) == 0 {
			continue
		}
		from := buf.Envelope.From[0].Addr()
		if !matchSender(from, s.filter.Sender, s.filter.Match) {
			continue
		}

		raw := buf.FindBodySection(bodySection)

		return &Message{
			UID:     strconv.FormatUint(uint64(buf.UID), 10),
			From:    from,
			Subject: buf.Envelope.Subject,
			Body:    messageBody(bytes.NewReader(raw)),
			Date:    normalizeDate(buf.Envelope.Date),
		}, nil
	}

	return nil, nil
}
