package poller

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/mailscope/pkg/mailbox"
	"github.com/umputun/mailscope/pkg/state"
)

//go:generate moq -out mocks/scanner.go -pkg mocks -skip-ensure -fmt goimports . Scanner
//go:generate moq -out mocks/summarizer.go -pkg mocks -skip-ensure -fmt goimports . Summarizer
//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store

// Scanner finds the newest matching mailbox message
type Scanner interface {
	Scan(ctx context.Context) (*mailbox.Message, error)
}

// Summarizer condenses a message body
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Store persists the poll state
type Store interface {
	Load() (state.State, error)
	Accept(uid, from, subject, summary string, published time.Time) (bool, error)
}

// Status describes the terminal outcome of a single poll cycle
type Status string

// poll cycle outcomes, none of them fatal to the process
const (
	StatusAccepted         Status = "accepted"
	StatusAlreadyProcessed Status = "already processed"
	StatusNoNewMessage     Status = "no new message"
)

// Result describes what a poll cycle did
type Result struct {
	Status    Status    `json:"status"`
	UID       string    `json:"uid,omitempty"`
	From      string    `json:"from,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Published time.Time `json:"published,omitempty"`
}

// Poller composes scan, dedup check, summarization and state mutation into
// one unit of work, invoked by the background loop and by the manual trigger
type Poller struct {
	scanner    Scanner
	summarizer Summarizer
	store      Store

	interval     time.Duration
	initialDelay time.Duration
}

// Config holds poller schedule settings
type Config struct {
	Interval     time.Duration
	InitialDelay time.Duration
}

// New creates a new poller instance
func New(scanner Scanner, summarizer Summarizer, store Store, cfg Config) *Poller {
	if cfg.Interval == 0 {
		cfg.Interval = time.Hour
	}
	return &Poller{
		scanner:      scanner,
		summarizer:   summarizer,
		store:        store,
		interval:     cfg.Interval,
		initialDelay: cfg.InitialDelay,
	}
}

// PollOnce runs a single poll cycle: scan for the newest matching message,
// check it against the watermark, summarize and accept it. Scan, extraction
// and state errors surface to the caller, a missing or already-processed
// message is a regular outcome.
func (p *Poller) PollOnce(ctx context.Context) (Result, error) {
	msg, err := p.scanner.Scan(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("scan mailbox: %w", err)
	}
	if msg == nil {
		lgr.Printf("[DEBUG] no matching email found")
		return Result{Status: StatusNoNewMessage}, nil
	}

	// cheap pre-check against the watermark, avoids a pointless
	// summarization call; Accept re-checks under its own lock
	st, err := p.store.Load()
	if err != nil {
		return Result{}, fmt.Errorf("load state: %w", err)
	}
	if st.LastUID == msg.UID {
		lgr.Printf("[DEBUG] email %s already processed", msg.UID)
		return Result{Status: StatusAlreadyProcessed, UID: msg.UID}, nil
	}

	lgr.Printf("[INFO] processing new email from %s: %s", msg.From, msg.Subject)

	summary, err := p.summarizer.Summarize(ctx, msg.Body)
	if err != nil {
		return Result{}, fmt.Errorf("summarize message %s: %w", msg.UID, err)
	}

	accepted, err := p.store.Accept(msg.UID, msg.From, msg.Subject, summary, msg.Date)
	if err != nil {
		return Result{}, fmt.Errorf("accept item %s: %w", msg.UID, err)
	}
	if !accepted {
		lgr.Printf("[DEBUG] email %s lost the dedup race", msg.UID)
		return Result{Status: StatusAlreadyProcessed, UID: msg.UID}, nil
	}

	lgr.Printf("[INFO] added new feed item: %s", msg.Subject)
	return Result{
		Status:    StatusAccepted,
		UID:       msg.UID,
		From:      msg.From,
		Subject:   msg.Subject,
		Published: msg.Date,
	}, nil
}

// Run polls on a fixed interval after an initial grace delay until the
// context is cancelled. Iteration errors are logged and the loop keeps its
// schedule, nothing here is fatal to the process.
func (p *Poller) Run(ctx context.Context) {
	lgr.Printf("[INFO] poller started, interval %v", p.interval)

	select {
	case <-ctx.Done():
		lgr.Printf("[INFO] poller stopped")
		return
	case <-time.After(p.initialDelay):
	}

	p.pollAndLog(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			lgr.Printf("[INFO] poller stopped")
			return
		case <-ticker.C:
			p.pollAndLog(ctx)
		}
	}
}

func (p *Poller) pollAndLog(ctx context.Context) {
	res, err := p.PollOnce(ctx)
	if err != nil {
		lgr.Printf("[WARN] poll error: %v", err)
		return
	}
	lgr.Printf("[DEBUG] poll completed: %s", res.Status)
}
