package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"mercator-hq/themisto/pkg/pep"
)

// RecorderConfig contains configuration for the enforcement recorder.
type RecorderConfig struct {
	// Enabled enables audit recording.
	Enabled bool

	// AsyncBuffer is the size of the async write channel buffer.
	// Default: 1000
	AsyncBuffer int

	// WriteTimeout is the timeout for writing a record to storage.
	// Default: 5 seconds
	WriteTimeout time.Duration
}

// DefaultRecorderConfig returns the default recorder configuration.
func DefaultRecorderConfig() *RecorderConfig {
	return &RecorderConfig{
		Enabled:      true,
		AsyncBuffer:  1000,
		WriteTimeout: 5 * time.Second,
	}
}

// Recorder turns enforcement events into persisted records. Writes are
// asynchronous through a buffered channel; when the buffer is full the
// event is dropped and counted rather than blocking the enforcement path.
//
// Recorder implements pep.AuditSink.
type Recorder struct {
	storage    Storage
	config     *RecorderConfig
	recordChan chan *Record
	wg         sync.WaitGroup
	done       chan struct{}
	logger     *slog.Logger

	mu      sync.Mutex
	dropped int64
	closed  bool
}

// NewRecorder creates a recorder over the provided storage backend and
// starts its background writer.
func NewRecorder(storage Storage, config *RecorderConfig, logger *slog.Logger) *Recorder {
	if config == nil {
		config = DefaultRecorderConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	r := &Recorder{
		storage:    storage,
		config:     config,
		recordChan: make(chan *Record, config.AsyncBuffer),
		done:       make(chan struct{}),
		logger:     logger.With("component", "audit.recorder"),
	}

	r.wg.Add(1)
	go r.worker()

	r.logger.Info("audit recorder initialized",
		"async_buffer", config.AsyncBuffer,
		"write_timeout", config.WriteTimeout,
	)

	return r
}

// RecordEnforcement implements pep.AuditSink. It enqueues the event for
// async writing and returns immediately.
func (r *Recorder) RecordEnforcement(ev pep.AuditEvent) {
	if !r.config.Enabled {
		return
	}

	record := &Record{
		ID:             uuid.New().String(),
		RecordedAt:     ev.Time,
		CorrelationID:  ev.CorrelationID,
		Subject:        ev.Subject,
		ActionID:       ev.ActionID,
		API:            ev.API,
		PID:            ev.PID,
		Namespace:      ev.Namespace,
		Mode:           ev.Mode,
		Outcome:        ev.Outcome,
		Permits:        ev.Tally.Permits,
		Denies:         ev.Tally.Denies,
		Indeterminates: ev.Tally.Indeterminates,
		NotApplicables: ev.Tally.NotApplicables,
		Unexpected:     ev.Tally.Unexpected,
		Batch:          ev.Batch,
		Duration:       ev.Duration,
	}

	select {
	case r.recordChan <- record:
	default:
		r.mu.Lock()
		r.dropped++
		dropped := r.dropped
		r.mu.Unlock()
		r.logger.Warn("audit buffer full, record dropped",
			"record_id", record.ID,
			"dropped_total", dropped,
		)
	}
}

// Dropped returns the number of records dropped due to a full buffer.
func (r *Recorder) Dropped() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// worker drains the record channel into storage.
func (r *Recorder) worker() {
	defer r.wg.Done()

	for {
		select {
		case record := <-r.recordChan:
			r.write(record)
		case <-r.done:
			// Drain remaining records before exiting.
			for {
				select {
				case record := <-r.recordChan:
					r.write(record)
				default:
					return
				}
			}
		}
	}
}

// write persists one record with the configured timeout.
func (r *Recorder) write(record *Record) {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.WriteTimeout)
	defer cancel()

	if err := r.storage.Store(ctx, record); err != nil {
		r.logger.Error("audit record write failed",
			"record_id", record.ID,
			"error", err,
		)
		return
	}

	r.logger.Debug("audit record written",
		"record_id", record.ID,
		"action", record.ActionID,
		"outcome", record.Outcome,
	)
}

// Close stops the background writer after draining buffered records.
// Subsequent Close calls are no-ops.
func (r *Recorder) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()

	close(r.done)
	r.wg.Wait()
}
