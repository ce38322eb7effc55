package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
)

const defaultReminderInterval = time.Minute

// reminderJob periodically scans for notes whose reminder time has elapsed,
// publishes a notification for each one and clears the reminder so the next
// scan does not pick it up again.
type reminderJob struct {
	noteRepository store.NoteRepository
	publisher      NotificationPublisher
	logger         *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewReminderJob creates a reminderJob over the given repository and
// publisher. The job is idle until Start is called.
func NewReminderJob(noteRepository store.NoteRepository, publisher NotificationPublisher, logger *logger.Logger) ReminderJob {
	return &reminderJob{
		noteRepository: noteRepository,
		publisher:      publisher,
		logger:         logger,
	}
}

// Start implements ReminderJob. It stops any previously running job, then
// launches a background goroutine that scans every interval. If interval is
// zero or negative it defaults to one minute. The goroutine exits when ctx
// is cancelled or Stop is called.
func (j *reminderJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultReminderInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.scan(jobCtx, time.Now())
			}
		}
	}()
}

// Stop implements ReminderJob. It cancels the background goroutine's context
// and blocks until the goroutine has fully exited. Safe to call when the job
// is not running (no-op in that case).
func (j *reminderJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

// scan runs one pass over the pending reminders. Every note whose reminder
// lies before now produces one notification and has its reminder cleared.
// The reminder is cleared even when the publish fails, so a broken broker
// cannot make the scanner emit the same notification every tick.
func (j *reminderJob) scan(ctx context.Context, now time.Time) {
	notes, err := j.noteRepository.ListPendingReminders(ctx)
	if err != nil {
		j.logger.Err(err).Str("func", "*reminderJob.scan").Msg("error listing pending reminders")
		return
	}

	for _, note := range notes {
		if note.Reminder == nil || !note.Reminder.Before(now) {
			continue
		}

		if err := j.publisher.Publish(ctx, dueReminderMessage(note)); err != nil {
			j.logger.Err(err).Int64("note_id", note.NoteID).Msg("error publishing due reminder")
		}

		if err := j.noteRepository.ClearReminder(ctx, note.NoteID); err != nil {
			j.logger.Err(err).Int64("note_id", note.NoteID).Msg("error clearing reminder")
		}
	}
}

// dueReminderMessage renders the notification text of an elapsed reminder.
func dueReminderMessage(note models.Note) string {
	return fmt.Sprintf("Reminder: %s (created %s) is due!", note.Title, note.CreatedDate.Format(exportDateFormat))
}
