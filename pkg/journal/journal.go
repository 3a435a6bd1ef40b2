// Package journal appends one human-readable line per contact delivery to
// a success file and a failure file.
package journal

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// TimeLayout formats the bracketed timestamp of each line.
const TimeLayout = "2006-01-02 15:04:05"

const (
	successLine = "Email envoyé avec succès de: %s"
	failureLine = "Échec d'envoi d'email de: %s"
)

// Config configures the journal files.
type Config struct {
	SuccessPath string `env:"JOURNAL_SUCCESS_PATH" envDefault:"contact_logs.txt"`
	ErrorPath   string `env:"JOURNAL_ERROR_PATH" envDefault:"contact_errors.txt"`
	MaxSizeMB   int    `env:"JOURNAL_MAX_SIZE_MB" envDefault:"10"`
	MaxBackups  int    `env:"JOURNAL_MAX_BACKUPS" envDefault:"5"`
	MaxAgeDays  int    `env:"JOURNAL_MAX_AGE_DAYS" envDefault:"0"`
	Compress    bool   `env:"JOURNAL_COMPRESS" envDefault:"false"`
}

// Journal writes delivery outcomes. It is safe for concurrent use.
type Journal struct {
	mu      sync.Mutex
	success io.Writer
	failure io.Writer
	closers []io.Closer
	now     func() time.Time
}

// Option configures a Journal.
type Option func(*Journal)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(j *Journal) {
		if now != nil {
			j.now = now
		}
	}
}

// New opens both files through size-rotating writers. Files are created
// on first write.
func New(cfg Config, opts ...Option) *Journal {
	open := func(path string) *lumberjack.Logger {
		return &lumberjack.Logger{
			Filename:   path,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
			LocalTime:  true,
		}
	}
	success, failure := open(cfg.SuccessPath), open(cfg.ErrorPath)

	j := NewWithWriters(success, failure, opts...)
	j.closers = []io.Closer{success, failure}
	return j
}

// NewWithWriters writes to arbitrary writers.
func NewWithWriters(success, failure io.Writer, opts ...Option) *Journal {
	j := &Journal{
		success: success,
		failure: failure,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Success records a delivered message from sender.
func (j *Journal) Success(sender string) error {
	return j.write(j.success, successLine, sender)
}

// Failure records a failed delivery from sender.
func (j *Journal) Failure(sender string) error {
	return j.write(j.failure, failureLine, sender)
}

func (j *Journal) write(w io.Writer, format, sender string) error {
	line := fmt.Sprintf("[%s] %s\n", j.now().Format(TimeLayout), fmt.Sprintf(format, oneLine(sender)))

	j.mu.Lock()
	defer j.mu.Unlock()
	_, err := io.WriteString(w, line)
	return err
}

// Close closes the underlying files, if any.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	var errs []error
	for _, c := range j.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

func oneLine(s string) string {
	return lineBreaks.Replace(s)
}
