package journal_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boubliclub/formrelay/pkg/journal"
)

var fixed = time.Date(2025, 6, 14, 9, 5, 7, 0, time.Local)

func TestJournalLines(t *testing.T) {
	t.Parallel()

	var ok, failed bytes.Buffer
	j := journal.NewWithWriters(&ok, &failed, journal.WithClock(func() time.Time { return fixed }))

	require.NoError(t, j.Success("jane@example.com"))
	require.NoError(t, j.Failure("john@example.com"))

	assert.Equal(t, "[2025-06-14 09:05:07] Email envoyé avec succès de: jane@example.com\n", ok.String())
	assert.Equal(t, "[2025-06-14 09:05:07] Échec d'envoi d'email de: john@example.com\n", failed.String())
}

func TestJournalKeepsOneLinePerEntry(t *testing.T) {
	t.Parallel()

	var ok bytes.Buffer
	j := journal.NewWithWriters(&ok, &bytes.Buffer{}, journal.WithClock(func() time.Time { return fixed }))
	require.NoError(t, j.Success("a@example.com\r\n[fake] line"))
	assert.Equal(t, 1, strings.Count(ok.String(), "\n"))
}

func TestJournalFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	j := journal.New(journal.Config{
		SuccessPath: filepath.Join(dir, "contact_logs.txt"),
		ErrorPath:   filepath.Join(dir, "contact_errors.txt"),
		MaxSizeMB:   1,
	}, journal.WithClock(func() time.Time { return fixed }))

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, j.Success("jane@example.com"))
		}()
	}
	wg.Wait()
	require.NoError(t, j.Failure("john@example.com"))
	require.NoError(t, j.Close())

	data, err := os.ReadFile(filepath.Join(dir, "contact_logs.txt"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	assert.Len(t, lines, 20)
	for _, l := range lines {
		assert.Equal(t, "[2025-06-14 09:05:07] Email envoyé avec succès de: jane@example.com", l)
	}

	data, err = os.ReadFile(filepath.Join(dir, "contact_errors.txt"))
	require.NoError(t, err)
	assert.Equal(t, "[2025-06-14 09:05:07] Échec d'envoi d'email de: john@example.com\n", string(data))
}
