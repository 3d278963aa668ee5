package record

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Thump/leuchre/internal/fileutil"
)

// Write flushes the counters to disk if enough time has passed since the
// last flush. The Add methods call it implicitly, so long runs checkpoint
// themselves without flooding the filesystem.
func (r *Record) Write() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if time.Since(r.lastWrite) < writeInterval {
		return nil
	}
	return r.writeLocked()
}

// WriteForce flushes the counters to disk unconditionally. It is called on
// every exit path so partial results are never lost, and is idempotent:
// flushing twice without new records persists identical totals.
func (r *Record) WriteForce() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writeLocked()
}

// maybeWriteLocked is the rate-limited flush used by the Add methods.
// Callers must hold the lock. Flush errors are logged rather than
// propagated, since a failed checkpoint must not abort data collection.
func (r *Record) maybeWriteLocked() {
	if time.Since(r.lastWrite) < writeInterval {
		return
	}
	if err := r.writeLocked(); err != nil {
		r.logger.Warn("checkpoint flush failed", "error", err)
	}
}

func (r *Record) writeLocked() error {
	if err := r.writeChandCSV(); err != nil {
		return err
	}
	if err := r.writeFollowCSV(); err != nil {
		return err
	}
	r.lastWrite = time.Now()
	return nil
}

// header writes the common CSV preamble.
func (r *Record) header(b *strings.Builder, title string) {
	fmt.Fprintf(b, "%s\n", title)
	fmt.Fprintf(b, "%s\n", time.Now().Format("2006/01/02 15:04:05 MST"))
	fmt.Fprintf(b, "team 1: %s\n", r.team1)
	fmt.Fprintf(b, "team 2: %s\n", r.team2)
	fmt.Fprintln(b)
}

// writeChandCSV persists the remapped calling-hand table: one line per
// remapped hand with its expected points and every individual score.
func (r *Record) writeChandCSV() error {
	var b strings.Builder
	r.header(&b, "leuchre call stats")
	fmt.Fprintln(&b, "hand, ep, details")

	hands := make([]string, 0, len(r.chand))
	for hand := range r.chand {
		hands = append(hands, hand)
	}
	sort.Strings(hands)

	for _, hand := range hands {
		line := r.chand[hand]
		avg := 0.0
		if line.Count > 0 {
			avg = float64(line.Sum) / float64(line.Count)
		}
		fmt.Fprintf(&b, "%s,%f", hand, avg)
		for _, score := range line.Scores {
			fmt.Fprintf(&b, ",%d", score)
		}
		fmt.Fprintln(&b)
	}

	path := filepath.Join(r.dir, "leuchre-chand.csv")
	return fileutil.WriteAtomic(path, []byte(b.String()), 0o644)
}

// writeFollowCSV persists the per-trick follow ratios.
func (r *Record) writeFollowCSV() error {
	var b strings.Builder
	r.header(&b, "leuchre follow stats")
	b.WriteString("trick, %follow\n")
	for trick := 1; trick <= 5; trick++ {
		fmt.Fprintf(&b, "%d,%6.2f\n", trick, r.followAvg(trick))
	}

	path := filepath.Join(r.dir, "leuchre-follow.csv")
	return fileutil.WriteAtomic(path, []byte(b.String()), 0o644)
}
