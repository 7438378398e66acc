package search

import (
	"os"
	"time"

	"github.com/op/go-logging"
)

// searchLog is the package-level diagnostic logger (distinct from the
// UCI protocol output the dispatcher writes to stdout), grounded on the
// teacher's background-goroutine Logger but rebased on op/go-logging the
// way other_examples/frankkopp-FrankyGo wires a module logger with a
// formatted backend.
var searchLog = logging.MustGetLogger("search")

func init() {
	format := logging.MustStringFormatter(`%{time:15:04:05.000} %{level:-7.7s} %{message}`)
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatted := logging.NewBackendFormatter(backend, format)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.WARNING, "")
	searchLog.SetBackend(leveled)
}

// Event is one diagnostic record queued to the background writer, shaped
// after the teacher's LogInfo (spec's ambient logging section).
type Event struct {
	Timestamp time.Time
	Depth     int
	Score     int
	Nodes     int64
	HashFull  int
	Duration  time.Duration
	PV        string
}

// Logger buffers Events on a channel and formats them on a dedicated
// background goroutine so the search hot path never blocks on I/O,
// mirroring the teacher's queue/writer split.
type Logger struct {
	queue chan Event
	done  chan struct{}
}

// NewLogger starts the background writer goroutine.
func NewLogger() *Logger {
	l := &Logger{queue: make(chan Event, 256), done: make(chan struct{})}
	go l.writer()
	return l
}

// LogDepth queues one completed-iteration record. If the queue is full
// the record is dropped rather than blocking the search thread.
func (l *Logger) LogDepth(e Event) {
	if l == nil {
		return
	}
	select {
	case l.queue <- e:
	default:
		searchLog.Warning("diagnostic log queue full, dropping depth record")
	}
}

// Close drains the queue and stops the writer goroutine.
func (l *Logger) Close() {
	if l == nil {
		return
	}
	close(l.queue)
	<-l.done
}

func (l *Logger) writer() {
	for e := range l.queue {
		searchLog.Debugf(
			"depth=%d score=%d nodes=%d hashfull=%d time=%s pv=%s",
			e.Depth, e.Score, e.Nodes, e.HashFull,
			e.Duration.Round(time.Millisecond), e.PV,
		)
	}
	close(l.done)
}

// Infof and Warningf expose module-level logging for callers (e.g. the
// UCI dispatcher) that want to record protocol errors through the same
// backend without owning a Logger instance.
func Infof(format string, args ...interface{})    { searchLog.Infof(format, args...) }
func Warningf(format string, args ...interface{}) { searchLog.Warningf(format, args...) }
