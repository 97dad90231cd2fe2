package nest

// EntryKind distinguishes files from directories in events.
type EntryKind int

const (
	EntryFile EntryKind = iota
	EntryDir
)

func (k EntryKind) String() string {
	if k == EntryDir {
		return "dir"
	}
	return "file"
}

// Phase is the point in an entry's lifecycle an Event reports.
type Phase int

const (
	// PhaseStarted fires before an entry is read.
	PhaseStarted Phase = iota
	// PhaseCompleted fires once the entry's artifact is embedded in its
	// parent (or, for the root, renamed into place).
	PhaseCompleted
	// PhaseSkipped fires for entries left out of the archive; Err holds
	// the reason.
	PhaseSkipped
	// PhaseCleanupFailed fires when a temporary artifact could not be
	// removed. It never aborts the run.
	PhaseCleanupFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseStarted:
		return "started"
	case PhaseCompleted:
		return "completed"
	case PhaseSkipped:
		return "skipped"
	case PhaseCleanupFailed:
		return "cleanup-failed"
	}
	return "unknown"
}

// Event is a single progress notification.
type Event struct {
	Entry    EntryKind
	Phase    Phase
	Path     string
	Depth    int
	Artifact string // artifact path, set on PhaseCompleted and PhaseCleanupFailed
	Retained bool   // artifact left on disk after embedding
	Err      error
}

// Sink consumes progress events. Implementations must not block for long;
// they run on the archiving goroutine.
type Sink interface {
	Notify(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

func (f SinkFunc) Notify(e Event) { f(e) }

// Sinks fans events out to every non-nil sink.
func Sinks(sinks ...Sink) Sink {
	return SinkFunc(func(e Event) {
		for _, s := range sinks {
			if s != nil {
				s.Notify(e)
			}
		}
	})
}
