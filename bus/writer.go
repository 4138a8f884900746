package bus

import (
	"runtime"

	"wiresplice/logging"
)

// Writer is a single multi-producer data-plane endpoint: Enqueue is
// non-blocking with respect to the caller, buffering records internally and
// dropping them (with a log line) if the buffer is full, per the data
// plane's non-blocking write contract.
type Writer struct {
	records chan PacketRecord
	done    chan struct{}
}

// NewWriter starts a Writer backed by channel with the given capacity,
// draining records to dst on a dedicated goroutine, pinned to its own OS
// thread, until Close is called.
func NewWriter(dst DataChannel, capacity int) *Writer {
	w := &Writer{
		records: make(chan PacketRecord, capacity),
		done:    make(chan struct{}),
	}
	go w.run(dst)
	return w
}

func (w *Writer) run(dst DataChannel) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(w.done)
	for rec := range w.records {
		if err := dst.Send(rec); err != nil {
			logging.Error("data channel write failed", "packet_id", rec.ID, "error", err)
		}
	}
}

// Enqueue attempts to buffer rec for the writer goroutine. If the buffer is
// full, the record is dropped and logged rather than blocking the caller.
func (w *Writer) Enqueue(rec PacketRecord) {
	select {
	case w.records <- rec:
	default:
		logging.Error("data channel full, record dropped", "packet_id", rec.ID)
	}
}

// Close stops accepting new records and waits for the writer goroutine to
// drain the remaining buffer.
func (w *Writer) Close() {
	close(w.records)
	<-w.done
}
