package bootstrap

import (
	"wiresplice/bus"
	"wiresplice/capture"
	"wiresplice/rule"
)

// dataCapturer adapts the capture package's record construction and the
// bus's data-plane writer to the hook.Capturer contract every dispatch call
// invokes with the raw payload before rule evaluation.
type dataCapturer struct {
	writer *bus.Writer
}

// newDataCapturer returns a Capturer that builds a PacketRecord for every
// intercepted payload and enqueues it on writer without blocking the
// calling (application) thread.
func newDataCapturer(writer *bus.Writer) *dataCapturer {
	return &dataCapturer{writer: writer}
}

// Capture builds a PacketRecord from the current process/socket context and
// hands it to the data-plane writer.
func (c *dataCapturer) Capture(kind rule.HookKind, direction string, socket uintptr, payload []byte) {
	protocol := capture.InferProtocol(socket)
	rec := capture.Build(
		kind, direction, socket, payload,
		capture.ProcessID(), capture.ProcessName(),
		protocol,
		capture.LocalAddr(socket), capture.RemoteAddr(socket),
	)
	c.writer.Enqueue(toBusRecord(rec))
}

func toBusRecord(rec capture.PacketRecord) bus.PacketRecord {
	return bus.PacketRecord{
		ID:          rec.ID,
		TimestampMS: rec.TimestampMS,
		ProcessID:   rec.ProcessID,
		ProcessName: rec.ProcessName,
		Protocol:    string(rec.Protocol),
		Direction:   rec.Direction,
		SrcAddr:     rec.SrcAddr,
		DstAddr:     rec.DstAddr,
		Size:        rec.Size,
		Socket:      rec.Socket,
		HookKind:    rec.HookKind,
		PayloadHex:  rec.PayloadHex,
	}
}
