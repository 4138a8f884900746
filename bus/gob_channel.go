package bus

import (
	"encoding/gob"
	"io"
	"sync"

	engineerrors "wiresplice/errors"
)

// gobCommandChannel frames HookCommand values with encoding/gob over any
// io.ReadWriteCloser. It is the shared implementation behind both the
// Windows named-pipe transport and the in-process net.Pipe test transport.
type gobCommandChannel struct {
	conn io.ReadWriteCloser
	enc  *gob.Encoder
	dec  *gob.Decoder

	sendMu sync.Mutex
	recvMu sync.Mutex
}

// NewGobCommandChannel wraps conn as a gob-framed CommandChannel.
func NewGobCommandChannel(conn io.ReadWriteCloser) CommandChannel {
	return &gobCommandChannel{
		conn: conn,
		enc:  gob.NewEncoder(conn),
		dec:  gob.NewDecoder(conn),
	}
}

func (c *gobCommandChannel) Send(cmd HookCommand) error {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if err := c.enc.Encode(&cmd); err != nil {
		return engineerrors.Wrap(err, engineerrors.ErrChannel, "bus.CommandChannel.Send")
	}
	return nil
}

func (c *gobCommandChannel) Receive() (HookCommand, error) {
	c.recvMu.Lock()
	defer c.recvMu.Unlock()
	var cmd HookCommand
	if err := c.dec.Decode(&cmd); err != nil {
		if err == io.EOF {
			return HookCommand{}, engineerrors.Wrap(err, engineerrors.ErrChannel, "bus.CommandChannel.Receive")
		}
		return HookCommand{}, engineerrors.Wrap(err, engineerrors.ErrChannel, "bus.CommandChannel.Receive")
	}
	return cmd, nil
}

func (c *gobCommandChannel) Close() error {
	return c.conn.Close()
}

// gobDataChannel frames PacketRecord values with encoding/gob over any
// io.ReadWriteCloser.
type gobDataChannel struct {
	conn io.ReadWriteCloser
	enc  *gob.Encoder
	dec  *gob.Decoder

	sendMu sync.Mutex
	recvMu sync.Mutex
}

// NewGobDataChannel wraps conn as a gob-framed DataChannel.
func NewGobDataChannel(conn io.ReadWriteCloser) DataChannel {
	return &gobDataChannel{
		conn: conn,
		enc:  gob.NewEncoder(conn),
		dec:  gob.NewDecoder(conn),
	}
}

func (c *gobDataChannel) Send(rec PacketRecord) error {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if err := c.enc.Encode(&rec); err != nil {
		return engineerrors.Wrap(err, engineerrors.ErrChannel, "bus.DataChannel.Send")
	}
	return nil
}

func (c *gobDataChannel) Receive() (PacketRecord, error) {
	c.recvMu.Lock()
	defer c.recvMu.Unlock()
	var rec PacketRecord
	if err := c.dec.Decode(&rec); err != nil {
		return PacketRecord{}, engineerrors.Wrap(err, engineerrors.ErrChannel, "bus.DataChannel.Receive")
	}
	return rec, nil
}

func (c *gobDataChannel) Close() error {
	return c.conn.Close()
}
