//go:build darwin

package smc

import (
	"github.com/charlie0129/gosmc"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// AppleSMC reads battery keys from the System Management Controller. It
// never writes.
type AppleSMC struct {
	conn gosmc.Connection
}

func New() *AppleSMC {
	return &AppleSMC{
		conn: gosmc.New(),
	}
}

// NewMock returns an AppleSMC backed by an in-memory connection holding
// values.
func NewMock(values map[string][]byte) *AppleSMC {
	conn := gosmc.NewMockConnection()

	for key, value := range values {
		if err := conn.Write(key, value); err != nil {
			panic(err)
		}
	}

	return &AppleSMC{
		conn: conn,
	}
}

// Open connects to the SMC. The connection is kept for the lifetime of the
// process.
func (c *AppleSMC) Open() error {
	if err := c.conn.Open(); err != nil {
		return pkgerrors.Wrap(err, "failed to open SMC connection, battery probe unavailable")
	}
	return nil
}

// readByte reads a single-byte key.
func (c *AppleSMC) readByte(key string) (byte, error) {
	v, err := c.conn.Read(key)
	if err != nil {
		return 0, pkgerrors.Wrapf(err, "failed to read SMC key %s", key)
	}
	if len(v.Bytes) != 1 {
		return 0, pkgerrors.Errorf("SMC key %s: expected 1 byte, got %d", key, len(v.Bytes))
	}

	logrus.WithFields(logrus.Fields{
		"key": key,
		"val": v.Bytes[0],
	}).Trace("read SMC key")

	return v.Bytes[0], nil
}
