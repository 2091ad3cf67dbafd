package blockfile

import "github.com/pkg/errors"

// MemBlocks is an in-memory BlockFile, used by the codec test suites.
type MemBlocks struct {
	name string
	data []byte
	pos  int
}

// NewMemBlocks wraps data, whose length must be a multiple of BlockSize.
func NewMemBlocks(name string, data []byte) *MemBlocks {
	return &MemBlocks{name: name, data: data}
}

func (m *MemBlocks) Name() string { return m.name }

func (m *MemBlocks) Current() (Block, error) {
	if m.pos == 0 {
		return m.Next()
	}
	return m.blockAt(m.pos - BlockSize)
}

func (m *MemBlocks) Next() (Block, error) {
	b, err := m.blockAt(m.pos)
	if err != nil {
		return Block{}, err
	}
	m.pos += BlockSize
	return b, nil
}

func (m *MemBlocks) blockAt(off int) (Block, error) {
	var b Block
	if off+BlockSize > len(m.data) {
		return b, errors.Wrapf(ErrShortRead, "blockfile: %s: block at %d", m.name, off)
	}
	copy(b[:], m.data[off:off+BlockSize])
	return b, nil
}

func (m *MemBlocks) Append(b Block) error {
	m.data = append(m.data, b[:]...)
	return nil
}

// Bytes returns the accumulated stream, for assertions in tests.
func (m *MemBlocks) Bytes() []byte { return m.data }

// MemBytes is an in-memory ByteFile.
type MemBytes struct {
	data []byte
	pos  int
}

func NewMemBytes(data []byte) *MemBytes { return &MemBytes{data: data} }

func (m *MemBytes) Read(n int) ([]byte, error) {
	if m.pos+n > len(m.data) {
		return nil, errors.Wrapf(ErrShortRead, "blockfile: mem: want %d have %d", n, len(m.data)-m.pos)
	}
	b := m.data[m.pos : m.pos+n]
	m.pos += n
	return b, nil
}

func (m *MemBytes) Write(p []byte) (int, error) {
	m.data = append(m.data, p...)
	return len(p), nil
}

// Bytes returns the accumulated stream, for assertions in tests.
func (m *MemBytes) Bytes() []byte { return m.data }
