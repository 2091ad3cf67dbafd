package blockfile

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// DiskBlocks is a BlockFile backed by an *os.File, read and written 512
// bytes at a time.
type DiskBlocks struct {
	f       *os.File
	cur     Block
	haveCur bool
	pos     int64
}

// NewDiskBlocks wraps f for block-cursor access. The cursor starts
// unpositioned; call Next once to load the first block.
func NewDiskBlocks(f *os.File) *DiskBlocks {
	return &DiskBlocks{f: f}
}

func (d *DiskBlocks) Name() string { return d.f.Name() }

func (d *DiskBlocks) Current() (Block, error) {
	if !d.haveCur {
		return d.Next()
	}
	return d.cur, nil
}

func (d *DiskBlocks) Next() (Block, error) {
	if _, err := d.f.Seek(d.pos, io.SeekStart); err != nil {
		return Block{}, errors.Wrapf(err, "blockfile: seek %s", d.f.Name())
	}
	var b Block
	if _, err := io.ReadFull(d.f, b[:]); err != nil {
		return Block{}, errors.Wrapf(ErrShortRead, "blockfile: %s: %v", d.f.Name(), err)
	}
	d.pos += BlockSize
	d.cur = b
	d.haveCur = true
	return b, nil
}

func (d *DiskBlocks) Append(b Block) error {
	if _, err := d.f.Seek(0, io.SeekEnd); err != nil {
		return errors.Wrapf(err, "blockfile: seek-end %s", d.f.Name())
	}
	if _, err := d.f.Write(b[:]); err != nil {
		return errors.Wrapf(err, "blockfile: append %s", d.f.Name())
	}
	return nil
}

// DiskBytes is a ByteFile backed by an *os.File.
type DiskBytes struct {
	f *os.File
}

func NewDiskBytes(f *os.File) *DiskBytes { return &DiskBytes{f: f} }

func (d *DiskBytes) Read(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.f, buf); err != nil {
		return nil, errors.Wrapf(ErrShortRead, "blockfile: %s: %v", d.f.Name(), err)
	}
	return buf, nil
}

func (d *DiskBytes) Write(p []byte) (int, error) {
	n, err := d.f.Write(p)
	if err != nil {
		return n, errors.Wrapf(err, "blockfile: write %s", d.f.Name())
	}
	return n, nil
}
