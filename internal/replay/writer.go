package replay

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/klauspost/compress/zstd"
)

// jsonlZstdWriter writes one JSON value per line through a zstd encoder.
type jsonlZstdWriter struct {
	dst io.WriteCloser
	enc *zstd.Encoder
	w   *bufio.Writer
}

func newJSONLZstdWriter(dst io.WriteCloser) (*jsonlZstdWriter, error) {
	enc, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, err
	}
	return &jsonlZstdWriter{
		dst: dst,
		enc: enc,
		w:   bufio.NewWriterSize(enc, 64*1024),
	}, nil
}

func (w *jsonlZstdWriter) Write(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

func (w *jsonlZstdWriter) Close() error {
	var first error
	keep := func(err error) {
		if first == nil {
			first = err
		}
	}
	keep(w.w.Flush())
	keep(w.enc.Close())
	keep(w.dst.Close())
	return first
}
