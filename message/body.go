package message

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
)

// MetadataURI is the metadata key under which a body exposes the path or URI it was read from.
const MetadataURI = "uri"

// Body is the payload of a request or response. Its size may be unknown, in which case Size reports
// false. Bodies may expose metadata about their source, such as [MetadataURI].
type Body interface {
	io.Reader
	Size() (int64, bool)
	Metadata(key string) (any, bool)
}

// EmptyBody returns a body of size zero.
func EmptyBody() Body {
	return BytesBody(nil)
}

// StringBody returns a seekable body holding s.
func StringBody(s string) Body {
	return &bytesBody{seekReader: strings.NewReader(s), size: int64(len(s))}
}

// BytesBody returns a seekable body holding b. The slice is not copied.
func BytesBody(b []byte) Body {
	return &bytesBody{seekReader: bytes.NewReader(b), size: int64(len(b))}
}

type seekReader interface {
	io.Reader
	io.Seeker
}

type bytesBody struct {
	seekReader
	size int64
}

func (b *bytesBody) Size() (int64, bool)         { return b.size, true }
func (b *bytesBody) Metadata(string) (any, bool) { return nil, false }

// ReaderBody wraps a reader of unknown length.
func ReaderBody(r io.Reader) Body {
	return readerBody{r}
}

type readerBody struct{ io.Reader }

func (readerBody) Size() (int64, bool)         { return 0, false }
func (readerBody) Metadata(string) (any, bool) { return nil, false }

// FileBody wraps an open file. The size is taken from the file's stat information and the file name is
// exposed under [MetadataURI]. The returned body implements io.Closer and owns f: whoever ends up
// holding the body closes it.
func FileBody(f *os.File) (Body, error) {
	fi, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to stat %q", f.Name())
	}

	return &fileBody{File: f, size: fi.Size()}, nil
}

type fileBody struct {
	*os.File
	size int64
}

func (b *fileBody) Size() (int64, bool) { return b.size, true }

func (b *fileBody) Metadata(key string) (any, bool) {
	if key == MetadataURI {
		return b.File.Name(), true
	}
	return nil, false
}

// ReadAll reads the complete body. Seekable bodies are rewound before and after reading so the same
// body can be read again.
func ReadAll(b Body) ([]byte, error) {
	if b == nil {
		return nil, nil
	}

	s, seekable := b.(io.Seeker)
	if seekable {
		if _, err := s.Seek(0, io.SeekStart); err != nil {
			return nil, errors.Wrap(err, "failed to rewind body")
		}
	}

	data, err := io.ReadAll(b)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read body")
	}

	if seekable {
		if _, err := s.Seek(0, io.SeekStart); err != nil {
			return nil, errors.Wrap(err, "failed to rewind body")
		}
	}

	return data, nil
}

// IsEmpty reports whether the body is known to hold zero bytes.
func IsEmpty(b Body) bool {
	if b == nil {
		return true
	}
	size, known := b.Size()
	return known && size == 0
}
