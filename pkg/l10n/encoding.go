package l10n

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// LookupEncoding resolves an output encoding name ("UTF-8", "windows-1251",
// "koi8-r", ...). An empty name means UTF-8.
func LookupEncoding(name string) (encoding.Encoding, error) {
	if strings.TrimSpace(name) == "" {
		return unicode.UTF8, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	return enc, nil
}

// EncodingWriter wraps w so text written as UTF-8 reaches it in the named
// encoding. Characters the encoding cannot represent are replaced.
func EncodingWriter(w io.Writer, name string) (io.Writer, error) {
	enc, err := LookupEncoding(name)
	if err != nil {
		return nil, err
	}
	if isUTF8(enc) {
		return w, nil
	}
	return encoding.ReplaceUnsupported(enc.NewEncoder()).Writer(w), nil
}

// EncodingReader is the input side of EncodingWriter.
func EncodingReader(r io.Reader, name string) (io.Reader, error) {
	enc, err := LookupEncoding(name)
	if err != nil {
		return nil, err
	}
	if isUTF8(enc) {
		return r, nil
	}
	return enc.NewDecoder().Reader(r), nil
}

func isUTF8(enc encoding.Encoding) bool {
	name, err := htmlindex.Name(enc)
	return err == nil && name == "utf-8"
}
