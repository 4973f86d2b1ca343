// Package corpus opens AMC XML files and turns them into navigable document
// trees. Files are parsed fully into memory.
package corpus

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/klauspost/pgzip"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

var (
	// ErrNoRoot is returned when a file parses but holds no root element.
	ErrNoRoot = errors.New("no root element")
	// ErrUnknownEncoding is returned for an encoding label charset cannot resolve.
	ErrUnknownEncoding = errors.New("unknown encoding")
)

// documentsXPath selects the article elements directly below the root.
const documentsXPath = "/*/doc"

// Options tunes how files are decoded before parsing.
type Options struct {
	// Encoding is applied to files that carry no encoding declaration,
	// e.g. "latin1" or "windows-1252". Empty means UTF-8.
	Encoding string
}

// File is a parsed corpus file.
type File struct {
	Path   string
	Root   *xmlquery.Node
	SHA256 string
	Bytes  int64
}

// Documents returns the article nodes of the file in document order.
func (f *File) Documents() []*xmlquery.Node {
	return Documents(f.Root)
}

// Documents returns the <doc> children of the root element in document order.
func Documents(root *xmlquery.Node) []*xmlquery.Node {
	if root == nil {
		return nil
	}
	return xmlquery.Find(root, documentsXPath)
}

// Load reads and parses one corpus file. Paths ending in ".gz" are
// decompressed transparently.
func Load(path string, opts Options) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	counted := &countingReader{r: io.TeeReader(f, h)}
	if !strings.HasSuffix(strings.ToLower(path), ".gz") {
		return finish(path, counted, h, counted, opts)
	}
	zr, err := pgzip.NewReader(counted)
	if err != nil {
		return nil, fmt.Errorf("gunzip %s: %w", path, err)
	}
	file, err := finish(path, zr, h, counted, opts)
	if cerr := zr.Close(); err == nil && cerr != nil {
		return nil, fmt.Errorf("gunzip %s: %w", path, cerr)
	}
	return file, err
}

// finish parses r and drains it so the digest covers the whole file. The
// decompressor, if any, reads ahead concurrently and must only be closed
// after r is exhausted.
func finish(path string, r io.Reader, h hash.Hash, counted *countingReader, opts Options) (*File, error) {
	root, err := Parse(r, opts)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	// pgzip's WriteTo reports io.EOF on an already drained stream; hide it
	// so io.Copy reads to the natural end.
	if _, err := io.Copy(io.Discard, struct{ io.Reader }{r}); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	file := &File{Path: path, Root: root, SHA256: hexDigest(h), Bytes: counted.n}
	log.Debug().Str("path", path).Int64("bytes", file.Bytes).Msg("corpus file loaded")
	return file, nil
}

// Parse builds a document tree from r. When opts.Encoding is set and the
// input has no encoding declaration, the bytes are decoded from that charset.
func Parse(r io.Reader, opts Options) (*xmlquery.Node, error) {
	br := bufio.NewReader(r)
	if label := strings.TrimSpace(opts.Encoding); label != "" {
		head, _ := br.Peek(256)
		if !declaresEncoding(head) {
			enc, name := charset.Lookup(label)
			if enc == nil {
				return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
			}
			log.Debug().Str("encoding", name).Msg("decoding undeclared input")
			return parseTree(transform.NewReader(br, enc.NewDecoder()))
		}
	}
	return parseTree(br)
}

func parseTree(r io.Reader) (*xmlquery.Node, error) {
	br := bufio.NewReader(r)
	blank, err := skipSpace(br)
	if err != nil {
		return nil, err
	}
	if blank {
		return nil, ErrNoRoot
	}
	root, err := xmlquery.Parse(br)
	if err != nil {
		return nil, err
	}
	if xmlquery.FindOne(root, "/*") == nil {
		return nil, ErrNoRoot
	}
	return root, nil
}

// skipSpace consumes leading whitespace. blank is true when nothing else
// follows.
func skipSpace(br *bufio.Reader) (blank bool, err error) {
	for {
		b, err := br.ReadByte()
		if errors.Is(err, io.EOF) {
			return true, nil
		}
		if err != nil {
			return false, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return false, br.UnreadByte()
	}
}

// declaresEncoding reports whether head starts with an XML declaration that
// names an encoding.
func declaresEncoding(head []byte) bool {
	head = bytes.TrimPrefix(head, []byte("\xef\xbb\xbf"))
	if !bytes.HasPrefix(head, []byte("<?xml")) {
		return false
	}
	end := bytes.Index(head, []byte("?>"))
	if end < 0 {
		end = len(head)
	}
	return bytes.Contains(head[:end], []byte("encoding"))
}

func hexDigest(h hash.Hash) string {
	return hex.EncodeToString(h.Sum(nil))
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
