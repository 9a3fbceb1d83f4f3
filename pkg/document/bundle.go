package document

import (
	"errors"
	"fmt"

	"github.com/yaklabco/richview/pkg/span"
)

// Span bundles serialize a document's text and spans, with each span
// written through a span.Registry.
const (
	bundleMagic   = "RVSB"
	bundleVersion = 1
)

// Bundle errors.
var (
	ErrNotBundle      = errors.New("not a span bundle")
	ErrBundleVersion  = errors.New("unsupported span bundle version")
	ErrBundleTooLarge = errors.New("document too large for a span bundle")
	ErrBundleRange    = errors.New("span bundle entry out of range")
)

// MarshalBundle serializes the text and spans of d. Every span kind in d
// must be registered in reg.
func (d *Document) MarshalBundle(reg *span.Registry) ([]byte, error) {
	if len(d.text) > span.MaxStringLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrBundleTooLarge, len(d.text))
	}

	var enc span.Encoder
	enc.WriteString(bundleMagic)
	enc.WriteUvarint(bundleVersion)
	enc.WriteString(d.text)
	enc.WriteUvarint(uint64(len(d.entries)))
	for i, entry := range d.entries {
		enc.WriteUvarint(uint64(entry.Start))
		enc.WriteUvarint(uint64(entry.End - entry.Start))
		if err := reg.Encode(&enc, entry.Span); err != nil {
			return nil, fmt.Errorf("span %d: %w", i, err)
		}
	}
	return enc.Bytes(), nil
}

// UnmarshalBundle reads data written by MarshalBundle. The returned
// content holds fresh span instances built by reg.
func UnmarshalBundle(data []byte, reg *span.Registry) (Content, error) {
	dec := span.NewDecoder(data)

	magic, err := dec.ReadString()
	if err != nil || magic != bundleMagic {
		return Content{}, ErrNotBundle
	}

	version, err := dec.ReadUvarint()
	if err != nil {
		return Content{}, fmt.Errorf("read version: %w", err)
	}
	if version != bundleVersion {
		return Content{}, fmt.Errorf("%w: %d", ErrBundleVersion, version)
	}

	text, err := dec.ReadString()
	if err != nil {
		return Content{}, fmt.Errorf("read text: %w", err)
	}

	count, err := dec.ReadUvarint()
	if err != nil {
		return Content{}, fmt.Errorf("read span count: %w", err)
	}
	// Every entry takes at least three bytes.
	if count > uint64(dec.Remaining()/3) {
		return Content{}, fmt.Errorf("read span count: %w", span.ErrTruncated)
	}

	entries := make([]Entry, 0, count)
	for i := range count {
		entry, err := readEntry(dec, reg, len(text))
		if err != nil {
			return Content{}, fmt.Errorf("span %d: %w", i, err)
		}
		entries = append(entries, entry)
	}

	if dec.Remaining() != 0 {
		return Content{}, span.ErrTrailingData
	}
	return Content{Text: text, Entries: entries}, nil
}

func readEntry(dec *span.Decoder, reg *span.Registry, length int) (Entry, error) {
	start, err := dec.ReadUvarint()
	if err != nil {
		return Entry{}, err
	}
	size, err := dec.ReadUvarint()
	if err != nil {
		return Entry{}, err
	}
	if start > uint64(length) || size > uint64(length)-start {
		return Entry{}, ErrBundleRange
	}

	s, err := reg.Decode(dec)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Span: s, Start: int(start), End: int(start + size)}, nil
}
