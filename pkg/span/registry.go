package span

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Tag is the stable type tag written ahead of a serialized span.
type Tag uint32

// Tags of the built-in kinds. They are part of the serialized format and
// must never be renumbered.
const (
	TagLink        Tag = 1
	TagVideo       Tag = 2
	TagUnsupported Tag = 3
	TagYouTube     Tag = 4
	TagStyle       Tag = 5
)

// Registry errors.
var (
	ErrUnknownTag       = errors.New("unknown span tag")
	ErrUnregisteredKind = errors.New("span kind not registered")
	ErrDuplicateTag     = errors.New("span tag already registered")
	ErrDuplicateKind    = errors.New("span kind already registered")
	ErrTrailingData     = errors.New("trailing data after span payload")
)

// Factory creates an empty span of one kind, ready for DecodePayload.
type Factory func() Span

// Registry maps type tags to span factories. Registries are built
// explicitly at startup; there is no implicit registration.
// A Registry is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[Tag]Factory
	byKind    map[Kind]Tag
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[Tag]Factory),
		byKind:    make(map[Kind]Tag),
	}
}

// Builtin returns a new registry holding the built-in span kinds.
func Builtin() *Registry {
	reg := NewRegistry()
	builtins := []struct {
		tag     Tag
		kind    Kind
		factory Factory
	}{
		{TagLink, KindLink, func() Span { return &Link{} }},
		{TagVideo, KindVideo, func() Span { return &Video{} }},
		{TagUnsupported, KindUnsupported, func() Span { return &Unsupported{} }},
		{TagYouTube, KindYouTube, func() Span { return &YouTube{} }},
		{TagStyle, KindStyle, func() Span { return &Style{} }},
	}
	for _, builtin := range builtins {
		//nolint:errcheck // Tags and kinds are distinct; registration into a fresh registry cannot fail.
		reg.Register(builtin.tag, builtin.kind, builtin.factory)
	}
	return reg
}

// Register binds tag and kind to a factory.
// A tag or kind that is already bound is an error; Unregister it first.
func (r *Registry) Register(tag Tag, kind Kind, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[tag]; exists {
		return fmt.Errorf("%w: %d", ErrDuplicateTag, tag)
	}
	if bound, exists := r.byKind[kind]; exists {
		return fmt.Errorf("%w: %s (tag %d)", ErrDuplicateKind, kind, bound)
	}
	r.factories[tag] = factory
	r.byKind[kind] = tag
	return nil
}

// Unregister removes a tag and its kind binding.
func (r *Registry) Unregister(tag Tag) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.factories, tag)
	for kind, bound := range r.byKind {
		if bound == tag {
			delete(r.byKind, kind)
		}
	}
}

// TagFor returns the tag registered for kind.
func (r *Registry) TagFor(kind Kind) (Tag, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tag, ok := r.byKind[kind]
	return tag, ok
}

// Tags returns all registered tags in ascending order.
func (r *Registry) Tags() []Tag {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tags := make([]Tag, 0, len(r.factories))
	for tag := range r.factories {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// Marshal serializes s: its tag first, then its payload.
func (r *Registry) Marshal(s Span) ([]byte, error) {
	var enc Encoder
	if err := r.Encode(&enc, s); err != nil {
		return nil, err
	}
	return enc.Bytes(), nil
}

// Unmarshal reconstructs a span from data written by Marshal.
func (r *Registry) Unmarshal(data []byte) (Span, error) {
	dec := NewDecoder(data)
	s, err := r.Decode(dec)
	if err != nil {
		return nil, err
	}
	if dec.Remaining() != 0 {
		return nil, ErrTrailingData
	}
	return s, nil
}

// Decode reads one tagged span from dec, leaving dec positioned after it.
func (r *Registry) Decode(dec *Decoder) (Span, error) {
	rawTag, err := dec.ReadUvarint()
	if err != nil {
		return nil, fmt.Errorf("read tag: %w", err)
	}

	r.mu.RLock()
	factory, ok := r.factories[Tag(rawTag)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTag, rawTag)
	}

	s := factory()
	if err := s.DecodePayload(dec); err != nil {
		return nil, fmt.Errorf("decode tag %d: %w", rawTag, err)
	}
	return s, nil
}

// Encode writes one tagged span to enc.
func (r *Registry) Encode(enc *Encoder, s Span) error {
	tag, ok := r.TagFor(s.Kind())
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnregisteredKind, s.Kind())
	}
	enc.WriteUvarint(uint64(tag))
	s.EncodePayload(enc)
	return nil
}
