// Package chunker splits long transcripts into overlapping,
// sentence-aligned chunks for indexing.
package chunker

import "strings"

// DefaultSingleChunkLimit is the transcript length up to which no
// chunking is applied.
const DefaultSingleChunkLimit = 2000

// DefaultTargetChunks is the default chunk cap for long transcripts.
const DefaultTargetChunks = 8

// DefaultMinChunkSize is the default minimum chunk size in characters.
const DefaultMinChunkSize = 800

// DefaultOverlap is the default number of overlapping characters
// carried over from the previous chunk.
const DefaultOverlap = 300

// Chunker splits transcript text on sentence boundaries, targeting a
// fixed number of chunks with tail overlap between neighbours.
type Chunker struct {
	singleChunkLimit int
	targetChunks     int
	minChunkSize     int
	overlap          int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithSingleChunkLimit sets the length below which text is one chunk.
func WithSingleChunkLimit(limit int) Option {
	return func(c *Chunker) {
		if limit > 0 {
			c.singleChunkLimit = limit
		}
	}
}

// WithTargetChunks sets the chunk cap for long transcripts.
// Sentences beyond the cap are dropped, trading completeness for a
// bounded indexing cost.
func WithTargetChunks(n int) Option {
	return func(c *Chunker) {
		if n > 0 {
			c.targetChunks = n
		}
	}
}

// WithMinChunkSize sets the minimum chunk size in characters.
func WithMinChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.minChunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		singleChunkLimit: DefaultSingleChunkLimit,
		targetChunks:     DefaultTargetChunks,
		minChunkSize:     DefaultMinChunkSize,
		overlap:          DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// TargetChunks returns the configured chunk cap.
func (c *Chunker) TargetChunks() int {
	return c.targetChunks
}

// Chunk splits text for indexing. Text at or below the single-chunk
// limit is returned verbatim as one chunk; longer text is split with
// Smart. Empty text produces no chunks.
func (c *Chunker) Chunk(text string) []string {
	if text == "" {
		return nil
	}
	if len(text) <= c.singleChunkLimit {
		return []string{text}
	}
	return c.Smart(text)
}

// Capped reports whether chunking the given text hit the chunk cap,
// meaning tail content may have been dropped.
func (c *Chunker) Capped(text string) bool {
	return len(text) > c.singleChunkLimit && len(c.Smart(text)) == c.targetChunks
}

// Smart splits text into up to the target number of chunks on sentence
// boundaries. Each chunk after the first is prefixed with the tail of
// its predecessor to preserve context across boundaries. Chunk sizes
// track len(text)/target but never fall below the minimum.
func (c *Chunker) Smart(text string) []string {
	chunkSize := len(text) / c.targetChunks
	if chunkSize < c.minChunkSize {
		chunkSize = c.minChunkSize
	}

	sentences := strings.Split(text, ". ")

	var chunks []string
	var current []string
	currentLen := 0

	for _, sentence := range sentences {
		sentenceLen := len(sentence)

		if currentLen+sentenceLen > chunkSize && len(current) > 0 {
			if len(chunks) > 0 && c.overlap > 0 {
				current = append([]string{tail(chunks[len(chunks)-1], c.overlap)}, current...)
			}
			chunks = append(chunks, strings.Join(current, ". ")+".")
			current = []string{strings.Trim(sentence, ".")}
			currentLen = sentenceLen
		} else {
			current = append(current, strings.Trim(sentence, "."))
			currentLen += sentenceLen
		}
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, ". ")+".")
	}

	if len(chunks) > c.targetChunks {
		chunks = chunks[:c.targetChunks]
	}

	return chunks
}

// tail returns up to n trailing characters of s without splitting runes.
func tail(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}
