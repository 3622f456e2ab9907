package metrics

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

const fallbackEncoding = "cl100k_base"

// TokenCounter estimates prompt sizes with the tokenizer matching the configured model.
// Encodings are loaded lazily and cached per model, including load failures, so an
// offline process pays the lookup cost once.
type TokenCounter struct {
	mu        sync.Mutex
	encodings map[string]encodingEntry
	load      func(model string) (*tiktoken.Tiktoken, error)
}

type encodingEntry struct {
	enc *tiktoken.Tiktoken
	err error
}

// NewTokenCounter builds a counter backed by tiktoken.
func NewTokenCounter() *TokenCounter {
	return &TokenCounter{
		encodings: make(map[string]encodingEntry),
		load:      loadEncoding,
	}
}

// Count returns the number of tokens text occupies for model.
func (c *TokenCounter) Count(model, text string) (int, error) {
	enc, err := c.encoding(model)
	if err != nil {
		return 0, err
	}
	return len(enc.Encode(text, nil, nil)), nil
}

func (c *TokenCounter) encoding(model string) (*tiktoken.Tiktoken, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.encodings[model]; ok {
		return entry.enc, entry.err
	}
	enc, err := c.load(model)
	c.encodings[model] = encodingEntry{enc: enc, err: err}
	return enc, err
}

func loadEncoding(model string) (*tiktoken.Tiktoken, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err == nil {
		return enc, nil
	}
	enc, fallbackErr := tiktoken.GetEncoding(fallbackEncoding)
	if fallbackErr != nil {
		return nil, fmt.Errorf("load tokenizer for %q: %w", model, fallbackErr)
	}
	return enc, nil
}
