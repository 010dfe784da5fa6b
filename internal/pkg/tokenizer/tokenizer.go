package tokenizer

import (
	"sync"

	"github.com/tiktoken-go/tokenizer"
)

var (
	once sync.Once
	enc  tokenizer.Codec
	err  error
)

func codec() (tokenizer.Codec, error) {
	once.Do(func() {
		enc, err = tokenizer.Get(tokenizer.Cl100kBase)
	})
	return enc, err
}

// CountTokens returns the cl100k_base token count of text.
func CountTokens(text string) (int, error) {
	c, err := codec()
	if err != nil {
		return 0, err
	}
	ids, _, err := c.Encode(text)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}
