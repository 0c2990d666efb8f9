// Package tokens estimates the token footprint of a chat completion request
// so conversation history can be trimmed to a budget before dispatch.
package tokens

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
	"github.com/sashabaranov/go-openai"
)

// Gemini models are not in tiktoken's registry; cl100k_base is close enough
// for a trim-to-budget estimate.
const fallbackEncoding = "cl100k_base"

const tokensPerMessage = 4

func Count(messages []openai.ChatCompletionMessage, model string) (int, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			return 0, fmt.Errorf("failed to load token encoding: %w", err)
		}
	}

	total := 3
	for _, msg := range messages {
		total += tokensPerMessage
		total += len(enc.Encode(msg.Content, nil, nil))
		for _, part := range msg.MultiContent {
			if part.Type == openai.ChatMessagePartTypeText {
				total += len(enc.Encode(part.Text, nil, nil))
			}
		}
	}
	return total, nil
}
