package audio

import (
	"context"
	"errors"
	"io"
	"strings"

	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"

	"github.com/sushilduseja/saarthi/internal/config"
)

// Synthesizer renders text to spoken audio bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// OpenAISpeech renders narration through the speech endpoint. Input longer
// than maxInputChars is truncated to stay under the endpoint's limit.
type OpenAISpeech struct {
	client        openaiclient.Client
	model         string
	voice         string
	format        string
	maxInputChars int
}

func NewOpenAISpeech(apiKey, baseURL string, cfg config.AudioConfig) (*OpenAISpeech, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("speech api key is empty")
	}

	opts := []openaioption.RequestOption{
		openaioption.WithAPIKey(strings.TrimSpace(apiKey)),
		openaioption.WithMaxRetries(0),
	}
	if base := strings.TrimSpace(baseURL); base != "" {
		opts = append(opts, openaioption.WithBaseURL(strings.TrimRight(base, "/")))
	}

	return &OpenAISpeech{
		client:        openaiclient.NewClient(opts...),
		model:         cfg.TTSModel,
		voice:         cfg.Voice,
		format:        cfg.Format,
		maxInputChars: cfg.MaxInputChars,
	}, nil
}

func (o *OpenAISpeech) Synthesize(ctx context.Context, text string) ([]byte, error) {
	input := truncateRunes(text, o.maxInputChars)

	resp, err := o.client.Audio.Speech.New(ctx, openaiclient.AudioSpeechNewParams{
		Model:          openaiclient.SpeechModel(o.model),
		Voice:          openaiclient.AudioSpeechNewParamsVoice(o.voice),
		Input:          input,
		ResponseFormat: openaiclient.AudioSpeechNewParamsResponseFormat(o.format),
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("speech endpoint returned no audio")
	}
	return data, nil
}

func truncateRunes(text string, max int) string {
	if max <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
