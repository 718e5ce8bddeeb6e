// Package classify is the boundary adapter around the external
// text-classification call. It asks an OpenAI-compatible chat endpoint to
// extract memory candidates from a conversational turn and contains every
// failure mode of that call: transport errors, malformed payloads, and
// invalid records all degrade to an empty result, never an error the chat
// flow has to handle.
package classify

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/allang/companion-memory/internal/logging"
	"github.com/allang/companion-memory/internal/model"
)

// classifyPromptFormat is the instruction sent with each turn, in the
// companion's working language. The endpoint is expected to answer with a
// bare JSON array of extraction records.
const classifyPromptFormat = `다음 대화를 분석하여 기억으로 저장할 정보를 JSON 배열로 추출하세요.

사용자: "%s"
AI 응답: "%s"

규칙:
- long-term: 변하지 않는 핵심 정보 (이름, 생일, 취향, 가치관, 관계, home_location, office_location)
- mid-term: 며칠간 유효한 활동/상태 (여행, 프로젝트, 기분 상태)
- skip: 저장할 필요 없는 일상적 대화

출력 형식 (JSON 배열만, 설명 없이):
[{ "category": "long-term|mid-term|skip", "key": "필드명", "value": "값", "priority": 1-5 }]

저장할 것이 없으면 빈 배열 [] 을 출력하세요.`

// Config configures the classifier endpoint.
type Config struct {
	Enabled bool
	BaseURL string // OpenAI-compatible base URL, e.g. http://localhost:8080/v1
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Classifier calls the classification endpoint and parses its output.
// The zero-value (disabled) classifier returns no records from every call.
type Classifier struct {
	config Config
	client *openai.Client
}

// New creates a classifier. The HTTP client is reused across calls.
func New(cfg Config) *Classifier {
	c := &Classifier{config: cfg}
	if !cfg.Enabled || cfg.Model == "" {
		return c
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	c.client = openai.NewClientWithConfig(clientCfg)
	return c
}

// Enabled reports whether classification calls will actually be issued.
func (c *Classifier) Enabled() bool {
	return c.client != nil
}

// Classify submits one conversational turn and returns the validated
// extraction records. Any failure is logged and yields an empty result;
// classification is advisory and must not block conversation.
func (c *Classifier) Classify(ctx context.Context, userText, assistantText string) ([]model.Record, error) {
	if c.client == nil {
		logging.Debugf("classify: disabled, skipping turn")
		return nil, nil
	}

	timeout := c.config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(reqCtx, openai.ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(classifyPromptFormat, userText, assistantText),
			},
		},
		Temperature: 0.1,
	})
	if err != nil {
		logging.Warnf("classify: request failed (non-critical): %v", err)
		return nil, nil
	}
	if len(resp.Choices) == 0 {
		logging.Warnf("classify: empty response (non-critical)")
		return nil, nil
	}

	records := ParseRecords(resp.Choices[0].Message.Content)
	logging.Debugf("classify: %d records extracted", len(records))
	return records, nil
}
