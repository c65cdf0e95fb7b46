package assistant

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIBackend runs jobs on the OpenAI Assistants API: one thread per job,
// one run per thread.
type OpenAIBackend struct {
	client *openai.Client
}

// NewOpenAIBackend builds a backend against api.openai.com unless opts override the base URL.
func NewOpenAIBackend(apiKey string, opts ...option.RequestOption) (*OpenAIBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key required")
	}
	cli := openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)
	return &OpenAIBackend{client: &cli}, nil
}

func (b *OpenAIBackend) Submit(ctx context.Context, assistantID, text string) (Job, error) {
	if b == nil || b.client == nil {
		return Job{}, fmt.Errorf("nil openai client")
	}
	thread, err := b.client.Beta.Threads.New(ctx, openai.BetaThreadNewParams{
		Messages: []openai.BetaThreadNewParamsMessage{
			{
				Role: "user",
				Content: openai.BetaThreadNewParamsMessageContentUnion{
					OfString: openai.String(text),
				},
			},
		},
	})
	if err != nil {
		return Job{}, fmt.Errorf("create thread: %w", err)
	}
	run, err := b.client.Beta.Threads.Runs.New(ctx, thread.ID, openai.BetaThreadRunNewParams{
		AssistantID: assistantID,
	})
	if err != nil {
		return Job{}, fmt.Errorf("start run on thread %s: %w", thread.ID, err)
	}
	return jobFromRun(run, thread.ID), nil
}

func (b *OpenAIBackend) Fetch(ctx context.Context, job Job) (Job, error) {
	if b == nil || b.client == nil {
		return Job{}, fmt.Errorf("nil openai client")
	}
	run, err := b.client.Beta.Threads.Runs.Get(ctx, job.ThreadID, job.ID)
	if err != nil {
		return Job{}, err
	}
	return jobFromRun(run, job.ThreadID), nil
}

// Messages lists the job's thread newest first. The order is requested explicitly
// rather than relying on the API default.
func (b *OpenAIBackend) Messages(ctx context.Context, job Job) ([]Message, error) {
	if b == nil || b.client == nil {
		return nil, fmt.Errorf("nil openai client")
	}
	page, err := b.client.Beta.Threads.Messages.List(ctx, job.ThreadID, openai.BetaThreadMessageListParams{
		Order: openai.BetaThreadMessageListParamsOrderDesc,
		Limit: openai.Int(10),
	})
	if err != nil {
		return nil, err
	}
	msgs := make([]Message, 0, len(page.Data))
	for _, m := range page.Data {
		msgs = append(msgs, Message{
			ID:   m.ID,
			Role: string(m.Role),
			Text: firstText(m.Content),
		})
	}
	return msgs, nil
}

func jobFromRun(run *openai.Run, threadID string) Job {
	if run.ThreadID != "" {
		threadID = run.ThreadID
	}
	return Job{
		ID:        run.ID,
		ThreadID:  threadID,
		Status:    Status(run.Status),
		LastError: run.LastError.Message,
	}
}

// firstText returns the value of the first text part; image and refusal parts are skipped.
func firstText(content []openai.MessageContentUnion) string {
	for _, c := range content {
		if c.Type == "text" {
			return c.Text.Value
		}
	}
	return ""
}
