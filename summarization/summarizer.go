// Package summarization produces short ops digests for incidents that keep
// attracting reports. Digests are advisory and write-once; nothing in the
// submit or query path depends on them.
package summarization

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/goldjoker92/vigiApp-sub000/logging"
	"github.com/goldjoker92/vigiApp-sub000/types"
)

const maxPromptLength = 4000 // rough character limit for prompt

// IncidentSource lists hot incidents and persists their digests.
type IncidentSource interface {
	HotIncidents(ctx context.Context, since time.Time, minReports int) ([]types.CanonicalIncident, error)
	SetDigestOnce(ctx context.Context, id, digest string) error
}

// GenerateDigests finds incidents with minReports+ distinct reporters since
// the cutoff and asks OpenAI for a 2-3 sentence digest each. Incidents that
// already carry a digest are skipped by the write-once store call.
func GenerateDigests(ctx context.Context, source IncidentSource, client *openai.Client, since time.Time, minReports int) error {
	hot, err := source.HotIncidents(ctx, since, minReports)
	if err != nil {
		return fmt.Errorf("list hot incidents: %w", err)
	}
	if len(hot) == 0 {
		return nil
	}
	logging.L().Infow("generating digests", "incidents", len(hot))

	var wg sync.WaitGroup
	for i := range hot {
		if hot[i].Digest != "" {
			continue
		}
		wg.Add(1)
		go func(inc types.CanonicalIncident) {
			defer wg.Done()
			digest, err := callOpenAIDigest(ctx, inc, client)
			if err != nil {
				logging.L().Warnw("digest generation failed", "incident", inc.ID, "err", err)
				return
			}
			if err := source.SetDigestOnce(ctx, inc.ID, digest); err != nil {
				logging.L().Warnw("digest write failed", "incident", inc.ID, "err", err)
			}
		}(hot[i])
	}
	wg.Wait()
	return nil
}

func callOpenAIDigest(ctx context.Context, inc types.CanonicalIncident, client *openai.Client) (string, error) {
	prompt := buildPrompt(inc)

	resp, err := client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4oMini,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You summarize crowd-sourced public safety incidents for an operations dashboard, concisely and without speculation.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   150,
			N:           1,
			Temperature: 0.5, // lower temperature for a more focused digest
		},
	)
	if err != nil {
		return "", fmt.Errorf("openai chat completion error: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai returned empty response or choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func buildPrompt(inc types.CanonicalIncident) string {
	aliases := strings.Join(inc.CategoryAliases, ", ")
	prompt := fmt.Sprintf(
		"Incident category: %s\nOther labels reporters used: %s\nDistinct reporters: %d\nFirst report: %s\nLatest report: %s\nFirst reporter's description:\n---\n%s\n---\n\nWrite a 2-3 sentence digest of what is likely happening.",
		inc.Payload.Category, aliases, inc.ReportsCount,
		inc.CreatedAt.UTC().Format(time.RFC3339),
		inc.LastReportAt.UTC().Format(time.RFC3339),
		inc.Payload.Description,
	)
	if len(prompt) > maxPromptLength {
		prompt = prompt[:maxPromptLength]
	}
	return prompt
}
