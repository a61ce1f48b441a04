// Package openaillm asks an OpenAI-compatible chat model for clip
// proposals over a full transcript.
package openaillm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/Dreiko98/clipforge/internal/config"
	"github.com/Dreiko98/clipforge/internal/domain/clips"
	"github.com/Dreiko98/clipforge/internal/types"
)

const requestTimeout = 90 * time.Second

type Adapter struct {
	client openai.Client
	key    string
	cfg    config.AI
}

// New builds an adapter for the given API key and configuration. An empty
// baseURL keeps the client pointed at the official endpoint; setting it
// lets any compatible gateway serve the same request shape.
func New(apiKey, baseURL string, cfg config.AI) *Adapter {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &Adapter{client: openai.NewClient(opts...), key: apiKey, cfg: cfg}
}

// Propose sends the timestamped transcript to the model and parses its
// structured JSON answer. The returned set is raw model output; bounds
// validation happens downstream in the clips domain.
func (a *Adapter) Propose(ctx context.Context, tr types.Transcript, keywordsFilter []string) (clips.ProposalSet, error) {
	if len(tr.Segments) == 0 {
		return clips.ProposalSet{}, &clips.SegmentationError{Msg: "openaillm: empty transcript"}
	}

	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := a.client.Chat.Completions.New(reqCtx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(a.userPrompt(tr, keywordsFilter)),
		},
		Model:       a.cfg.Model,
		MaxTokens:   openai.Int(a.cfg.MaxTokens),
		Temperature: openai.Float(a.cfg.Temperature),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{Type: "json_object"},
		},
	})
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return clips.ProposalSet{}, &clips.SegmentationError{
				Msg: fmt.Sprintf("openaillm: timeout after %s (model=%s)", requestTimeout, a.cfg.Model),
			}
		}
		return clips.ProposalSet{}, &clips.SegmentationError{
			Msg: "openaillm: request",
			Err: errors.New(redactSecrets(err.Error(), a.key)),
		}
	}
	if len(resp.Choices) == 0 {
		return clips.ProposalSet{}, &clips.SegmentationError{Msg: "openaillm: no choices in response"}
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	clean, err := extractJSONObject(content)
	if err != nil {
		return clips.ProposalSet{}, &clips.SegmentationError{Msg: "openaillm", Err: err}
	}

	var set clips.ProposalSet
	if err := json.Unmarshal([]byte(clean), &set); err != nil {
		return clips.ProposalSet{}, &clips.SegmentationError{Msg: "openaillm: parsing response", Err: err}
	}
	return set, nil
}

const systemPrompt = "You are an expert short-form video editor. " +
	"You analyze transcripts and pick the moments most likely to perform as vertical clips. " +
	"Answer with strictly valid JSON only, no markdown and no code fences."

func (a *Adapter) userPrompt(tr types.Transcript, keywordsFilter []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Find up to %d clips in the transcript below.\n", a.cfg.MaxClips)
	fmt.Fprintf(&b, "Each clip must last between %.0f and %.0f seconds, ideally around %.0f.\n",
		a.cfg.MinClip.Seconds(), a.cfg.MaxClip.Seconds(), a.cfg.TargetClip.Seconds())
	b.WriteString("Clips must start and end on complete thoughts and stand alone without context.\n")
	if len(keywordsFilter) > 0 {
		fmt.Fprintf(&b, "Prefer moments covering these topics: %s.\n", strings.Join(keywordsFilter, ", "))
	}
	b.WriteString("\nRespond with a JSON object of this exact shape:\n")
	b.WriteString(`{"clips":[{"id":"clip_1","title":"...","start_time":0.0,"end_time":0.0,` +
		`"duration":0.0,"content_type":"...","hook":"...","summary":"...",` +
		`"keywords":["..."],"viral_potential":0,"coherence_score":0,` +
		`"engagement_factors":["..."]}],"analysis_notes":"...","total_clips_found":0}`)
	b.WriteString("\n\nTranscript (one line per segment, [seconds] text):\n")
	b.WriteString(clips.PromptLines(tr.Segments))
	return b.String()
}

func extractJSONObject(s string) (string, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return "", errors.New("empty content")
	}
	if strings.HasPrefix(t, "```") {
		if i := strings.Index(t, "\n"); i >= 0 {
			t = t[i+1:]
		}
		if j := strings.LastIndex(t, "```"); j >= 0 {
			t = t[:j]
		}
		t = strings.TrimSpace(t)
	}
	start := strings.Index(t, "{")
	end := strings.LastIndex(t, "}")
	if start >= 0 && end > start {
		return t[start : end+1], nil
	}
	return "", fmt.Errorf("could not locate JSON object in: %q", truncate(t, 200))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

var (
	bearerTokenRE = regexp.MustCompile(`(?i)\bBearer\s+[A-Za-z0-9._-]+\b`)
	apiKeyFieldRE = regexp.MustCompile(`(?i)(api[_-]?key\s*[:=]\s*)([^\n\r,;]+)`)
)

func redactSecrets(s, apiKey string) string {
	if s == "" {
		return s
	}
	out := s
	if apiKey != "" {
		out = strings.ReplaceAll(out, apiKey, "[REDACTED]")
	}
	out = bearerTokenRE.ReplaceAllString(out, "Bearer [REDACTED]")
	out = apiKeyFieldRE.ReplaceAllString(out, "${1}[REDACTED]")
	return out
}
