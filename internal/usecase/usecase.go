// Package usecase orchestrates one end-to-end run: audio extraction,
// transcription, candidate selection, subtitle generation and rendering.
package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Dreiko98/clipforge/internal/config"
	"github.com/Dreiko98/clipforge/internal/domain/clips"
	"github.com/Dreiko98/clipforge/internal/domain/subtitles"
	"github.com/Dreiko98/clipforge/internal/ports"
	"github.com/Dreiko98/clipforge/internal/types"
)

type Deps struct {
	Video    ports.VideoTool
	ASR      ports.ASR
	Proposer ports.ClipProposer // optional, nil disables the AI path
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type Input struct {
	InputMP4 string
	BrollMP4 string // optional, enables dual-panel composition
	ClipsN   int
	UseAI    bool
	Burn     bool
	CacheDir string
	OutDir   string

	Segmentation   config.Segmentation
	AI             config.AI
	Subtitles      config.SubtitleOptions
	KeywordsFilter []string
}

type Result struct {
	Manifest types.Manifest
}

// Run executes the full pipeline. The AI path is best effort: when the
// model call fails or yields nothing usable the heuristic segmenter takes
// over, so a run never dies on a flaky model.
func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	wav := filepath.Join(in.CacheDir, "audio.wav")
	if err := u.d.Video.ExtractAudioMono16k(ctx, in.InputMP4, wav); err != nil {
		return Result{}, err
	}

	tr, err := u.d.ASR.Transcribe(ctx, wav, in.CacheDir)
	if err != nil {
		return Result{}, err
	}

	candidates, err := u.selectCandidates(ctx, tr, in)
	if err != nil {
		return Result{}, err
	}

	runID := uuid.NewString()
	candidatesPath := filepath.Join(in.OutDir, "candidates.json")
	if err := clips.WriteCandidates(candidatesPath, runID, candidates); err != nil {
		return Result{}, err
	}
	log.Info().Str("run_id", runID).Int("candidates", len(candidates)).Str("path", candidatesPath).Msg("candidates exported")

	if in.ClipsN > 0 && len(candidates) > in.ClipsN {
		candidates = candidates[:in.ClipsN]
	}

	m := types.Manifest{RunID: runID, Input: in.InputMP4}
	for i, c := range candidates {
		clip, err := u.produceClip(ctx, tr, c, i+1, in)
		if err != nil {
			return Result{}, err
		}
		m.Clips = append(m.Clips, clip)
	}
	return Result{Manifest: m}, nil
}

// selectCandidates runs the AI proposer when enabled and falls back to the
// heuristic segmenter on any failure or empty result.
func (u Usecase) selectCandidates(ctx context.Context, tr types.Transcript, in Input) ([]types.ClipCandidate, error) {
	if in.UseAI && u.d.Proposer != nil {
		set, err := u.d.Proposer.Propose(ctx, tr, in.KeywordsFilter)
		if err != nil {
			log.Warn().Err(err).Msg("AI proposer failed, falling back to heuristics")
		} else if out := clips.FromProposals(set, tr, in.AI); len(out) > 0 {
			log.Info().Int("clips", len(out)).Msg("using AI clip proposals")
			return out, nil
		} else {
			log.Warn().Msg("AI proposer returned no usable clips, falling back to heuristics")
		}
	}
	return clips.Segment(tr, in.Segmentation, in.KeywordsFilter)
}

func (u Usecase) produceClip(ctx context.Context, tr types.Transcript, c types.ClipCandidate, n int, in Input) (types.ManifestClip, error) {
	id := fmt.Sprintf("%03d", n)
	clipPath := filepath.Join(in.OutDir, "clips", id+".mp4")
	assPath := filepath.Join(in.OutDir, "subtitles", id+".ass")
	srtPath := filepath.Join(in.OutDir, "subtitles", id+".srt")

	cues := u.buildCues(tr, c, id, in)

	if err := subtitles.WriteSRT(srtPath, cues); err != nil {
		return types.ManifestClip{}, err
	}
	ass := subtitles.RenderASS(cues, subtitles.DefaultStyle(), "")
	if err := os.WriteFile(assPath, []byte(ass), 0o644); err != nil {
		return types.ManifestClip{}, err
	}

	burn := ""
	if in.Burn {
		burn = assPath
	}
	if in.BrollMP4 != "" {
		if err := u.d.Video.ComposeDualPanel(ctx, in.InputMP4, in.BrollMP4, c.Start, c.End, clipPath, burn); err != nil {
			return types.ManifestClip{}, err
		}
	} else {
		if err := u.d.Video.RenderClip(ctx, in.InputMP4, c.Start, c.End, clipPath, burn); err != nil {
			return types.ManifestClip{}, err
		}
	}

	return types.ManifestClip{
		ID:        id,
		StartSec:  c.Start.Seconds(),
		EndSec:    c.End.Seconds(),
		Score:     c.Score,
		Text:      c.Text,
		Keywords:  c.Keywords,
		File:      filepath.ToSlash(filepath.Join("clips", id+".mp4")),
		Subtitles: filepath.ToSlash(filepath.Join("subtitles", id+".ass")),
		SRT:       filepath.ToSlash(filepath.Join("subtitles", id+".srt")),
	}, nil
}

// buildCues restricts the transcript to the candidate window, builds cues
// in the configured mode and rebases them onto the clip-local timeline.
func (u Usecase) buildCues(tr types.Transcript, c types.ClipCandidate, id string, in Input) []types.SubtitleCue {
	startSec := c.Start.Seconds()
	endSec := c.End.Seconds()

	var window types.Transcript
	window.Language = tr.Language
	for _, seg := range tr.Segments {
		if seg.End >= startSec && seg.Start <= endSec {
			window.Segments = append(window.Segments, seg)
		}
	}

	cues := subtitles.Build(window, in.Subtitles)
	cues = subtitles.Rebase(cues, c.Start, c.Duration(), subtitles.DefaultRebaseTolerance)

	for _, issue := range subtitles.ValidateTiming(cues) {
		log.Warn().Str("clip", id).Msg(issue)
	}
	return cues
}
