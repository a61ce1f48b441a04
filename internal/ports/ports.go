package ports

import (
	"context"
	"time"

	"github.com/Dreiko98/clipforge/internal/domain/clips"
	"github.com/Dreiko98/clipforge/internal/types"
)

// VideoTool shells out to the media tool for extraction, rendering and
// probing. Implementations own their own timeouts via ctx.
type VideoTool interface {
	ExtractAudioMono16k(ctx context.Context, inMP4, outWav string) error
	RenderClip(ctx context.Context, inMP4 string, start, end time.Duration, outMP4 string, burnASS string) error
	ComposeDualPanel(ctx context.Context, mainMP4, brollMP4 string, start, end time.Duration, outMP4 string, burnASS string) error
	ProbeDuration(ctx context.Context, inMP4 string) (time.Duration, error)
}

// ASR produces a transcript for an audio file, caching artifacts under
// cacheDir.
type ASR interface {
	Transcribe(ctx context.Context, wavPath, cacheDir string) (types.Transcript, error)
}

// ClipProposer asks an external model for clip proposals over the full
// transcript. A failed call or unparseable response surfaces as an error;
// validation of individual proposals happens in the clips domain.
type ClipProposer interface {
	Propose(ctx context.Context, tr types.Transcript, keywordsFilter []string) (clips.ProposalSet, error)
}
