// Package whispercpp runs the whisper.cpp CLI and parses its JSON output.
package whispercpp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Dreiko98/clipforge/internal/types"
)

type Adapter struct {
	bin   string
	model string
}

func New(binPath, modelPath string) *Adapter {
	return &Adapter{bin: binPath, model: modelPath}
}

// Transcribe invokes whisper.cpp on wavPath with word timestamps enabled.
// The JSON artifact lands in cacheDir and is reused on the next run for the
// same cache key, so repeated runs over one video skip the ASR pass.
func (a *Adapter) Transcribe(ctx context.Context, wavPath, cacheDir string) (types.Transcript, error) {
	outPrefix := filepath.Join(cacheDir, "whisper")
	jsonPath := outPrefix + ".json"

	if tr, err := loadCached(jsonPath); err == nil {
		log.Debug().Str("path", jsonPath).Msg("reusing cached transcript")
		return tr, nil
	}

	args := []string{
		"-m", a.model,
		"-f", wavPath,
		"-oj",
		"-of", outPrefix,
		"-owts",
	}
	cmd := exec.CommandContext(ctx, a.bin, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return types.Transcript{}, fmt.Errorf("whisper.cpp failed: %w\n%s", err, string(b))
	}

	return loadCached(jsonPath)
}

func loadCached(jsonPath string) (types.Transcript, error) {
	jb, err := os.ReadFile(jsonPath)
	if err != nil {
		return types.Transcript{}, err
	}

	var tr types.Transcript
	if err := json.Unmarshal(jb, &tr); err != nil {
		return types.Transcript{}, fmt.Errorf("parsing transcript %s: %w", jsonPath, err)
	}
	for i := range tr.Segments {
		tr.Segments[i].Text = strings.TrimSpace(tr.Segments[i].Text)
		for j := range tr.Segments[i].Words {
			tr.Segments[i].Words[j].Word = strings.TrimSpace(tr.Segments[i].Words[j].Word)
		}
	}
	return tr, nil
}
