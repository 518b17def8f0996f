package whisper_cpp

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"voicemail-whisper/internal/app/api"
	"voicemail-whisper/internal/app/audio"
	"voicemail-whisper/internal/app/model"
)

const providerName = "whisper_cpp"

// Config configures the whisper.cpp command line transcriber. A tier without a
// model path is not offered.
type Config struct {
	BinaryPath string
	Models     map[model.Tier]string
	Language   string
	Prompt     string
	Threads    int
	TempDir    string
}

// LocalTranscriber implements local transcription, using local binary commands.
type LocalTranscriber struct {
	config  Config
	logger  *zap.Logger
	prepare func(ctx context.Context, input, dir string) (string, error)
}

var _ api.Transcriber = (*LocalTranscriber)(nil)

// NewLocalTranscriber creates a new instance of LocalTranscriber.
func NewLocalTranscriber(config Config, logger *zap.Logger) *LocalTranscriber {
	if config.Language == "" {
		config.Language = "en"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalTranscriber{
		config:  config,
		logger:  logger.With(zap.String("provider", providerName)),
		prepare: audio.PrepareWav,
	}
}

func (lt *LocalTranscriber) Name() string {
	return providerName
}

// Tiers returns the tiers with a configured model, fast first.
func (lt *LocalTranscriber) Tiers() []model.Tier {
	var tiers []model.Tier
	for _, tier := range []model.Tier{model.TierFast, model.TierAccurate} {
		if lt.config.Models[tier] != "" {
			tiers = append(tiers, tier)
		}
	}
	return tiers
}

// Transcribe runs the binary with the tier's model. All intermediate files live in a
// private temp dir removed before returning; the input audio is left in place.
func (lt *LocalTranscriber) Transcribe(ctx context.Context, audioPath string, tier model.Tier) (*api.Transcript, error) {
	modelPath := lt.config.Models[tier]
	if modelPath == "" {
		return nil, fmt.Errorf("%s: no model for tier %s", providerName, tier)
	}
	if _, err := os.Stat(audioPath); err != nil {
		return nil, fmt.Errorf("input audio: %w", err)
	}

	workDir, err := os.MkdirTemp(lt.config.TempDir, "whisper_cpp-*")
	if err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	start := time.Now()

	input, err := lt.prepare(ctx, audioPath, workDir)
	if err != nil {
		return nil, fmt.Errorf("prepare audio: %w", err)
	}

	outputBase := filepath.Join(workDir, "transcript")
	args := lt.buildArgs(modelPath, input, outputBase)

	command := exec.CommandContext(ctx, lt.config.BinaryPath, args...)
	command.WaitDelay = time.Second
	var stdout, stderr bytes.Buffer
	command.Stdout = &stdout
	command.Stderr = &stderr

	lt.logger.Debug("running transcription command",
		zap.String("tier", string(tier)),
		zap.String("command", lt.config.BinaryPath+" "+strings.Join(args, " ")))

	if err := command.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("command execution error: %v, stderr: %s", err, strings.TrimSpace(stderr.String()))
	}

	output, err := os.ReadFile(outputBase + ".txt")
	if err != nil {
		return nil, fmt.Errorf("failed to read output file: %w", err)
	}

	elapsed := time.Since(start)
	lt.logger.Debug("transcription finished", zap.String("tier", string(tier)), zap.Duration("elapsed", elapsed))

	return &api.Transcript{
		Text:    strings.TrimSpace(string(output)),
		Seconds: elapsed.Seconds(),
	}, nil
}

func (lt *LocalTranscriber) buildArgs(modelPath, input, outputBase string) []string {
	args := []string{
		"-m", modelPath,
		"-l", lt.config.Language,
		"-np",
		"-otxt",
		"-f", input,
		"-of", outputBase,
	}
	if lt.config.Prompt != "" {
		args = append(args, "--prompt", lt.config.Prompt)
	}
	if lt.config.Threads > 0 {
		args = append(args, "-t", fmt.Sprint(lt.config.Threads))
	}
	return args
}
