package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// SupportedExtensions lists the container formats accepted for upload and conversion.
var SupportedExtensions = []string{".mp3", ".m4a", ".wav", ".ogg", ".webm", ".flac"}

type probeOutput struct {
	Streams []struct {
		CodecName  string `json:"codec_name"`
		CodecType  string `json:"codec_type"`
		SampleRate string `json:"sample_rate"`
		Channels   int    `json:"channels"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// IsSupported reports whether the file extension is one ffmpeg conversion is attempted for.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// WavPath returns the name the 16kHz conversion of input gets inside dir.
func WavPath(input, dir string) string {
	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(dir, name+"_16khz.wav")
}

func probe(ctx context.Context, path string) (*probeOutput, error) {
	cmd := exec.CommandContext(ctx, "ffprobe", "-v", "quiet", "-print_format", "json", "-show_streams", "-show_format", path)
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	var out probeOutput
	if err := json.Unmarshal(output, &out); err != nil {
		return nil, fmt.Errorf("decode ffprobe output: %w", err)
	}
	return &out, nil
}

// Is16kHzWav reports whether the file already is 16-bit PCM at 16kHz, the input whisper.cpp expects.
func Is16kHzWav(ctx context.Context, path string) (bool, error) {
	out, err := probe(ctx, path)
	if err != nil {
		return false, err
	}
	for _, stream := range out.Streams {
		if stream.CodecType == "audio" && stream.CodecName == "pcm_s16le" && stream.SampleRate == "16000" {
			return true, nil
		}
	}
	return false, nil
}

// Duration returns the clip length in seconds.
func Duration(ctx context.Context, path string) (float64, error) {
	out, err := probe(ctx, path)
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(strings.TrimSpace(out.Format.Duration), 64)
}

// PrepareWav returns a path whisper.cpp can read: input itself when it is already a
// 16kHz WAV, otherwise a mono conversion written into dir. The input is never modified.
func PrepareWav(ctx context.Context, input, dir string) (string, error) {
	if !IsSupported(input) {
		return "", fmt.Errorf("unsupported audio format %q", filepath.Ext(input))
	}

	ok, err := Is16kHzWav(ctx, input)
	if err != nil {
		return "", err
	}
	if ok {
		return input, nil
	}

	output := WavPath(input, dir)
	cmd := exec.CommandContext(ctx, "ffmpeg", "-y", "-i", input, "-vn", "-acodec", "pcm_s16le", "-ar", "16000", "-ac", "1", output)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ffmpeg error: %v, stderr: %s", err, stderr.String())
	}
	return output, nil
}
