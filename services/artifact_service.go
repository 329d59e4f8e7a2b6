package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ArtifactSink persists generated image bytes and reports where they landed.
type ArtifactSink interface {
	Save(data []byte) (string, error)
}

// DownloadsSink writes images into a local directory with collision-proof
// timestamped names, the same place users already look for saved files.
type DownloadsSink struct {
	dir string
}

func NewDownloadsSink(dir string) *DownloadsSink {
	return &DownloadsSink{dir: dir}
}

func (s *DownloadsSink) Save(data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create artifact dir: %w", err)
	}
	name := fmt.Sprintf("openai_image_%s_%s.png",
		time.Now().Format("20060102_150405"),
		strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}
	return path, nil
}
