// internal/snapshot/file_source.go
package snapshot

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/seoulbrew/sitescope/internal/domain"
)

// Source loads a fully built Snapshot from somewhere.
type Source interface {
	Load(ctx context.Context) (*Snapshot, error)
}

// FileSource reads the dashboard payload and the optional detail overlay
// from local JSON files.
type FileSource struct {
	dataPath   string
	detailPath string
}

func NewFileSource(dataPath, detailPath string) *FileSource {
	return &FileSource{dataPath: dataPath, detailPath: detailPath}
}

func (fs *FileSource) Load(ctx context.Context) (*Snapshot, error) {
	data, err := os.ReadFile(fs.dataPath)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrSnapshotMissing, fs.dataPath, err)
	}

	var raw RawSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrSnapshotMissing, fs.dataPath, err)
	}

	overlay, overlayBytes, err := fs.loadOverlay()
	if err != nil {
		return nil, err
	}

	return Build(&raw, overlay, Fingerprint(data, overlayBytes))
}

// loadOverlay reads the detail overlay. The overlay is optional: a missing
// file degrades to base metrics only, a present-but-broken file is an error.
func (fs *FileSource) loadOverlay() (Overlay, []byte, error) {
	if fs.detailPath == "" {
		return nil, nil, nil
	}

	data, err := os.ReadFile(fs.detailPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Info().Str("path", fs.detailPath).Msg("detail overlay not found, using base metrics only")
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("%w: read %s: %v", domain.ErrSnapshotMissing, fs.detailPath, err)
	}

	var byName map[string]DetailMetrics
	if err := json.Unmarshal(data, &byName); err != nil {
		return nil, nil, fmt.Errorf("%w: decode %s: %v", domain.ErrSnapshotMissing, fs.detailPath, err)
	}

	overlay := make(Overlay, len(byName))
	for name, metrics := range byName {
		overlay[NormalizeDongName(name)] = metrics
	}
	return overlay, data, nil
}

// NormalizeDongName strips the punctuation variants (middle dot, period,
// bullet) that differ between the data sets, so overlay lookups join on a
// stable key.
func NormalizeDongName(name string) string {
	replacer := strings.NewReplacer("·", "", ".", "", "•", "")
	return strings.TrimSpace(replacer.Replace(name))
}

// Fingerprint derives a stable snapshot id from the source content. The
// same bytes always produce the same id, so cache keys survive restarts.
func Fingerprint(parts ...[]byte) string {
	h := sha1.New()
	for _, p := range parts {
		h.Write(p)
	}
	return hex.EncodeToString(h.Sum(nil))
}
