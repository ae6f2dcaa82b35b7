package pages

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"storynav/common"
)

// Story is loaded story document: metadata and page graph.
type Story struct {
	ID                string
	Title             string
	Lang              string
	BackgroundAudio   string
	SupportsLandscape bool

	Graph *Graph

	// source markup when story was read from it, kept so it could be written
	// back with updated navigation attributes
	doc *etree.Document
}

// MediaCount returns number of audio and video elements in the whole story,
// background audio included.
func (s *Story) MediaCount() (audio, video int) {
	if s.BackgroundAudio != "" {
		audio++
	}
	for _, p := range s.Graph.Pages() {
		for _, m := range p.Media {
			switch m.Kind {
			case common.MediaKindAudio:
				audio++
			case common.MediaKindVideo:
				video++
			}
		}
	}
	return audio, video
}

// Load reads story from file, format is selected by file extension: YAML
// definition or story markup.
func Load(path string, log *zap.Logger) (*Story, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open story: %w", err)
	}
	defer f.Close()
	return Read(filepath.Base(path), f, log)
}

// Read parses story, name is only used to select format.
func Read(name string, r io.Reader, log *zap.Logger) (*Story, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return LoadDefinition(r, log)
	case ".html", ".xhtml", ".xml", ".htm":
		return ReadMarkup(r, log)
	}
	return nil, fmt.Errorf("unsupported story format: %s", filepath.Base(name))
}

// IsStory reports whether file name has one of supported story extensions.
func IsStory(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".html", ".xhtml", ".xml", ".htm":
		return true
	}
	return false
}
