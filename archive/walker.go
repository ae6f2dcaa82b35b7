// Package archive reads stories packed into zip bundles. Story path may point
// inside archive: "bundle.zip/stories/demo.yaml". When path ends at archive
// the first story under "story/" is used, which is how debug reports keep the
// story they were produced for.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/h2non/filetype"
	"github.com/maruel/natural"

	"storynav/pages"
)

// ReportPrefix is directory story is kept under in debug report.
const ReportPrefix = "story/"

var ErrNoStory = errors.New("no story found in archive")

// WalkFunc is called for every story file in archive visited by Walk. If an
// error is returned, processing stops.
type WalkFunc func(archive string, file *zip.File) error

// Walk calls walkFn for every story file under prefix in natural name order.
// Entries escaping archive root make walk fail.
func Walk(archive, prefix string, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	var files []*zip.File
	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if !f.FileInfo().IsDir() && strings.HasPrefix(name, prefix) && pages.IsStory(name) {
			files = append(files, f)
		}
	}
	sort.SliceStable(files, func(i, j int) bool {
		return natural.Less(files[i].Name, files[j].Name)
	})
	for _, f := range files {
		if err := walkFn(archive, f); err != nil {
			return err
		}
	}
	return nil
}

func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}

// IsArchive reports whether file content is zip archive.
func IsArchive(name string) bool {
	f, err := os.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	head := make([]byte, 262)
	n, _ := io.ReadFull(f, head)
	kind, err := filetype.Archive(head[:n])
	return err == nil && kind.Extension == "zip"
}

// Split separates archive part of the story path from path inside it. When
// no existing archive is found on the path archive is empty.
func Split(name string) (archive, inner string) {
	name = strings.ReplaceAll(name, `\`, "/")
	if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
		if IsArchive(name) {
			return name, ""
		}
		return "", name
	}
	for i := strings.LastIndex(name, "/"); i > 0; i = strings.LastIndex(name[:i], "/") {
		if fi, err := os.Stat(name[:i]); err == nil && !fi.IsDir() {
			if IsArchive(name[:i]) {
				return name[:i], name[i+1:]
			}
			break
		}
	}
	return "", name
}

// ReadStory returns story name and content. Path is either regular file or
// points into zip archive.
func ReadStory(name string) (string, []byte, error) {
	arc, inner := Split(name)
	if arc == "" {
		data, err := os.ReadFile(name)
		if err != nil {
			return "", nil, fmt.Errorf("unable to read story: %w", err)
		}
		return path.Base(inner), data, nil
	}

	prefix := inner
	if prefix == "" {
		prefix = ReportPrefix
	}
	var (
		found string
		data  []byte
		stop  = errors.New("found")
	)
	err := Walk(arc, prefix, func(_ string, f *zip.File) error {
		if inner != "" && f.Name != inner {
			return nil
		}
		r, err := f.Open()
		if err != nil {
			return err
		}
		defer r.Close()
		if data, err = io.ReadAll(r); err != nil {
			return err
		}
		found = f.Name
		return stop
	})
	if err != nil && !errors.Is(err, stop) {
		return "", nil, fmt.Errorf("unable to read story from %s: %w", arc, err)
	}
	if found == "" {
		return "", nil, fmt.Errorf("%w: %s", ErrNoStory, name)
	}
	return path.Base(found), data, nil
}
