package archive

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

const story = "id: packed\npages:\n  - id: a\n  - id: b\n"

func makeZip(t *testing.T, files map[string]string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "bundle.zip")
	f, err := os.Create(name)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for n, content := range files {
		fw, err := w.Create(n)
		if err != nil {
			t.Fatalf("Failed to create file %s in zip: %v", n, err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write content for %s: %v", n, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return name
}

func TestWalk(t *testing.T) {
	zipPath := makeZip(t, map[string]string{
		"story/page-10.yaml": story,
		"story/page-2.yaml":  story,
		"story/notes.txt":    "not a story",
		"other/markup.xhtml": "<html/>",
		"history.db":         "",
	})

	tests := []struct {
		name   string
		prefix string
		want   []string
	}{
		{"report prefix", ReportPrefix, []string{"story/page-2.yaml", "story/page-10.yaml"}},
		{"other", "other/", []string{"other/markup.xhtml"}},
		{"everything", "", []string{"other/markup.xhtml", "story/page-2.yaml", "story/page-10.yaml"}},
		{"no match", "missing/", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var visited []string
			err := Walk(zipPath, tt.prefix, func(archive string, file *zip.File) error {
				if archive != zipPath {
					t.Errorf("archive = %s, want %s", archive, zipPath)
				}
				visited = append(visited, file.Name)
				return nil
			})
			if err != nil {
				t.Fatalf("Walk() error = %v", err)
			}
			if !slices.Equal(visited, tt.want) {
				t.Errorf("visited %v, want %v", visited, tt.want)
			}
		})
	}

	t.Run("walkFn error stops", func(t *testing.T) {
		stop := errors.New("stop")
		calls := 0
		err := Walk(zipPath, "", func(string, *zip.File) error {
			calls++
			return stop
		})
		if !errors.Is(err, stop) || calls != 1 {
			t.Errorf("Walk() error = %v after %d calls", err, calls)
		}
	})
}

func TestWalk_Invalid(t *testing.T) {
	t.Run("nonexistent file", func(t *testing.T) {
		if err := Walk(filepath.Join(t.TempDir(), "none.zip"), "", nil); err == nil {
			t.Error("Walk() expected error")
		}
	})

	t.Run("not zip", func(t *testing.T) {
		name := filepath.Join(t.TempDir(), "fake.zip")
		if err := os.WriteFile(name, []byte("plain text"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := Walk(name, "", nil); err == nil {
			t.Error("Walk() expected error")
		}
		if IsArchive(name) {
			t.Error("IsArchive() = true for text file")
		}
	})

	t.Run("unsafe entry", func(t *testing.T) {
		zipPath := makeZip(t, map[string]string{"../escape.yaml": story})
		err := Walk(zipPath, "", func(string, *zip.File) error { return nil })
		if err == nil {
			t.Error("Walk() accepted path traversal")
		}
	})
}

func TestIsSafePath(t *testing.T) {
	for name, want := range map[string]bool{
		"story/a.yaml":    true,
		"a..b/c.yaml":     true,
		"/etc/passwd":     false,
		`\windows\x`:      false,
		"story/../../x":   false,
		"..":              false,
		"deep/er/ok.yaml": true,
	} {
		if got := isSafePath(name); got != want {
			t.Errorf("isSafePath(%q) = %t, want %t", name, got, want)
		}
	}
}

func TestReadStory(t *testing.T) {
	zipPath := makeZip(t, map[string]string{
		"story/report.yaml":   story,
		"stories/second.yaml": "id: second\npages:\n  - id: x\n",
	})
	plain := filepath.Join(t.TempDir(), "plain.yml")
	if err := os.WriteFile(plain, []byte(story), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		path     string
		wantName string
		wantErr  bool
	}{
		{"plain file", plain, "plain.yml", false},
		{"report archive", zipPath, "report.yaml", false},
		{"inside archive", zipPath + "/stories/second.yaml", "second.yaml", false},
		{"missing inside archive", zipPath + "/stories/third.yaml", "", true},
		{"missing file", filepath.Join(t.TempDir(), "none.yaml"), "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, data, err := ReadStory(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadStory() error = %v, wantErr %t", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if name != tt.wantName {
				t.Errorf("name = %q, want %q", name, tt.wantName)
			}
			if len(data) == 0 {
				t.Error("no data read")
			}
		})
	}

	t.Run("no story", func(t *testing.T) {
		empty := makeZip(t, map[string]string{"readme.txt": "hello"})
		if _, _, err := ReadStory(empty); !errors.Is(err, ErrNoStory) {
			t.Errorf("ReadStory() error = %v, want ErrNoStory", err)
		}
	})
}

func TestSplit(t *testing.T) {
	zipPath := makeZip(t, map[string]string{"story/a.yaml": story})

	if arc, inner := Split(zipPath + "/story/a.yaml"); arc != zipPath || inner != "story/a.yaml" {
		t.Errorf("Split() = %q, %q", arc, inner)
	}
	if arc, inner := Split(zipPath); arc != zipPath || inner != "" {
		t.Errorf("Split() = %q, %q", arc, inner)
	}
	if arc, inner := Split("not/there.yaml"); arc != "" || inner != "not/there.yaml" {
		t.Errorf("Split() = %q, %q", arc, inner)
	}
}
