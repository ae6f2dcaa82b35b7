package pages

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"storynav/common"
)

const sampleMarkup = `<?xml version="1.0" encoding="UTF-8"?>
<story id="sample" title="Sample" lang="he" background-audio="theme.mp3">
  <story-page id="cover" auto-advance-after="5s" auto-advance-to="quiz">
    <layer>
      <video id="intro" src="intro.mp4"/>
    </layer>
  </story-page>
  <story-page id="middle">
    <audio src="voice.ogg"/>
    <media src="clip.webm"/>
    <media src="notes.txt"/>
    <page-attachment/>
  </story-page>
  <story-page id="quiz" access="">
    <button on="tap:story.goToPage(id=cover)">again</button>
    <button on="tap:story.goToPage(id=end),story.goToPage(id=middle)">go</button>
  </story-page>
  <story-page id="middle" access-hide="" return-to="cover"/>
  <story-page id="end" ad=""/>
</story>
`

func TestReadMarkup(t *testing.T) {
	st, err := ReadMarkup(strings.NewReader(sampleMarkup), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("ReadMarkup() error = %v", err)
	}
	if st.ID != "sample" || st.Lang != "he" || st.BackgroundAudio != "theme.mp3" {
		t.Errorf("story metadata = %+v", st)
	}
	g := st.Graph
	if g.Len() != 5 {
		t.Fatalf("graph has %d pages, want 5", g.Len())
	}

	cover := g.Page("cover")
	if !cover.AutoAdvance || len(cover.Media) != 1 || cover.Media[0].Kind != common.MediaKindVideo {
		t.Errorf("cover = %+v", cover)
	}
	if got, _ := g.NextPageID("cover", true); got != "quiz" {
		t.Errorf("auto next of cover = %q, want quiz", got)
	}

	middle := g.Page("middle")
	if !middle.Attachment {
		t.Error("middle should have attachment")
	}
	if len(middle.Media) != 2 || middle.Media[0].Kind != common.MediaKindAudio || middle.Media[1].Kind != common.MediaKindVideo {
		t.Errorf("middle media = %+v", middle.Media)
	}
	if middle.Media[0].ID != "middle-audio-0" {
		t.Errorf("generated media id = %q", middle.Media[0].ID)
	}

	if !g.Page("quiz").AccessProtected {
		t.Error("quiz should be access protected")
	}
	if got := g.Branches("quiz"); !slices.Equal(got, []string{"cover", "end", "middle"}) {
		t.Errorf("Branches(quiz) = %v", got)
	}

	dup := g.Page("middle__1")
	if dup == nil || !dup.AccessHidden || dup.Index != 3 {
		t.Fatalf("renamed duplicate = %+v", dup)
	}
	if got, _ := g.Linked("middle__1", ReturnTo); got != "cover" {
		t.Errorf("return-to of duplicate = %q, want cover", got)
	}
	if !g.Page("end").Ad {
		t.Error("end should be an ad")
	}

	audio, video := st.MediaCount()
	if audio != 2 || video != 2 {
		t.Errorf("MediaCount() = %d, %d; want 2, 2", audio, video)
	}
}

func TestReadMarkup_Errors(t *testing.T) {
	tests := []struct {
		name   string
		markup string
	}{
		{"not xml", "just text"},
		{"wrong root", "<html><story-page id='a'/></html>"},
		{"no pages", "<story id='s'></story>"},
		{"bad link", "<story><story-page id='a' advance-to='zz'/><story-page id='b' return-to='yy'/></story>"},
		{"bad branch", "<story><story-page id='a'><b on='tap:story.goToPage(id=zz)'/></story-page></story>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadMarkup(strings.NewReader(tt.markup), zaptest.NewLogger(t)); err == nil {
				t.Error("expected error, got none")
			}
		})
	}
}

func TestReadMarkup_Charset(t *testing.T) {
	src := "<?xml version=\"1.0\" encoding=\"windows-1251\"?>\n<story title=\"\xcf\xf0\xe8\xe2\xe5\xf2\"><story-page id=\"a\"/></story>"
	st, err := ReadMarkup(strings.NewReader(src), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("ReadMarkup() error = %v", err)
	}
	if st.Title != "Привет" {
		t.Errorf("Title = %q, want Привет", st.Title)
	}
}

func TestWriteMarkup_RoundTrip(t *testing.T) {
	log := zaptest.NewLogger(t)
	st, err := ReadMarkup(strings.NewReader(sampleMarkup), log)
	if err != nil {
		t.Fatalf("ReadMarkup() error = %v", err)
	}
	if !st.Graph.InsertPage("middle", "end") {
		t.Fatal("InsertPage() = false")
	}

	var buf bytes.Buffer
	if err := st.WriteMarkup(&buf); err != nil {
		t.Fatalf("WriteMarkup() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `id="middle__1"`) {
		t.Errorf("renamed id not written back:\n%s", out)
	}

	again, err := ReadMarkup(&buf, log)
	if err != nil {
		t.Fatalf("ReadMarkup() of written markup error = %v", err)
	}
	if got, _ := again.Graph.NextPageID("middle", false); got != "end" {
		t.Errorf("NextPageID(middle) after round trip = %q, want end", got)
	}
	if got, _ := again.Graph.Linked("quiz", ReturnTo); got != "end" {
		t.Errorf("return-to of quiz after round trip = %q, want end", got)
	}
}

func TestWriteMarkup_FromDefinition(t *testing.T) {
	log := zaptest.NewLogger(t)
	def := Definition{
		ID: "d",
		Pages: []PageDefinition{
			{ID: "one", Media: []MediaDefinition{{Src: "a.mp3"}}},
			{Title: "Second Page", Ad: true, Branches: []string{"one"}},
		},
	}
	st, err := def.Build(log)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	var buf bytes.Buffer
	if err := st.WriteMarkup(&buf); err != nil {
		t.Fatalf("WriteMarkup() error = %v", err)
	}
	again, err := ReadMarkup(&buf, log)
	if err != nil {
		t.Fatalf("ReadMarkup() error = %v\n%s", err, buf.String())
	}
	second := again.Graph.Page("second-page")
	if second == nil || !second.Ad {
		t.Fatalf("second-page = %+v", second)
	}
	if got := again.Graph.Branches("second-page"); !slices.Equal(got, []string{"one"}) {
		t.Errorf("Branches(second-page) = %v", got)
	}
	if m := again.Graph.Page("one").Media; len(m) != 1 || m[0].Kind != common.MediaKindAudio {
		t.Errorf("media of one = %+v", m)
	}
}
