package pages

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/beevik/etree"
	"github.com/h2non/filetype"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"storynav/common"
)

// Story markup vocabulary.
const (
	storyTag      = "story"
	pageTag       = "story-page"
	attachmentTag = "page-attachment"
)

var linkAttrs = [linkKinds]string{
	AdvanceTo:     "advance-to",
	AutoAdvanceTo: "auto-advance-to",
	ReturnTo:      "return-to",
}

var reGoToPage = regexp.MustCompile(`goToPage\(\s*id\s*=\s*([^,)\s]+)`)

// ReadMarkup parses story markup document and builds page graph from it.
// Renamed duplicate page ids are written back into the document.
func ReadMarkup(r io.Reader, log *zap.Logger) (*Story, error) {
	if log == nil {
		log = zap.NewNop()
	}
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		ValidateInput: false,
		Permissive:    true,
	}
	doc.WriteSettings = etree.WriteSettings{
		CanonicalAttrVal: true,
	}
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to read story markup: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, errors.New("story markup has no root element")
	}
	if root.Tag != storyTag {
		return nil, fmt.Errorf("unexpected root element %q", root.Tag)
	}

	st := &Story{
		ID:                root.SelectAttrValue("id", ""),
		Title:             root.SelectAttrValue("title", ""),
		Lang:              root.SelectAttrValue("lang", ""),
		BackgroundAudio:   root.SelectAttrValue("background-audio", ""),
		SupportsLandscape: root.SelectAttr("supports-landscape") != nil,
		Graph:             NewGraph(log),
		doc:               doc,
	}

	elements := root.SelectElements(pageTag)
	if len(elements) == 0 {
		return nil, errors.New("story has no pages")
	}
	for _, el := range elements {
		p := &Page{
			ID:              el.SelectAttrValue("id", ""),
			Ad:              el.SelectAttr("ad") != nil,
			AutoAdvance:     el.SelectAttr("auto-advance-after") != nil,
			AccessProtected: el.SelectAttr("access") != nil,
			AccessHidden:    el.SelectAttr("access-hide") != nil,
		}
		if id := st.Graph.Add(p); id != el.SelectAttrValue("id", "") {
			el.CreateAttr("id", id)
		}
		scanPage(p, el, log)
	}

	var errs error
	for i, el := range elements {
		id := st.Graph.PageAt(i).ID
		for kind, attr := range linkAttrs {
			if to := el.SelectAttrValue(attr, ""); to != "" {
				errs = multierr.Append(errs, st.Graph.Link(id, LinkKind(kind), to))
			}
		}
		for _, to := range branchTargets(el) {
			errs = multierr.Append(errs, st.Graph.AddBranch(id, to))
		}
	}
	if errs != nil {
		return nil, fmt.Errorf("invalid story markup: %w", errs)
	}
	return st, nil
}

// scanPage collects media and attachment of the page.
func scanPage(p *Page, el *etree.Element, log *zap.Logger) {
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "audio", "video", "media":
			src := child.SelectAttrValue("src", "")
			kind, ok := mediaKind(child.Tag, src)
			if !ok {
				log.Warn("Unable to detect media kind, ignoring", zap.String("page", p.ID), zap.String("src", src))
				continue
			}
			id := child.SelectAttrValue("id", "")
			if id == "" {
				id = fmt.Sprintf("%s-%s-%d", p.ID, kind, len(p.Media))
			}
			p.Media = append(p.Media, Media{ID: id, Kind: kind, Src: src})
		case attachmentTag:
			p.Attachment = true
		default:
			scanPage(p, child, log)
		}
	}
}

// mediaKind uses element name when it is explicit and file extension
// otherwise.
func mediaKind(tag, src string) (common.MediaKind, bool) {
	switch tag {
	case "audio":
		return common.MediaKindAudio, true
	case "video":
		return common.MediaKindVideo, true
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(src)), ".")
	if ext == "" {
		return 0, false
	}
	switch filetype.GetType(ext).MIME.Type {
	case "audio":
		return common.MediaKindAudio, true
	case "video":
		return common.MediaKindVideo, true
	}
	return 0, false
}

// branchTargets finds goToPage actions anywhere inside the page.
func branchTargets(el *etree.Element) []string {
	var res []string
	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		if on := e.SelectAttrValue("on", ""); on != "" {
			for _, m := range reGoToPage.FindAllStringSubmatch(on, -1) {
				res = append(res, m[1])
			}
		}
		for _, child := range e.ChildElements() {
			walk(child)
		}
	}
	walk(el)
	return res
}

// WriteMarkup serializes story with current navigation attributes. Story read
// from markup keeps all its original content, pages added later get new
// elements.
func (s *Story) WriteMarkup(w io.Writer) error {
	doc := s.doc
	if doc == nil {
		doc = etree.NewDocument()
		doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
		root := doc.CreateElement(storyTag)
		setAttr(root, "id", s.ID)
		setAttr(root, "title", s.Title)
		setAttr(root, "lang", s.Lang)
		setAttr(root, "background-audio", s.BackgroundAudio)
		if s.SupportsLandscape {
			root.CreateAttr("supports-landscape", "")
		}
	}
	root := doc.Root()
	elements := root.SelectElements(pageTag)

	for i, p := range s.Graph.Pages() {
		var el *etree.Element
		if i < len(elements) {
			el = elements[i]
		} else {
			el = newPageElement(root, p)
		}
		for kind, attr := range linkAttrs {
			if to, ok := s.Graph.Linked(p.ID, LinkKind(kind)); ok {
				el.CreateAttr(attr, to)
			} else {
				el.RemoveAttr(attr)
			}
		}
		if i >= len(elements) {
			for _, to := range s.Graph.Branches(p.ID) {
				action := el.CreateElement("button")
				action.CreateAttr("on", fmt.Sprintf("tap:story.goToPage(id=%s)", to))
			}
		}
	}

	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("unable to write story markup: %w", err)
	}
	return nil
}

func newPageElement(root *etree.Element, p *Page) *etree.Element {
	el := root.CreateElement(pageTag)
	el.CreateAttr("id", p.ID)
	for name, on := range map[string]bool{
		"ad":                 p.Ad,
		"auto-advance-after": p.AutoAdvance,
		"access":             p.AccessProtected,
		"access-hide":        p.AccessHidden,
	} {
		if on {
			el.CreateAttr(name, "")
		}
	}
	el.SortAttrs()
	for _, m := range p.Media {
		me := el.CreateElement(m.Kind.String())
		me.CreateAttr("id", m.ID)
		setAttr(me, "src", m.Src)
	}
	if p.Attachment {
		el.CreateElement(attachmentTag)
	}
	return el
}

func setAttr(el *etree.Element, name, value string) {
	if value != "" {
		el.CreateAttr(name, value)
	}
}
