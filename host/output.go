package host

import (
	"bytes"
	"fmt"
	"io"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"storynav/common"
	"storynav/config"
	"storynav/navigation"
)

// EventValues are variables available to event template.
type EventValues struct {
	Story     string
	Frame     uint64
	Kind      string
	PageID    string
	Index     int
	Direction string
	UIState   string
}

// Printer writes one line per event expanding configured template.
type Printer struct {
	w     io.Writer
	story string
	tmpl  *template.Template
	buf   bytes.Buffer
	err   error
}

func NewPrinter(w io.Writer, story, text string) (*Printer, error) {
	tmpl, err := template.New(string(config.EventTemplateFieldName)).Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("unable to parse template field %s: %w", config.EventTemplateFieldName, err)
	}
	return &Printer{w: w, story: story, tmpl: tmpl}, nil
}

func values(story string, ev navigation.Event) EventValues {
	v := EventValues{
		Story:  story,
		Frame:  ev.Frame,
		Kind:   ev.Kind.String(),
		PageID: ev.PageID,
		Index:  ev.Index,
	}
	switch ev.Kind {
	case common.EventKindSelectDocument:
		v.Direction = ev.Direction.String()
	case common.EventKindUiStateChanged:
		v.UIState = ev.UIState.String()
	}
	return v
}

// Event prints event. First error stops printing, see Err.
func (p *Printer) Event(ev navigation.Event) {
	if p.err != nil {
		return
	}
	p.buf.Reset()
	if err := p.tmpl.Execute(&p.buf, values(p.story, ev)); err != nil {
		p.err = fmt.Errorf("unable to expand event template: %w", err)
		return
	}
	p.buf.WriteByte('\n')
	if _, err := p.w.Write(p.buf.Bytes()); err != nil {
		p.err = fmt.Errorf("unable to write event: %w", err)
	}
}

func (p *Printer) Err() error {
	return p.err
}
