package pages

import (
	"errors"
	"fmt"
	"io"

	validator "github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
	"github.com/rupor-github/gencfg"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"
)

type (
	MediaDefinition struct {
		ID   string `yaml:"id,omitempty"`
		Kind string `yaml:"kind,omitempty" validate:"omitempty,oneof=audio video"`
		Src  string `yaml:"src" validate:"required"`
	}

	PageDefinition struct {
		ID            string            `yaml:"id,omitempty" validate:"required_without=Title"`
		Title         string            `yaml:"title,omitempty"`
		Ad            bool              `yaml:"ad,omitempty"`
		AutoAdvance   bool              `yaml:"auto_advance,omitempty"`
		Access        string            `yaml:"access,omitempty" validate:"omitempty,oneof=protected hidden"`
		AdvanceTo     string            `yaml:"advance_to,omitempty"`
		AutoAdvanceTo string            `yaml:"auto_advance_to,omitempty"`
		ReturnTo      string            `yaml:"return_to,omitempty"`
		Branches      []string          `yaml:"branches,omitempty" validate:"dive,required"`
		Media         []MediaDefinition `yaml:"media,omitempty" validate:"dive"`
		Attachment    bool              `yaml:"attachment,omitempty"`
	}

	// Definition is YAML form of a story, convenient to write by hand.
	Definition struct {
		ID                string           `yaml:"id"`
		Title             string           `yaml:"title,omitempty"`
		Lang              string           `yaml:"lang,omitempty" validate:"omitempty,bcp47_language_tag"`
		BackgroundAudio   string           `yaml:"background_audio,omitempty"`
		SupportsLandscape bool             `yaml:"supports_landscape,omitempty"`
		Pages             []PageDefinition `yaml:"pages" validate:"required,min=1,dive"`
	}
)

// autoAdvanceChecks makes sure automatic edges belong to pages which advance
// automatically.
func autoAdvanceChecks(sl validator.StructLevel) {
	def := sl.Current().Interface().(Definition)
	for i, p := range def.Pages {
		if p.AutoAdvanceTo != "" && !p.AutoAdvance {
			sl.ReportError(p.AutoAdvanceTo, fmt.Sprintf("Pages[%d].AutoAdvanceTo", i), "AutoAdvanceTo", "requires_auto_advance", "")
		}
	}
}

// LoadDefinition reads YAML story definition and builds page graph from it.
func LoadDefinition(r io.Reader, log *zap.Logger) (*Story, error) {
	def := Definition{}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("failed to decode story definition: %w", err)
	}
	if err := gencfg.Validate(def, gencfg.WithAdditionalChecks(autoAdvanceChecks)); err != nil {
		return nil, fmt.Errorf("invalid story definition: %w", err)
	}
	return def.Build(log)
}

// Build creates story from definition. Page without id gets one made of its
// title.
func (def *Definition) Build(log *zap.Logger) (*Story, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if len(def.Pages) == 0 {
		return nil, errors.New("story has no pages")
	}
	st := &Story{
		ID:                def.ID,
		Title:             def.Title,
		Lang:              def.Lang,
		BackgroundAudio:   def.BackgroundAudio,
		SupportsLandscape: def.SupportsLandscape,
		Graph:             NewGraph(log),
	}

	ids := make([]string, len(def.Pages))
	for i, pd := range def.Pages {
		id := pd.ID
		if id == "" {
			id = slug.Make(pd.Title)
		}
		p := &Page{
			ID:              id,
			Ad:              pd.Ad,
			AutoAdvance:     pd.AutoAdvance,
			AccessProtected: pd.Access == "protected",
			AccessHidden:    pd.Access == "hidden",
			Attachment:      pd.Attachment,
		}
		for j, md := range pd.Media {
			tag := md.Kind
			if tag == "" {
				tag = "media"
			}
			kind, ok := mediaKind(tag, md.Src)
			if !ok {
				log.Warn("Unable to detect media kind, ignoring", zap.String("page", id), zap.String("src", md.Src))
				continue
			}
			mid := md.ID
			if mid == "" {
				mid = fmt.Sprintf("%s-%s-%d", id, kind, j)
			}
			p.Media = append(p.Media, Media{ID: mid, Kind: kind, Src: md.Src})
		}
		ids[i] = st.Graph.Add(p)
	}

	var errs error
	for i, pd := range def.Pages {
		for kind, to := range [linkKinds]string{
			AdvanceTo:     pd.AdvanceTo,
			AutoAdvanceTo: pd.AutoAdvanceTo,
			ReturnTo:      pd.ReturnTo,
		} {
			if to != "" {
				errs = multierr.Append(errs, st.Graph.Link(ids[i], LinkKind(kind), to))
			}
		}
		for _, to := range pd.Branches {
			errs = multierr.Append(errs, st.Graph.AddBranch(ids[i], to))
		}
	}
	if errs != nil {
		return nil, fmt.Errorf("invalid story definition: %w", errs)
	}
	return st, nil
}
