// Package host wires navigation engine for command line front ends:
// configuration, persisted history, reference collaborators and event
// output.
package host

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"storynav/archive"
	"storynav/budget"
	"storynav/common"
	"storynav/config"
	"storynav/frame"
	"storynav/history"
	"storynav/layout"
	"storynav/navigation"
	"storynav/pages"
	"storynav/state"
)

// Engine is navigation controller together with everything it talks to.
type Engine struct {
	log *zap.Logger
	rpt *config.Report
	out io.Writer
	bag history.Bag

	Story   *pages.Story
	Loop    *frame.Loop
	Ctl     *navigation.Controller
	Surface *Surface
	Gate    *Gate
	Address *Address
	Printer *Printer
}

// Options maps configuration to engine options. Story may opt into landscape
// layout on its own.
func Options(cfg *config.Config, story *pages.Story) navigation.Options {
	return navigation.Options{
		Branching:             cfg.Navigation.Branching,
		CrossDocumentSwipe:    cfg.Navigation.CrossDocumentSwipe,
		CanInsertAutomaticAd:  cfg.Navigation.CanInsertAutomaticAd,
		RepaintWorkaround:     cfg.Navigation.RepaintWorkaround,
		InitialContentTimeout: cfg.Navigation.InitialContentTimeout,
		Layout: layout.Options{
			MinWidth:          cfg.Layout.MinWidth,
			MinHeight:         cfg.Layout.MinHeight,
			AspectRatio:       cfg.Layout.AspectRatio,
			SupportsLandscape: cfg.Layout.SupportsLandscape || story.SupportsLandscape,
			OnePanel:          cfg.Layout.OnePanel,
		},
		Limits: budget.Limits{
			MaxAudio: cfg.Budget.MaxAudio,
			MaxVideo: cfg.Budget.MaxVideo,
			Reserve:  cfg.Budget.MinimumAdElements,
		},
	}
}

// OpenBag opens history state storage selected by configuration. When resume
// is requested sqlite storage continues the most recently updated session.
func OpenBag(cfg *config.HistoryConfig, session string, resume bool, log *zap.Logger) (history.Bag, error) {
	switch cfg.Store {
	case common.HistoryStoreMemory:
		return history.NewMemoryBag(), nil
	case common.HistoryStoreSqlite:
		bag, err := history.OpenSQLite(cfg.Path, session)
		if err != nil {
			return nil, err
		}
		if resume {
			latest, err := bag.LatestSession()
			if err != nil {
				return nil, multierr.Append(err, bag.Close())
			}
			if latest != "" {
				log.Info("Resuming session", zap.String("session", latest))
				bag.Resume(latest)
			}
		}
		return bag, nil
	}
	return nil, fmt.Errorf("unsupported history store: %s", cfg.Store)
}

// LoadStory reads story from file or zip bundle and keeps its copy in debug
// report, so report could be replayed later.
func LoadStory(env *state.LocalEnv, storyPath string) (*pages.Story, error) {
	name, data, err := archive.ReadStory(storyPath)
	if err != nil {
		return nil, err
	}
	story, err := pages.Read(name, bytes.NewReader(data), env.Log)
	if err != nil {
		return nil, err
	}
	env.Rpt.StoreData(path.Join(strings.TrimSuffix(archive.ReportPrefix, "/"), name), data)
	return story, nil
}

// Open loads story and builds engine around it. Events are printed to out.
func Open(env *state.LocalEnv, storyPath string, out io.Writer, resume bool) (*Engine, error) {
	log := env.Log.Named("host")

	story, err := LoadStory(env, storyPath)
	if err != nil {
		return nil, err
	}
	if orphans := story.Graph.Unreachable(); len(orphans) > 0 {
		log.Warn("Story has pages unreachable from the first one", zap.Strings("pages", orphans))
	}

	printer, err := NewPrinter(out, story.ID, env.Cfg.Output.EventTemplate)
	if err != nil {
		return nil, err
	}
	bag, err := OpenBag(&env.Cfg.History, env.Session, resume, log)
	if err != nil {
		return nil, fmt.Errorf("unable to open history: %w", err)
	}

	e := &Engine{
		log:     log,
		rpt:     env.Rpt,
		out:     out,
		bag:     bag,
		Story:   story,
		Loop:    frame.New(env.Log),
		Surface: NewSurface(env.Log),
		Gate:    &Gate{},
		Address: NewAddress(""),
		Printer: printer,
	}
	e.Ctl = navigation.New(story, e.Loop, history.NewStack(bag, env.Log), e.Surface, e.Gate, Options(env.Cfg, story), env.Log)
	e.Ctl.Subscribe(printer.Event)

	log.Debug("Engine ready", zap.String("story", story.ID), zap.Int("pages", story.Graph.Len()), zap.String("session", env.Session))
	return e, nil
}

// Close releases history storage. Persisted history is added to debug report.
func (e *Engine) Close() (err error) {
	if sb, ok := e.bag.(*history.SQLiteBag); ok && e.rpt != nil {
		if data, er := sb.Snapshot(); er == nil {
			e.rpt.StoreData("history.db", data)
		} else {
			err = multierr.Append(err, fmt.Errorf("unable to snapshot history: %w", er))
		}
	}
	if er := e.bag.Close(); er != nil {
		err = multierr.Append(err, fmt.Errorf("unable to close history: %w", er))
	}
	return multierr.Append(err, e.Printer.Err())
}
