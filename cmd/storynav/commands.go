package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"storynav/config"
	"storynav/distance"
	"storynav/host"
	"storynav/state"
	"storynav/viewer"
)

func storyArg(cmd *cli.Command) (string, error) {
	if cmd.Args().Len() == 0 {
		return "", errors.New("story definition is required")
	}
	return cmd.Args().Get(0), nil
}

func applySession(env *state.LocalEnv, cmd *cli.Command) {
	if s := cmd.String("session"); s != "" {
		env.Session = s
	}
}

func simulate(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)
	story, err := storyArg(cmd)
	if err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		env.Log.Warn("Malformed command line, too many scripts", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}
	applySession(env, cmd)

	var script io.Reader = os.Stdin
	if name := cmd.Args().Get(1); name != "" {
		f, err := os.Open(name)
		if err != nil {
			return fmt.Errorf("unable to open script: %w", err)
		}
		defer f.Close()
		env.Rpt.Store(filepath.Join("script", filepath.Base(name)), name)
		script = f
	}

	e, err := host.Open(env, story, env.Out, cmd.Bool("resume"))
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, e.Close())
	}()
	return e.RunScript(ctx, script)
}

type staticPath []string

func (p staticPath) Path() []string {
	return p
}

func graph(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	name, err := storyArg(cmd)
	if err != nil {
		return err
	}
	story, err := host.LoadStory(env, name)
	if err != nil {
		return err
	}
	from := cmd.String("from")
	if from == "" {
		first := story.Graph.First()
		if first == nil {
			return fmt.Errorf("story %s has no pages", name)
		}
		from = first.ID
	}
	res, err := distance.New(story.Graph, staticPath{from}, env.Log).Compute(from, distance.Options{
		Branching:          env.Cfg.Navigation.Branching,
		CrossDocumentSwipe: env.Cfg.Navigation.CrossDocumentSwipe,
	})
	if err != nil {
		return err
	}
	_, err = io.WriteString(env.Out, host.Dump(story, res))
	return err
}

func view(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)
	story, err := storyArg(cmd)
	if err != nil {
		return err
	}
	applySession(env, cmd)

	out := &bytes.Buffer{}
	e, err := host.Open(env, story, out, cmd.Bool("resume"))
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, e.Close())
	}()
	return viewer.Run(ctx, e, out)
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		err   error
		data  []byte
		state string
	)

	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()
	}

	if cmd.Bool("default") {
		state = "default"
		data, err = config.Prepare()
	} else {
		state = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	env.Log.Info("Outputting configuration", zap.String("state", state), zap.String("file", fname))

	if _, err = out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
