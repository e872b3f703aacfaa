// Package replay drives a canvas session from a TOML event script and
// records a snapshot after every step.
//
// A script is a list of steps:
//
//	[[step]]
//	action = "click"
//	target = "#hero"
//
//	[[step]]
//	action = "drag"
//	handle = "br"
//	dx = 4
//	dy = 1
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"

	"framegrip/internal/coordinator"
	"framegrip/internal/document"
	"framegrip/internal/geom"
	"framegrip/internal/resize"
)

var (
	// ErrUnknownTarget is returned when a step's target matches no element
	ErrUnknownTarget = errors.New("unknown target")
	// ErrUnknownAction is returned for an unsupported step action
	ErrUnknownAction = errors.New("unknown action")
)

// Step is one scripted input
type Step struct {
	Action  string  `toml:"action"`
	Target  string  `toml:"target,omitempty"`  // "#id" or XPath
	Key     string  `toml:"key,omitempty"`     // key name for "key"
	Handle  string  `toml:"handle,omitempty"`  // grip for "drag"
	DX      float64 `toml:"dx,omitempty"`      // drag delta
	DY      float64 `toml:"dy,omitempty"`      // drag or scroll delta
	X       float64 `toml:"x,omitempty"`       // pointer x for press/move/release
	Y       float64 `toml:"y,omitempty"`       // pointer y
	Command string  `toml:"command,omitempty"` // command name for "action"
}

// Script is a parsed event script
type Script struct {
	Steps []Step `toml:"step"`
}

// Parse decodes a script
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	return &s, nil
}

// Load reads and decodes the script at path
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return Parse(data)
}

// Report holds one snapshot per executed step
type Report struct {
	Snapshots []coordinator.Snapshot `toml:"snapshot"`
}

// Write encodes the report as TOML
func (r *Report) Write(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(r); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Runner executes steps against a coordinator
type Runner struct {
	c      *coordinator.Coordinator
	logger *zap.Logger
}

// NewRunner creates a runner for c
func NewRunner(c *coordinator.Coordinator, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{c: c, logger: logger.Named("replay")}
}

// Run executes every step and stops at the first failing one. The report
// contains the snapshots of the steps that succeeded.
func (r *Runner) Run(s *Script) (*Report, error) {
	rep := &Report{}
	for i, step := range s.Steps {
		if err := r.Exec(step); err != nil {
			return rep, fmt.Errorf("step %d (%s): %w", i+1, step.Action, err)
		}
		snap := r.c.Snapshot()
		snap.Step = i + 1
		snap.Action = step.Action
		rep.Snapshots = append(rep.Snapshots, snap)
	}
	return rep, nil
}

// Exec performs a single step
func (r *Runner) Exec(s Step) error {
	r.logger.Debug("step", zap.String("action", s.Action), zap.String("target", s.Target))
	c := r.c
	switch s.Action {
	case "hover":
		el, err := r.target(s.Target)
		if err != nil {
			return err
		}
		c.Hover(el)
	case "out":
		c.PointerLeave()
	case "click":
		el, err := r.target(s.Target)
		if err != nil {
			return err
		}
		c.Click(el)
	case "focus":
		el, err := r.target(s.Target)
		if err != nil {
			return err
		}
		c.Document.Focus(el)
	case "blur":
		c.Document.Blur()
	case "press":
		c.Press(geom.Point{X: s.X, Y: s.Y})
	case "move":
		c.PointerMove(geom.Point{X: s.X, Y: s.Y})
	case "release":
		c.Release(geom.Point{X: s.X, Y: s.Y})
	case "key":
		c.Key(s.Key)
	case "scroll":
		c.ScrollBy(s.DY)
	case "copy":
		c.Selector.CopyComp()
	case "paste":
		c.Selector.PasteComp()
	case "drag":
		return c.DragHandle(resize.Handle(s.Handle), s.DX, s.DY)
	case "action":
		return c.Commands.Execute(s.Command)
	case "undo":
		c.Undo()
	case "redo":
		c.Redo()
	case "stop":
		c.Selector.Stop()
	case "run":
		c.Selector.Run()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, s.Action)
	}
	return nil
}

func (r *Runner) target(sel string) (*document.Element, error) {
	el, err := r.c.Document.Query(sel)
	if err != nil {
		return nil, err
	}
	if el == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTarget, sel)
	}
	return el, nil
}
