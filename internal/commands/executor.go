package commands

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"framegrip/internal/eventbus"
)

// Names of the built-in toolbar commands
const (
	CloneName        = "tlb-clone"
	DeleteName       = "tlb-delete"
	SelectParentName = "select-parent"
)

// ErrUnknownCommand is returned for names nothing was registered under
var ErrUnknownCommand = errors.New("unknown command")

// Factory builds a command for one execution
type Factory func(ctx *CommandContext) Command

// Executor runs commands by name
type Executor struct {
	ctx       *CommandContext
	factories map[string]Factory
	logger    *zap.Logger
}

// NewExecutor creates an executor with the built-in commands registered
func NewExecutor(editor Editor, bus eventbus.EventBus, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Executor{
		ctx: &CommandContext{
			Editor: editor,
			Bus:    bus,
		},
		factories: make(map[string]Factory),
		logger:    logger.Named("commands"),
	}
	e.Register(CloneName, NewCloneCommand)
	e.Register(DeleteName, NewDeleteCommand)
	e.Register(SelectParentName, NewSelectParentCommand)
	return e
}

// Register adds or replaces a command
func (e *Executor) Register(name string, f Factory) {
	e.factories[name] = f
}

// Has reports whether name is registered
func (e *Executor) Has(name string) bool {
	_, ok := e.factories[name]
	return ok
}

// Names returns the registered command names, sorted
func (e *Executor) Names() []string {
	names := make([]string, 0, len(e.factories))
	for n := range e.factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Execute creates and executes the named command
func (e *Executor) Execute(name string) error {
	f, ok := e.factories[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	e.logger.Debug("executing command", zap.String("name", name))
	if err := f(e.ctx).Execute(); err != nil {
		return fmt.Errorf("command %s: %w", name, err)
	}
	return nil
}
