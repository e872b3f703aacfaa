package commands

import (
	"framegrip/internal/domain"
	"framegrip/internal/eventbus"
)

// Editor is the part of the model layer commands operate on
type Editor interface {
	Selected() *domain.Component
	Select(model *domain.Component)
	Remove(model *domain.Component)
}

// Command represents an executable toolbar action
type Command interface {
	Execute() error
}

// CommandContext provides context for command execution
type CommandContext struct {
	Editor Editor
	Bus    eventbus.EventBus
}

// CloneCommand duplicates the selection right after itself and selects the copy
type CloneCommand struct {
	ctx *CommandContext
}

// NewCloneCommand creates a new clone command
func NewCloneCommand(ctx *CommandContext) Command {
	return &CloneCommand{ctx: ctx}
}

// Execute performs the clone
func (c *CloneCommand) Execute() error {
	sel := c.ctx.Editor.Selected()
	if sel == nil || !sel.Copyable || sel.Collection() == nil {
		return nil
	}
	coll := sel.Collection()
	clone := sel.Clone()
	coll.Add(clone, coll.IndexOf(sel)+1)
	c.ctx.Editor.Select(clone)
	return nil
}

// DeleteCommand removes the selection
type DeleteCommand struct {
	ctx *CommandContext
}

// NewDeleteCommand creates a new delete command
func NewDeleteCommand(ctx *CommandContext) Command {
	return &DeleteCommand{ctx: ctx}
}

// Execute performs the removal
func (c *DeleteCommand) Execute() error {
	sel := c.ctx.Editor.Selected()
	if sel == nil || !sel.Removable {
		return nil
	}
	sel.Status = domain.StatusNone
	c.ctx.Editor.Remove(sel)
	c.ctx.Editor.Select(nil)
	return nil
}

// SelectParentCommand moves the selection to the parent component
type SelectParentCommand struct {
	ctx *CommandContext
}

// NewSelectParentCommand creates a new select-parent command
func NewSelectParentCommand(ctx *CommandContext) Command {
	return &SelectParentCommand{ctx: ctx}
}

// Execute performs the selection change; the root wrapper is never selected
func (c *SelectParentCommand) Execute() error {
	sel := c.ctx.Editor.Selected()
	if sel == nil {
		return nil
	}
	parent := sel.Parent()
	if parent == nil || parent.Parent() == nil {
		return nil
	}
	c.ctx.Editor.Select(parent)
	return nil
}
