package excellon

// Program is an ordered drill command sequence. A Program returned by
// [Builder.Build] is never modified afterwards; use [Program.Commands] to get
// a copy that may be changed freely.
type Program struct {
	cmds []Command
}

// NewProgram returns a program holding a copy of cmds.
func NewProgram(cmds ...Command) Program {
	return Program{cmds: append([]Command(nil), cmds...)}
}

// Len returns the number of commands.
func (p Program) Len() int { return len(p.cmds) }

// At returns the i-th command.
func (p Program) At(i int) Command { return p.cmds[i] }

// Commands returns a copy of the command list.
func (p Program) Commands() []Command {
	return append([]Command(nil), p.cmds...)
}

// All calls fn for each command in order until fn returns false.
func (p Program) All(fn func(i int, c Command) bool) {
	for i, c := range p.cmds {
		if !fn(i, c) {
			return
		}
	}
}

// Count returns how many commands have kind k.
func (p Program) Count(k Kind) int {
	n := 0
	for _, c := range p.cmds {
		if c.Kind() == k {
			n++
		}
	}
	return n
}

// Builder accumulates commands in emission order.
type Builder struct {
	cmds []Command
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends commands and returns the builder for chaining.
func (b *Builder) Add(cmds ...Command) *Builder {
	b.cmds = append(b.cmds, cmds...)
	return b
}

// Len returns the number of commands added so far.
func (b *Builder) Len() int { return len(b.cmds) }

// Build returns the accumulated program. Later calls to Add do not affect it.
func (b *Builder) Build() Program {
	return NewProgram(b.cmds...)
}
