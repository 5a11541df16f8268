package featurekit

import (
	"iter"
	"sync/atomic"
)

// Context is an immutable node in a tree of evaluation scopes. It carries a
// weak handle to the evaluator that was ambient when it was created, an
// optional parent, and a set of evaluator-supplied extensions.
//
// Contexts are reference-counted: constructors return a context holding one
// reference, Retain adds one for each additional owner, and Close releases
// one. When the last reference is released the evaluator's OnCloseContext
// hook runs (if the evaluator is still alive) and the context's reference to
// its parent is released.
//
// After construction a context is read-only and safe to share across
// goroutines.
type Context struct {
	data *contextData // nil for the root context
}

type contextData struct {
	evaluator  WeakEvaluatorRef
	parent     *Context
	extensions Extensions
	refs       atomic.Int64
}

var rootContext = &Context{}

// Root returns the distinguished root context. It has no parent, no
// extensions, and no evaluator snapshot: it always resolves the registry
// live, representing "no specific context".
func Root() *Context { return rootContext }

// NewContext creates a context with the calling goroutine's current context
// as parent (no parent if the goroutine has none). The ambient evaluator is
// snapshotted and its OnNewContext hook may populate the new context's
// extensions from fields.
func NewContext(fields Fields) *Context {
	parent, _ := CurrentContext()
	return NewContextWithParent(parent, fields)
}

// NewContextWithParent creates a context with an explicit parent. A nil
// parent or the root context means no parent: ancestor chains are uniform in
// terminating at the first context with no upstream link, so a root parent
// is collapsed rather than stored.
func NewContextWithParent(parent *Context, fields Fields) *Context {
	if parent != nil && parent.IsRoot() {
		parent = nil
	}

	data := &contextData{parent: parent}
	if parent != nil {
		parent.Retain()
	}

	if ref, ok := CurrentEvaluator(); ok {
		data.evaluator = ref.Weak()
		// The context is not shared yet: the hook gets a mutable view and
		// sees ancestors through the parent link only. If the hook panics,
		// the parent reference taken above must be balanced before the
		// panic leaves the constructor.
		hooked := false
		defer func() {
			if !hooked && parent != nil {
				parent.Close()
			}
		}()
		ref.OnNewContext(&ContextView{data: data}, fields)
		hooked = true
	}

	data.refs.Store(1)
	return &Context{data: data}
}

// IsRoot reports whether this is the root context.
func (c *Context) IsRoot() bool { return c.data == nil }

// Retain adds a reference for a new owner and returns the context. Each
// Retain must be balanced by a Close. Retaining the root context is a no-op.
func (c *Context) Retain() *Context {
	if c.data != nil {
		c.data.refs.Add(1)
	}
	return c
}

// Close releases one reference. When the last reference is released the
// snapshotted evaluator, if still alive, observes the closure through
// OnCloseContext; a dead snapshot is skipped silently. Closing the root
// context is a no-op.
func (c *Context) Close() {
	if c.data == nil {
		return
	}
	if c.data.refs.Add(-1) != 0 {
		return
	}
	if ref, ok := c.data.evaluator.Upgrade(); ok {
		func() {
			defer ref.Release()
			ref.OnCloseContext(&ContextView{data: c.data})
		}()
	}
	if c.data.parent != nil {
		c.data.parent.Close()
	}
}

// Parent returns the parent context. Only the root context has none; a
// derived context created without an explicit parent reports the root
// context as its parent.
func (c *Context) Parent() (*Context, bool) {
	if c.data == nil {
		return nil, false
	}
	if c.data.parent != nil {
		return c.data.parent, true
	}
	return rootContext, true
}

// Extensions returns the context's extension store for reading. It returns
// nil for the root context; the nil store is empty for all lookups.
func (c *Context) Extensions() *Extensions {
	if c.data == nil {
		return nil
	}
	return &c.data.extensions
}

// Lineage iterates over this context and its ancestors, nearest first,
// ending at the root. The sequence is finite and restartable: each range
// starts again from this context.
func (c *Context) Lineage() iter.Seq[*Context] {
	return func(yield func(*Context) bool) {
		for cur := c; cur != nil; {
			if !yield(cur) {
				return
			}
			parent, ok := cur.Parent()
			if !ok {
				return
			}
			cur = parent
		}
	}
}

// InScope installs this context as the calling goroutine's current context
// for the duration of fn, holding a reference to it for the duration of the
// scope. The previous current context is restored on every exit path; a
// panic in fn propagates unchanged after restoration.
func (c *Context) InScope(fn func()) {
	c.Retain()
	defer c.Close()
	contextStackSwap(c, fn)
}

// evaluator returns the evaluator associated with this context: the upgraded
// creation-time snapshot for derived contexts, or a live registry resolution
// for the root. release reports whether the caller must Release the handle.
func (c *Context) evaluator() (ref *EvaluatorRef, release, ok bool) {
	if c == nil || c.data == nil {
		ref, ok = CurrentEvaluator()
		return ref, false, ok
	}
	ref, ok = c.data.evaluator.Upgrade()
	return ref, ok, ok
}

// ContextView is a mutable view of a context that is being created or
// closed. Evaluator hooks receive it while the underlying data is not (or no
// longer) shared, which is the only time extensions may be mutated.
type ContextView struct {
	data *contextData
}

// Extensions returns the mutable extension store of the context under
// construction or closure.
func (v *ContextView) Extensions() *Extensions {
	return &v.data.extensions
}

// Parent returns the explicit parent of the context, if any.
func (v *ContextView) Parent() (*Context, bool) {
	if v.data.parent == nil {
		return nil, false
	}
	return v.data.parent, true
}

// Lineage iterates over the context's ancestors, nearest first. The context
// itself is excluded: during creation it is not yet visible, and during
// closure it is already going away.
func (v *ContextView) Lineage() iter.Seq[*Context] {
	return func(yield func(*Context) bool) {
		if v.data.parent == nil {
			return
		}
		for ctx := range v.data.parent.Lineage() {
			if !yield(ctx) {
				return
			}
		}
	}
}
