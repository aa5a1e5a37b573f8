package oaf

import (
	"github.com/joeycumines/oaf-runtime/oafalloc"
	"github.com/joeycumines/oaf-runtime/oaferr"
	"github.com/joeycumines/oaf-runtime/oafsched"
)

// ErrorHandler is invoked by ReportError when one is set on the Context,
// per spec.md §4.6 ("if an error handler is set, invoke it"). A truthy
// return means the handler considers the error handled.
type ErrorHandler func(c *Context, err *oaferr.RuntimeError) bool

// Context is the ambient reference bag passed into user operations, per
// spec.md §3/§4.6: allocator, temp allocator, scheduler, stack trace,
// error handler, caller location, GC flag, and last error.
type Context struct {
	Allocator      oafalloc.Allocator
	Temp           *oafalloc.TempAllocator
	Scheduler      *oafsched.Scheduler
	StackTrace     *oaferr.StackTrace
	GCEnabled      bool
	ErrorHandler   ErrorHandler
	CallerLocation oaferr.Location

	lastError    *oaferr.RuntimeError
	recoverDepth int
}

// ReportError sets err as the context's last error, per spec.md §4.6:
// inherits CallerLocation into err.Location when err's own location is
// unset, attaches the context's stack trace, and, if an ErrorHandler is
// set, invokes it (its return value is informational only here — the
// handler's truthy return only clears last_error inside TryRecover's
// recover step, not here; spec.md §4.6 states report_error's handler
// invocation without prescribing a last_error side effect from it).
func (c *Context) ReportError(err *oaferr.RuntimeError) {
	if err.Location.FileName == "" {
		err.Location = c.CallerLocation
	}
	err.AttachStackTrace(c.StackTrace)
	c.lastError = err
	if c.ErrorHandler != nil {
		c.ErrorHandler(c, err)
	}
}

// HasError reports whether an error is currently recorded.
func (c *Context) HasError() bool { return c.lastError != nil }

// LastError returns the currently recorded error, or nil.
func (c *Context) LastError() *oaferr.RuntimeError { return c.lastError }

// ClearError discards the currently recorded error.
func (c *Context) ClearError() { c.lastError = nil }

// TryRecover runs fn, following spec.md §4.6's try_recover steps 1-4
// (reimplemented atop Go's native panic/recover rather than the C
// original's setjmp discipline, per SPEC_FULL.md §8): save and clear
// context.last_error; run fn; if fn neither panics with a
// *oaferr.RuntimeError nor reports one via ReportError, restore the
// saved last_error and return nil (no recoverable error). Otherwise,
// the error is considered recovered — per step 4's "on truthy return,
// clear context.last_error and return true" (this port has no separate
// recover callback, so recovery always succeeds once an error is
// caught) — last_error is cleared and the error is returned.
func (c *Context) TryRecover(fn func()) (recovered *oaferr.RuntimeError) {
	saved := c.lastError
	c.lastError = nil
	c.recoverDepth++
	defer func() {
		c.recoverDepth--
		if r := recover(); r != nil {
			if rerr, ok := r.(*oaferr.RuntimeError); ok {
				c.lastError = nil
				recovered = rerr
				return
			}
			c.lastError = saved
			panic(r)
		}
	}()
	fn()
	if c.lastError == nil {
		c.lastError = saved
		return nil
	}
	recovered = c.lastError
	c.lastError = nil
	return
}

// RecoverDepth reports how many TryRecover scopes are currently nested.
func (c *Context) RecoverDepth() int { return c.recoverDepth }
