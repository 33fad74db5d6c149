// Package easing maps normalized progress to eased output.
//
// Every curve held by a Registry carries its reversed form, f(1-p), and the
// reversed form points back at the original, so a running animation can flip
// direction without looking the curve up again by name.
package easing

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Func maps progress in [0, 1] to an eased value.
type Func func(pos float64) float64

// ErrUnknownEasing matches every UnknownEasingError.
var ErrUnknownEasing = errors.New("unknown easing")

// UnknownEasingError reports a name with no registered curve.
type UnknownEasingError struct {
	Name string
}

func (e *UnknownEasingError) Error() string {
	return fmt.Sprintf("wrong or not supported easing %q", e.Name)
}

// Is reports whether target is ErrUnknownEasing.
func (e *UnknownEasingError) Is(target error) bool {
	return target == ErrUnknownEasing
}

// Curve is an easing function together with its opposite direction.
type Curve struct {
	name     string
	fn       Func
	reversed *Curve
	straight *Curve
}

// Name returns the registered name. Reversed curves share the name of their
// original.
func (c *Curve) Name() string { return c.name }

// Ease evaluates the curve at pos.
func (c *Curve) Ease(pos float64) float64 { return c.fn(pos) }

// Reversed returns the reversed form, or nil if c is itself reversed.
func (c *Curve) Reversed() *Curve { return c.reversed }

// Straight returns the original a reversed curve was derived from, or nil if
// c is an original.
func (c *Curve) Straight() *Curve { return c.straight }

// IsReversed reports whether c was derived by reversal.
func (c *Curve) IsReversed() bool { return c.straight != nil }

// Flip returns the curve running in the opposite direction.
func (c *Curve) Flip() *Curve {
	if c.reversed != nil {
		return c.reversed
	}
	if c.straight != nil {
		return c.straight
	}
	return c
}

// link derives the reversed counterpart if c does not have one yet.
func (c *Curve) link() {
	if c.reversed != nil || c.straight != nil {
		return
	}
	fn := c.fn
	c.reversed = &Curve{
		name: c.name,
		fn: func(pos float64) float64 {
			return fn(1 - pos)
		},
		straight: c,
	}
}

// Custom wraps fn as an unregistered curve with its reversed form attached.
func Custom(fn Func) *Curve {
	c := &Curve{name: "custom", fn: fn}
	c.link()
	return c
}

// Registry is a name to curve table. Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	curves  map[string]*Curve
	aliases map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		curves:  make(map[string]*Curve),
		aliases: make(map[string]string),
	}
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry holding the built-in curves and
// the extra families.
func Default() *Registry {
	defaultOnce.Do(func() {
		r := NewRegistry()
		RegisterBuiltins(r)
		RegisterPenner(r)
		RegisterOutIn(r)
		r.prepare()
		defaultRegistry = r
	})
	return defaultRegistry
}

// Register installs fn under name, replacing any earlier curve of that name.
// The reversed form is derived before Register returns.
func (r *Registry) Register(name string, fn Func) *Curve {
	c := &Curve{name: name, fn: fn}
	c.link()
	r.mu.Lock()
	r.curves[name] = c
	delete(r.aliases, name)
	r.mu.Unlock()
	return c
}

// Alias makes alias resolve to whatever is registered under name at lookup
// time, so registering name again moves the alias with it.
func (r *Registry) Alias(alias, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if target, ok := r.aliases[name]; ok {
		name = target
	}
	if _, ok := r.curves[name]; !ok {
		return &UnknownEasingError{Name: name}
	}
	delete(r.curves, alias)
	r.aliases[alias] = name
	return nil
}

// Resolve returns the curve registered under name.
func (r *Registry) Resolve(name string) (*Curve, error) {
	r.mu.RLock()
	c, ok := r.curves[name]
	if !ok {
		c, ok = r.curves[r.aliases[name]]
	}
	r.mu.RUnlock()
	if !ok {
		return nil, &UnknownEasingError{Name: name}
	}
	return c, nil
}

// MustResolve is like Resolve but panics on unknown names.
func (r *Registry) MustResolve(name string) *Curve {
	c, err := r.Resolve(name)
	if err != nil {
		panic(err)
	}
	return c
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.curves)+len(r.aliases))
	for name := range r.curves {
		names = append(names, name)
	}
	for name := range r.aliases {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// prepare is the setup pass run once the built-ins are in: every curve ends
// up with a reversed counterpart.
func (r *Registry) prepare() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.curves {
		c.link()
	}
}
