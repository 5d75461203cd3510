// Package catalog is the discovery mechanism for action packages.
//
// Go cannot import a package by name at runtime, so action packages announce
// themselves from init(), keyed by a dotted specifier:
//
//	package act
//
//	func init() {
//	    catalog.Register("actions.act", &GreetAction{}, &LookupAction{})
//	}
//
// The server binary imports the package (usually with a blank import) and the
// --actions flag selects which specifier to load.
package catalog

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/aretw0/actionserver/pkg/domain"
)

var specifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// Catalog maps package specifiers to the actions they provide.
type Catalog struct {
	mu       sync.RWMutex
	packages map[string][]any
	order    []string
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{packages: make(map[string][]any)}
}

var defaultCatalog = New()

// Default returns the process-wide catalog used by Register and Discover.
func Default() *Catalog { return defaultCatalog }

// Register adds actions to the process-wide catalog under specifier.
// It panics on a malformed specifier, since it is meant to be called from init().
func Register(specifier string, actions ...any) {
	if err := defaultCatalog.Add(specifier, actions...); err != nil {
		panic(err)
	}
}

// Discover resolves specifier against the process-wide catalog.
func Discover(specifier string) ([]any, error) {
	return defaultCatalog.Discover(specifier)
}

// Validate checks that specifier is a dotted package path rather than a
// filesystem folder.
func Validate(specifier string) error {
	if strings.ContainsAny(specifier, `/\`) {
		return fmt.Errorf("%w: %q looks like a folder path, use a dotted package path (e.g. actions.act)", domain.ErrInvalidActionsSpecifier, specifier)
	}
	if !specifierPattern.MatchString(specifier) {
		return fmt.Errorf("%w: %q is not a dotted package path", domain.ErrInvalidActionsSpecifier, specifier)
	}
	return nil
}

// Add appends actions to the package registered under specifier.
func (c *Catalog) Add(specifier string, actions ...any) error {
	if err := Validate(specifier); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.packages[specifier]; !ok {
		c.order = append(c.order, specifier)
	}
	c.packages[specifier] = append(c.packages[specifier], actions...)
	return nil
}

// Packages returns the known specifiers, sorted.
func (c *Catalog) Packages() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.order))
	copy(out, c.order)
	sort.Strings(out)
	return out
}

// Discover returns the actions of specifier and of every dotted sub-package
// (e.g. "actions" also loads "actions.act"), in registration order.
// An empty specifier returns every known action.
func (c *Catalog) Discover(specifier string) ([]any, error) {
	if specifier != "" {
		if err := Validate(specifier); err != nil {
			return nil, err
		}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []any
	found := false
	for _, pkg := range c.order {
		if specifier != "" && pkg != specifier && !strings.HasPrefix(pkg, specifier+".") {
			continue
		}
		found = true
		out = append(out, c.packages[pkg]...)
	}
	if specifier != "" && !found {
		return nil, fmt.Errorf("%w: no actions package named %q", domain.ErrInvalidActionsSpecifier, specifier)
	}
	return out, nil
}
