package checker

import (
	"errors"
	"fmt"

	"github.com/artifact-hub/relcheck/internal/logging"
	"github.com/artifact-hub/relcheck/internal/registry"
	"github.com/artifact-hub/relcheck/internal/store"
	"github.com/artifact-hub/relcheck/internal/tags"
)

// ErrUpdatesNotWritten signals that newer versions exist but the store
// was left untouched (check-only mode or a declined confirmation). The
// process maps it to exit code 1.
var ErrUpdatesNotWritten = errors.New("updates available but not written")

// Update is one pending version bump.
type Update struct {
	Name    string
	Current string
	Latest  string
}

// TagLister is the hosting-API surface the checker needs.
type TagLister interface {
	Tags(pkg registry.Package) ([]string, error)
}

// LatestVersions resolves the newest stable tag for every registry
// package, in declaration order. A package with no stable candidate
// fails the whole run; there is no partial result.
func LatestVersions(reg registry.Registry, client TagLister) (map[string]string, error) {
	latest := make(map[string]string, len(reg.Packages))
	for _, pkg := range reg.Packages {
		names, err := client.Tags(pkg)
		if err != nil {
			return nil, err
		}
		logging.Debug(fmt.Sprintf("%s: %d tags fetched", pkg.Name, len(names)))
		best, ok := tags.PickLatest(names, tags.ForPrefix(pkg.TagPrefix))
		if !ok {
			return nil, fmt.Errorf("could not determine latest stable %s version", pkg.Name)
		}
		latest[pkg.Name] = best
	}
	return latest, nil
}

// CheckUpdates diffs pinned versions against resolved ones for the
// given package order. Packages absent from either side are skipped.
func CheckUpdates(current *store.Versions, latest map[string]string, order []string) []Update {
	var updates []Update
	for _, name := range order {
		cur, okCur := current.Get(name)
		lat, okLat := latest[name]
		if !okCur || !okLat {
			continue
		}
		if cur != lat {
			updates = append(updates, Update{Name: name, Current: cur, Latest: lat})
		}
	}
	return updates
}

// Options control a single Run.
type Options struct {
	File      string
	CheckOnly bool
	// Confirm, when set, is asked before writing. A false answer
	// leaves the store untouched.
	Confirm func(updates []Update) bool
}

// Run executes the whole pipeline: load the store, resolve the latest
// versions (all or nothing), report differences, and persist unless in
// check-only mode.
func Run(reg registry.Registry, client TagLister, opts Options) error {
	current, err := store.Read(opts.File)
	if err != nil {
		return err
	}
	latest, err := LatestVersions(reg, client)
	if err != nil {
		return err
	}

	updates := CheckUpdates(current, latest, reg.Names())
	if len(updates) == 0 {
		logging.Info(opts.File + " is up to date (stable versions only).")
		return nil
	}

	logging.Info("Updates available:")
	for _, u := range updates {
		logging.Info(fmt.Sprintf("- %s: %s -> %s", u.Name, u.Current, u.Latest))
	}

	if opts.CheckOnly {
		return ErrUpdatesNotWritten
	}
	if opts.Confirm != nil && !opts.Confirm(updates) {
		return ErrUpdatesNotWritten
	}

	merged := current.Clone()
	for _, u := range updates {
		merged.Set(u.Name, u.Latest)
	}
	if err := merged.Write(opts.File); err != nil {
		return err
	}
	logging.Success("Updated " + opts.File)
	return nil
}
