/*
Package walker assembles the snapshot tree for one run: it enumerates the
filesystem under the resolved root, applies the active filtering rules,
builds one immutable snapshot per surviving entry, and aggregates directory
sizes bottom-up once every child is known.

Directory enumeration is serial so the tree shape stays deterministic;
per-file snapshot construction fans out over a worker pool sized by the
resolved thread count.

Basic usage:

	w, err := walker.New(rc, fs, log)
	result, err := w.Walk(ctx)
*/
package walker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	gitignore "github.com/monochromegane/go-gitignore"
	"github.com/spf13/afero"

	rctx "github.com/Knodis-c/erdtree-3-1/internal/context"
	"github.com/Knodis-c/erdtree-3-1/internal/du"
	"github.com/Knodis-c/erdtree-3-1/internal/ignore"
	"github.com/Knodis-c/erdtree-3-1/internal/node"
	"github.com/Knodis-c/erdtree-3-1/pkg/logger"
	"github.com/Knodis-c/erdtree-3-1/pkg/worker"
)

// Walker traverses a directory tree and produces snapshot nodes.
type Walker interface {
	// Walk performs the traversal rooted at the resolved directory
	Walk(ctx context.Context) (Result, error)
}

type walker struct {
	rc        *rctx.Context
	fs        afero.Fs
	log       logger.Logger
	overrides *ignore.Override
	predicate func(name string, isDir bool) bool

	taskID int
}

// fileResult carries one pooled snapshot back to the assembly loop.
type fileResult struct {
	parent *node.Node
	path   string
	child  *node.Node
	err    error
}

// ignoreStack is the chain of .gitignore matchers from the root down to the
// directory currently being enumerated.
type ignoreStack []gitignore.IgnoreMatcher

func (s ignoreStack) ignored(path string, isDir bool) bool {
	for _, m := range s {
		if m.Match(path, isDir) {
			return true
		}
	}

	return false
}

// New builds a Walker from the resolved parameter set. Filtering rules are
// compiled up front so an invalid pattern fails before any IO happens.
func New(rc *rctx.Context, fs afero.Fs, log logger.Logger) (Walker, error) {
	if rc.Threads <= 0 {
		return nil, fmt.Errorf("thread count must be positive")
	}

	overrides, err := rc.Overrides()
	if err != nil {
		return nil, fmt.Errorf("compiling override rules: %w", err)
	}

	w := &walker{
		rc:        rc,
		fs:        fs,
		log:       log,
		overrides: overrides,
	}

	if rc.Pattern != "" && !rc.Glob && !rc.IGlob {
		predicate, err := rc.RegexPredicate()
		if err != nil {
			return nil, err
		}
		w.predicate = predicate
	}

	return w, nil
}

// Walk performs the traversal.
func (w *walker) Walk(ctx context.Context) (Result, error) {
	start := time.Now()
	result := Result{
		Errors: make(map[string]error),
		Stats:  Stats{StartTime: start},
	}

	root := w.rc.Dir()

	w.log.WithFields(logger.Fields{
		"path":    root,
		"threads": w.rc.Threads,
	}).Info("Starting traversal")

	rootInfo, err := w.fs.Stat(root)
	if err != nil {
		return result, fmt.Errorf("failed to stat root directory: %w", err)
	}

	rootNode, err := node.New(node.Entry{Path: root, Depth: 0, Mode: rootInfo.Mode()}, w.rc, w.fs)
	if err != nil {
		return result, fmt.Errorf("failed to snapshot root directory: %w", err)
	}
	result.Root = rootNode

	pool, err := worker.NewPool(worker.Config{Workers: w.rc.Threads})
	if err != nil {
		return result, fmt.Errorf("failed to create worker pool: %w", err)
	}
	if err := pool.Start(ctx); err != nil {
		return result, fmt.Errorf("failed to start worker pool: %w", err)
	}
	defer func() {
		if err := pool.Stop(); err != nil {
			w.log.WithFields(logger.Fields{
				"error": err,
			}).Warn("Error stopping worker pool")
		}
	}()

	if rootNode.IsDir() {
		visited := make(map[identity]bool)
		if err := w.walkDir(ctx, pool, rootNode, 1, nil, visited, &result); err != nil {
			return result, err
		}
	}

	poolResults, err := pool.Wait()
	if err != nil {
		return result, fmt.Errorf("error waiting for workers: %w", err)
	}
	w.attach(poolResults, &result)

	w.aggregate(rootNode)

	if w.rc.Prune {
		pruneEmpty(rootNode)
	}
	if w.rc.DirsOnly {
		dropFiles(rootNode)
	}
	sortTree(rootNode, node.Comparator(w.rc))

	w.finish(&result)

	w.log.WithFields(logger.Fields{
		"duration": result.Stats.Duration,
		"files":    result.Stats.NumFiles,
		"dirs":     result.Stats.NumDirs,
		"bytes":    result.Stats.TotalBytes,
		"errors":   len(result.Errors),
	}).Info("Traversal completed")

	return result, nil
}

// identity keys the cycle guard used when following symbolic links.
type identity struct {
	dev uint64
	ino uint64
}

func (w *walker) walkDir(ctx context.Context, pool worker.Pool, parent *node.Node, depth int, stack ignoreStack, visited map[identity]bool, result *Result) error {
	dir := parent.Path()

	entries, err := afero.ReadDir(w.fs, dir)
	if err != nil {
		w.log.WithFields(logger.Fields{
			"error": err,
			"path":  dir,
		}).Warn("Failed to read directory")
		result.Errors[dir] = err
		return nil
	}

	if !w.rc.NoIgnore {
		if matcher := w.loadIgnoreFile(dir); matcher != nil {
			stack = append(stack, matcher)
		}
	}

	for _, info := range entries {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		name := info.Name()
		path := filepath.Join(dir, name)
		entry := node.Entry{Path: path, Depth: depth, Mode: info.Mode()}

		if !w.included(path, name, info.IsDir(), stack, result) {
			continue
		}

		switch {
		case info.IsDir():
			child, err := node.New(entry, w.rc, w.fs)
			if err != nil {
				result.Errors[path] = err
				continue
			}
			parent.Children = append(parent.Children, child)

			if err := w.descend(ctx, pool, child, depth, stack, visited, result); err != nil {
				return err
			}

		case info.Mode()&os.ModeSymlink != 0:
			// Symlinks are handled inline because following one may turn
			// it into a directory to descend into.
			child, err := node.New(entry, w.rc, w.fs)
			if err != nil {
				result.Errors[path] = err
				continue
			}
			if !child.IsDir() && w.predicate != nil && !w.predicate(name, false) {
				result.Stats.SkippedEntries++
				continue
			}
			parent.Children = append(parent.Children, child)

			if w.rc.Follow && child.IsDir() {
				if err := w.descend(ctx, pool, child, depth, stack, visited, result); err != nil {
					return err
				}
			}

		default:
			if w.predicate != nil && !w.predicate(name, false) {
				result.Stats.SkippedEntries++
				continue
			}
			w.submitSnapshot(pool, parent, entry, result)
		}
	}

	return nil
}

// descend recurses into a directory node, guarding against symlink cycles
// when targets are being followed.
func (w *walker) descend(ctx context.Context, pool worker.Pool, child *node.Node, depth int, stack ignoreStack, visited map[identity]bool, result *Result) error {
	if w.rc.Follow {
		if ino := child.Inode(); ino != nil {
			id := identity{dev: ino.Dev, ino: ino.Ino}
			if visited[id] {
				w.log.WithFields(logger.Fields{
					"path": child.Path(),
				}).Debug("Skipping already visited directory")
				return nil
			}
			visited[id] = true
		}
	}

	return w.walkDir(ctx, pool, child, depth+1, stack, visited, result)
}

// included applies the filtering rules shared by every entry kind.
func (w *walker) included(path, name string, isDir bool, stack ignoreStack, result *Result) bool {
	if !w.rc.Hidden && strings.HasPrefix(name, ".") {
		result.Stats.SkippedEntries++
		return false
	}

	if stack.ignored(path, isDir) {
		w.log.WithFields(logger.Fields{
			"path": path,
		}).Debug("Entry matched an ignore rule")
		result.Stats.SkippedEntries++
		return false
	}

	if !w.overrides.IsIncluded(path, isDir) {
		result.Stats.SkippedEntries++
		return false
	}

	return true
}

func (w *walker) loadIgnoreFile(dir string) gitignore.IgnoreMatcher {
	path := filepath.Join(dir, ".gitignore")
	f, err := w.fs.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	return gitignore.NewGitIgnoreFromReader(dir, f)
}

// submitSnapshot fans one file snapshot out to the worker pool.
func (w *walker) submitSnapshot(pool worker.Pool, parent *node.Node, entry node.Entry, result *Result) {
	w.taskID++
	id := w.taskID

	task := worker.Task{
		ID: id,
		Execute: func(context.Context) (worker.Result, error) {
			child, err := node.New(entry, w.rc, w.fs)
			return worker.Result{
				ID: id,
				Data: fileResult{
					parent: parent,
					path:   entry.Path,
					child:  child,
					err:    err,
				},
			}, nil
		},
	}

	if err := pool.Submit(task); err != nil {
		w.log.WithFields(logger.Fields{
			"error": err,
			"path":  entry.Path,
		}).Error("Failed to submit snapshot task")
		result.Errors[entry.Path] = err
	}
}

// attach folds the pooled snapshots back into the tree. Results arrive in
// submission order, which is enumeration order within each directory.
func (w *walker) attach(poolResults []worker.Result, result *Result) {
	for _, r := range poolResults {
		fr, ok := r.Data.(fileResult)
		if !ok {
			continue
		}
		if fr.err != nil {
			result.Errors[fr.path] = fr.err
			continue
		}
		fr.parent.Children = append(fr.parent.Children, fr.child)
	}
}

// aggregate computes directory sizes bottom-up and back-fills each
// directory snapshot exactly once.
func (w *walker) aggregate(n *node.Node) uint64 {
	if !n.IsDir() {
		return n.SizeBytes()
	}

	var total uint64
	for _, child := range n.Children {
		total += w.aggregate(child)
	}

	if !w.rc.SuppressSize {
		if err := n.FinalizeSize(du.NewFileSize(total, w.rc.Unit, w.rc.Scale)); err != nil {
			w.log.WithFields(logger.Fields{
				"error": err,
				"path":  n.Path(),
			}).Warn("Could not finalize directory size")
		}
	}

	return total
}

// pruneEmpty removes directories left with no children, bottom-up, so a
// directory whose only contents were themselves pruned disappears too.
func pruneEmpty(n *node.Node) {
	kept := n.Children[:0]
	for _, child := range n.Children {
		if child.IsDir() {
			pruneEmpty(child)
			if len(child.Children) == 0 {
				continue
			}
		}
		kept = append(kept, child)
	}
	n.Children = kept
}

func dropFiles(n *node.Node) {
	kept := n.Children[:0]
	for _, child := range n.Children {
		if !child.IsDir() {
			continue
		}
		dropFiles(child)
		kept = append(kept, child)
	}
	n.Children = kept
}

func sortTree(n *node.Node, less func(a, b *node.Node) bool) {
	sort.SliceStable(n.Children, func(i, j int) bool {
		return less(n.Children[i], n.Children[j])
	})
	for _, child := range n.Children {
		if child.IsDir() {
			sortTree(child, less)
		}
	}
}

// finish fills in the final statistics and the display column widths.
func (w *walker) finish(result *Result) {
	var maxSize, maxNlink uint64

	var visit func(n *node.Node)
	visit = func(n *node.Node) {
		switch {
		case n.IsSymlink():
			result.Stats.NumLinks++
		case n.IsDir():
			result.Stats.NumDirs++
		default:
			result.Stats.NumFiles++
		}

		if size := n.SizeBytes(); size > maxSize {
			maxSize = size
		}
		if nlink := n.Nlink(); nlink > maxNlink {
			maxNlink = nlink
		}

		for _, child := range n.Children {
			visit(child)
		}
	}
	visit(result.Root)

	result.Stats.TotalBytes = result.Root.SizeBytes()
	result.Stats.EndTime = time.Now()
	result.Stats.Duration = result.Stats.EndTime.Sub(result.Stats.StartTime)

	w.rc.SetMaxDuWidth(maxSize)
	w.rc.SetMaxNlinkWidth(maxNlink)
}
