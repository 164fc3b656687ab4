// Package batch translates many shader descriptors in parallel.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"glslgen/internal/ast"
	"glslgen/internal/cache"
	"glslgen/internal/codegen"
	"glslgen/internal/diag"
	"glslgen/internal/observ"
	"glslgen/internal/shader"
	"glslgen/internal/trace"
)

// Request describes one batch run.
type Request struct {
	Files     []string
	Style     *codegen.Style // defaults to codegen.JavaScript
	Jobs      int            // 0 means GOMAXPROCS
	DiagLimit int
	// Cache, when set, short-circuits descriptors translated before.
	Cache *cache.Cache
	// OutDir, when set, receives the generated source of every file that
	// materialized, laid out like the files are under Root.
	OutDir string
	// Root is the directory Files were listed from. Empty means the
	// deepest directory containing all of them.
	Root     string
	Progress Sink
	Timer    *observ.Timer
}

// FileResult is the outcome for one descriptor. Err is set for load,
// structure and write failures; a soft failure leaves Err nil and sets
// Diagnostic.
type FileResult struct {
	Path        string
	Source      string
	Diagnostic  string
	Diagnostics []diag.Diagnostic
	Cached      bool
	Warned      bool   // some diagnostic is a warning or worse
	Output      string // written file, if any
	Err         error
	Elapsed     time.Duration
}

// OK reports whether the descriptor translated and materialized.
func (r *FileResult) OK() bool { return r.Err == nil && r.Diagnostic == "" }

// ListDescriptors returns the sorted .json, .msgpack and .mp files under dir.
func ListDescriptors(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json", ".msgpack", ".mp":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Run translates every file of req. Per-file failures are recorded in the
// results; the returned error is only set when ctx is cancelled.
func Run(ctx context.Context, req *Request) ([]FileResult, error) {
	if req == nil {
		return nil, errors.New("batch: missing request")
	}
	style := req.Style
	if style == nil {
		style = codegen.JavaScript
	}
	sink := req.Progress
	if sink == nil {
		sink = nopSink{}
	}
	results := make([]FileResult, len(req.Files))
	if len(req.Files) == 0 {
		return results, nil
	}
	if req.OutDir != "" {
		if err := os.MkdirAll(req.OutDir, 0o755); err != nil {
			return nil, fmt.Errorf("batch: %w", err)
		}
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "batch", trace.CurrentSpan(ctx).SpanID)
	span.WithExtra("files", fmt.Sprint(len(req.Files))).WithExtra("style", style.Name)
	defer span.End("")
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()})

	for _, path := range req.Files {
		sink.OnEvent(Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}
	var targets []target
	if req.OutDir != "" {
		targets = outputTargets(req, style)
	}

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(req.Files)))

	for i, path := range req.Files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			w := worker{req: req, style: style, sink: sink, bag: diag.NewBag(diagLimit(req.DiagLimit))}
			if targets != nil {
				w.out = targets[i]
			}
			results[i] = w.process(gctx, path)
			results[i].Elapsed = time.Since(start)

			note := ""
			switch {
			case results[i].Err != nil:
				note = "error"
			case results[i].Cached:
				note = "cached"
			case results[i].Diagnostic != "":
				note = "soft failure"
			}
			req.Timer.Record(path, results[i].Elapsed, note)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// target is where the source of one file goes, or why it cannot.
type target struct {
	path     string
	conflict error
}

// outputTargets maps every file to OutDir plus its path below the root,
// with the style's extension. Files that would share a target all get a
// conflict instead.
func outputTargets(req *Request, style *codegen.Style) []target {
	root := req.Root
	if root == "" {
		root = commonDir(req.Files)
	}
	out := make([]target, len(req.Files))
	owners := make(map[string][]int, len(req.Files))
	for i, path := range req.Files {
		rel, err := filepath.Rel(root, path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			rel = filepath.Base(path)
		}
		name := filepath.Join(req.OutDir, strings.TrimSuffix(rel, filepath.Ext(rel))+style.Ext)
		out[i].path = name
		owners[name] = append(owners[name], i)
	}
	for name, idx := range owners {
		if len(idx) < 2 {
			continue
		}
		for _, i := range idx {
			others := make([]string, 0, len(idx)-1)
			for _, j := range idx {
				if j != i {
					others = append(others, req.Files[j])
				}
			}
			out[i].conflict = fmt.Errorf("output %s is also the target of %s", name, strings.Join(others, ", "))
		}
	}
	return out
}

// commonDir is the deepest directory containing every file.
func commonDir(files []string) string {
	if len(files) == 0 {
		return "."
	}
	dir := filepath.Dir(files[0])
	for _, f := range files[1:] {
		for {
			rel, err := filepath.Rel(dir, f)
			if err == nil && !strings.HasPrefix(rel, "..") {
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				return dir
			}
			dir = parent
		}
	}
	return dir
}

func diagLimit(n int) int {
	if n <= 0 {
		return 256
	}
	return n
}

type worker struct {
	req   *Request
	style *codegen.Style
	sink  Sink
	out   target
	// bag collects the file's diagnostics from every stage.
	bag *diag.Bag
}

func (w worker) fail(res FileResult, stage Stage, code diag.Code, err error) FileResult {
	res.Err = err
	diag.ReportError(diag.BagReporter{Bag: w.bag}, code, ast.Pos{}, err.Error()).Emit()
	w.sink.OnEvent(Event{File: res.Path, Stage: stage, Status: StatusError, Err: err})
	return w.collect(res)
}

// merge adds diagnostics produced elsewhere to the file's bag.
func (w worker) merge(items []diag.Diagnostic) {
	other := diag.NewBag(len(items))
	for _, d := range items {
		other.Add(d)
	}
	w.bag.Merge(other)
}

func (w worker) collect(res FileResult) FileResult {
	w.bag.Dedup()
	res.Diagnostics = w.bag.Items()
	res.Warned = w.bag.HasWarnings()
	return res
}

func (w worker) process(ctx context.Context, path string) FileResult {
	res := FileResult{Path: path}
	unit := trace.Begin(trace.FromContext(ctx), trace.ScopeUnit, filepath.Base(path), trace.CurrentSpan(ctx).SpanID)
	defer unit.End("")
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: unit.ID()})

	w.sink.OnEvent(Event{File: path, Stage: StageLoad, Status: StatusWorking})
	data, err := os.ReadFile(path)
	if err != nil {
		return w.fail(res, StageLoad, diag.IOLoadFileError, fmt.Errorf("load %s: %w", path, err))
	}

	key := cache.Key(w.style.Name, data)
	reporter := diag.BagReporter{Bag: w.bag}
	if art, ok, err := w.req.Cache.Get(key); err != nil {
		diag.ReportWarning(reporter, diag.IOCacheError, ast.Pos{}, err.Error()).Emit()
	} else if ok {
		res.Source, res.Diagnostic, res.Cached = art.Source, art.Diagnostic, true
		w.merge(art.Diagnostics)
		w.sink.OnEvent(Event{File: path, Stage: StageTranslate, Status: StatusCached})
		return w.store(res)
	}

	sh, err := ast.Decode(path, data)
	if err != nil {
		return w.fail(res, StageLoad, diag.IODecodeError, err)
	}

	w.sink.OnEvent(Event{File: path, Stage: StageTranslate, Status: StatusWorking})
	out, err := shader.Translate(ctx, sh, shader.Options{
		Style:     w.style,
		Name:      filepath.Base(path),
		DiagLimit: w.req.DiagLimit,
	})
	if err != nil {
		return w.fail(res, StageTranslate, diag.CodegenUnsupportedNode, err)
	}
	res.Source, res.Diagnostic = out.Source, out.Diagnostic
	w.merge(out.Diagnostics)

	err = w.req.Cache.Put(key, &cache.Artifact{
		Style:       w.style.Name,
		Name:        filepath.Base(path),
		Source:      out.Source,
		Diagnostic:  out.Diagnostic,
		Diagnostics: out.Diagnostics,
	})
	if err != nil {
		diag.ReportWarning(reporter, diag.IOCacheError, ast.Pos{}, err.Error()).Emit()
	}
	return w.store(res)
}

// store writes the source of a materialized translation to its target
// under OutDir.
func (w worker) store(res FileResult) FileResult {
	if w.req.OutDir == "" || res.Diagnostic != "" {
		w.finish(res)
		return w.collect(res)
	}
	w.sink.OnEvent(Event{File: res.Path, Stage: StageStore, Status: StatusWorking})
	if w.out.conflict != nil {
		return w.fail(res, StageStore, diag.IOOutputConflict, w.out.conflict)
	}
	name := w.out.path
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return w.fail(res, StageStore, diag.IOWriteError, fmt.Errorf("write %s: %w", name, err))
	}
	if err := os.WriteFile(name, []byte(res.Source), 0o644); err != nil {
		return w.fail(res, StageStore, diag.IOWriteError, fmt.Errorf("write %s: %w", name, err))
	}
	res.Output = name
	w.finish(res)
	return w.collect(res)
}

func (w worker) finish(res FileResult) {
	status := StatusDone
	switch {
	case res.Diagnostic != "":
		status = StatusError
	case res.Cached:
		status = StatusCached
	}
	w.sink.OnEvent(Event{File: res.Path, Stage: StageTranslate, Status: status})
}
