package driver

import (
	"context"
	"fmt"
	"io"
	"math"
	"runtime"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"ircmsg/internal/diag"
	"ircmsg/internal/lineio"
	"ircmsg/internal/message"
	"ircmsg/internal/observ"
	"ircmsg/internal/source"
	"ircmsg/internal/trace"
	"ircmsg/internal/validate"
)

// stdinName is the FileSet path given to standard input.
const stdinName = "<stdin>"

// FileResult содержит результат проверки одного файла.
type FileResult struct {
	Path     string        // путь, как он был передан или найден
	FileID   source.FileID // ID файла в FileSet
	Lines    int
	Messages int            // строки с непустой командой
	Commands map[string]int // команда (в верхнем регистре) -> количество
	Bag      *diag.Bag
	Timing   *observ.Report
}

// CheckPaths loads every file under paths and validates it line by line.
// Files are loaded one after another, then checked in parallel.
// Per-file problems, including load failures, end up in FileResult.Bag;
// the returned error is reserved for bad options, walk failures and
// cancellation.
func CheckPaths(ctx context.Context, paths []string, opts Options) (*source.FileSet, []FileResult, error) {
	ctx, span := trace.StartSpan(ctx, trace.ScopeDriver, "check_paths")
	var checked int
	defer func() { span.End(fmt.Sprintf("files=%d", checked)) }()

	decode, err := lineio.Decoder(opts.Encoding)
	if err != nil {
		return nil, nil, err
	}

	phase := startPhase(opts.OnPhase, "expand")
	files, err := ExpandPaths(paths, opts.extensions())
	phase.end()
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSet()
	if len(files) == 0 {
		return fileSet, nil, nil
	}
	emitQueued(opts.Progress, files)

	// FileSet не потокобезопасен на запись, поэтому загрузка последовательная
	phase = startPhase(opts.OnPhase, "load")
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make([]error, len(files))
	for i, path := range files {
		if err := ctx.Err(); err != nil {
			phase.end()
			return fileSet, nil, err
		}
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusWorking})
		fileIDs[i], loadErrors[i] = loadFile(fileSet, path, opts.stdin(), decode)
	}
	phase.end()

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]FileResult, len(files))

	phase = startPhase(opts.OnPhase, "check")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			bag := diag.NewBag(opts.bagLimit())
			if loadErr := loadErrors[i]; loadErr != nil {
				results[i] = FileResult{Path: path, FileID: fileIDs[i], Bag: bag}
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFileError,
					Message:  "failed to load file: " + loadErr.Error(),
					Primary:  source.Span{}.In(fileIDs[i]),
				})
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr})
				return nil
			}

			res, err := checkFile(gctx, fileSet.Get(fileIDs[i]), path, bag, opts)
			results[i] = res
			return err
		})
	}

	err = g.Wait()
	phase.end()
	if err != nil {
		return fileSet, results, err
	}
	checked = len(files)
	return fileSet, results, nil
}

// loadFile adds path to fileSet. A file that cannot be read is still
// registered, empty, so that its diagnostics have a location.
func loadFile(fileSet *source.FileSet, path string, stdin io.Reader, decode func([]byte) ([]byte, error)) (source.FileID, error) {
	if path == StdinPath {
		content, err := io.ReadAll(stdin)
		if err == nil && decode != nil {
			content, err = decode(content)
		}
		if err != nil {
			return fileSet.AddVirtual(stdinName, nil), err
		}
		return fileSet.AddVirtual(stdinName, content), nil
	}
	id, err := fileSet.LoadWith(path, decode)
	if err != nil {
		return fileSet.AddVirtual(path, nil), err
	}
	return id, nil
}

// checkFile validates every line of file. On cancellation it returns the
// partial result together with ctx.Err().
func checkFile(ctx context.Context, file *source.File, path string, bag *diag.Bag, opts Options) (FileResult, error) {
	tracer := trace.FromContext(ctx)
	ctx, span := trace.StartSpan(ctx, trace.ScopeFile, "check_file")
	span.WithExtra("path", path)
	emitLines := tracer.Enabled() && tracer.Level().ShouldEmit(trace.ScopeLine)

	res := FileResult{Path: path, FileID: file.ID, Bag: bag}
	emit(opts.Progress, Event{File: path, Stage: StageCheck, Status: StatusWorking})

	timer := observ.NewTimer()
	idx := timer.Begin("check")

	commands := source.NewInterner()
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	var cancelErr error
	for line := range lineio.Lines(string(file.Content)) {
		if cancelErr = ctx.Err(); cancelErr != nil {
			break
		}
		base, err := safecast.Conv[uint32](line.Offset)
		if err != nil {
			diag.ReportError(reporter, diag.IOReadError, source.Span{}.In(file.ID),
				fmt.Sprintf("line %d is beyond the addressable range", line.Number)).Emit()
			break
		}
		res.Lines++

		msg := message.Parse(line.Text)
		validate.Check(msg, reporter, validate.Options{File: file.ID, Base: base, Limits: opts.Limits})
		if cmd := msg.Command(); !cmd.IsEmpty() {
			res.Messages++
			commands.Intern(strings.ToUpper(cmd.Raw()))
		}
		if emitLines {
			span.Point(trace.ScopeLine, "line", fmt.Sprintf("%d %s", line.Number, msg.Command()))
		}
	}

	if cancelErr != nil {
		emit(opts.Progress, Event{File: path, Stage: StageCheck, Status: StatusError, Lines: res.Lines, Err: cancelErr})
		span.End("canceled")
		return res, cancelErr
	}

	timer.EndLines(idx, res.Lines, "")
	report := timer.Report()
	res.Timing = &report
	res.Commands = commands.Counts()
	if opts.Timings {
		appendTimingDiagnostic(bag, file.ID, timingPayload{
			Kind:    "file",
			Path:    path,
			TotalMS: report.TotalMS,
			Phases:  report.Phases,
		})
	}

	status := StatusDone
	if bag.HasErrors() {
		status = StatusError
	}
	emit(opts.Progress, Event{File: path, Stage: StageCheck, Status: status, Lines: res.Lines})
	if n := reporter.Suppressed(); n > 0 {
		span.WithExtra("duplicates", strconv.Itoa(n))
	}
	span.End(fmt.Sprintf("lines=%d", res.Lines))
	return res, nil
}

func (o Options) bagLimit() int {
	if o.MaxDiagnostics <= 0 {
		return math.MaxUint16
	}
	return o.MaxDiagnostics
}

// Totals sums the results of a CheckPaths run.
func Totals(results []FileResult) (lines, messages, errors, warnings int) {
	for _, r := range results {
		lines += r.Lines
		messages += r.Messages
		if r.Bag != nil {
			e, w, _ := r.Bag.Counts()
			errors += e
			warnings += w
		}
	}
	return lines, messages, errors, warnings
}
