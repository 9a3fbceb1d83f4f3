package runner

import "errors"

// FileResult is what a Task reports for one file.
type FileResult struct {
	// Output is the path written, or that would have been written.
	Output string

	// Spans is the number of spans in the exported document.
	Spans int

	// Written is false when the output already held the same content.
	Written bool

	// BackedUp is set when a previous output was backed up first.
	BackedUp bool
}

// FileOutcome is the result of processing one discovered file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result is valid when Error is nil.
	Result FileResult

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files processed without error.
	FilesProcessed int

	// FilesErrored is the number of files that failed.
	FilesErrored int

	// FilesWritten counts outputs whose content changed.
	FilesWritten int

	// FilesUnchanged counts outputs left as they were.
	FilesUnchanged int

	// FilesBackedUp counts outputs backed up before being replaced.
	FilesBackedUp int

	// Spans is the total number of spans exported.
	Spans int
}

// Result is the overall runner result.
type Result struct {
	// Files holds one outcome per processed file, in discovery order.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// Err joins the errors of all failed files, or returns nil.
func (r *Result) Err() error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, f := range r.Files {
		if f.Error != nil {
			errs = append(errs, f.Error)
		}
	}
	return errors.Join(errs...)
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.Spans += outcome.Result.Spans
	if outcome.Result.Written {
		r.Stats.FilesWritten++
	} else {
		r.Stats.FilesUnchanged++
	}
	if outcome.Result.BackedUp {
		r.Stats.FilesBackedUp++
	}
}
