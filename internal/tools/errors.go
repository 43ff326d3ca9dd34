package tools

import "fmt"

// DownloadError reports a failed tool download.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// PermissionError reports a failure to mark a downloaded tool executable.
type PermissionError struct {
	Path string
	Err  error
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("mark %s executable: %v", e.Path, e.Err)
}

func (e *PermissionError) Unwrap() error { return e.Err }

// ExtractionError reports a failed self-extraction run. ExitCode is -1 when
// the tool never started.
type ExtractionError struct {
	Tool     string
	ExitCode int
	Err      error
}

func (e *ExtractionError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("extract %s: exit code %d: %v", e.Tool, e.ExitCode, e.Err)
	}
	return fmt.Sprintf("extract %s: %v", e.Tool, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// PatchError reports a failed in-place script patch.
type PatchError struct {
	Path string
	Err  error
}

func (e *PatchError) Error() string {
	return fmt.Sprintf("patch %s: %v", e.Path, e.Err)
}

func (e *PatchError) Unwrap() error { return e.Err }
