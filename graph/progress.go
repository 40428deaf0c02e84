package tiledgraph

import "github.com/schollz/progressbar/v3"

// ProgressWriter creates progress trackers for WriteTo/ReadFrom. The
// default installed by New is a no-op so library callers never see bar
// output; the CLI installs a real one via WithProgress.
//
// Mirrors the teacher's own ProgressWriter abstraction in
// pmtiles/progress.go, trimmed to the one operation this package
// needs: a count-based tracker over vertex/edge records.
type ProgressWriter interface {
	NewCountProgress(total int64, description string) Progress
}

// Progress is an active progress tracker.
type Progress interface {
	Add(num int)
	Close() error
}

type noopProgressWriter struct{}

func (noopProgressWriter) NewCountProgress(int64, string) Progress { return noopProgress{} }

type noopProgress struct{}

// Add satisfies Progress; the no-op tracker does nothing.
func (noopProgress) Add(int) {}

func (noopProgress) Close() error { return nil }

// BarProgressWriter reports progress on the terminal via
// github.com/schollz/progressbar/v3, for use by CLI tools built on this
// package.
type BarProgressWriter struct{}

func (BarProgressWriter) NewCountProgress(total int64, description string) Progress {
	return &barProgress{bar: progressbar.Default(total, description)}
}

type barProgress struct {
	bar *progressbar.ProgressBar
}

func (p *barProgress) Add(num int) {
	_ = p.bar.Add(num)
}

func (p *barProgress) Close() error {
	return p.bar.Close()
}
