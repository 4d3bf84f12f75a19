package model

import "sync"

// Process-wide model handle and initialization guard. The model is loaded
// once at startup and read-only afterwards.
var (
	defaultModel *LogisticModel
	defaultErr   error
	defaultOnce  sync.Once
)

// LoadDefault loads the process-wide model handle on first call and returns
// the same result to every subsequent caller, whichever path they pass.
// Safe for concurrent use.
func LoadDefault(path string) (*LogisticModel, error) {
	defaultOnce.Do(func() {
		defaultModel, defaultErr = LoadArtifact(path)
	})
	return defaultModel, defaultErr
}

// ResetDefault clears the process-wide handle so it can be reloaded.
// Not thread-safe; for tests only.
func ResetDefault() {
	defaultOnce = sync.Once{}
	defaultModel = nil
	defaultErr = nil
}
