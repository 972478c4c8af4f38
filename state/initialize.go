package state

import (
	"time"

	"imghist/config"
	"imghist/decoder"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
	}
}

// DecoderOptions returns decoding limits derived from configuration.
func (e *LocalEnv) DecoderOptions() decoder.Options {
	if e.Cfg == nil {
		return decoder.Options{}
	}
	return decoder.Options{MaxPixels: e.Cfg.Analysis.MaxPixels}
}

// Analysis returns analysis configuration, defaults are used when
// configuration was never loaded.
func (e *LocalEnv) Analysis() config.AnalysisConfig {
	if e.Cfg == nil {
		return config.AnalysisConfig{}
	}
	return e.Cfg.Analysis
}
