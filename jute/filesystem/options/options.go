package options

import (
	internal "github.com/ZanzyTHEbar/jute-commons/jute"
	"github.com/ZanzyTHEbar/jute-commons/jute/config"
)

// TraversalOptions configures directory tree enumeration
type TraversalOptions struct {
	Recursive          bool     // Descend into subdirectories
	ExcludeFragments   []string // Path fragments matched as segment subsequences
	ExcludeFilenames   []string // Exact basenames to drop
	ExcludeGlobs       []string // '/'-separated globs on the root-relative path
	IgnorePatterns     []string // gitignore style lines
	IgnoreFile         string   // gitignore style file looked up in the root ("" disables)
	MaxConcurrentRoots int      // Parallel walks for EnumerateRoots
}

// DefaultTraversalOptions returns sensible defaults for traversal operations
func DefaultTraversalOptions() TraversalOptions {
	return TraversalOptions{
		Recursive:          true,
		IgnoreFile:         internal.DefaultIgnoreFileName,
		MaxConcurrentRoots: internal.DefaultMaxConcurrentRoots,
	}
}

// FromConfig builds traversal options from the loaded walker configuration
func FromConfig(cfg config.WalkerConfig) TraversalOptions {
	opts := TraversalOptions{
		Recursive:          cfg.Recursive,
		ExcludeFragments:   append([]string(nil), cfg.ExcludeFragments...),
		ExcludeFilenames:   append([]string(nil), cfg.ExcludeFilenames...),
		ExcludeGlobs:       append([]string(nil), cfg.ExcludeGlobs...),
		IgnoreFile:         cfg.IgnoreFile,
		MaxConcurrentRoots: cfg.MaxConcurrentRoots,
	}
	if opts.MaxConcurrentRoots < 1 {
		opts.MaxConcurrentRoots = internal.DefaultMaxConcurrentRoots
	}
	return opts
}

// HasExclusions reports whether any exclusion source is configured.
func (o TraversalOptions) HasExclusions() bool {
	return len(o.ExcludeFragments) > 0 ||
		len(o.ExcludeFilenames) > 0 ||
		len(o.ExcludeGlobs) > 0 ||
		len(o.IgnorePatterns) > 0 ||
		o.IgnoreFile != ""
}
