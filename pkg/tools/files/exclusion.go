package files

import (
	"sort"

	"github.com/entrhq/scribe/pkg/filesystem"
)

// Confidence grades how certain an exclusion rule is. High confidence rules
// describe tools that cannot possibly succeed in the current file system
// state; lower tiers are advisory.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// neverExclude lists tools that must always stay available so an agent can
// recover from any file system state.
var neverExclude = map[string]bool{
	"write_file": true,
}

// ExclusionRule names a set of tools to withhold from an agent while a
// condition on the file system holds.
type ExclusionRule struct {
	Name       string
	Confidence Confidence
	Tools      []string
	Applies    func(fs *filesystem.FileSystem) bool
}

// defaultRules returns the built-in exclusion rules.
//
// A file system with no content cannot satisfy read_file or
// replace_file_str, so withholding them stops an agent from burning
// iterations on calls that are guaranteed to fail. write_file and
// append_file stay available: write_file creates content and append_file
// always has the default todo file to target.
func defaultRules() []ExclusionRule {
	return []ExclusionRule{
		{
			Name:       "empty_file_system",
			Confidence: ConfidenceHigh,
			Tools:      []string{"read_file", "replace_file_str"},
			Applies: func(fs *filesystem.FileSystem) bool {
				return !fs.HasContent()
			},
		},
	}
}

// ExclusionService decides which tools to withhold from an agent based on
// the current state of the file system. Exclusions are recomputed on every
// call so they track file system changes within a workflow.
type ExclusionService struct {
	fs    *filesystem.FileSystem
	rules []ExclusionRule
}

// NewExclusionService creates an ExclusionService with the default rules.
func NewExclusionService(fs *filesystem.FileSystem) *ExclusionService {
	return &ExclusionService{
		fs:    fs,
		rules: defaultRules(),
	}
}

// ExcludedTools returns the sorted names of tools currently withheld.
// Only high confidence rules exclude; lower tiers are reported through
// Stats but never withhold a tool.
func (s *ExclusionService) ExcludedTools() []string {
	excluded := make(map[string]bool)

	for _, rule := range s.rules {
		if rule.Confidence != ConfidenceHigh {
			continue
		}
		if !rule.Applies(s.fs) {
			continue
		}
		for _, name := range rule.Tools {
			if neverExclude[name] {
				continue
			}
			excluded[name] = true
		}
	}

	names := make([]string, 0, len(excluded))
	for name := range excluded {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsExcluded reports whether the named tool is currently withheld.
func (s *ExclusionService) IsExcluded(name string) bool {
	for _, excluded := range s.ExcludedTools() {
		if excluded == name {
			return true
		}
	}
	return false
}

// Stats returns a debugging snapshot of the exclusion state.
func (s *ExclusionService) Stats() map[string]interface{} {
	applied := make([]string, 0, len(s.rules))
	for _, rule := range s.rules {
		if rule.Applies(s.fs) {
			applied = append(applied, rule.Name)
		}
	}

	excluded := s.ExcludedTools()
	return map[string]interface{}{
		"total_rules":    len(s.rules),
		"applied_rules":  applied,
		"excluded_tools": excluded,
		"excluded_count": len(excluded),
		"has_content":    s.fs.HasContent(),
	}
}
