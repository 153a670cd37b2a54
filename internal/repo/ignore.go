package repo

import (
	"fmt"
	"path"
	"strings"
)

// RuleSet holds exclude patterns applied while scanning a source tree.
// A pattern containing a slash matches against the full slash-separated
// relative path; otherwise it matches against each path component.
// Patterns use path.Match syntax.
type RuleSet struct {
	pathPatterns []string
	namePatterns []string
}

// NewRuleSet compiles exclude patterns, rejecting malformed ones up
// front so scan failures can't surface mid-walk.
func NewRuleSet(patterns []string) (*RuleSet, error) {
	rs := &RuleSet{}
	for _, p := range patterns {
		if _, err := path.Match(p, ""); err != nil {
			return nil, fmt.Errorf("bad exclude pattern %q: %w", p, err)
		}
		if strings.Contains(p, "/") {
			rs.pathPatterns = append(rs.pathPatterns, strings.Trim(p, "/"))
		} else {
			rs.namePatterns = append(rs.namePatterns, p)
		}
	}
	return rs, nil
}

// Empty reports whether the rule set has no patterns.
func (rs *RuleSet) Empty() bool {
	return rs == nil || (len(rs.pathPatterns) == 0 && len(rs.namePatterns) == 0)
}

// Excluded reports whether the slash-separated relative path matches
// any exclude pattern.
func (rs *RuleSet) Excluded(relPath string) bool {
	if rs.Empty() {
		return false
	}

	for _, p := range rs.pathPatterns {
		if ok, _ := path.Match(p, relPath); ok {
			return true
		}
	}

	for _, component := range strings.Split(relPath, "/") {
		for _, p := range rs.namePatterns {
			if ok, _ := path.Match(p, component); ok {
				return true
			}
		}
	}
	return false
}
