// Package compare computes the backlog overlap between two users from
// their already-collected title sets. Matching is case-insensitive exact
// string equality, nothing fuzzy.
package compare

import (
	"sort"
	"strings"
)

// SampleCap bounds the titles returned per bucket; full bucket sizes are
// reported separately in the counts.
const SampleCap = 20

type Result struct {
	Common     []string `json:"common"`
	OnlyCaller []string `json:"only_caller"`
	OnlyTarget []string `json:"only_target"`

	CommonCount     int `json:"common_count"`
	OnlyCallerCount int `json:"only_caller_count"`
	OnlyTargetCount int `json:"only_target_count"`
}

// Backlogs buckets the two title sets into common and one-sided titles.
// Duplicate titles within one side (the same title in several lists, or
// differing only by case) collapse to a single entry; the first-seen
// casing wins. Output is sorted for stable display before capping.
func Backlogs(caller, target []string) Result {
	callerSet := fold(caller)
	targetSet := fold(target)

	var res Result
	for key, title := range callerSet {
		if _, ok := targetSet[key]; ok {
			res.Common = append(res.Common, title)
		} else {
			res.OnlyCaller = append(res.OnlyCaller, title)
		}
	}
	for key, title := range targetSet {
		if _, ok := callerSet[key]; !ok {
			res.OnlyTarget = append(res.OnlyTarget, title)
		}
	}

	sort.Strings(res.Common)
	sort.Strings(res.OnlyCaller)
	sort.Strings(res.OnlyTarget)

	res.CommonCount = len(res.Common)
	res.OnlyCallerCount = len(res.OnlyCaller)
	res.OnlyTargetCount = len(res.OnlyTarget)

	res.Common = cap20(res.Common)
	res.OnlyCaller = cap20(res.OnlyCaller)
	res.OnlyTarget = cap20(res.OnlyTarget)
	return res
}

// Missing returns the titles present in target but absent from caller,
// uncapped. Recommendations are built on this.
func Missing(caller, target []string) []string {
	callerSet := fold(caller)
	targetSet := fold(target)
	var out []string
	for key, title := range targetSet {
		if _, ok := callerSet[key]; !ok {
			out = append(out, title)
		}
	}
	sort.Strings(out)
	return out
}

func fold(titles []string) map[string]string {
	m := make(map[string]string, len(titles))
	for _, t := range titles {
		key := strings.ToLower(strings.TrimSpace(t))
		if key == "" {
			continue
		}
		if _, ok := m[key]; !ok {
			m[key] = strings.TrimSpace(t)
		}
	}
	return m
}

func cap20(s []string) []string {
	if s == nil {
		return []string{}
	}
	if len(s) > SampleCap {
		return s[:SampleCap]
	}
	return s
}
