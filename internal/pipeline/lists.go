package pipeline

import "regexp"

// List markers may sit behind a blockquote prefix ("> - item"). The prefix
// is captured and kept so the blockquote step still sees it.
var (
	// - [ ] task, * [x] task
	taskListPattern = regexp.MustCompile(`(?m)^((?:[ \t]{0,3}>){0,16})[ \t]*[-*+][ \t]+\[[ xX]\][ \t]+`)

	// - item, * item, + item, 1. item, 1) item
	listMarkerPattern = regexp.MustCompile(`(?m)^((?:[ \t]{0,3}>){0,16})[ \t]*(?:[-*+]|[0-9]{1,9}[.)])[ \t]+`)
)

// NewTaskListStep removes task list markers and checkboxes.
func NewTaskListStep() Step {
	return &rulesStep{name: "Task lists", rules: []rule{listRule(taskListPattern, CategoryTaskLists)}}
}

// NewListStep removes bullet and ordered list markers together with the
// item indentation.
func NewListStep() Step {
	return &rulesStep{name: "Lists", rules: []rule{listRule(listMarkerPattern, CategoryLists)}}
}

// listRule keeps the captured quote prefix and records only the marker.
// Items without text after the marker are left alone.
func listRule(re *regexp.Regexp, category Category) rule {
	return rule{
		re:       re,
		category: category,
		accept: func(s string, m []int) bool {
			return m[1] < len(s) && s[m[1]] != '\n' && s[m[1]] != '\r'
		},
		replace: keepGroup(1),
		record: func(s string, m []int) string {
			return s[m[3]:m[1]]
		},
	}
}
