package config

// issueAdder is the callback each validate step uses to report problems
// against a named config field.
type issueAdder func(field, message string)

// issueCollector gathers issues from all validate steps so a bad config
// reports everything wrong at once.
type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

// result folds the gathered issues into a single error, or nil when the
// config passed every check.
func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}
