package applications

import (
	"fmt"
	"strings"
)

// ApplicationStatus is the workflow stage of the application itself.
type ApplicationStatus string

const (
	StatusNotStarted ApplicationStatus = "Not Started"
	StatusPending    ApplicationStatus = "Pending"
	StatusCompleted  ApplicationStatus = "Completed"
)

// ResultStatus is the outcome of an application. The zero value means no result yet.
type ResultStatus string

const (
	ResultNone        ResultStatus = ""
	ResultSelected    ResultStatus = "Selected"
	ResultNotSelected ResultStatus = "Not Selected"
	ResultPending     ResultStatus = "Pending"
)

// ApplicationStatuses lists every legal application status in display order.
func ApplicationStatuses() []ApplicationStatus {
	return []ApplicationStatus{StatusNotStarted, StatusPending, StatusCompleted}
}

// ResultStatuses lists every legal result status in display order.
func ResultStatuses() []ResultStatus {
	return []ResultStatus{ResultNone, ResultSelected, ResultNotSelected, ResultPending}
}

// ParseApplicationStatus matches raw against the known statuses, ignoring case
// and surrounding whitespace.
func ParseApplicationStatus(raw string) (ApplicationStatus, error) {
	trimmed := strings.TrimSpace(raw)
	for _, s := range ApplicationStatuses() {
		if strings.EqualFold(trimmed, string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: application status %q", ErrInvalidStatus, raw)
}

// ParseResultStatus matches raw against the known results. Older snapshots
// stored the pending result in lower case; that spelling parses to ResultPending.
func ParseResultStatus(raw string) (ResultStatus, error) {
	trimmed := strings.TrimSpace(raw)
	for _, r := range ResultStatuses() {
		if strings.EqualFold(trimmed, string(r)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: result status %q", ErrInvalidStatus, raw)
}

func (s ApplicationStatus) String() string { return string(s) }

func (r ResultStatus) String() string { return string(r) }
