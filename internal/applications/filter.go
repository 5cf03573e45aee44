package applications

import (
	"fmt"
	"strings"
)

// View names one of the derived listings of the collection.
type View string

const (
	ViewAll       View = "all"
	ViewActive    View = "active"
	ViewCompleted View = "completed"
)

// ParseView resolves a view name. An empty name means ViewAll.
func ParseView(raw string) (View, error) {
	switch View(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ViewAll:
		return ViewAll, nil
	case ViewActive:
		return ViewActive, nil
	case ViewCompleted:
		return ViewCompleted, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownView, raw)
	}
}

// Select returns the records of apps that belong to the view, in order.
func (v View) Select(apps []Application) []Application {
	switch v {
	case ViewActive:
		return Filter(apps, IsActive)
	case ViewCompleted:
		return Filter(apps, IsCompleted)
	default:
		return Filter(apps, func(Application) bool { return true })
	}
}

// IsCompleted reports whether the application has reached the Completed stage.
func IsCompleted(app Application) bool {
	return app.ApplicationStatus == StatusCompleted
}

// IsActive is the complement of IsCompleted.
func IsActive(app Application) bool {
	return !IsCompleted(app)
}

// Filter returns a new slice with the records matching keep. Relative order is preserved
// and the input is never modified.
func Filter(apps []Application, keep func(Application) bool) []Application {
	out := make([]Application, 0, len(apps))
	for _, app := range apps {
		if keep(app) {
			out = append(out, app)
		}
	}
	return out
}

// CountViews sizes the three views of apps.
func CountViews(apps []Application) Counts {
	c := Counts{All: len(apps)}
	for _, app := range apps {
		if IsCompleted(app) {
			c.Completed++
		} else {
			c.Active++
		}
	}
	return c
}
