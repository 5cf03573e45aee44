package applications

// Application is one tracked internship application.
type Application struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Link              string            `json:"link"`
	Deadline          string            `json:"deadline"`
	ApplicationStatus ApplicationStatus `json:"applicationStatus"`
	ResultStatus      ResultStatus      `json:"resultStatus"`
}

// Draft carries the caller-supplied fields of an application before an id is assigned.
type Draft struct {
	Name              string            `json:"name"`
	Link              string            `json:"link"`
	Deadline          string            `json:"deadline"`
	ApplicationStatus ApplicationStatus `json:"applicationStatus"`
	ResultStatus      ResultStatus      `json:"resultStatus"`
}

// Counts holds the size of each view.
type Counts struct {
	All       int `json:"all"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}
