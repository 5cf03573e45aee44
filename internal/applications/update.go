package applications

// Update is a single in-place change to an application record. The set of
// implementations is closed: only this package can add one.
type Update interface {
	apply(app *Application)
	op() string
}

// SetApplicationStatus moves a record to another workflow stage.
type SetApplicationStatus struct {
	Status ApplicationStatus
}

// SetResultStatus records the outcome of an application.
type SetResultStatus struct {
	Result ResultStatus
}

func (u SetApplicationStatus) apply(app *Application) { app.ApplicationStatus = u.Status }

func (u SetApplicationStatus) op() string { return "set_application_status" }

func (u SetResultStatus) apply(app *Application) { app.ResultStatus = u.Result }

func (u SetResultStatus) op() string { return "set_result_status" }

var (
	_ Update = SetApplicationStatus{}
	_ Update = SetResultStatus{}
)
