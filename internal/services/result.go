package services

// Result is the uniform outcome shape returned by every public session
// operation. Handlers translate it straight into a response; raw errors and
// panics never cross the service boundary.
type Result struct {
	Succeeded bool
	Status    int
	Message   string
}

func succeed(status int, message string) Result {
	return Result{Succeeded: true, Status: status, Message: message}
}

func fail(status int, message string) Result {
	return Result{Succeeded: false, Status: status, Message: message}
}
