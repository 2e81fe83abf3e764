package handler

type ContextKey string

var (
	EmployeeIDCtxKey ContextKey = "employeeID"
)
