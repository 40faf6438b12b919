package apierrors

const (
	MsgInvalidTodoPayload  = "invalidTodoPayload"
	MsgInvalidListQuery    = "invalidListQuery"
	MsgTodoNotFound        = "todoNotFound"
	MsgSubtaskNotFound     = "subtaskNotFound"
	MsgMissingUserIdentity = "missingUserIdentity"
	MsgFailCreateTodo      = "failCreateTodo"
	MsgFailListTodos       = "failListTodos"
	MsgFailFetchTodo       = "failFetchTodo"
	MsgFailUpdateTodo      = "failUpdateTodo"
	MsgFailDeleteTodo      = "failDeleteTodo"
	MsgFailFetchStats      = "failFetchStats"
)
