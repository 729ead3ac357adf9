package handler

type ContextKey string

var (
	IdentityCtx ContextKey = "identity"
	PrompterCtx ContextKey = "prompter"
)
