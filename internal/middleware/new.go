package middleware

import "github.com/thedomainai/task-picker-agent/pkg/log"

const HeaderRequestID = "X-Request-ID"

type Middleware struct {
	l log.Logger
}

func New(l log.Logger) Middleware {
	return Middleware{l: l}
}
