package main

import (
	"fmt"
	"time"
)

// tickMsg redraws the running timer.
type tickMsg time.Time

type ErrorMsg struct {
	err error
}

func errorMsg(format string, args ...any) ErrorMsg {
	return ErrorMsg{
		err: fmt.Errorf(format, args...),
	}
}
