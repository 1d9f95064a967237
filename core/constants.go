package core

const (
	ExitCodeFailedStartup = 1
	ExitCodeForceQuit     = 2
	ExitCodeFailedQuit    = 3
)
