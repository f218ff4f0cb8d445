package chat

import "github.com/abhisek/guruai/internal/tutor"

// replyMsg delivers the assistant message for a turn.
type replyMsg struct {
	turn *tutor.Turn
	msg  tutor.Message
}

// cameraStartedMsg reports the outcome of acquiring the camera.
type cameraStartedMsg struct {
	err error
}

// frameMsg carries a captured JPEG frame.
type frameMsg struct {
	image []byte
	err   error
}
