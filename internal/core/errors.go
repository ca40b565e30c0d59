package core

import "errors"

var (
	// ErrRoomNotFound means the addressed room does not exist. The request is dropped.
	ErrRoomNotFound = errors.New("room not found")
	// ErrUnknownCommand is returned for a command kind outside the known set.
	ErrUnknownCommand = errors.New("unknown command")
)
