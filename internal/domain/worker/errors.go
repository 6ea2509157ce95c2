package worker

import "errors"

var (
	ErrWorkerNotFound = errors.New("worker not found")
	ErrRFIDExists     = errors.New("rfid is already registered to another worker")
)
