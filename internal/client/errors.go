package client

import "fmt"

// ConnectionError reports a failure to reach the camera at all.
type ConnectionError struct {
	URI string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to %s: %v", e.URI, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// TimeoutError reports a request that did not complete within the fixed
// request timeout. Requests are never retried; the caller decides.
type TimeoutError struct {
	URI string
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request to %s timed out: %v", e.URI, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// TransferError reports a non-200 response from the control or file
// service.
type TransferError struct {
	URI    string
	Status int
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("transfer from %s failed with status %d", e.URI, e.Status)
}

// StateReadError reports a failed full state read. No partial state is
// returned; the read either covers every command group or none.
type StateReadError struct {
	Cmd int
	Err error
}

func (e *StateReadError) Error() string {
	return fmt.Sprintf("full state read failed at command %d: %v", e.Cmd, e.Err)
}

func (e *StateReadError) Unwrap() error { return e.Err }

// CommitError reports a pending operation batch that stopped partway. The
// device has no transactional write API, so operations already applied stay
// applied; Applied counts them.
type CommitError struct {
	Cmd     int
	Applied int
	Err     error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("commit stopped at command %d after %d applied operation(s): %v",
		e.Cmd, e.Applied, e.Err)
}

func (e *CommitError) Unwrap() error { return e.Err }

// CameraNotFoundError reports that one of the camera's services failed its
// liveness check during discovery.
type CameraNotFoundError struct {
	IP string
}

func (e *CameraNotFoundError) Error() string {
	return fmt.Sprintf("camera not found at %s", e.IP)
}

// SDCardError reports an SD card that is missing or not usable. The camera
// refuses most operations in that state, so discovery fails early.
type SDCardError struct {
	Flag int
}

func (e *SDCardError) Error() string {
	return fmt.Sprintf("the SD card is not in a usable state (%d)", e.Flag)
}
