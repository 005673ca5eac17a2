package catalog

import "fmt"

// ScanError reports a failed directory scan. The transport cause is
// available through Unwrap.
type ScanError struct {
	URI string
	Err error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scanning %s: %v", e.URI, e.Err)
}

func (e *ScanError) Unwrap() error { return e.Err }

// ContentTypeError reports a fetch of a resource whose content type is not
// displayable media.
type ContentTypeError struct {
	URI         string
	ContentType string
}

func (e *ContentTypeError) Error() string {
	return fmt.Sprintf("cannot handle content type %q for %s", e.ContentType, e.URI)
}
