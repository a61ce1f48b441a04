package clips

// SegmentationError marks a fatal failure of a segmentation attempt:
// missing or unreadable transcript, empty segment list, or an AI response
// that cannot be used. Per-clip validation problems are not fatal and are
// only logged.
type SegmentationError struct {
	Msg string
	Err error
}

func (e *SegmentationError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *SegmentationError) Unwrap() error { return e.Err }
