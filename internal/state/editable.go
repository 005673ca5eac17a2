package state

import "fmt"

// ValueError reports an attempt to set a configuration attribute to a value
// outside its valid range. The pending operation set is left untouched.
type ValueError struct {
	Attribute string
	Value     int
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid value %d for parameter %s", e.Value, e.Attribute)
}

// Operation is a single queued hardware command: the control service's
// command id plus its command-specific parameters.
type Operation struct {
	Cmd    int
	Params map[string]int
}

// EditableState queues configuration changes against a CamState without
// touching the device. Setters validate locally and record one operation
// per command id; committing the batch is the client's job. Not safe for
// concurrent use; callers interleaving setters must synchronize externally.
type EditableState struct {
	cam *CamState
	ops []Operation
}

// Cam returns the device state this view was prepared from.
func (e *EditableState) Cam() *CamState { return e.cam }

// Operations returns the queued operations in insertion order.
func (e *EditableState) Operations() []Operation { return e.ops }

// queue inserts or replaces the operation for cmd, keeping its position if
// it was already queued. Re-issuing the same command id twice is wasteful;
// the last value is authoritative.
func (e *EditableState) queue(cmd int, param string, value int) {
	for i := range e.ops {
		if e.ops[i].Cmd == cmd {
			e.ops[i].Params = map[string]int{param: value}
			return
		}
	}
	e.ops = append(e.ops, Operation{Cmd: cmd, Params: map[string]int{param: value}})
}

// SetShootMode queues a shoot mode change. Valid modes are 0..6.
func (e *EditableState) SetShootMode(mode int) error {
	if mode < 0 || mode > 6 {
		return &ValueError{Attribute: "shoot_mode", Value: mode}
	}
	e.queue(cmdShootMode, "ModeType", mode)
	return nil
}

// SetSettingMode queues a switch between auto (0) and manual (1) mode.
func (e *EditableState) SetSettingMode(mode int) error {
	if mode != 0 && mode != 1 {
		return &ValueError{Attribute: "setting_mode", Value: mode}
	}
	e.queue(cmdSettingMode, "SettingMode", mode)
	return nil
}

// SetISO queues an ISO preset change. Valid presets are 0..4.
func (e *EditableState) SetISO(iso int) error {
	if iso < 0 || iso > 4 {
		return &ValueError{Attribute: "iso", Value: iso}
	}
	e.queue(cmdISO, "ISO", iso)
	return nil
}

// SetWhiteBalance queues a white balance preset change. Valid presets
// are 0..4.
func (e *EditableState) SetWhiteBalance(mode int) error {
	if mode < 0 || mode > 4 {
		return &ValueError{Attribute: "white_balance_mode", Value: mode}
	}
	e.queue(cmdWhiteBalance, "WhiteBalanceMode", mode)
	return nil
}

// SetExposureCompensation queues an exposure compensation change. The scale
// is 0..13 with 0 being AUTO.
func (e *EditableState) SetExposureCompensation(value int) error {
	if value < 0 || value > 13 {
		return &ValueError{Attribute: "exposure_compensation", Value: value}
	}
	e.queue(cmdExposureCompensation, "ExposureCompensation", value)
	return nil
}
