package state

// Hardware command ids for the writable settings. The control service takes
// one command per setting; there is no multi-field write.
const (
	cmdShootMode            = 21
	cmdISO                  = 25
	cmdWhiteBalance         = 26
	cmdExposureCompensation = 27
	cmdSettingMode          = 29
)

// attributeKeys are all the camera attributes this package can interpret.
// These are the actual keys in the JSON structures exchanged with the
// control service.
var attributeKeys = []string{
	"CurPvSMStatus", "CurHpSMStatus", "CurWpSMStatus", "BatteryGird",
	"ShootMode", "SettingMode", "ChargeFlag", "HDMIonnectFlag",
	"SdcardplugFlag", "ErrorCode", "bSupport30p", "PhotoDelay",
	"PhotoNumber", "PhotoTime", "VideoFrameRate", "VideoFrameInterval",
	"LoopVideoTime", "SerialNumber", "ProductModel",
	"FirmwareSoftwareVersion", "ISO", "WhiteBalanceMode",
	"ExposureCompensation", "SceneMode", "capacity", "remainTime",
	"remainNum", "Mute", "AutoShutDown", "WifiPass", "WifiSSID",
}

// CamState holds the camera attributes last observed from the device.
// Every known attribute key is always present; its value is nil until a
// device read populates it. Fields are only updated through Merge, which
// the client calls after a successful command round trip.
type CamState struct {
	data map[string]interface{}
}

// New returns a CamState with every known attribute present and unset.
func New() *CamState {
	s := &CamState{data: make(map[string]interface{}, len(attributeKeys))}
	for _, key := range attributeKeys {
		s.data[key] = nil
	}
	return s
}

// FromData returns a CamState pre-populated from a full device read.
func FromData(data map[string]interface{}) *CamState {
	s := New()
	s.Merge(data)
	return s
}

// Merge applies response fields onto the state, last write wins. Keys the
// device reports beyond the known set are kept as-is.
func (s *CamState) Merge(fields map[string]interface{}) {
	for key, value := range fields {
		s.data[key] = value
	}
}

// Data returns a copy of the underlying attribute map, for display.
func (s *CamState) Data() map[string]interface{} {
	out := make(map[string]interface{}, len(s.data))
	for key, value := range s.data {
		out[key] = value
	}
	return out
}

// Int returns an attribute as an integer. The second return is false when
// the attribute is unset or not numeric. JSON decoding hands numbers over
// as float64.
func (s *CamState) Int(key string) (int, bool) {
	switch v := s.data[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

// Str returns an attribute as a string, false when unset.
func (s *CamState) Str(key string) (string, bool) {
	v, ok := s.data[key].(string)
	return v, ok
}

// BatteryGrid is the battery charge indicator on a 0..6 scale. Read only.
// The key is misspelled "BatteryGird" on the wire; that is the camera's
// spelling, not ours.
func (s *CamState) BatteryGrid() (int, bool) { return s.Int("BatteryGird") }

// ShootMode determines which action Trigger performs. See models for the
// mode values.
func (s *CamState) ShootMode() (int, bool) { return s.Int("ShootMode") }

// SettingMode reports whether the camera is in manual (1) or auto (0) mode.
func (s *CamState) SettingMode() (int, bool) { return s.Int("SettingMode") }

// ChargeFlag reports whether the battery is charging. Read only.
func (s *CamState) ChargeFlag() (int, bool) { return s.Int("ChargeFlag") }

// SDCardPlugFlag reports the SD card state: 0 absent, 1 plugged,
// 2 plugged and readable. Read only.
func (s *CamState) SDCardPlugFlag() (int, bool) { return s.Int("SdcardplugFlag") }

// ErrorCode is the camera's own error register. Read only.
func (s *CamState) ErrorCode() (int, bool) { return s.Int("ErrorCode") }

// ISO is the sensitivity preset, 0 AUTO up to 4 (ISO 800). Effective only
// in manual mode.
func (s *CamState) ISO() (int, bool) { return s.Int("ISO") }

// WhiteBalanceMode is the color temperature preset, 0 AUTO up to 4 (6500K).
// Effective only in manual mode.
func (s *CamState) WhiteBalanceMode() (int, bool) { return s.Int("WhiteBalanceMode") }

// ExposureCompensation spans 13 stops (1..13) with 0 being AUTO. Effective
// only in manual mode.
func (s *CamState) ExposureCompensation() (int, bool) { return s.Int("ExposureCompensation") }

// Capacity is the SD card capacity as reported by the camera. Read only.
func (s *CamState) Capacity() (int, bool) { return s.Int("capacity") }

// RemainTime is the remaining video recording time in minutes. Read only.
func (s *CamState) RemainTime() (int, bool) { return s.Int("remainTime") }

// RemainNum is the remaining number of pictures. Read only.
func (s *CamState) RemainNum() (int, bool) { return s.Int("remainNum") }

// LoopVideoTime is the maximum video time in loop mode, minutes. Read only.
func (s *CamState) LoopVideoTime() (int, bool) { return s.Int("LoopVideoTime") }

// AutoShutdown is the minutes to auto power-off. Read only.
func (s *CamState) AutoShutdown() (int, bool) { return s.Int("AutoShutDown") }

// SerialNumber is the product serial number. Read only.
func (s *CamState) SerialNumber() (string, bool) { return s.Str("SerialNumber") }

// ProductModel is always "S1" on this camera. Read only.
func (s *CamState) ProductModel() (string, bool) { return s.Str("ProductModel") }

// FirmwareSoftwareVersion is the combined firmware/software version string.
func (s *CamState) FirmwareSoftwareVersion() (string, bool) {
	return s.Str("FirmwareSoftwareVersion")
}

// WifiSSID is the SSID the camera advertises, Pano_<serial> by default.
func (s *CamState) WifiSSID() (string, bool) { return s.Str("WifiSSID") }

// WifiPass is the camera's network password, 12345678 by default.
func (s *CamState) WifiPass() (string, bool) { return s.Str("WifiPass") }

// Prepare returns an editable view bound to this state with an empty
// pending operation set. Any previously queued but uncommitted operations
// on earlier views are abandoned by taking a fresh one.
func (s *CamState) Prepare() *EditableState {
	return &EditableState{cam: s}
}
