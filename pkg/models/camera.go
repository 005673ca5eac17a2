package models

// Shoot modes supported by the Wunder 360 S1.
// To stop a running video recording, re-trigger the camera.
const (
	ShootModePhoto      = 0
	ShootModeVideo3K    = 1
	ShootModeTimer      = 2
	ShootModeContinuous = 3 // burst
	ShootModeTimeLapse  = 4
	ShootModeVideo60FPS = 5
	ShootModeLoop       = 6
)

// Setting modes. The photographic settings (ISO, white balance, exposure
// compensation) only take effect while the camera is in manual mode.
const (
	SettingModeAuto   = 0
	SettingModeManual = 1
)

// ISO presets. 0 is AUTO, the rest map to fixed sensitivities.
const (
	ISOAuto = 0
	ISO100  = 1
	ISO200  = 2
	ISO400  = 3
	ISO800  = 4
)

// White balance presets in color temperature steps.
const (
	WhiteBalanceAuto  = 0
	WhiteBalance2856K = 1
	WhiteBalance4000K = 2
	WhiteBalance5500K = 3
	WhiteBalance6500K = 4
)

// SD card plug states as reported by the camera. Only SDCardReady means the
// card is both plugged in and formatted.
const (
	SDCardAbsent  = 0
	SDCardPlugged = 1 // plugged in, not necessarily readable
	SDCardReady   = 2
)

// ShootModeName returns a human readable label for a shoot mode value.
func ShootModeName(mode int) string {
	switch mode {
	case ShootModePhoto:
		return "Photo"
	case ShootModeVideo3K:
		return "Video (3K)"
	case ShootModeTimer:
		return "Timer"
	case ShootModeContinuous:
		return "Continuous"
	case ShootModeTimeLapse:
		return "Time-Lapse"
	case ShootModeVideo60FPS:
		return "Video (60 FPS)"
	case ShootModeLoop:
		return "Loop"
	}
	return "Unknown"
}
