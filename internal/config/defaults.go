package config

// Factory defaults. Active and inactive colors vary per bank so a glance at
// the switch LEDs tells the player which bank is selected; everything else is
// shared by all 64 entries.
const (
	defHasDetent     = 0
	defDetentColor   = 63
	defMovement      = MovementEmulation
	defDisplayMode   = DisplayBlendedBar
	defSwitchAction  = ActionCCToggle
	defSwitchChannel = 1
	defChannel       = 0
	defShiftChannel  = 4
	defType          = SendCC
	defHighRes       = 0
)

var (
	defActiveColors   = [4]uint8{86, 27, 51, 13}
	defInactiveColors = [4]uint8{1, 9, 17, 25}
)
