package domain

// Default configuration values
const (
	DefaultSlotIntervalMinutes = 30
	SlotIntervalSettingKey     = "slot_interval"
)

// Business rule constants
const (
	// CancellationNoticeMinutes is the minimum time before the
	// appointment start at which a client can still cancel it
	CancellationNoticeMinutes = 30

	// AutoCompleteToleranceMinutes is the grace period after the start
	// time, past which a confirmed appointment counts as elapsed
	AutoCompleteToleranceMinutes = 30

	// RegenerationDays is the horizon of the rebuilt slot grid
	RegenerationDays = 30
)

// Validation bounds for the slot interval setting
const (
	MinSlotIntervalMinutes = 5
	MaxSlotIntervalMinutes = 480 // 8 hours
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
