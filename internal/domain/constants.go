package domain

import "github.com/m04kA/Clinic-SchedulingService/pkg/types"

// Default schedule configuration values
const (
	DefaultSlotDurationMinutes = 60
	DefaultMinNoticeMinutes    = 0
	DefaultAdvanceBookingDays  = 0 // 0 = unlimited
	DefaultDayStart            = types.TimeString("07:00")
	DefaultDayEnd              = types.TimeString("19:00")
)

// Business validation constants
const (
	MinSlotDurationMinutes      = 5
	MaxSlotDurationMinutes      = 480 // 8 hours
	MinAdvanceBookingDays       = 0
	MaxAdvanceBookingDays       = 365
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
