package domain

// Default scheduling configuration values
const (
	DefaultSlotIntervalMinutes = 30
	DefaultLeadTimeMinutes     = 120 // 2 hours
	DefaultBufferMinutes       = 15
	DefaultHoldTTLMinutes      = 15
	DefaultServiceDuration     = 60
	DefaultAdvanceBookingDays  = 0 // 0 = unlimited
	DefaultTimezone            = "America/Chicago"
)

// Business validation constants
const (
	MinServiceDurationMinutes   = 15
	MaxServiceDurationMinutes   = 180
	MinSlotIntervalMinutes      = 5
	MaxSlotIntervalMinutes      = 240
	MinLeadTimeMinutes          = 0
	MaxLeadTimeMinutes          = 10080 // 1 week
	MinBufferMinutes            = 0
	MaxBufferMinutes            = 120
	MinHoldTTLMinutes           = 5
	MaxHoldTTLMinutes           = 15
	MaxAdvanceBookingDays       = 365
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// MaxBlockingSpanMinutes is the worst-case length of a single blocking
// interval: the longest permitted service duration plus the largest buffer.
// Occupancy fetch windows must reach back at least this far, otherwise an
// appointment starting before the window still overlaps it.
const MaxBlockingSpanMinutes = MaxServiceDurationMinutes + MaxBufferMinutes

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses appointment statuses that occupy calendar capacity.
// Used when collecting blocking intervals for availability and hold checks.
var BlockingStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusReadyForService,
	StatusInProgress,
}

// NonBlockingStatuses appointment statuses that free their slot
var NonBlockingStatuses = []AppointmentStatus{
	StatusCompleted,
	StatusCancelledByClient,
	StatusCancelledByStaff,
	StatusNoShow,
	StatusArchived,
}
