package domain

// AgeRestriction is the audience rating of a movie.
type AgeRestriction string

const (
	AgeRestrictionG    AgeRestriction = "G"
	AgeRestrictionPG   AgeRestriction = "PG"
	AgeRestrictionPG13 AgeRestriction = "PG-13"
	AgeRestrictionPG16 AgeRestriction = "PG-16"
	AgeRestrictionPG18 AgeRestriction = "PG-18"
)

// Valid reports whether a is a known rating.
func (a AgeRestriction) Valid() bool {
	switch a {
	case AgeRestrictionG, AgeRestrictionPG, AgeRestrictionPG13, AgeRestrictionPG16, AgeRestrictionPG18:
		return true
	}
	return false
}

// ScreenType is the projection technology of an auditorium.
type ScreenType string

const (
	ScreenType2D   ScreenType = "2D"
	ScreenType3D   ScreenType = "3D"
	ScreenTypeIMAX ScreenType = "IMAX"
	ScreenType4DX  ScreenType = "4DX"
)

func (s ScreenType) Valid() bool {
	switch s {
	case ScreenType2D, ScreenType3D, ScreenTypeIMAX, ScreenType4DX:
		return true
	}
	return false
}

// SoundSystem is the audio setup of an auditorium.
type SoundSystem string

const (
	SoundSystemStereo     SoundSystem = "Stereo"
	SoundSystemDolbyAtmos SoundSystem = "DolbyAtmos"
	SoundSystemDTS        SoundSystem = "DTS"
)

func (s SoundSystem) Valid() bool {
	switch s {
	case SoundSystemStereo, SoundSystemDolbyAtmos, SoundSystemDTS:
		return true
	}
	return false
}

// SeatType classifies a seat.
type SeatType string

const (
	SeatTypeNormal     SeatType = "Normal"
	SeatTypeVIP        SeatType = "VIP"
	SeatTypeAccessible SeatType = "Accessible"
)

func (s SeatType) Valid() bool {
	switch s {
	case SeatTypeNormal, SeatTypeVIP, SeatTypeAccessible:
		return true
	}
	return false
}

// ScreeningFormat is the format a screening is projected in.
type ScreeningFormat string

const (
	ScreeningFormat2D   ScreeningFormat = "2D"
	ScreeningFormat3D   ScreeningFormat = "3D"
	ScreeningFormatIMAX ScreeningFormat = "IMAX"
)

func (f ScreeningFormat) Valid() bool {
	switch f {
	case ScreeningFormat2D, ScreeningFormat3D, ScreeningFormatIMAX:
		return true
	}
	return false
}

// ScreeningVersion is the language treatment of a screening.
type ScreeningVersion string

const (
	ScreeningVersionOriginal  ScreeningVersion = "Original"
	ScreeningVersionDubbing   ScreeningVersion = "Dubbing"
	ScreeningVersionLector    ScreeningVersion = "Lector"
	ScreeningVersionSubtitles ScreeningVersion = "Subtitles"
)

func (v ScreeningVersion) Valid() bool {
	switch v {
	case ScreeningVersionOriginal, ScreeningVersionDubbing, ScreeningVersionLector, ScreeningVersionSubtitles:
		return true
	}
	return false
}

// ScreeningStatus is the lifecycle state of a screening.
type ScreeningStatus string

const (
	ScreeningPlanned  ScreeningStatus = "Planned"
	ScreeningRunning  ScreeningStatus = "Running"
	ScreeningCanceled ScreeningStatus = "Canceled"
	ScreeningFinished ScreeningStatus = "Finished"
)

func (s ScreeningStatus) Valid() bool {
	switch s {
	case ScreeningPlanned, ScreeningRunning, ScreeningCanceled, ScreeningFinished:
		return true
	}
	return false
}

// TicketStatus is the lifecycle state of a ticket.
type TicketStatus string

const (
	TicketAvailable TicketStatus = "Available"
	TicketPurchased TicketStatus = "Purchased"
	TicketScanned   TicketStatus = "Scanned"
	TicketRefunded  TicketStatus = "Refunded"
	TicketExpired   TicketStatus = "Expired"
)

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketAvailable, TicketPurchased, TicketScanned, TicketRefunded, TicketExpired:
		return true
	}
	return false
}

// NeedsReason reports whether a ticket in this state must carry a refund or
// expiration reason.
func (s TicketStatus) NeedsReason() bool {
	return s == TicketRefunded || s == TicketExpired
}

// PaymentType is how a ticket was paid for.
type PaymentType string

const (
	PaymentNone       PaymentType = "None"
	PaymentCash       PaymentType = "Cash"
	PaymentCreditCard PaymentType = "CreditCard"
	PaymentBlik       PaymentType = "Blik"
)

func (p PaymentType) Valid() bool {
	switch p {
	case PaymentNone, PaymentCash, PaymentCreditCard, PaymentBlik:
		return true
	}
	return false
}

// ShiftType is the part of the day a worker is rostered for.
type ShiftType string

const (
	ShiftMorning ShiftType = "Morning"
	ShiftEvening ShiftType = "Evening"
	ShiftBoth    ShiftType = "Both"
)

func (s ShiftType) Valid() bool {
	switch s {
	case ShiftMorning, ShiftEvening, ShiftBoth:
		return true
	}
	return false
}

// WorkType is the station a worker covers.
type WorkType string

const (
	WorkCashier   WorkType = "Cashier"
	WorkTicket    WorkType = "Ticket"
	WorkValidator WorkType = "Validator"
)

func (w WorkType) Valid() bool {
	switch w {
	case WorkCashier, WorkTicket, WorkValidator:
		return true
	}
	return false
}

// EmployeeStatus is the employment state of an employee.
type EmployeeStatus string

const (
	EmployeeWorking   EmployeeStatus = "Working"
	EmployeeOnLeave   EmployeeStatus = "OnLeave"
	EmployeeDismissed EmployeeStatus = "Dismissed"
)

func (s EmployeeStatus) Valid() bool {
	switch s {
	case EmployeeWorking, EmployeeOnLeave, EmployeeDismissed:
		return true
	}
	return false
}
