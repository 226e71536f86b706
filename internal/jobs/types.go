package jobs

type JobType string

const (
	JobBookingConfirmation JobType = "booking_confirmation"
)

func (t JobType) IsValid() bool {
	switch t {
	case JobBookingConfirmation:
		return true
	default:
		return false
	}
}
