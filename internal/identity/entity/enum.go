package entity

// FlowState is the login step currently shown to the admin.
type FlowState int8

const (
	// FlowAwaitingEmail mean the admin is entering the email to send a code to.
	FlowAwaitingEmail FlowState = 0

	// FlowAwaitingCode mean a code was sent and the admin is entering it.
	FlowAwaitingCode FlowState = 1
)

func (fs FlowState) String() string {
	switch fs {
	case FlowAwaitingEmail:
		return "AwaitingEmail"
	case FlowAwaitingCode:
		return "AwaitingCode"
	default:
		return "Unknown"
	}
}

// SubmissionStatus tells whether a send or verify call is outstanding.
type SubmissionStatus int8

const (
	// SubmissionIdle mean no call is outstanding; new submits are accepted.
	SubmissionIdle SubmissionStatus = 0

	// SubmissionInFlight mean a call is outstanding; submits are rejected.
	SubmissionInFlight SubmissionStatus = 1
)

func (ss SubmissionStatus) String() string {
	switch ss {
	case SubmissionIdle:
		return "Idle"
	case SubmissionInFlight:
		return "InFlight"
	default:
		return "Unknown"
	}
}

// Key is a navigation key pressed inside a code slot.
type Key int8

const (
	KeyOther Key = iota
	KeyBackspace
	KeyArrowLeft
	KeyArrowRight
)

func (k Key) String() string {
	switch k {
	case KeyBackspace:
		return "Backspace"
	case KeyArrowLeft:
		return "ArrowLeft"
	case KeyArrowRight:
		return "ArrowRight"
	default:
		return "Other"
	}
}
