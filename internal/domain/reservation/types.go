package reservation

type Status string

const (
	StatusReserved Status = "reserved"
	StatusRedeemed Status = "redeemed"
	StatusCanceled Status = "canceled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusReserved, StatusRedeemed, StatusCanceled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == StatusRedeemed || s == StatusCanceled
}
