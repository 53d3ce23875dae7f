package models

import "time"

type StatusLabel string

const (
	LabelOpen              StatusLabel = "Open"
	LabelRegistrationEnded StatusLabel = "Registration ended"
	LabelClosed            StatusLabel = "Closed"
)

// ListTab: вкладка списка, в которую попадает турнир.
type ListTab string

const (
	TabOpen   ListTab = "open"
	TabClosed ListTab = "closed"
)

func (t ListTab) Valid() bool {
	return t == TabOpen || t == TabClosed
}

type Availability struct {
	IsClosed    bool        `json:"is_closed"`
	IsExpired   bool        `json:"is_expired"`
	CanRegister bool        `json:"can_register"`
	Label       StatusLabel `json:"label"`
	Tab         ListTab     `json:"tab"`
}

// Evaluate чистая: никаких часов внутри, now передаёт вызывающий.
// Момент, совпадающий с дедлайном, уже считается просроченным.
func Evaluate(status TournamentStatus, deadline, now time.Time) Availability {
	a := Availability{
		IsClosed:  status == StatusClosed,
		IsExpired: !now.Before(deadline),
	}
	a.CanRegister = !a.IsClosed && !a.IsExpired

	switch {
	case a.IsClosed:
		a.Label = LabelClosed
	case a.IsExpired:
		a.Label = LabelRegistrationEnded
	default:
		a.Label = LabelOpen
	}

	if a.CanRegister {
		a.Tab = TabOpen
	} else {
		a.Tab = TabClosed
	}
	return a
}
