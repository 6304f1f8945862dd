package viewer

import (
	"fmt"

	"github.com/tauraamui/dragoneye/pkg/log"
)

type Kind string

const (
	DiscoveryEmpty Kind = "DiscoveryEmpty"
	OpenFailure    Kind = "OpenFailure"
	ReadFailure    Kind = "ReadFailure"
)

type Severity string

const SeverityError Severity = "error"

type Notification struct {
	Kind     Kind
	Message  string
	Severity Severity
}

func (n Notification) String() string {
	return fmt.Sprintf("[%s] %s", n.Kind, n.Message)
}

type Notifier interface {
	Notify(Notification)
}

// NoDevicesNotification is reported when discovery finds no usable camera.
func NoDevicesNotification() Notification {
	return Notification{
		Kind:     DiscoveryEmpty,
		Message:  "No cameras found... connect a camera and refresh",
		Severity: SeverityError,
	}
}

func openFailureNotification(label string) Notification {
	return Notification{
		Kind:     OpenFailure,
		Message:  fmt.Sprintf("Unable to open camera [%s]", label),
		Severity: SeverityError,
	}
}

func readFailureNotification(label string) Notification {
	return Notification{
		Kind:     ReadFailure,
		Message:  fmt.Sprintf("Unable to access the webcam [%s]", label),
		Severity: SeverityError,
	}
}

// LogNotifier writes notifications to the error log.
type LogNotifier struct{}

func (LogNotifier) Notify(n Notification) {
	log.Error("%s", n)
}
