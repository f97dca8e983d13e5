package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// StatusLevel represents the type of status being displayed
type StatusLevel int

const (
	// StatusInfo is the default info level
	StatusInfo StatusLevel = iota
	// StatusSuccess indicates a successful operation
	StatusSuccess
	// StatusWarning indicates a warning condition
	StatusWarning
	// StatusError indicates an error condition
	StatusError
)

// StatusBar is the message strip at the bottom of the main window with
// level-based icons. All updates happen on the UI event path.
type StatusBar struct {
	widget.BaseWidget

	level   StatusLevel
	message string

	icon  *widget.Icon
	label *widget.Label
}

// NewStatusBar creates a new status bar with default "Ready" message
func NewStatusBar() *StatusBar {
	sb := &StatusBar{
		level:   StatusInfo,
		message: "Ready",
	}
	sb.label = widget.NewLabel("Ready")
	sb.label.TextStyle = fyne.TextStyle{Italic: true}
	sb.icon = widget.NewIcon(theme.InfoIcon())
	sb.ExtendBaseWidget(sb)
	return sb
}

// SetStatus updates the status message and level
func (sb *StatusBar) SetStatus(message string, level StatusLevel) {
	sb.level = level
	sb.message = message
	sb.label.SetText(message)

	switch level {
	case StatusInfo:
		sb.icon.SetResource(theme.InfoIcon())
	case StatusSuccess:
		sb.icon.SetResource(theme.ConfirmIcon())
	case StatusWarning:
		sb.icon.SetResource(theme.WarningIcon())
	case StatusError:
		sb.icon.SetResource(theme.ErrorIcon())
	}
}

// SetInfo is a convenience method for info-level status
func (sb *StatusBar) SetInfo(message string) {
	sb.SetStatus(message, StatusInfo)
}

// SetSuccess is a convenience method for success-level status
func (sb *StatusBar) SetSuccess(message string) {
	sb.SetStatus(message, StatusSuccess)
}

// SetWarning is a convenience method for warning-level status
func (sb *StatusBar) SetWarning(message string) {
	sb.SetStatus(message, StatusWarning)
}

// SetError is a convenience method for error-level status
func (sb *StatusBar) SetError(message string) {
	sb.SetStatus(message, StatusError)
}

// Message returns the current status message
func (sb *StatusBar) Message() string {
	return sb.message
}

// Level returns the current status level
func (sb *StatusBar) Level() StatusLevel {
	return sb.level
}

// CreateRenderer implements fyne.Widget
func (sb *StatusBar) CreateRenderer() fyne.WidgetRenderer {
	content := container.NewHBox(sb.icon, sb.label)
	return widget.NewSimpleRenderer(content)
}
