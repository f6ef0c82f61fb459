package notify

import (
	"fmt"
	"sync"
)

// Dialog is a pending confirmation request. At most one dialog is
// active at a time; showing a new one replaces the old, whose action
// is silently dropped.
type Dialog struct {
	ID           string
	Title        string
	Message      string
	ConfirmLabel string
	CancelLabel  string

	onConfirm func()
}

// Dialogs manages the single active confirmation dialog.
type Dialogs struct {
	center *Center

	mu     sync.Mutex
	seq    int
	active *Dialog
}

// NewDialogs creates a dialog manager. Confirm and cancel outcomes are
// reported through the given Center.
func NewDialogs(center *Center) *Dialogs {
	return &Dialogs{center: center}
}

// ShowConfirm opens a confirmation dialog, replacing any active one.
// onConfirm runs only when the user confirms. An empty cancelLabel
// defaults to "Cancel".
func (d *Dialogs) ShowConfirm(title, message, confirmLabel, cancelLabel string, onConfirm func()) *Dialog {
	if cancelLabel == "" {
		cancelLabel = "Cancel"
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	d.active = &Dialog{
		ID:           fmt.Sprintf("alert-dialog-%d", d.seq),
		Title:        title,
		Message:      message,
		ConfirmLabel: confirmLabel,
		CancelLabel:  cancelLabel,
		onConfirm:    onConfirm,
	}
	return d.active
}

// Active returns the open dialog, or nil.
func (d *Dialogs) Active() *Dialog {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}

// Confirm runs the active dialog's action and closes it. Without an
// active dialog it does nothing. The action runs outside the lock, so
// it may open the next dialog.
func (d *Dialogs) Confirm() {
	d.mu.Lock()
	var action func()
	if d.active != nil {
		action = d.active.onConfirm
		d.active = nil
	}
	d.mu.Unlock()
	if action != nil {
		action()
	}
}

// Cancel closes the active dialog without running its action.
func (d *Dialogs) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.active = nil
}
