package types

// ConfirmationRequest describes a destructive step awaiting the user's consent
type ConfirmationRequest struct {
	ID          string
	Title       string
	Description string
	// Items lists what the step affects, shown truncated
	Items []string
	// Default is the answer taken on an empty reply
	Default bool
}

// ConfirmationDialog asks the user to approve a request
type ConfirmationDialog interface {
	Confirm(req ConfirmationRequest) (bool, error)
}

// ConfirmFunc adapts a function to ConfirmationDialog
type ConfirmFunc func(req ConfirmationRequest) (bool, error)

// Confirm calls f
func (f ConfirmFunc) Confirm(req ConfirmationRequest) (bool, error) {
	return f(req)
}
