package quote

// Status tracks where a saved quote sits commercially. Transitions are
// free-form: staff set any value at any time.
type Status string

const (
	StatusCreated  Status = "created"
	StatusSent     Status = "sent"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusInvoiced Status = "invoiced"
)

var AllStatuses = []Status{
	StatusCreated,
	StatusSent,
	StatusApproved,
	StatusRejected,
	StatusInvoiced,
}

func ParseStatus(s string) (Status, error) {
	for _, st := range AllStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", ErrStatusInvalid
}

// Label returns the Spanish display name used on screens and exports.
func (s Status) Label() string {
	switch s {
	case StatusCreated:
		return "Creada"
	case StatusSent:
		return "Enviada"
	case StatusApproved:
		return "Aprobada"
	case StatusRejected:
		return "Rechazada"
	case StatusInvoiced:
		return "Facturada"
	}
	return string(s)
}
