package types

// PaymentMode is the channel a transaction was made through.
type PaymentMode string

const (
	PaymentModeUPI        PaymentMode = "UPI"
	PaymentModeCard       PaymentMode = "card"
	PaymentModeNetbanking PaymentMode = "netbanking"
	PaymentModeCash       PaymentMode = "cash"
	PaymentModeUnknown    PaymentMode = "unknown"
)

// Valid reports whether the mode is one of the known payment modes.
func (p PaymentMode) Valid() bool {
	switch p {
	case PaymentModeUPI, PaymentModeCard, PaymentModeNetbanking, PaymentModeCash, PaymentModeUnknown:
		return true
	}
	return false
}
