package enum

// TenderMethod identifies a payment method contributed toward settling a bill.
// String-backed so new methods can be added without a migration.
type TenderMethod string

const (
	TenderCash           TenderMethod = "Cash"
	TenderCardAmex       TenderMethod = "Card-Amex"
	TenderCardVisa       TenderMethod = "Card-Visa"
	TenderCardMasterCard TenderMethod = "Card-MasterCard"
	TenderCardMaestro    TenderMethod = "Card-Maestro"
	TenderEWallet        TenderMethod = "EWallet"
	TenderFinance        TenderMethod = "Finance"
)

// IsCard reports whether the method is a card scheme, in which case the
// tender may carry the last four digits of the card number.
func (m TenderMethod) IsCard() bool {
	switch m {
	case TenderCardAmex, TenderCardVisa, TenderCardMasterCard, TenderCardMaestro:
		return true
	}
	return false
}

func (m TenderMethod) String() string {
	return string(m)
}

// ParseTenderMethod validates a raw method string
func ParseTenderMethod(s string) (TenderMethod, bool) {
	switch TenderMethod(s) {
	case TenderCash, TenderCardAmex, TenderCardVisa, TenderCardMasterCard,
		TenderCardMaestro, TenderEWallet, TenderFinance:
		return TenderMethod(s), true
	}
	return "", false
}
