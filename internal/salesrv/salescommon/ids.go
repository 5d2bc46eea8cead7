package salescommon

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog/log"
)

// document number alphabet: upper-case alphanumerics, no lookalikes
const docNumberAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

const docNumberLen = 10

// NewInvoiceNumber returns a human-facing invoice number like
// INV-7GK2M4PQWX. Uniqueness is enforced by the invoices table.
func NewInvoiceNumber() string {
	return "INV-" + newDocNumber()
}

// NewPreBillNumber returns a pre-bill invoice number like PRE-....
func NewPreBillNumber() string {
	return "PRE-" + newDocNumber()
}

func newDocNumber() string {
	id, err := gonanoid.Generate(docNumberAlphabet, docNumberLen)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate document number")
		return ""
	}
	return id
}
