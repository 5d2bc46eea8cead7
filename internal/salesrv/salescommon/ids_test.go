package salescommon

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewInvoiceNumber(t *testing.T) {
	n := NewInvoiceNumber()
	assert.True(t, strings.HasPrefix(n, "INV-"))
	assert.Len(t, n, len("INV-")+docNumberLen)

	// High enough entropy that two calls never collide in practice.
	assert.NotEqual(t, n, NewInvoiceNumber())
}

func TestNewPreBillNumber(t *testing.T) {
	n := NewPreBillNumber()
	assert.True(t, strings.HasPrefix(n, "PRE-"))
	assert.Len(t, n, len("PRE-")+docNumberLen)
}
