package salescommon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-passphrase")
	require.NoError(t, err)
	assert.True(t, VerifyPassword("s3cret-passphrase", hash))
	assert.False(t, VerifyPassword("wrong", hash))
}

func TestVerifyPasswordRejectsGarbage(t *testing.T) {
	assert.False(t, VerifyPassword("anything", "not-a-hash"))
	assert.False(t, VerifyPassword("anything", "$bcrypt$v=19$m=1,t=1,p=1$AA$AA"))
}

func TestInvoiceNumbers(t *testing.T) {
	n := NewInvoiceNumber()
	assert.Len(t, n, len("INV-")+10)
	assert.Contains(t, n, "INV-")

	p := NewPreBillNumber()
	assert.Contains(t, p, "PRE-")
	assert.NotEqual(t, n, p)
}
