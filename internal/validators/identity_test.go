package validators

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsIdentityID(t *testing.T) {
	assert.True(t, IsIdentityID("A123456789"))
	assert.True(t, IsIdentityID(" a123456789 "))
	assert.False(t, IsIdentityID("A123456788"))
	assert.False(t, IsIdentityID("A323456789"))
	assert.False(t, IsIdentityID("1234567890"))
	assert.False(t, IsIdentityID("A12345"))
}

func TestMaskIdentity(t *testing.T) {
	assert.Equal(t, "A12***789", MaskIdentity("A123456789"))
	assert.Equal(t, "A*****", MaskIdentity("A12345"))
	assert.Equal(t, "", MaskIdentity(""))
}

func TestIsPhone(t *testing.T) {
	assert.True(t, IsPhone("0912345678"))
	assert.True(t, IsPhone("0912-345-678"))
	assert.True(t, IsPhone("02-2345-6789"))
	assert.False(t, IsPhone("12345"))
	assert.False(t, IsPhone("912345678"))
}

func TestRegisterAddsBindingTags(t *testing.T) {
	require.NoError(t, Register())

	type form struct {
		ID    string `binding:"twid"`
		Phone string `binding:"twphone"`
	}

	assert.NoError(t, binding.Validator.ValidateStruct(form{ID: "A123456789", Phone: "0912345678"}))
	assert.Error(t, binding.Validator.ValidateStruct(form{ID: "A123456788", Phone: "0912345678"}))
}
