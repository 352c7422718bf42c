package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateKey(t *testing.T) {
	assert.Equal(t, "user:id:42", GenerateKey(EntityUser, KeyID, uint(42)))
	assert.Equal(t, "form:id:7", GenerateKey(EntityForm, KeyID, 7))
}
