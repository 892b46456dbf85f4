package pii

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskEmail(t *testing.T) {
	m := NewMasker()

	masked, found := m.Mask("reach me at john.doe@example.com please")
	assert.Equal(t, "reach me at j*******@example.com please", masked)
	require.Len(t, found["emails"], 1)
	assert.Equal(t, "john.doe@example.com", found["emails"][0].Original)
}

func TestMaskPhone(t *testing.T) {
	m := NewMasker()

	masked, found := m.Mask("call +1-555-123-4567 today")
	assert.Contains(t, masked, "***-***-4567")
	assert.NotContains(t, masked, "555-123-4567")
	require.Len(t, found["phones"], 1)
}

func TestMaskSSN(t *testing.T) {
	m := NewMasker()

	masked, found := m.Mask("my ssn is 123-45-6789")
	assert.Contains(t, masked, "***-**-6789")
	assert.NotContains(t, masked, "123-45-6789")
	require.Len(t, found["ssns"], 1)
}

func TestMaskCreditCard(t *testing.T) {
	m := NewMasker()

	masked, found := m.Mask("card 4111 1111 1111 1234 on file")
	assert.Contains(t, masked, "**** **** **** 1234")
	assert.NotContains(t, masked, "4111 1111 1111 1234")
	require.Len(t, found["credit_cards"], 1)
}

func TestMaskIsIdempotent(t *testing.T) {
	m := NewMasker()

	input := "email a@b.com, phone (555) 123-4567, ssn 123-45-6789, card 4111-1111-1111-9999"
	once, _ := m.Mask(input)
	twice, foundAgain := m.Mask(once)

	assert.Equal(t, once, twice)
	assert.Empty(t, foundAgain)
}

func TestMaskNeverReintroducesOriginal(t *testing.T) {
	m := NewMasker()

	originals := []string{"john.doe@example.com", "555-867-5309", "123-45-6789", "4111 1111 1111 1111"}
	input := strings.Join(originals, " and ")

	masked, _ := m.Mask(input)
	for _, original := range originals {
		assert.NotContains(t, masked, original)
	}
}

func TestMaskNoPII(t *testing.T) {
	m := NewMasker()

	masked, found := m.Mask("is your store open right now?")
	assert.Equal(t, "is your store open right now?", masked)
	assert.Empty(t, found)
}
