package procurement

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSupplier(t *testing.T) {
	supplier, err := NewSupplier(uuid.New(), "SUP-001", "Acme Traders")
	require.NoError(t, err)
	assert.Equal(t, SupplierStatusActive, supplier.Status)

	_, err = NewSupplier(uuid.New(), "", "Acme Traders")
	assert.Error(t, err)
	_, err = NewSupplier(uuid.New(), "SUP-001", "")
	assert.Error(t, err)
}

func TestPromisedLeadTimeDays(t *testing.T) {
	supplier, _ := NewSupplier(uuid.New(), "SUP-001", "Acme Traders")
	assert.Equal(t, 7, supplier.PromisedLeadTimeDays(7))

	declared := 12
	supplier.AvgLeadTimeDays = &declared
	assert.Equal(t, 12, supplier.PromisedLeadTimeDays(7))

	zero := 0
	supplier.AvgLeadTimeDays = &zero
	assert.Equal(t, 7, supplier.PromisedLeadTimeDays(7))
}

func TestUpdateReliability(t *testing.T) {
	supplier, _ := NewSupplier(uuid.New(), "SUP-001", "Acme Traders")
	at := time.Now()

	require.NoError(t, supplier.UpdateReliability(9, decimal.NewFromFloat(77.9), at))
	require.NotNil(t, supplier.ReliabilityScore)
	assert.Equal(t, "77.9", supplier.ReliabilityScore.String())
	require.NotNil(t, supplier.AvgLeadTimeDays)
	assert.Equal(t, 9, *supplier.AvgLeadTimeDays)
	assert.Equal(t, at, *supplier.ScoreUpdatedAt)

	assert.Error(t, supplier.UpdateReliability(9, decimal.NewFromInt(101), at))
	assert.Error(t, supplier.UpdateReliability(9, decimal.NewFromInt(-1), at))
}

func TestHasCreditLimit(t *testing.T) {
	supplier, _ := NewSupplier(uuid.New(), "SUP-001", "Acme Traders")
	assert.False(t, supplier.HasCreditLimit())

	zero := decimal.Zero
	supplier.CreditLimit = &zero
	assert.False(t, supplier.HasCreditLimit())

	limit := decimal.NewFromInt(100000)
	supplier.CreditLimit = &limit
	assert.True(t, supplier.HasCreditLimit())
}
