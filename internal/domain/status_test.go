package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaleStatusIsConfirmed(t *testing.T) {
	assert.True(t, StatusConfirmedPaid.IsConfirmed())
	assert.True(t, StatusConfirmedPending.IsConfirmed())
	assert.False(t, StatusCancelled.IsConfirmed())
	assert.False(t, StatusNotFinalized.IsConfirmed())
	assert.False(t, StatusUnknownError.IsConfirmed())
}

func TestSaleStatusErrorMessage(t *testing.T) {
	assert.Equal(t, "Venda cancelada", StatusCancelled.ErrorMessage())
	assert.Equal(t, "Venda não finalizada", StatusNotFinalized.ErrorMessage())
	assert.Equal(t, "Erro desconhecido. Acionar equipe de TI.", StatusUnknownError.ErrorMessage())

	assert.Equal(t, "N/A", StatusConfirmedPaid.ErrorMessage())
	assert.Equal(t, "N/A", StatusConfirmedPending.ErrorMessage())
}

func TestParseSaleStatus(t *testing.T) {
	for _, code := range []int{100, 102, 135, 190, 999} {
		s, err := ParseSaleStatus(code)
		require.NoError(t, err)
		assert.Equal(t, code, int(s))
	}

	_, err := ParseSaleStatus(101)
	assert.Error(t, err)
	_, err = ParseSaleStatus(0)
	assert.Error(t, err)
}

func TestSalesChannelDescription(t *testing.T) {
	assert.Equal(t, "Representantes", ChannelSalesRep.Description())
	assert.Equal(t, "Website", ChannelWebsite.Description())
	assert.Equal(t, "App móvel Android", ChannelAndroidApp.Description())
	assert.Equal(t, "App móvel iPhone", ChannelIOSApp.Description())
}

func TestParseSalesChannel(t *testing.T) {
	for _, code := range []int{1, 2, 3, 4} {
		c, err := ParseSalesChannel(code)
		require.NoError(t, err)
		assert.Equal(t, code, int(c))
	}

	_, err := ParseSalesChannel(5)
	assert.Error(t, err)
	_, err = ParseSalesChannel(0)
	assert.Error(t, err)
}
