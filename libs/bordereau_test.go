package libs

import (
	"testing"

	"boutique-shop/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func TestExportBuildsReadableSheet(t *testing.T) {
	gen := NewBordereauGenerator()

	orders := []models.Order{
		{
			OrderNumber:    "ORD-1700000000",
			FirstName:      "Amina",
			LastName:       "Benali",
			Phone:          "0551234567",
			Address:        "Cité 20 Août, Bt 5",
			City:           "Bab Ezzouar",
			Wilaya:         "Alger",
			ShippingMethod: "stopdesk",
			Total:          6400,
			TrackingNumber: "TRK-ABC1234567",
			Items: []models.OrderItem{
				{Name: "Robe d'été", Quantity: 2},
				{Name: "Foulard", Quantity: 1},
			},
		},
	}

	content, err := gen.Export(orders)
	require.NoError(t, err)
	require.NotEmpty(t, content)

	file, err := xlsx.OpenBinary(content)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	assert.Equal(t, "Bordereaux", sheet.Name)
	require.Len(t, sheet.Rows, 2)

	assert.Equal(t, "Commande", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, "Montant à encaisser (DA)", sheet.Rows[0].Cells[9].String())

	row := sheet.Rows[1]
	assert.Equal(t, "ORD-1700000000", row.Cells[0].String())
	assert.Equal(t, "Benali", row.Cells[1].String())
	assert.Equal(t, "Stopdesk", row.Cells[7].String())

	articles, err := row.Cells[8].Int()
	require.NoError(t, err)
	assert.Equal(t, 3, articles)
}
