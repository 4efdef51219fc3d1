package libs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"boutique-shop/config"
	"boutique-shop/models"

	"github.com/tealeg/xlsx"
)

// BordereauGenerator builds the shipping paperwork handed to the delivery
// company: one row per order with the recipient, destination and the amount
// to collect on delivery.
type BordereauGenerator struct{}

func NewBordereauGenerator() *BordereauGenerator {
	return &BordereauGenerator{}
}

var bordereauHeaders = []string{
	"Commande", "Nom", "Prénom", "Téléphone", "Adresse", "Commune", "Wilaya",
	"Mode de livraison", "Articles", "Montant à encaisser (DA)", "N° de suivi",
}

func buildSheet(file *xlsx.File, orders []models.Order) error {
	sheet, err := file.AddSheet("Bordereaux")
	if err != nil {
		return err
	}

	headerRow := sheet.AddRow()
	for _, h := range bordereauHeaders {
		headerRow.AddCell().SetValue(h)
	}

	for _, o := range orders {
		articleCount := 0
		for _, it := range o.Items {
			articleCount += it.Quantity
		}

		method := "Domicile"
		if o.ShippingMethod == "stopdesk" {
			method = "Stopdesk"
		}

		row := sheet.AddRow()
		row.AddCell().SetValue(o.OrderNumber)
		row.AddCell().SetValue(o.LastName)
		row.AddCell().SetValue(o.FirstName)
		row.AddCell().SetValue(o.Phone)
		row.AddCell().SetValue(o.Address)
		row.AddCell().SetValue(o.City)
		row.AddCell().SetValue(o.Wilaya)
		row.AddCell().SetValue(method)
		row.AddCell().SetValue(articleCount)
		row.AddCell().SetValue(o.Total)
		row.AddCell().SetValue(o.TrackingNumber)
	}

	return nil
}

// Generate writes a bordereau file for a confirmed batch under the public
// uploads directory and returns its URL.
func (g *BordereauGenerator) Generate(orders []models.Order) (string, error) {
	file := xlsx.NewFile()
	if err := buildSheet(file, orders); err != nil {
		return "", err
	}

	dir := filepath.Join(config.AppConfig.UploadDir, "bordereaus")
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("bordereau_%d.xlsx", time.Now().Unix())
	if err := file.Save(filepath.Join(dir, filename)); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/uploads/bordereaus/%s", config.AppConfig.PublicBaseURL, filename), nil
}

// Export builds the same sheet in memory for direct download.
func (g *BordereauGenerator) Export(orders []models.Order) ([]byte, error) {
	file := xlsx.NewFile()
	if err := buildSheet(file, orders); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
