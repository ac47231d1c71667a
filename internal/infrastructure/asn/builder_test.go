package asn_test

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stylelane-api/internal/application/inventory"
	"github.com/jhoicas/stylelane-api/internal/domain/entity"
	"github.com/jhoicas/stylelane-api/internal/infrastructure/asn"
)

func notice() inventory.ShipNotice {
	return inventory.ShipNotice{
		RequestID:    "req-1",
		ShipmentID:   "shp-1",
		TrackingInfo: "UPS 1Z999",
		ShippedAt:    time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC),
		Quantity:     25,
		Store:        entity.Store{ID: "st-1", Name: "Flagship Store", Location: "Downtown"},
		Product:      entity.Product{ID: "p-1", Name: "Classic Tee", SKU: "TEE-001", Size: "M", Color: "White"},
		Supplier:     &entity.User{ID: "u-1", Username: "supplier1", SupplierName: "Universal Fashions", ContactEmail: "ops@universal.example"},
	}
}

func TestBuild_EstructuraDespatchAdvice(t *testing.T) {
	out, err := asn.NewXMLBuilder().Build(notice())
	require.NoError(t, err)
	assert.Equal(t, "asn-shp-1.xml", out.Filename)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out.XML))

	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "DespatchAdvice", root.Tag)
	assert.Equal(t, asn.NsDespatchAdvice, root.SelectAttrValue("xmlns", ""))

	assert.Equal(t, "req-1", doc.FindElement("//cac:OrderReference/cbc:ID").Text())
	assert.Equal(t, "Universal Fashions", doc.FindElement("//cac:DespatchSupplierParty//cbc:Name").Text())
	assert.Equal(t, "Flagship Store", doc.FindElement("//cac:DeliveryCustomerParty//cbc:Name").Text())

	qty := doc.FindElement("//cac:DespatchLine/cbc:DeliveredQuantity")
	require.NotNil(t, qty)
	assert.Equal(t, "25", qty.Text())
	assert.Equal(t, "EA", qty.SelectAttrValue("unitCode", ""))
	assert.Equal(t, "TEE-001", doc.FindElement("//cac:SellersItemIdentification/cbc:ID").Text())
	assert.Equal(t, "2024-03-05", doc.FindElement("/DespatchAdvice/cbc:IssueDate").Text())
}

func TestBuild_DigestEsDeterministico(t *testing.T) {
	a, err := asn.NewXMLBuilder().Build(notice())
	require.NoError(t, err)
	b, err := asn.NewXMLBuilder().Build(notice())
	require.NoError(t, err)

	assert.NotEmpty(t, a.Digest)
	assert.Equal(t, a.Digest, b.Digest)

	n := notice()
	n.Quantity = 26
	c, err := asn.NewXMLBuilder().Build(n)
	require.NoError(t, err)
	assert.NotEqual(t, a.Digest, c.Digest)
}

func TestBuild_SinSupplier(t *testing.T) {
	n := notice()
	n.Supplier = nil
	out, err := asn.NewXMLBuilder().Build(n)
	require.NoError(t, err)
	assert.Contains(t, string(out.XML), "Unknown supplier")
}

func TestBuild_FaltanIdentificadores(t *testing.T) {
	_, err := asn.NewXMLBuilder().Build(inventory.ShipNotice{})
	assert.Error(t, err)
}

func TestDigest_IgnoraDeclaracionXML(t *testing.T) {
	withDecl, err := asn.Digest([]byte(`<?xml version="1.0" encoding="UTF-8"?><a x="1"><b>t</b></a>`))
	require.NoError(t, err)
	without, err := asn.Digest([]byte(`<a x="1"><b>t</b></a>`))
	require.NoError(t, err)
	assert.Equal(t, without, withDecl)
}
