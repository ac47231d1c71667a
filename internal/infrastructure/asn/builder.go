// Package asn genera el aviso de despacho (Advance Ship Notice) en XML a partir
// de una solicitud de reposición despachada. El documento sigue la estructura
// UBL 2.1 DespatchAdvice y se acompaña del digest SHA-256 de su forma canónica
// (C14N), que el receptor puede usar para verificar integridad.
package asn

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/stylelane-api/internal/application/inventory"
)

// Namespaces UBL 2.1.
const (
	NsDespatchAdvice = "urn:oasis:names:specification:ubl:schema:xsd:DespatchAdvice-2"
	NsCac            = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	NsCbc            = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"

	ublVersion = "2.1"
	unitCode   = "EA" // unidades
)

var _ inventory.ShipNoticeBuilder = (*XMLBuilder)(nil)

// XMLBuilder construye el DespatchAdvice con etree.
type XMLBuilder struct{}

// NewXMLBuilder crea el builder.
func NewXMLBuilder() *XMLBuilder { return &XMLBuilder{} }

// Build genera el XML y su digest.
func (b *XMLBuilder) Build(n inventory.ShipNotice) (*inventory.ShipNoticeDocument, error) {
	if n.RequestID == "" || n.ShipmentID == "" {
		return nil, fmt.Errorf("asn: faltan request o shipment")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("DespatchAdvice")
	root.CreateAttr("xmlns", NsDespatchAdvice)
	root.CreateAttr("xmlns:cac", NsCac)
	root.CreateAttr("xmlns:cbc", NsCbc)

	cbc(root, "UBLVersionID", ublVersion)
	cbc(root, "ID", n.ShipmentID)
	cbc(root, "IssueDate", n.ShippedAt.UTC().Format("2006-01-02"))
	cbc(root, "IssueTime", n.ShippedAt.UTC().Format("15:04:05Z"))
	if n.TrackingInfo != "" {
		cbc(root, "Note", n.TrackingInfo)
	}

	// Referencia a la solicitud de reposición que origina el despacho.
	order := root.CreateElement("cac:OrderReference")
	cbc(order, "ID", n.RequestID)

	// Proveedor
	supplier := root.CreateElement("cac:DespatchSupplierParty")
	sp := supplier.CreateElement("cac:Party")
	if n.Supplier != nil {
		partyID(sp, n.Supplier.ID)
		partyName(sp, nonEmpty(n.Supplier.SupplierName, n.Supplier.Username))
		if n.Supplier.ContactEmail != "" {
			contact := sp.CreateElement("cac:Contact")
			cbc(contact, "ElectronicMail", n.Supplier.ContactEmail)
		}
	} else {
		partyName(sp, "Unknown supplier")
	}

	// Tienda destino
	customer := root.CreateElement("cac:DeliveryCustomerParty")
	cp := customer.CreateElement("cac:Party")
	partyID(cp, n.Store.ID)
	partyName(cp, n.Store.Name)
	if n.Store.Location != "" {
		addr := cp.CreateElement("cac:PostalAddress")
		cbc(addr, "CityName", n.Store.Location)
	}

	// Envío
	shipment := root.CreateElement("cac:Shipment")
	cbc(shipment, "ID", n.ShipmentID)
	if n.TrackingInfo != "" {
		cbc(shipment, "Information", n.TrackingInfo)
	}

	// Línea única: el producto y la cantidad solicitada.
	line := root.CreateElement("cac:DespatchLine")
	cbc(line, "ID", "1")
	qty := cbc(line, "DeliveredQuantity", strconv.Itoa(n.Quantity))
	qty.CreateAttr("unitCode", unitCode)
	lineRef := line.CreateElement("cac:OrderLineReference")
	cbc(lineRef, "LineID", "1")
	item := line.CreateElement("cac:Item")
	cbc(item, "Name", n.Product.Name)
	if n.Product.Description != "" {
		cbc(item, "Description", n.Product.Description)
	}
	sellers := item.CreateElement("cac:SellersItemIdentification")
	cbc(sellers, "ID", n.Product.SKU)
	for _, prop := range []struct{ name, value string }{
		{"Category", n.Product.Category},
		{"Size", n.Product.Size},
		{"Color", n.Product.Color},
	} {
		if prop.value == "" {
			continue
		}
		p := item.CreateElement("cac:AdditionalItemProperty")
		cbc(p, "Name", prop.name)
		cbc(p, "Value", prop.value)
	}

	doc.Indent(2)
	raw, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("asn: serializar xml: %w", err)
	}

	digest, err := Digest(raw)
	if err != nil {
		return nil, err
	}
	return &inventory.ShipNoticeDocument{
		Filename: "asn-" + n.ShipmentID + ".xml",
		XML:      raw,
		Digest:   digest,
	}, nil
}

// Digest devuelve base64(SHA-256(C14N(xml))).
func Digest(raw []byte) (string, error) {
	canonical, err := canonicalize(raw)
	if err != nil {
		return "", fmt.Errorf("asn: canonicalizar: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

// canonicalize aplica C14N sobre el elemento raíz; la declaración XML no forma parte de la forma canónica.
func canonicalize(data []byte) ([]byte, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("documento sin elemento raíz")
	}
	body := etree.NewDocument()
	body.SetRoot(doc.Root().Copy())
	rootOnly, err := body.WriteToBytes()
	if err != nil {
		return nil, err
	}
	dec := xml.NewDecoder(bytes.NewReader(rootOnly))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}

func cbc(parent *etree.Element, tag, value string) *etree.Element {
	el := parent.CreateElement("cbc:" + tag)
	el.SetText(value)
	return el
}

func partyID(party *etree.Element, id string) {
	if id == "" {
		return
	}
	ident := party.CreateElement("cac:PartyIdentification")
	cbc(ident, "ID", id)
}

func partyName(party *etree.Element, name string) {
	pn := party.CreateElement("cac:PartyName")
	cbc(pn, "Name", name)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
