// Package docs documento OpenAPI de la API, registrado en swag y servido en /docs.
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

// SwaggerFile ruta del documento que lee el middleware de Swagger UI.
const SwaggerFile = "./docs/swagger.json"

//go:embed swagger.json
var docTemplate string

// SwaggerInfo metadatos del documento; cmd/api ajusta Host al arrancar.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "StyleLane API",
	Description:      "Inventario multi-tienda, reposición con suppliers y reportes de ventas.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// JSON devuelve el documento registrado.
func JSON() (string, error) {
	return swag.ReadDoc(SwaggerInfo.InstanceName())
}
