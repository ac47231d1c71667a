package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stylelane-api/docs"
)

func TestDocs_RegistradoYValido(t *testing.T) {
	raw, err := docs.JSON()
	require.NoError(t, err)

	var doc struct {
		Swagger string                    `json:"swagger"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "2.0", doc.Swagger)
	assert.Contains(t, doc.Paths, "/api/supplier/restock-requests/{id}/transition")
	assert.Contains(t, doc.Paths["/api/manager/restock-requests"], "post")

	transition, ok := doc.Paths["/api/supplier/restock-requests/{id}/transition"]["post"].(map[string]any)
	require.True(t, ok)
	desc, _ := transition["description"].(string)
	assert.Contains(t, desc, "pending o approved→rejected")
	assert.Contains(t, desc, "pending o approved→shipped")
}
