package utils

import (
	"encoding/json"
	"testing"

	"github.com/edusync/statesync/models"
	"github.com/stretchr/testify/assert"
)

func fm(pairs map[string]string) models.FieldMap {
	m := models.FieldMap{}
	for k, v := range pairs {
		m[k] = models.FieldValue{Value: json.RawMessage(v)}
	}
	return m
}

func TestDataChecksum_Deterministic(t *testing.T) {
	a := fm(map[string]string{"score": `95`, "title": `"algebra"`})
	b := fm(map[string]string{"title": `"algebra"`, "score": `95`})

	assert.Equal(t, DataChecksum(a), DataChecksum(b))
}

func TestDataChecksum_IgnoresFormatting(t *testing.T) {
	a := fm(map[string]string{"answer": `{"a":1,"b":2}`})
	b := fm(map[string]string{"answer": `{ "b": 2, "a": 1 }`})

	assert.Equal(t, DataChecksum(a), DataChecksum(b))
}

func TestDataChecksum_DifferentValues(t *testing.T) {
	a := fm(map[string]string{"score": `95`})
	b := fm(map[string]string{"score": `96`})

	assert.NotEqual(t, DataChecksum(a), DataChecksum(b))
}

func TestDataChecksum_NullVsValue(t *testing.T) {
	withNull := models.FieldMap{"score": {Null: true}}
	withValue := fm(map[string]string{"score": `0`})

	assert.NotEqual(t, DataChecksum(withNull), DataChecksum(withValue))
}

func TestVerifyChecksum(t *testing.T) {
	data := fm(map[string]string{"score": `95`})

	assert.True(t, VerifyChecksum(data, ""), "empty expected digest must pass")
	assert.True(t, VerifyChecksum(data, DataChecksum(data)))
	assert.False(t, VerifyChecksum(data, "deadbeef"))
}
