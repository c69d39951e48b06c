package wire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rezonia/avalara-go/internal/wire"
)

func TestRender_DropsEmptyFields(t *testing.T) {
	obj := wire.Render([]wire.Field{
		wire.F("AddressCode", 1),
		wire.F("Line1", "123 some street name"),
		wire.F("Line2", ""),
		wire.F("Latitude", ""),
		wire.F("TaxRegionId", 0),
		wire.F("Discounted", false),
	}, nil)

	assert.Equal(t, wire.Object{
		"AddressCode": 1,
		"Line1":       "123 some street name",
	}, obj)
}

func TestRender_ExtraDoesNotOverrideTyped(t *testing.T) {
	obj := wire.Render([]wire.Field{
		wire.F("DocCode", "5"),
	}, map[string]interface{}{
		"DocCode":     "other",
		"PaymentDate": "2016-05-06",
		"EmptyCustom": "",
	})

	assert.Equal(t, wire.Object{
		"DocCode":     "5",
		"PaymentDate": "2016-05-06",
	}, obj)
}

func TestPrune_Nested(t *testing.T) {
	doc := wire.Object{
		"DocCode": "5",
		"Lines": []wire.Object{
			{"LineNo": 1, "Ref1": "", "TaxOverride": wire.Object{"Reason": ""}},
			{"Ref1": "", "Ref2": nil},
		},
		"Meta": map[string]interface{}{
			"inner": []interface{}{"", nil, map[string]interface{}{"x": ""}},
		},
		"Addresses": []wire.Object{},
	}

	assert.Equal(t, wire.Object{
		"DocCode": "5",
		"Lines": []wire.Object{
			{"LineNo": 1},
		},
	}, wire.Prune(doc))
}

func TestPrune_Idempotent(t *testing.T) {
	doc := wire.Object{
		"A": "x",
		"B": []wire.Object{{"C": "", "D": "y"}},
	}
	once := wire.Prune(doc)
	assert.Equal(t, once, wire.Prune(once))
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, wire.IsEmpty(wire.Object{}))
	assert.True(t, wire.IsEmpty([]wire.Object{}))
	assert.True(t, wire.IsEmpty([]interface{}{}))
	assert.True(t, wire.IsEmpty(""))
	assert.True(t, wire.IsEmpty(nil))
	assert.False(t, wire.IsEmpty(wire.Object{"a": 1}))
	assert.False(t, wire.IsEmpty("0.00"))
}
