package entities

import (
	"encoding/json"
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquipment_MarshalJSON_OmitsUnsetFields(t *testing.T) {
	e := Equipment{
		Description:  "Бульдозер CAT D6",
		Make:         "Caterpillar",
		SiteLocation: "Site A",
	}

	data, err := json.Marshal(e)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))

	_, hasSINo := raw["SI No"]
	assert.False(t, hasSINo, "SI No с нулевым значением не должен попадать в JSON")
	_, hasOwn := raw["Own"]
	assert.False(t, hasOwn, "незаданная отметка Own не должна попадать в JSON")
	_, hasRental := raw["Rental"]
	assert.False(t, hasRental, "незаданная отметка Rental не должна попадать в JSON")
	assert.Equal(t, "Бульдозер CAT D6", raw["Equipment Description/Make"])
}

func TestEquipment_MarshalJSON_KeepsSetFields(t *testing.T) {
	e := Equipment{
		SINo:        7,
		Description: "Экскаватор",
		Own:         null.StringFrom(StatusMarkSet),
		Rental:      null.StringFrom(StatusMarkUnset),
	}

	data, err := json.Marshal(e)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Equal(t, float64(7), raw["SI No"])
	assert.Equal(t, StatusMarkSet, raw["Own"])
	assert.Equal(t, StatusMarkUnset, raw["Rental"])
}

func TestEquipment_UnmarshalJSON(t *testing.T) {
	payload := `{
		"SI No": 3,
		"Equipment Description/Make": "Автокран",
		"Make": "Liebherr",
		"Year of Manufacture": 2015,
		"Site Location": "Депо",
		"Registration Number": "AB 1234",
		"Insurance": "✓",
		"Permit": "-",
		"Tax": "",
		"Fitness Certificate": "✓",
		"Remarks": "",
		"Own": "✓"
	}`

	var e Equipment
	require.NoError(t, json.Unmarshal([]byte(payload), &e))

	assert.Equal(t, int64(3), e.SINo)
	assert.Equal(t, "Автокран", e.Description)
	assert.Equal(t, "2015", e.Year.String())
	assert.True(t, e.Year.IsNumeric())
	assert.True(t, e.Own.Valid)
	assert.Equal(t, StatusMarkSet, e.Own.String)
	assert.False(t, e.Rental.Valid, "отсутствующая в JSON отметка Rental должна остаться незаданной")
}

func TestEquipment_WithStatusMark_MutualExclusion(t *testing.T) {
	e := Equipment{
		SINo:   1,
		Own:    null.StringFrom(StatusMarkSet),
		Rental: null.StringFrom(StatusMarkUnset),
	}

	t.Run("галочка Rental снимает галочку Own", func(t *testing.T) {
		updated := e.WithStatusMark(StatusFieldRental, StatusMarkSet)
		assert.Equal(t, StatusMarkSet, updated.Rental.String)
		assert.Equal(t, StatusMarkUnset, updated.Own.String)
	})

	t.Run("снятие галочки не трогает другое поле", func(t *testing.T) {
		updated := e.WithStatusMark(StatusFieldOwn, StatusMarkUnset)
		assert.Equal(t, StatusMarkUnset, updated.Own.String)
		assert.Equal(t, StatusMarkUnset, updated.Rental.String)
	})

	t.Run("исходная запись не изменяется", func(t *testing.T) {
		_ = e.WithStatusMark(StatusFieldRental, StatusMarkSet)
		assert.Equal(t, StatusMarkSet, e.Own.String)
	})
}

func TestHasMark(t *testing.T) {
	assert.True(t, HasMark("✓"))
	assert.True(t, HasMark("до 2027"))
	assert.False(t, HasMark(""))
	assert.False(t, HasMark("-"))
	assert.False(t, HasMark("  -  "))
	assert.False(t, HasMark("   "))
}

func TestStatusField_Valid(t *testing.T) {
	assert.True(t, StatusFieldOwn.Valid())
	assert.True(t, StatusFieldRental.Valid())
	assert.False(t, StatusField("Insurance").Valid())
}
