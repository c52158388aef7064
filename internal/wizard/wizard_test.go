package wizard

import (
	"testing"

	"github.com/greenlandlord/epcstats/internal/epc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionValidate(t *testing.T) {
	tests := []struct {
		name    string
		sel     Selection
		wantErr string
	}{
		{"full", Selection{Mode: ModeFull}, ""},
		{"locale", Selection{Mode: ModeLocale, LocaleCode: "E08000003"}, ""},
		{"locale missing code", Selection{Mode: ModeLocale}, "a local authority is required"},
		{"property type", Selection{Mode: ModePropertyType, PropertyType: "Flat"}, ""},
		{"property type missing", Selection{Mode: ModePropertyType}, "a property type is required"},
		{"unknown mode", Selection{Mode: "bulk"}, `invalid mode "bulk"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sel.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestModeOptions(t *testing.T) {
	opts := ModeOptions()
	require.Len(t, opts, 3)
	assert.Equal(t, ModeFull, opts[0].Value)
	assert.Equal(t, ModeLocale, opts[1].Value)
	assert.Equal(t, ModePropertyType, opts[2].Value)
}

func TestLocaleOptions(t *testing.T) {
	opts := LocaleOptions(epc.MajorCities[:2])
	require.Len(t, opts, 2)
	assert.Equal(t, "Manchester (E08000003)", opts[0].Key)
	assert.Equal(t, "E08000003", opts[0].Value)
	assert.Equal(t, "Birmingham (E08000025)", opts[1].Key)

	assert.Empty(t, LocaleOptions(nil))
}

func TestPropertyTypeOptions(t *testing.T) {
	opts := PropertyTypeOptions(epc.PropertyTypes)
	require.Len(t, opts, len(epc.PropertyTypes))
	for i, o := range opts {
		assert.Equal(t, epc.PropertyTypes[i], o.Key)
		assert.Equal(t, epc.PropertyTypes[i], o.Value)
	}
}
