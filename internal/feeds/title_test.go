package feeds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTitleFullTitle(t *testing.T) {
	attrs := ParseTitle("Corsair Vengeance 32GB (2x16GB) DDR5 5600MHz SODIMM Laptop Memory")

	require.NotNil(t, attrs.CapacityGB)
	assert.Equal(t, 32, *attrs.CapacityGB)
	require.NotNil(t, attrs.SpeedMHz)
	assert.Equal(t, 5600, *attrs.SpeedMHz)
	require.NotNil(t, attrs.DDRType)
	assert.Equal(t, "DDR5", *attrs.DDRType)
	require.NotNil(t, attrs.FormFactor)
	assert.Equal(t, "SODIMM", *attrs.FormFactor)
}

func TestParseTitleNoSizeToken(t *testing.T) {
	attrs := ParseTitle("Crucial Pro Desktop Memory Kit")

	assert.Nil(t, attrs.CapacityGB)
	assert.Nil(t, attrs.SpeedMHz)
	assert.Nil(t, attrs.DDRType)
	require.NotNil(t, attrs.FormFactor)
	assert.Equal(t, "DIMM", *attrs.FormFactor)
}

func TestParseTitleDDR5WinsOverDDR4(t *testing.T) {
	attrs := ParseTitle("Upgrade kit DDR4 to DDR5 16GB")

	require.NotNil(t, attrs.DDRType)
	assert.Equal(t, "DDR5", *attrs.DDRType)
}

func TestParseTitleLowercaseAndSpacing(t *testing.T) {
	attrs := ParseTitle("kingston fury 16 gb ddr4 3200 mhz")

	require.NotNil(t, attrs.CapacityGB)
	assert.Equal(t, 16, *attrs.CapacityGB)
	require.NotNil(t, attrs.SpeedMHz)
	assert.Equal(t, 3200, *attrs.SpeedMHz)
	require.NotNil(t, attrs.DDRType)
	assert.Equal(t, "DDR4", *attrs.DDRType)
}

func TestParseTitleFirstCapacityTokenWins(t *testing.T) {
	attrs := ParseTitle("64GB (2x32GB) DDR5 kit")

	require.NotNil(t, attrs.CapacityGB)
	assert.Equal(t, 64, *attrs.CapacityGB)
}

func TestParseTitleDefaultsToDIMM(t *testing.T) {
	attrs := ParseTitle("G.Skill Ripjaws 16GB DDR4 3600MHz")

	require.NotNil(t, attrs.FormFactor)
	assert.Equal(t, "DIMM", *attrs.FormFactor)
}
