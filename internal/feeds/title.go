package feeds

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cheapram/cheapram-api/internal/models"
)

var (
	capacityRe = regexp.MustCompile(`(\d+)\s*GB`)
	speedRe    = regexp.MustCompile(`(\d+)\s*MHZ`)
)

// TitleAttrs holds the module attributes extracted from a product title.
// Each field is independently nullable except FormFactor, which defaults to
// DIMM when no form-factor keyword appears: most retail modules are DIMMs.
type TitleAttrs struct {
	CapacityGB *int
	SpeedMHz   *int
	DDRType    *string
	FormFactor *string
}

// ParseTitle extracts capacity, speed, memory generation and form factor from
// a free-text product title. Best effort and pure: the first "<n>GB" token is
// the capacity (no sanity check against real module sizes), the first
// "<n>MHZ" token is the speed, and DDR5 wins over DDR4 when both appear.
func ParseTitle(title string) TitleAttrs {
	t := strings.ToUpper(title)
	var attrs TitleAttrs

	if m := capacityRe.FindStringSubmatch(t); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			attrs.CapacityGB = intPtr(n)
		}
	}
	if m := speedRe.FindStringSubmatch(t); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			attrs.SpeedMHz = intPtr(n)
		}
	}

	switch {
	case strings.Contains(t, models.DDRTypeDDR5):
		attrs.DDRType = strPtr(models.DDRTypeDDR5)
	case strings.Contains(t, models.DDRTypeDDR4):
		attrs.DDRType = strPtr(models.DDRTypeDDR4)
	}

	if strings.Contains(t, models.FormFactorSODIMM) {
		attrs.FormFactor = strPtr(models.FormFactorSODIMM)
	} else {
		attrs.FormFactor = strPtr(models.FormFactorDIMM)
	}

	return attrs
}
