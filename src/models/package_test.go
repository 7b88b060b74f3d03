package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectivePrice(t *testing.T) {
	pkg := Package{Price: 500}
	assert.Equal(t, 500.0, pkg.EffectivePrice())

	discounted := 450.0
	pkg.DiscountedPrice = &discounted
	assert.Equal(t, 450.0, pkg.EffectivePrice())
}

func TestPricedCapabilityIsShared(t *testing.T) {
	var priced []Priced = []Priced{
		&Package{Price: 500},
		&CMSPackage{Price: 700},
	}
	assert.Equal(t, 500.0, priced[0].EffectivePrice())
	assert.Equal(t, 700.0, priced[1].EffectivePrice())
}

func TestCMSPackageFeaturesList(t *testing.T) {
	pkg := CMSPackage{Features: "5-star hotel\n\n  Visa processing  \nReturn flights\n"}
	assert.Equal(t, []string{"5-star hotel", "Visa processing", "Return flights"}, pkg.FeaturesList())

	empty := CMSPackage{}
	assert.Empty(t, empty.FeaturesList())
}
