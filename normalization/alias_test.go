package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAliasTable_Canonicalize(t *testing.T) {
	table := AliasTable{"(주)토페스": "토페스"}

	assert.Equal(t, "토페스", table.Canonicalize("(주)토페스"))
	assert.Equal(t, "토페스", table.Canonicalize("  (주)토페스  "), "lookup should trim whitespace")
	assert.Equal(t, "미등록업체", table.Canonicalize("미등록업체"), "unmapped values pass through")
}

func TestCanonicalValue_VendorVariants(t *testing.T) {
	// Both corporate-form spellings must collapse to the same canonical
	// vendor so the comparison engine does not report false mismatches.
	a := CanonicalValue(FieldVendor, "토페스")
	b := CanonicalValue(FieldVendor, "(주)토페스")
	c := CanonicalValue(FieldVendor, "토페스(주)")

	assert.Equal(t, a, b)
	assert.Equal(t, a, c)
}

func TestCanonicalValue_StatusAndControlType(t *testing.T) {
	assert.Equal(t, StatusOperating, CanonicalValue(FieldOperatingStatus, "운영중"))
	assert.Equal(t, StatusDecommissioned, CanonicalValue(FieldOperatingStatus, "철거됨"))
	assert.Equal(t, ControlSpeed, CanonicalValue(FieldControlType, "과속"))
	assert.Equal(t, ControlSection, CanonicalValue(FieldControlType, "구간"))
}

func TestCanonicalValue_FieldWithoutAliasTable(t *testing.T) {
	// Free-text fields are compared on the trimmed raw value.
	assert.Equal(t, "서울 강남대로 123", CanonicalValue(FieldInstallLocation, " 서울 강남대로 123 "))
}

func TestCorrectRegionName(t *testing.T) {
	assert.Equal(t, "서울특별시", CorrectRegionName("서울"))
	assert.Equal(t, "경상남도", CorrectRegionName("경남"))
	assert.Equal(t, "서울특별시", CorrectRegionName("서울특별시"), "official names pass through")
	assert.Equal(t, "독도", CorrectRegionName("독도"), "unknown regions pass through")
}
