package normalization

import "strings"

// Canonical operating-status values.
const (
	StatusOperating      = "운영"
	StatusSuspended      = "중지"
	StatusDecommissioned = "철거"
)

// Canonical control-type values.
const (
	ControlSpeed   = "과속단속"
	ControlMulti   = "다기능"
	ControlSection = "구간단속"
)

// AliasTable maps raw field values onto one canonical value. Values not
// present in the table pass through unchanged.
type AliasTable map[string]string

// Canonicalize returns the canonical value for raw, trimming surrounding
// whitespace before the lookup.
func (t AliasTable) Canonicalize(raw string) string {
	v := strings.TrimSpace(raw)
	if canonical, ok := t[v]; ok {
		return canonical
	}
	return v
}

// vendorAliases collapses spelling variants of install-vendor names across
// the two inventory systems. TCS carries the bare company name, TEMS the
// registered corporate form.
var vendorAliases = AliasTable{
	"(주)토페스":     "토페스",
	"토페스(주)":     "토페스",
	"토페스㈜":       "토페스",
	"(주)아프로시스": "아프로시스",
	"아프로시스(주)": "아프로시스",
	"(주)렉스젠":     "렉스젠",
	"렉스젠(주)":     "렉스젠",
	"(주)건아정보":   "건아정보기술",
	"건아정보기술(주)": "건아정보기술",
	"하이테콤시스템": "하이테콤",
	"(주)하이테콤":   "하이테콤",
}

var statusAliases = AliasTable{
	"운영중":   StatusOperating,
	"사용":     StatusOperating,
	"정상":     StatusOperating,
	"사용중지": StatusSuspended,
	"일시중지": StatusSuspended,
	"철거됨":   StatusDecommissioned,
	"폐기":     StatusDecommissioned,
	"제거":     StatusDecommissioned,
}

var controlTypeAliases = AliasTable{
	"과속":       ControlSpeed,
	"속도단속":   ControlSpeed,
	"고정식과속": ControlSpeed,
	"다기능형":   ControlMulti,
	"복합단속":   ControlMulti,
	"구간":       ControlSection,
	"구간과속":   ControlSection,
}

// fieldAliases binds canonical inventory fields to their alias tables.
// Fields without an entry are compared on the raw trimmed value.
var fieldAliases = map[string]AliasTable{
	FieldVendor:          vendorAliases,
	FieldOperatingStatus: statusAliases,
	FieldControlType:     controlTypeAliases,
}

// CanonicalValue applies the per-field alias table to a raw value.
func CanonicalValue(field, raw string) string {
	if table, ok := fieldAliases[field]; ok {
		return table.Canonicalize(raw)
	}
	return strings.TrimSpace(raw)
}

// regionAliases corrects abbreviated province names to the full official
// names the camera registry API expects.
var regionAliases = AliasTable{
	"서울":   "서울특별시",
	"부산":   "부산광역시",
	"울산":   "울산광역시",
	"대전":   "대전광역시",
	"대구":   "대구광역시",
	"광주":   "광주광역시",
	"인천":   "인천광역시",
	"세종":   "세종특별자치시",
	"경기":   "경기도",
	"강원":   "강원도",
	"충북":   "충청북도",
	"충남":   "충청남도",
	"전북":   "전라북도",
	"전남":   "전라남도",
	"경북":   "경상북도",
	"경남":   "경상남도",
	"제주":   "제주특별자치도",
}

// CorrectRegionName expands an abbreviated province name to its full
// official form. Already-official names pass through unchanged.
func CorrectRegionName(name string) string {
	return regionAliases.Canonicalize(name)
}
