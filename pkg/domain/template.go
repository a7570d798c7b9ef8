package domain

// Placeholder is the name of a template variable without its braces.
type Placeholder string

const (
	PlaceholderTenderName     Placeholder = "ten_goi_thau"
	PlaceholderSupplyScope    Placeholder = "pham_vi_cung_cap"
	PlaceholderLegalBasis     Placeholder = "can_cu_phap_ly"
	PlaceholderWorkPurpose    Placeholder = "muc_dich_cong_viec"
	PlaceholderProcedureSteps Placeholder = "cac_buoc_thuc_hien"
)

// Token returns the placeholder as it appears in a template, e.g. "{{ten_goi_thau}}".
func (p Placeholder) Token() string { return "{{" + string(p) + "}}" }

// NotFoundMarker is written in place of a value the model could not locate.
const NotFoundMarker = "[KHÔNG TÌM THẤY]"

// PlaceholderInfo describes how a placeholder is filled.
type PlaceholderInfo struct {
	Placeholder Placeholder `json:"placeholder"`
	Source      SourceKind  `json:"source"`
	Description string      `json:"description"`
}

// TemplateInfo describes a fillable template.
type TemplateInfo struct {
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Placeholders    []PlaceholderInfo `json:"placeholders"`
	RequiredSources []SourceKind      `json:"requiredSources"`
}

// MainTemplate is the only template currently served. The remaining
// sections of a bid dossier are planned templates.
const (
	MainTemplate         = "02_MUC_DO_HIEU_BIET"
	PlannedTemplateCount = 14
)

// MainTemplateInfo returns the description of MainTemplate with its
// placeholders listed in application order.
func MainTemplateInfo() TemplateInfo {
	return TemplateInfo{
		Name:        MainTemplate,
		Description: "Mức độ hiểu biết về gói thầu",
		Placeholders: []PlaceholderInfo{
			{PlaceholderTenderName, SourceTBMT, "Tên gói thầu"},
			{PlaceholderSupplyScope, SourceBMMT, "Phạm vi cung cấp dịch vụ"},
			{PlaceholderLegalBasis, SourceChuongV, "Căn cứ pháp lý"},
			{PlaceholderWorkPurpose, SourceChuongV, "Mục đích công việc"},
			{PlaceholderProcedureSteps, SourceChuongV, "Các bước thực hiện"},
		},
		RequiredSources: RequiredSources,
	}
}

// TemplateFileName returns the file holding the template called name.
func TemplateFileName(name string) string { return name + "_template.docx" }

// OutputFileName returns the file name of a filled template.
func OutputFileName(name string) string { return name + "_output.docx" }
