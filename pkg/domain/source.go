package domain

import "strings"

// SourceKind identifies one of the tender documents a fill is built from.
type SourceKind string

const (
	// SourceTBMT is the invitation to bid (Thông báo mời thầu).
	SourceTBMT SourceKind = "TBMT"
	// SourceBMMT is the bid form with the service scope table (Biểu mẫu mời thầu).
	SourceBMMT SourceKind = "BMMT"
	// SourceChuongIII is chapter III of the bidding documents (evaluation criteria).
	SourceChuongIII SourceKind = "CHUONG_III"
	// SourceChuongV is chapter V of the bidding documents (technical requirements).
	SourceChuongV SourceKind = "CHUONG_V"
	// SourceHSMT is the complete bidding document (Hồ sơ mời thầu).
	SourceHSMT SourceKind = "HSMT"
)

// RequiredSources lists every document a fill request must provide, in the
// order they are reported to clients.
var RequiredSources = []SourceKind{ //nolint: gochecknoglobals
	SourceTBMT,
	SourceBMMT,
	SourceChuongIII,
	SourceChuongV,
	SourceHSMT,
}

// FileName is the canonical upload file name, e.g. "TBMT.pdf".
func (k SourceKind) FileName() string { return string(k) + ".pdf" }

// FormField is the multipart field carrying the document, e.g. "tbmt_pdf".
func (k SourceKind) FormField() string { return strings.ToLower(string(k)) + "_pdf" }

// Description is a human readable label used in API listings and reports.
func (k SourceKind) Description() string {
	switch k {
	case SourceTBMT:
		return "Thông báo mời thầu"
	case SourceBMMT:
		return "Biểu mẫu mời thầu"
	case SourceChuongIII:
		return "Chương III - Tiêu chuẩn đánh giá"
	case SourceChuongV:
		return "Chương V - Yêu cầu kỹ thuật"
	case SourceHSMT:
		return "Hồ sơ mời thầu"
	default:
		return string(k)
	}
}

// SourceKindByFileName returns the kind whose canonical file name matches
// name, ignoring case.
func SourceKindByFileName(name string) (SourceKind, bool) {
	for _, k := range RequiredSources {
		if strings.EqualFold(k.FileName(), name) {
			return k, true
		}
	}

	return "", false
}

// SourceKindByFormField returns the kind whose form field matches name,
// ignoring case.
func SourceKindByFormField(name string) (SourceKind, bool) {
	for _, k := range RequiredSources {
		if strings.EqualFold(k.FormField(), name) {
			return k, true
		}
	}

	return "", false
}
