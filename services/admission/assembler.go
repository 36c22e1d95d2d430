package admission

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tuyensinh/admission-advisor/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	unknownLabel = "Không xác định"
	newsPreviewRunes  = 200
	newsDateLayout    = "02/01/2006"
)

// ContextBuilder renders matched entities as the plain-text context block.
// Each section method writes nothing when given an empty list, so callers can
// append sections unconditionally in display order.
type ContextBuilder struct {
	sb      strings.Builder
	printer *message.Printer
}

// NewContextBuilder creates an empty builder. Money amounts are grouped the
// Vietnamese way (15.000.000).
func NewContextBuilder() *ContextBuilder {
	return &ContextBuilder{printer: message.NewPrinter(language.Vietnamese)}
}

func (c *ContextBuilder) String() string {
	return c.sb.String()
}

func (c *ContextBuilder) line(format string, args ...any) {
	fmt.Fprintf(&c.sb, format, args...)
	c.sb.WriteByte('\n')
}

func (c *ContextBuilder) blank() {
	c.sb.WriteByte('\n')
}

// Failure records that a collection could not be loaded
func (c *ContextBuilder) Failure(err error) {
	c.line("Lỗi khi lấy dữ liệu: %s", err.Error())
}

func (c *ContextBuilder) Universities(list []model.University) {
	if len(list) == 0 {
		return
	}
	c.line("THÔNG TIN TRƯỜNG ĐẠI HỌC:")
	for _, u := range list {
		c.line("- %s (%s)", u.Name, u.ShortName)
		c.line("  Giới thiệu: %s", u.Introduction)
		c.line("  Website chính thức: %s", u.OfficialWebsite)
		c.line("  Website tuyển sinh: %s", u.AdmissionWebsite)
		c.line("  Loại: %s", u.Type)
		if u.Ranking != nil {
			c.line("  Xếp hạng: %d (%s)", *u.Ranking, u.RankingCriteria)
		}
		if u.Locations != "" {
			c.line("  Địa điểm: %s", u.Locations)
		}
	}
	c.blank()
}

// Majors writes the general major section grouped by university in order of
// first appearance.
func (c *ContextBuilder) Majors(list []model.Major) {
	if len(list) == 0 {
		return
	}
	c.line("THÔNG TIN NGÀNH HỌC:")
	for _, g := range groupMajors(list) {
		c.line("🏫 %s - Có %d ngành:", g.university, len(g.majors))
		for _, m := range g.majors {
			c.line("  • %s (Mã: %s)", m.Name, m.Code)
			if m.AdmissionScore != nil && *m.AdmissionScore > 0 {
				c.line("    Điểm chuẩn: %s điểm", formatDecimal(*m.AdmissionScore))
			}
			if m.Description != "" {
				c.line("    Mô tả: %s", m.Description)
			}
		}
		c.blank()
	}
}

// MajorCounts writes the count-intent section: a total per university
// followed by its majors numbered in name order.
func (c *ContextBuilder) MajorCounts(list []model.Major) {
	if len(list) == 0 {
		return
	}
	c.line("THÔNG TIN SỐ LƯỢNG NGÀNH:")
	for _, g := range groupMajors(list) {
		c.line("📊 %s có tổng cộng %d ngành đào tạo:", g.university, len(g.majors))
		sorted := append([]model.Major(nil), g.majors...)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
		for i, m := range sorted {
			c.line("  %d. %s (Mã: %s)", i+1, m.Name, m.Code)
			if m.AdmissionScore != nil && *m.AdmissionScore > 0 {
				c.line("     Điểm chuẩn: %s điểm", formatDecimal(*m.AdmissionScore))
			} else {
				c.line("     Điểm chuẩn: Chưa cập nhật")
			}
		}
		c.blank()
	}
}

func (c *ContextBuilder) Tuition(programs []model.AcademicProgram) {
	if len(programs) == 0 {
		return
	}
	c.line("THÔNG TIN HỌC PHÍ:")
	var order []string
	groups := make(map[string][]model.AcademicProgram)
	for _, p := range programs {
		name := unknownLabel
		if p.University != nil && p.University.Name != "" {
			name = p.University.Name
		}
		if _, ok := groups[name]; !ok {
			order = append(order, name)
		}
		groups[name] = append(groups[name], p)
	}
	for _, name := range order {
		c.line("💰 %s:", name)
		for _, p := range groups[name] {
			c.line("  • %s: %s %s", p.Name, c.money(p.Tuition), p.TuitionUnit)
			if p.Description != "" {
				c.line("    Mô tả: %s", p.Description)
			}
		}
		c.blank()
	}
}

func (c *ContextBuilder) AdmissionMethods(list []model.AdmissionMethod) {
	if len(list) == 0 {
		return
	}
	c.line("THÔNG TIN PHƯƠNG THỨC TUYỂN SINH:")
	for _, m := range list {
		c.line("📝 %s", m.Name)
		if m.Description != "" {
			c.line("  Mô tả: %s", m.Description)
		}
		if m.Year != nil {
			c.line("  Năm áp dụng: %d", *m.Year)
		}
	}
	c.blank()
}

func (c *ContextBuilder) AdmissionCriteria(list []model.AdmissionCriteria) {
	if len(list) == 0 {
		return
	}
	c.line("THÔNG TIN TIÊU CHÍ TUYỂN SINH:")
	for _, cr := range list {
		c.line("📋 %s", cr.Name)
		c.line("  Mô tả: %s", cr.Description)
		if cr.MinimumScore != nil {
			c.line("  Điểm tối thiểu: %s", formatDecimal(*cr.MinimumScore))
		}
		method := unknownLabel
		if cr.AdmissionMethod != nil {
			method = cr.AdmissionMethod.Name
		}
		c.line("  Phương thức: %s", method)
	}
	c.blank()
}

func (c *ContextBuilder) AdmissionScores(list []model.AdmissionScore) {
	if len(list) == 0 {
		return
	}
	c.line("THÔNG TIN ĐIỂM CHUẨN:")
	for _, s := range list {
		var uni, major string
		if s.Major != nil {
			major = s.Major.Name
			uni = universityName(*s.Major)
		}
		c.line("- %s - %s: %s điểm (Năm %d)", uni, major, formatDecimal(s.Score), s.Year)
	}
	c.blank()
}

func (c *ContextBuilder) AdmissionNews(list []model.AdmissionNew) {
	if len(list) == 0 {
		return
	}
	c.line("TIN TỨC TUYỂN SINH:")
	for _, n := range list {
		c.line("- %s", n.Title)
		c.line("  Nội dung: %s...", truncateRunes(n.Content, newsPreviewRunes))
		c.line("  Ngày xuất bản: %s", n.PublishDate.Format(newsDateLayout))
		if n.Year != nil {
			c.line("  Năm: %d", *n.Year)
		}
	}
	c.blank()
}

func (c *ContextBuilder) Scholarships(list []model.Scholarship) {
	if len(list) == 0 {
		return
	}
	c.line("THÔNG TIN HỌC BỔNG:")
	for _, s := range list {
		c.line("- %s", s.Name)
		c.line("  Mô tả: %s", s.Description)
		if s.Value != nil {
			c.line("  Giá trị: %s %s", c.money(s.Value), s.ValueType)
		} else {
			c.line("  Loại giá trị: %s", s.ValueType)
		}
		c.line("  Tiêu chí: %s", s.Criteria)
		if s.Year != nil {
			c.line("  Năm: %d", *s.Year)
		}
	}
	c.blank()
}

func (c *ContextBuilder) money(v *float64) string {
	if v == nil {
		return ""
	}
	return c.printer.Sprintf("%d", int64(math.Round(*v)))
}

type majorGroup struct {
	university string
	majors     []model.Major
}

func groupMajors(list []model.Major) []majorGroup {
	var groups []majorGroup
	index := make(map[string]int)
	for _, m := range list {
		name := unknownLabel
		if m.University != nil && m.University.Name != "" {
			name = m.University.Name
		}
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, majorGroup{university: name})
		}
		groups[i].majors = append(groups[i].majors, m)
	}
	return groups
}

func formatDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
