package chat

import (
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	domain "github.com/BruksfildServices01/medassist/internal/domain/appointment"
)

// ExtractedSlots holds the fields found in one message. An empty string
// means the field was not found.
type ExtractedSlots struct {
	PatientID    string
	PatientName  string
	PatientPhone string
	Department   string
	DoctorName   string
	Date         string
	Time         string
	Symptoms     string
}

// Slot names. The booking slots are listed in the order they are reported
// as missing.
const (
	SlotPatientID    = "patient_id"
	SlotPatientName  = "patient_name"
	SlotPatientPhone = "patient_phone"
	SlotDepartment   = "department"
	SlotDoctorName   = "doctor_name"
	SlotDate         = "date"
	SlotTime         = "time"
)

var slotLabels = map[string]string{
	SlotPatientName:  "姓名",
	SlotPatientPhone: "電話",
	SlotDepartment:   "科別",
	SlotDoctorName:   "醫師",
	SlotDate:         "日期",
	SlotTime:         "時間",
}

// Missing lists the booking fields still absent.
func (s ExtractedSlots) Missing() []string {
	required := []struct {
		name  string
		value string
	}{
		{SlotPatientName, s.PatientName},
		{SlotPatientPhone, s.PatientPhone},
		{SlotDepartment, s.Department},
		{SlotDoctorName, s.DoctorName},
		{SlotDate, s.Date},
		{SlotTime, s.Time},
	}

	missing := make([]string, 0, len(required))
	for _, f := range required {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

func (s ExtractedSlots) Fields() domain.Fields {
	return domain.Fields{
		PatientID:    s.PatientID,
		PatientName:  s.PatientName,
		PatientPhone: s.PatientPhone,
		Department:   s.Department,
		DoctorName:   s.DoctorName,
		Date:         s.Date,
		Time:         s.Time,
		Symptoms:     s.Symptoms,
	}
}

// Patch turns the present slots into a partial update.
func (s ExtractedSlots) Patch() domain.Patch {
	opt := func(v string) *string {
		if v == "" {
			return nil
		}
		return &v
	}
	return domain.Patch{
		PatientID:    opt(s.PatientID),
		PatientName:  opt(s.PatientName),
		PatientPhone: opt(s.PatientPhone),
		Department:   opt(s.Department),
		DoctorName:   opt(s.DoctorName),
		Date:         opt(s.Date),
		Time:         opt(s.Time),
		Symptoms:     opt(s.Symptoms),
	}
}

// ===============================
// Extractor
// ===============================

type fieldRule func(text string) (string, bool)

type Extractor struct {
	now func() time.Time
}

func NewExtractor(now func() time.Time) *Extractor {
	if now == nil {
		now = time.Now
	}
	return &Extractor{now: now}
}

// Extract runs every field's rule list independently. Nothing is guessed:
// a field without a literal match stays empty.
func (e *Extractor) Extract(text string) ExtractedSlots {
	text = strings.TrimSpace(text)
	if text == "" {
		return ExtractedSlots{}
	}

	var s ExtractedSlots
	s.PatientID, _ = firstMatch(text, patientIDRules)
	s.PatientName, _ = firstMatch(text, patientNameRules)
	s.PatientPhone, _ = firstMatch(text, patientPhoneRules)
	s.Department, _ = firstMatch(text, departmentRules)
	s.DoctorName, _ = firstMatch(text, doctorNameRules)
	s.Date, _ = extractDate(text, e.now())
	s.Time, _ = extractTime(text)
	s.Symptoms, _ = firstMatch(text, symptomRules)
	return s
}

func firstMatch(text string, rules []fieldRule) (string, bool) {
	for _, rule := range rules {
		if v, ok := rule(text); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// ===============================
// Patient ID
// ===============================

var (
	explicitPatientIDRe = regexp.MustCompile(`(?i)(?:病歷號碼|病歷編號|病歷號|record\s*(?:number|no\.?))\s*(?:[:：]|是|為)?\s*([A-Za-z0-9][A-Za-z0-9-]*)`)
	barePatientIDRe     = regexp.MustCompile(`(?:^|[^A-Za-z0-9])([A-Za-z]\d{4,})(?:$|[^0-9])`)
)

var patientIDRules = []fieldRule{
	submatchRule(explicitPatientIDRe),
	submatchRule(barePatientIDRe),
}

// ===============================
// Patient name
// ===============================

// commonSurnames leaves out surnames that mostly start ordinary words in
// booking messages; doctorSurnames adds them back because an honorific
// follows.
const (
	commonSurnames = "陳林黃張李王吳劉蔡楊許鄭郭洪邱廖賴徐蘇葉莊呂江蕭羅朱鍾游詹胡沈趙盧梁顏柯孫魏翁戴范宋彭余杜潘姚袁董"
	doctorSurnames = commonSurnames + "高方周何謝曾簡施石"
)

var (
	explicitNameRe = regexp.MustCompile(`(?:姓名|病患|患者|病人)\s*(?:[:：]|是|為)?\s*([\p{Han}A-Za-z·]+)`)
	latinNameRe    = regexp.MustCompile(`(?i)\b(?:name|patient)\s*[:：]\s*([\p{Han}A-Za-z·]+)`)
	hanRunRe       = regexp.MustCompile(`[` + commonSurnames + `]\p{Han}*`)
)

var doctorHonorifics = []string{"醫師", "醫生", "大夫"}

// nameStops end a captured name; they are labels or verbs that commonly
// follow a name without punctuation.
var nameStops = []string{
	"電話", "手機", "醫師", "醫生", "大夫", "日期", "時間", "症狀", "病歷",
	"今天", "明天", "後天", "預約", "掛號", "看診", "要", "想", "的", "在", "是",
}

var patientNameRules = []fieldRule{
	explicitName,
	bareSurnameName,
}

func explicitName(text string) (string, bool) {
	for _, re := range []*regexp.Regexp{explicitNameRe, latinNameRe} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			// 病人預約 is a label followed by a verb, not a name.
			if startsWithStop(m[1]) {
				continue
			}
			if name := truncateRunes(cutAtStops(m[1]), 10); name != "" {
				return name, true
			}
		}
	}
	return "", false
}

func bareSurnameName(text string) (string, bool) {
	for _, loc := range hanRunRe.FindAllStringIndex(text, -1) {
		run := text[loc[0]:loc[1]]

		if precededByDoctorLabel(text[:loc[0]]) {
			continue
		}
		if honorificWithin(run, 4) {
			continue
		}

		name := truncateRunes(cutAtStops(run), 4)
		if utf8.RuneCountInString(name) >= 2 {
			return name, true
		}
	}
	return "", false
}

func precededByDoctorLabel(prefix string) bool {
	prefix = strings.TrimRight(prefix, " :：")
	lower := strings.ToLower(prefix)
	for _, label := range []string{"醫師", "醫生", "大夫", "doctor", "dr."} {
		if strings.HasSuffix(lower, label) {
			return true
		}
	}
	return false
}

// honorificWithin reports whether a doctor honorific starts within the first
// n runes of run, following the surname.
func honorificWithin(run string, n int) bool {
	runes := []rune(run)
	for i := 1; i <= n && i < len(runes); i++ {
		rest := string(runes[i:])
		for _, h := range doctorHonorifics {
			if strings.HasPrefix(rest, h) {
				return true
			}
		}
	}
	return false
}

// ===============================
// Phone
// ===============================

var (
	explicitPhoneRe = regexp.MustCompile(`(?i)(?:聯絡電話|電話號碼|手機號碼|電話|手機|phone|tel)\s*(?:[:：]|是|為)?\s*(\+?\d{2,4}[- ]?\d{3,4}[- ]?\d{3,4}|\d{8,})`)
	barePhoneRe     = regexp.MustCompile(`(?:^|[^\dA-Za-z])(\d{4}[- ]?\d{3}[- ]?\d{3}|\d{8,})(?:$|\D)`)
)

var patientPhoneRules = []fieldRule{
	phoneRule(explicitPhoneRe),
	phoneRule(barePhoneRe),
}

func phoneRule(re *regexp.Regexp) fieldRule {
	return func(text string) (string, bool) {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if digits := digitsOnly(m[1]); len(digits) >= 8 {
				return digits, true
			}
		}
		return "", false
	}
}

// ===============================
// Department
// ===============================

// departments lists longer names before the names they contain.
var departments = []string{
	"神經內科", "神經外科", "心臟內科", "心臟外科", "胸腔內科", "胸腔外科",
	"腸胃內科", "肝膽腸胃科", "腎臟內科", "新陳代謝科", "內分泌科", "感染科",
	"風濕免疫科", "血液腫瘤科", "整形外科", "一般外科", "家庭醫學科", "家醫科",
	"耳鼻喉科", "小兒科", "婦產科", "泌尿科", "皮膚科", "復健科", "身心科",
	"精神科", "眼科", "牙科", "骨科", "中醫科", "急診", "兒科", "婦科",
	"內科", "外科",
}

var departmentRules = []fieldRule{
	func(text string) (string, bool) {
		for _, d := range departments {
			if strings.Contains(text, d) {
				return d, true
			}
		}
		return "", false
	},
}

// ===============================
// Doctor
// ===============================

var (
	explicitDoctorRe  = regexp.MustCompile(`(?i)(?:醫師|醫生|大夫|doctor|dr\.?)\s*[:：]\s*([\p{Han}A-Za-z·]+)`)
	honorificDoctorRe = regexp.MustCompile(`([` + doctorSurnames + `]\p{Han}{0,3}?)(?:醫師|醫生|大夫)`)
)

var doctorNameRules = []fieldRule{
	func(text string) (string, bool) {
		m := explicitDoctorRe.FindStringSubmatch(text)
		if m == nil {
			return "", false
		}
		name := truncateRunes(cutAtStops(m[1]), 10)
		return name, name != ""
	},
	submatchRule(honorificDoctorRe),
}

// ===============================
// Symptoms
// ===============================

var symptomKeywords = []string{
	"症狀", "不舒服", "痛", "發燒", "咳嗽", "流鼻水", "頭暈", "噁心", "嘔吐",
	"腹瀉", "過敏", "感冒", "喉嚨", "癢", "疲倦", "失眠",
}

var symptomTextRe = regexp.MustCompile(`(?:症狀|不舒服)\s*(?:[:：]|是|為)?\s*([^，,。；;\n]+)`)

var symptomRules = []fieldRule{
	func(text string) (string, bool) {
		if !containsAny(text, symptomKeywords) {
			return "", false
		}
		m := symptomTextRe.FindStringSubmatch(text)
		if m == nil {
			return "", false
		}
		s := strings.TrimSpace(m[1])
		return s, s != ""
	},
}

// ===============================
// Helpers
// ===============================

func submatchRule(re *regexp.Regexp) fieldRule {
	return func(text string) (string, bool) {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return "", false
		}
		v := strings.TrimSpace(m[1])
		return v, v != ""
	}
}

func cutAtStops(s string) string {
	cut := len(s)
	for _, stop := range nameStops {
		if i := strings.Index(s, stop); i > 0 && i < cut {
			cut = i
		}
	}
	for _, d := range departments {
		if i := strings.Index(s, d); i > 0 && i < cut {
			cut = i
		}
	}
	return strings.TrimSpace(s[:cut])
}

func startsWithStop(s string) bool {
	for _, stop := range nameStops {
		if strings.HasPrefix(s, stop) {
			return true
		}
	}
	return false
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		return string(runes[:n])
	}
	return s
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
