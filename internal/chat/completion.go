package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/medassist/internal/domain/appointment"
	"github.com/BruksfildServices01/medassist/internal/httperr"
	"github.com/BruksfildServices01/medassist/internal/models"
)

const maxListed = 5

// AppointmentStore is the owner-scoped store the manager acts on.
type AppointmentStore interface {
	Create(ctx context.Context, owner string, f domain.Fields) (*models.Appointment, error)
	Update(ctx context.Context, owner string, id uint, p domain.Patch) (*models.Appointment, error)
	List(ctx context.Context, owner string, keyword string) ([]models.Appointment, error)
}

type DecisionKind int

const (
	// DecisionForward sends Context and the user message to the backend.
	DecisionForward DecisionKind = iota
	// DecisionDirect returns Reply as is.
	DecisionDirect
)

type Decision struct {
	Kind DecisionKind

	// Direct
	Success bool
	Reply   string

	// Forward
	Context string

	// Missing lists absent booking slots for an incomplete create.
	Missing     []string
	Appointment *models.Appointment
}

func direct(success bool, reply string, ap *models.Appointment) Decision {
	return Decision{Kind: DecisionDirect, Success: success, Reply: reply, Appointment: ap}
}

func forward(followUp string) Decision {
	return Decision{Kind: DecisionForward, Context: followUp}
}

// ===============================
// Manager
// ===============================

type Manager struct {
	store   AppointmentStore
	now     func() time.Time
	timeout time.Duration
}

func NewManager(store AppointmentStore, now func() time.Time, storeTimeout time.Duration) *Manager {
	if now == nil {
		now = time.Now
	}
	return &Manager{store: store, now: now, timeout: storeTimeout}
}

func (m *Manager) Decide(
	ctx context.Context,
	owner string,
	intent Intent,
	slots ExtractedSlots,
	message string,
) Decision {
	switch intent {
	case IntentCreate:
		return m.decideCreate(ctx, owner, slots)
	case IntentUpdate:
		return m.decideUpdate(ctx, owner, slots)
	case IntentQuery:
		return m.decideQuery(ctx, owner, message)
	default:
		return forward("")
	}
}

func (m *Manager) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, m.timeout)
}

// --------------------------------------------------
// Create
// --------------------------------------------------

func (m *Manager) decideCreate(ctx context.Context, owner string, slots ExtractedSlots) Decision {
	if missing := slots.Missing(); len(missing) > 0 {
		labels := make([]string, len(missing))
		for i, name := range missing {
			labels[i] = slotLabels[name]
		}

		var b strings.Builder
		b.WriteString("使用者想要預約掛號，但還缺少以下資料：")
		b.WriteString(strings.Join(labels, "、"))
		b.WriteString("。請用親切的語氣請使用者補齊這些資料，並提醒一次提供完整資訊即可完成預約。")
		if known := describeSlots(slots); known != "" {
			b.WriteString("\n已取得的資料：")
			b.WriteString(known)
		}

		d := forward(b.String())
		d.Missing = missing
		return d
	}

	if err := domain.ValidateMoment(slots.Date, slots.Time, m.now()); err != nil {
		return direct(false, "預約失敗："+httperr.UserMessage(err), nil)
	}

	sctx, cancel := m.storeCtx(ctx)
	defer cancel()

	ap, err := m.store.Create(sctx, owner, slots.Fields())
	if err != nil {
		return direct(false, "預約失敗："+httperr.UserMessage(err), nil)
	}

	return direct(true, "預約成功！\n"+formatAppointment(*ap), ap)
}

// --------------------------------------------------
// Update
// --------------------------------------------------

func (m *Manager) decideUpdate(ctx context.Context, owner string, slots ExtractedSlots) Decision {
	sctx, cancel := m.storeCtx(ctx)
	defer cancel()

	apps, err := m.store.List(sctx, owner, "")
	if err != nil {
		return forward("查詢使用者的預約時發生錯誤：" + httperr.UserMessage(err) + "。請告知使用者稍後再試。")
	}
	if len(apps) == 0 {
		return forward("使用者目前沒有任何預約，因此沒有可以修改的預約。請告知使用者並詢問是否要新增預約。")
	}

	pending := make([]models.Appointment, 0, len(apps))
	for _, ap := range apps {
		if ap.Status == string(domain.StatusPending) {
			pending = append(pending, ap)
		}
	}
	if len(pending) == 0 {
		return forward("使用者的預約都已取消，沒有可以修改的預約。請告知使用者並詢問是否要新增預約。")
	}

	target, key, candidates := resolveTarget(pending, slots)
	if target == nil {
		return forward(disambiguation(candidates))
	}

	patch := slots.Patch()
	switch key {
	case SlotPatientName:
		patch.PatientName = nil
	case SlotPatientPhone:
		patch.PatientPhone = nil
	case SlotPatientID:
		patch.PatientID = nil
	}
	if patch.IsEmpty() {
		return forward(fmt.Sprintf(
			"已找到使用者要修改的預約（%s），但沒有辨識到要修改的內容。請詢問使用者要修改哪些資料（例如日期、時間、醫師或科別）。",
			formatCandidate(*target),
		))
	}

	updated, err := m.store.Update(sctx, owner, target.ID, patch)
	if err != nil {
		return forward(fmt.Sprintf(
			"嘗試修改預約（%s）失敗：%s。請告知使用者失敗原因。",
			formatCandidate(*target), httperr.UserMessage(err),
		))
	}

	return forward("已成功修改預約，更新後的資料如下：\n" + formatAppointment(*updated) + "\n請向使用者確認修改結果。")
}

// resolveTarget matches by patient id, then name, then phone. A key that
// matches several appointments is ambiguous and yields those matches as the
// candidates; when no key matches, every pending appointment is a candidate.
func resolveTarget(apps []models.Appointment, slots ExtractedSlots) (*models.Appointment, string, []models.Appointment) {
	keys := []struct {
		name  string
		value string
		field func(models.Appointment) string
	}{
		{SlotPatientID, slots.PatientID, func(a models.Appointment) string { return a.PatientID }},
		{SlotPatientName, slots.PatientName, func(a models.Appointment) string { return a.PatientName }},
		{SlotPatientPhone, slots.PatientPhone, func(a models.Appointment) string { return a.PatientPhone }},
	}

	for _, k := range keys {
		if k.value == "" {
			continue
		}
		var matches []models.Appointment
		for _, ap := range apps {
			if strings.EqualFold(k.field(ap), k.value) {
				matches = append(matches, ap)
			}
		}
		switch len(matches) {
		case 0:
			continue
		case 1:
			return &matches[0], k.name, nil
		default:
			return nil, k.name, matches
		}
	}
	return nil, "", apps
}

func disambiguation(candidates []models.Appointment) string {
	var b strings.Builder
	b.WriteString("無法確定使用者要修改哪一筆預約。以下是可能的預約：\n")
	for i, ap := range candidates {
		if i == maxListed {
			break
		}
		b.WriteString("- ")
		b.WriteString(formatCandidate(ap))
		b.WriteString("\n")
	}
	b.WriteString("請詢問使用者要修改哪一筆（可提供編號、病歷號碼或姓名），以及要修改的內容。")
	return b.String()
}

// --------------------------------------------------
// Query
// --------------------------------------------------

// lookupKeyword prefers a record-like token and falls back to a long digit
// run read as a phone number.
func lookupKeyword(message string) string {
	if m := barePatientIDRe.FindStringSubmatch(message); m != nil {
		return m[1]
	}
	if m := barePhoneRe.FindStringSubmatch(message); m != nil {
		return digitsOnly(m[1])
	}
	return ""
}

func (m *Manager) decideQuery(ctx context.Context, owner, message string) Decision {
	keyword := lookupKeyword(message)

	sctx, cancel := m.storeCtx(ctx)
	defer cancel()

	apps, err := m.store.List(sctx, owner, keyword)
	if err != nil {
		return forward("查詢預約時發生錯誤：" + httperr.UserMessage(err) + "。請告知使用者稍後再試。")
	}

	if len(apps) == 0 {
		if keyword != "" {
			return forward(fmt.Sprintf("查詢條件「%s」沒有找到使用者的任何預約紀錄。", keyword))
		}
		return forward("使用者目前沒有任何預約紀錄。")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "使用者共有 %d 筆符合的預約紀錄", len(apps))
	if len(apps) > maxListed {
		fmt.Fprintf(&b, "，以下列出最近的 %d 筆", maxListed)
	}
	b.WriteString("：\n")
	for i, ap := range apps {
		if i == maxListed {
			break
		}
		b.WriteString(formatAppointment(ap))
		b.WriteString("\n")
	}
	b.WriteString("請根據這些資料回答使用者的問題。")
	return forward(b.String())
}

// ===============================
// Formatting
// ===============================

func formatAppointment(ap models.Appointment) string {
	patientID := ap.PatientID
	if patientID == "" {
		patientID = "未提供"
	}
	symptoms := ap.Symptoms
	if symptoms == "" {
		symptoms = "未提供"
	}
	return fmt.Sprintf(
		"預約編號：%d｜病歷號碼：%s｜姓名：%s｜電話：%s｜科別：%s｜醫師：%s｜日期：%s｜時間：%s｜症狀：%s｜狀態：%s",
		ap.ID, patientID, ap.PatientName, ap.PatientPhone, ap.Department,
		ap.DoctorName, ap.AppointmentDate, ap.AppointmentTime, symptoms, statusLabel(ap.Status),
	)
}

func formatCandidate(ap models.Appointment) string {
	return fmt.Sprintf("預約編號 %d，%s，%s %s", ap.ID, ap.PatientName, ap.AppointmentDate, ap.AppointmentTime)
}

func statusLabel(status string) string {
	switch domain.Status(status) {
	case domain.StatusCancelled:
		return "已取消"
	default:
		return "待看診"
	}
}

func describeSlots(s ExtractedSlots) string {
	parts := make([]string, 0, 8)
	add := func(label, v string) {
		if v != "" {
			parts = append(parts, label+"："+v)
		}
	}
	add("病歷號碼", s.PatientID)
	add("姓名", s.PatientName)
	add("電話", s.PatientPhone)
	add("科別", s.Department)
	add("醫師", s.DoctorName)
	add("日期", s.Date)
	add("時間", s.Time)
	add("症狀", s.Symptoms)
	return strings.Join(parts, "，")
}
