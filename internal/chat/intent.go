package chat

import (
	"strings"
	"unicode"
)

type Intent int

const (
	IntentGeneral Intent = iota
	IntentCreate
	IntentUpdate
	IntentQuery
)

func (i Intent) String() string {
	switch i {
	case IntentCreate:
		return "create"
	case IntentUpdate:
		return "update"
	case IntentQuery:
		return "query"
	default:
		return "general"
	}
}

type intentRule struct {
	intent  Intent
	markers []string
}

// intentRules is evaluated top to bottom; the first rule with a matching
// marker decides. Modification outranks lookup, which outranks creation.
var intentRules = []intentRule{
	{
		intent: IntentUpdate,
		markers: []string{
			"修改", "更改", "改期", "改約", "改成", "改到", "改為", "變更", "調整", "更換",
			"change", "update", "modify", "reschedule",
		},
	},
	{
		intent: IntentQuery,
		markers: []string{
			"查詢", "查看", "查一下", "幫我查", "我的預約", "預約紀錄", "預約記錄",
			"有哪些", "列出", "顯示", "找一下", "幫我找",
			"find", "show", "list", "my appointments", "lookup", "look up",
		},
	},
	{
		intent: IntentCreate,
		markers: []string{
			"預約", "掛號", "看診", "看病", "約診",
			"book", "schedule", "make an appointment",
		},
	},
}

// Classify labels text with exactly one intent. Text that matches no rule is
// treated as a query; only blank text is general.
func Classify(text string) Intent {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return IntentGeneral
	}

	for _, rule := range intentRules {
		for _, marker := range rule.markers {
			if containsMarker(normalized, marker) {
				return rule.intent
			}
		}
	}
	return IntentQuery
}

// containsMarker matches Latin markers on word boundaries and Han markers as
// plain substrings.
func containsMarker(text, marker string) bool {
	if !isASCII(marker) {
		return strings.Contains(text, marker)
	}

	from := 0
	for {
		i := strings.Index(text[from:], marker)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(marker)
		if !isWordByte(text, start-1) && !isWordByte(text, end) {
			return true
		}
		from = start + 1
	}
}

func isWordByte(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return false
	}
	c := rune(s[i])
	return c <= unicode.MaxASCII && (unicode.IsLetter(c) || unicode.IsDigit(c))
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > unicode.MaxASCII {
			return false
		}
	}
	return true
}
