package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		text string
		want Intent
	}{
		{"我要預約看內科", IntentCreate},
		{"我想掛號", IntentCreate},
		{"Please book a doctor for me", IntentCreate},
		{"查詢我的預約", IntentQuery},
		{"show my appointments", IntentQuery},
		{"病歷號 A12345 的資料", IntentQuery},
		{"請問感冒要注意什麼", IntentQuery},
		{"我要修改預約時間", IntentUpdate},
		{"I want to reschedule", IntentUpdate},
		{"   ", IntentGeneral},
		{"", IntentGeneral},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.text), tc.text)
	}
}

func TestModificationMarkerAlwaysWins(t *testing.T) {
	messages := []string{
		"幫我查詢並修改預約",
		"預約改到下週",
		"我要預約，然後變更醫師",
		"show my appointments and update the time",
		"CHANGE my booking",
	}

	for _, msg := range messages {
		assert.Equal(t, IntentUpdate, Classify(msg), msg)
	}
}

func TestLatinMarkersNeedWordBoundaries(t *testing.T) {
	assert.Equal(t, IntentQuery, Classify("facebook"))
	assert.Equal(t, IntentQuery, Classify("my rechanged plan"))
	assert.Equal(t, IntentCreate, Classify("book"))
}

func TestIntentString(t *testing.T) {
	assert.Equal(t, "create", IntentCreate.String())
	assert.Equal(t, "update", IntentUpdate.String())
	assert.Equal(t, "query", IntentQuery.String())
	assert.Equal(t, "general", IntentGeneral.String())
}
