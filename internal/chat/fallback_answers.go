package chat

import "strings"

type fallbackAnswer struct {
	keywords []string
	answer   string
}

// fallbackAnswers cover common ailments when the backend is rate limited.
var fallbackAnswers = []fallbackAnswer{
	{
		keywords: []string{"感冒"},
		answer: "【感冒照護建議】\n" +
			"1. 多休息、多喝溫開水，保持室內空氣流通。\n" +
			"2. 可依症狀使用退燒或止咳藥物，請依照藥師或醫師指示服用。\n" +
			"3. 若發燒超過 38.5°C 持續兩天以上、呼吸困難或症狀持續超過一週，請盡快就醫（建議掛家醫科或內科）。\n" +
			"目前 AI 服務繁忙，以上為一般衛教資訊，不能取代醫師診斷。",
	},
	{
		keywords: []string{"頭痛"},
		answer: "【頭痛照護建議】\n" +
			"1. 先在安靜、光線柔和的環境休息，並補充水分。\n" +
			"2. 規律作息、避免熬夜與長時間使用 3C 產品。\n" +
			"3. 若頭痛突然劇烈、伴隨嘔吐、視力模糊、肢體無力或意識改變，請立即就醫（建議掛神經內科或急診）。\n" +
			"目前 AI 服務繁忙，以上為一般衛教資訊，不能取代醫師診斷。",
	},
	{
		keywords: []string{"胃痛", "肚子痛"},
		answer: "【腹痛照護建議】\n" +
			"1. 暫時以清淡飲食為主，少量多餐，避免辛辣、油膩、咖啡與酒精。\n" +
			"2. 注意疼痛位置與持續時間，並觀察是否有發燒、腹瀉或嘔吐。\n" +
			"3. 若疼痛劇烈、持續加重、出現黑便或吐血，請立即就醫（建議掛腸胃內科或急診）。\n" +
			"目前 AI 服務繁忙，以上為一般衛教資訊，不能取代醫師診斷。",
	},
	{
		keywords: []string{"高血壓"},
		answer: "【高血壓照護建議】\n" +
			"1. 每天固定時間量血壓並記錄，理想值約在 130/80 mmHg 以下。\n" +
			"2. 減少鹽分攝取、規律運動、控制體重並戒菸限酒。\n" +
			"3. 請依醫師指示按時服藥，不可自行停藥；若血壓超過 180/120 mmHg 或伴隨胸痛、頭暈，請立即就醫（建議掛心臟內科）。\n" +
			"目前 AI 服務繁忙，以上為一般衛教資訊，不能取代醫師診斷。",
	},
}

// FallbackAnswer returns the static answer for the first ailment mentioned
// in message.
func FallbackAnswer(message string) (string, bool) {
	for _, fa := range fallbackAnswers {
		for _, kw := range fa.keywords {
			if strings.Contains(message, kw) {
				return fa.answer, true
			}
		}
	}
	return "", false
}
