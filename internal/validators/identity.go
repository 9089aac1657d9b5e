package validators

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var identityShape = regexp.MustCompile(`^[A-Z][1289]\d{8}$`)

// letterCodes maps the leading letter of a national ID to its two-digit area
// code.
var letterCodes = map[byte]int{
	'A': 10, 'B': 11, 'C': 12, 'D': 13, 'E': 14, 'F': 15, 'G': 16, 'H': 17,
	'I': 34, 'J': 18, 'K': 19, 'L': 20, 'M': 21, 'N': 22, 'O': 35, 'P': 23,
	'Q': 24, 'R': 25, 'S': 26, 'T': 27, 'U': 28, 'V': 29, 'W': 32, 'X': 30,
	'Y': 31, 'Z': 33,
}

// IsIdentityID checks shape and checksum of a Taiwan national ID or resident
// certificate number.
func IsIdentityID(id string) bool {
	id = NormalizeIdentityID(id)
	if !identityShape.MatchString(id) {
		return false
	}

	code := letterCodes[id[0]]
	sum := code/10 + (code%10)*9
	for i := 1; i <= 8; i++ {
		sum += int(id[i]-'0') * (9 - i)
	}
	sum += int(id[9] - '0')

	return sum%10 == 0
}

func NormalizeIdentityID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// MaskIdentity keeps the first and last three characters: A123456789 becomes
// A12***789.
func MaskIdentity(id string) string {
	if id == "" {
		return ""
	}
	runes := []rune(id)
	if len(runes) <= 6 {
		return string(runes[:1]) + strings.Repeat("*", len(runes)-1)
	}
	return string(runes[:3]) + "***" + string(runes[len(runes)-3:])
}

var phoneShape = regexp.MustCompile(`^0\d{8,9}$`)

// NormalizePhone drops separators so 0912-345-678 and 0912 345 678 compare
// equal.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func IsPhone(phone string) bool {
	return phoneShape.MatchString(NormalizePhone(phone))
}

// Register adds the twid and twphone tags to gin's binding validator.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	if err := v.RegisterValidation("twid", func(fl validator.FieldLevel) bool {
		return IsIdentityID(fl.Field().String())
	}); err != nil {
		return err
	}

	return v.RegisterValidation("twphone", func(fl validator.FieldLevel) bool {
		return IsPhone(fl.Field().String())
	})
}
