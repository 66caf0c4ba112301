package util

import "regexp"

// brazilianEightDigitMobile matches a channel-prefixed Brazilian number that lost the
// leading 9 of its mobile line, e.g. "whatsapp:+551112345678".
var brazilianEightDigitMobile = regexp.MustCompile(`^([A-Za-z]+:)\+55(\d{2})(\d{8})$`)

// AddNineToPhoneNumber inserts the mobile 9 after the area code of a Brazilian
// number that carries only 8 local digits. Anything else is returned as is.
func AddNineToPhoneNumber(address string) string {
	return brazilianEightDigitMobile.ReplaceAllString(address, "${1}+55${2}9${3}")
}
