package helpers

import "fmt"

// FormatRupee formats a number as Indian Rupees with Indian digit grouping:
// the last three digits form one group, every group before that has two
// digits (₹1,45,000).
func FormatRupee(amount float64) string {
	value := int64(amount)

	negative := value < 0
	if negative {
		value = -value
	}

	str := fmt.Sprintf("%d", value)
	length := len(str)

	var result string
	if length <= 3 {
		result = str
	} else {
		// Last three digits, then two-digit groups going left.
		result = str[length-3:]
		rest := str[:length-3]
		for len(rest) > 2 {
			result = rest[len(rest)-2:] + "," + result
			rest = rest[:len(rest)-2]
		}
		result = rest + "," + result
	}

	if negative {
		return fmt.Sprintf("₹-%s", result)
	}
	return fmt.Sprintf("₹%s", result)
}
