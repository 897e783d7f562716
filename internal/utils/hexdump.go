package utils

import (
	"fmt"
	"strings"
)

const hexdumpWidth = 16

// Hexdump renders data canonically: an 8-digit offset, sixteen hex byte
// columns and an ASCII column between pipes. Lines are separated by '\n'
// without a trailing newline.
func Hexdump(data []byte) string {
	var sb strings.Builder

	for offset := 0; offset < len(data); offset += hexdumpWidth {
		if offset > 0 {
			sb.WriteByte('\n')
		}
		end := offset + hexdumpWidth
		if end > len(data) {
			end = len(data)
		}
		chunk := data[offset:end]

		fmt.Fprintf(&sb, "%08x ", offset)
		for i := 0; i < hexdumpWidth; i++ {
			if i < len(chunk) {
				fmt.Fprintf(&sb, " %02x", chunk[i])
			} else {
				sb.WriteString("   ")
			}
		}

		sb.WriteString("  |")
		for _, b := range chunk {
			if b >= 32 && b <= 126 {
				sb.WriteByte(b)
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('|')
	}

	return sb.String()
}
