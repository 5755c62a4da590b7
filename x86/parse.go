package x86

import (
	"strconv"
	"strings"
)

// ParseLine splits one line of assembly text into an upper-cased mnemonic
// and its comma-separated operand strings, following the same
// comment-stripping/field-splitting approach as the teacher's
// architecture/x86_64/main.go ParseLine, generalized to feed the
// programmatic Assembler instead of a fixed parser table.
func ParseLine(line string) (mnemonic string, operands []string) {
	if idx := strings.IndexAny(line, ";#"); idx != -1 {
		line = line[:idx]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", nil
	}

	parts := strings.Fields(line)
	if len(parts) == 0 {
		return "", nil
	}
	mnemonic = strings.ToUpper(parts[0])
	if len(parts) > 1 {
		joined := strings.Join(parts[1:], "")
		for _, field := range strings.Split(joined, ",") {
			operands = append(operands, strings.TrimSpace(field))
		}
	}
	return mnemonic, operands
}

// ParseImmediate parses a decimal or 0x-prefixed hex integer literal.
func ParseImmediate(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseInt(s[2:], 16, 64)
		return v, err == nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	return v, err == nil
}

// ParseOperand resolves one operand string to a concrete Operand: a
// register name, an immediate literal, or a `[base]`/`[base+disp]` memory
// form. Richer memory addressing (index*scale, segment overrides, RIP
// labels) isn't reachable from this text grammar — callers that need it
// build the Operand directly with M/MD/MSIB/RIPRel instead.
func ParseOperand(s string) (Operand, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Operand{}, false
	}
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		return parseMemOperand(s[1 : len(s)-1])
	}
	if r, ok := RegisterByName(strings.ToLower(s)); ok {
		return R(r), true
	}
	if v, ok := ParseImmediate(s); ok {
		return I(v), true
	}
	return Operand{}, false
}

// IsLabel reports whether s looks like a label reference: a mnemonic-line
// token ending in ':' (a definition) or a bare identifier that is neither a
// register name nor a numeric literal (a reference), following the same
// alphanumeric-identifier test as the teacher's architecture/x86_64/main.go
// IsLabel.
func IsLabel(s string) bool {
	if s == "" {
		return false
	}
	if strings.HasSuffix(s, ":") {
		s = strings.TrimSuffix(s, ":")
	}
	if s == "" {
		return false
	}
	if s[0] >= '0' && s[0] <= '9' {
		return false
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return false
	}
	if _, ok := RegisterByName(strings.ToLower(s)); ok {
		return false
	}
	for _, r := range s {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			continue
		}
		return false
	}
	return true
}

func parseMemOperand(inner string) (Operand, bool) {
	inner = strings.TrimSpace(inner)
	plus := strings.Index(inner, "+")
	if plus == -1 {
		r, ok := RegisterByName(strings.ToLower(strings.TrimSpace(inner)))
		if !ok {
			return Operand{}, false
		}
		return M(r), true
	}
	baseName := strings.TrimSpace(inner[:plus])
	dispStr := strings.TrimSpace(inner[plus+1:])
	base, ok := RegisterByName(strings.ToLower(baseName))
	if !ok {
		return Operand{}, false
	}
	disp, ok := ParseImmediate(dispStr)
	if !ok {
		return Operand{}, false
	}
	return MD(base, int32(disp)), true
}
