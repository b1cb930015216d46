package xsd

// ParseBoolean parses the XSD lexical forms for xsd:boolean: true/false and
// the numeric 1/0 aliases.
func ParseBoolean(s string) Result[bool] {
	switch s {
	case "true", "1":
		return Ok(true)
	case "false", "0":
		return Ok(false)
	default:
		return Domain[bool]()
	}
}

// FormatBoolean renders the canonical lexical form.
func FormatBoolean(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
