package domain

import "encoding/json"

// Directive is the server's instruction in a register or push response.
type Directive int

const (
	DirectiveUnknown Directive = iota
	DirectiveRepeat
	DirectiveDownload
	DirectiveAbort
)

// String returns the wire name of the directive.
func (d Directive) String() string {
	switch d {
	case DirectiveRepeat:
		return "repeat"
	case DirectiveDownload:
		return "download"
	case DirectiveAbort:
		return "abort"
	default:
		return "unknown"
	}
}

type directiveBody struct {
	Cmd *string `json:"cmd"`
}

// ParseDirective decodes a response body of the form {"cmd": "..."}.
// Unrecognized values map to DirectiveUnknown; a malformed body or a missing
// cmd field yields a *ProtocolDecodeError.
func ParseDirective(body []byte) (Directive, error) {
	var b directiveBody
	if err := json.Unmarshal(body, &b); err != nil {
		return DirectiveUnknown, &ProtocolDecodeError{Reason: "decode directive", Err: err}
	}
	if b.Cmd == nil {
		return DirectiveUnknown, &ProtocolDecodeError{Reason: "response has no cmd field"}
	}
	switch *b.Cmd {
	case "repeat":
		return DirectiveRepeat, nil
	case "download":
		return DirectiveDownload, nil
	case "abort":
		return DirectiveAbort, nil
	default:
		return DirectiveUnknown, nil
	}
}
