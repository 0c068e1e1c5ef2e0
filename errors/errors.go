package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseParse   Phase = "parse"   // text IR parsing
	PhaseVerify  Phase = "verify"  // structural IR verification
	PhaseConvert Phase = "convert" // type conversion of ops and signatures
	PhaseRewrite Phase = "rewrite" // pattern application
	PhaseDrive   Phase = "drive"   // fixed-point driver
	PhaseSize    Phase = "size"    // byte size computation
)

// Kind categorizes the error
type Kind string

const (
	KindNoMatch      Kind = "no_match"
	KindConversion   Kind = "conversion"
	KindUnsupported  Kind = "unsupported"
	KindInvalidIR    Kind = "invalid_ir"
	KindUseBeforeDef Kind = "use_before_def"
	KindNotConverged Kind = "not_converged"
	KindHasUses      Kind = "has_uses"
	KindSyntax       Kind = "syntax"
	KindUnknownValue Kind = "unknown_value"
	KindUnknownType  Kind = "unknown_type"
	KindInvalidInput Kind = "invalid_input"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Op     string
	Type   string
	Detail string
	Path   []string
	Line   int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "/"))
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " line %d", e.Line)
	}

	if e.Op != "" || e.Type != "" {
		b.WriteString(": ")
		if e.Op != "" && e.Type != "" {
			b.WriteString("op ")
			b.WriteString(e.Op)
			b.WriteString(", type ")
			b.WriteString(e.Type)
		} else if e.Op != "" {
			b.WriteString("op ")
			b.WriteString(e.Op)
		} else {
			b.WriteString("type ")
			b.WriteString(e.Type)
		}
	}

	if e.Detail != "" {
		if e.Op != "" || e.Type != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the location path (enclosing ops, outermost first)
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Op sets the operation kind
func (b *Builder) Op(kind string) *Builder {
	b.err.Op = kind
	return b
}

// Type sets the offending type
func (b *Builder) Type(t string) *Builder {
	b.err.Type = t
	return b
}

// Line sets the source line for text input
func (b *Builder) Line(line int) *Builder {
	b.err.Line = line
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// NoMatch reports that a pattern declined to rewrite an operation.
// It is not a failure of the compilation.
func NoMatch(op string, reason string) *Error {
	return &Error{
		Phase:  PhaseRewrite,
		Kind:   KindNoMatch,
		Op:     op,
		Detail: reason,
	}
}

// ConversionFailed creates a type conversion failure for an operation
func ConversionFailed(op string, detail string) *Error {
	return &Error{
		Phase:  PhaseConvert,
		Kind:   KindConversion,
		Op:     op,
		Detail: detail,
	}
}

// UnsupportedType creates an unsupported type error
func UnsupportedType(phase Phase, typ string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Type:   typ,
		Detail: detail,
	}
}

// InvalidIR creates a structural IR error
func InvalidIR(path []string, op string, detail string) *Error {
	return &Error{
		Phase:  PhaseVerify,
		Kind:   KindInvalidIR,
		Path:   path,
		Op:     op,
		Detail: detail,
	}
}

// UseBeforeDef creates an error for an operand that does not dominate its use
func UseBeforeDef(path []string, op string, operand int) *Error {
	return &Error{
		Phase:  PhaseVerify,
		Kind:   KindUseBeforeDef,
		Path:   path,
		Op:     op,
		Detail: fmt.Sprintf("operand #%d is not defined before its use", operand),
		Value:  operand,
	}
}

// HasUses creates an error for erasing an operation whose results are still used
func HasUses(op string, uses int) *Error {
	return &Error{
		Phase:  PhaseRewrite,
		Kind:   KindHasUses,
		Op:     op,
		Detail: fmt.Sprintf("cannot erase op with %d remaining use(s)", uses),
		Value:  uses,
	}
}

// NotConverged creates an error for a driver that hit its iteration cap
func NotConverged(iterations int) *Error {
	return &Error{
		Phase:  PhaseDrive,
		Kind:   KindNotConverged,
		Detail: fmt.Sprintf("patterns still applying after %d iterations", iterations),
		Value:  iterations,
	}
}

// Syntax creates a text parsing error
func Syntax(line int, detail string, args ...any) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindSyntax,
		Line:   line,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// UnknownValue creates an error for a reference to an undefined value name
func UnknownValue(line int, name string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindUnknownValue,
		Line:   line,
		Detail: fmt.Sprintf("unknown value %s", name),
		Value:  name,
	}
}

// UnknownType creates an error for an unrecognized type name
func UnknownType(line int, name string) *Error {
	return &Error{
		Phase: PhaseParse,
		Kind:  KindUnknownType,
		Line:  line,
		Type:  name,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// IsNoMatch reports whether err is a pattern no-match.
func IsNoMatch(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == KindNoMatch
}
