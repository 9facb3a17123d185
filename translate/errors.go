package translate

import "fmt"

// TranslationException reports that the AST contains a construct the
// target dialect cannot express (e.g. a geometry function on plain
// PostgreSQL without pgSphere, or a region shape with no dialect
// rendering), mirroring the teacher's position-carrying ParseError.
type TranslationException struct {
	Dialect string
	Message string
}

func (e *TranslationException) Error() string {
	return fmt.Sprintf("%s: %s", e.Dialect, e.Message)
}

func (t *Translator) fail(format string, args ...any) error {
	return &TranslationException{Dialect: t.Dialect.Name(), Message: fmt.Sprintf(format, args...)}
}
