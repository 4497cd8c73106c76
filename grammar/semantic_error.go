package grammar

type SemanticError struct {
	message string
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

var (
	semErrNoProduction        = newSemanticError("a grammar needs at least one production")
	semErrUndefinedSym        = newSemanticError("undefined symbol")
	semErrDuplicateProduction = newSemanticError("duplicate production")
	semErrNotCNF              = newSemanticError("an alternative must be a terminal, two non-terminals, or empty")
	semErrEmptyNonStart       = newSemanticError("only the start symbol can have an empty alternative")
	semErrReservedName        = newSemanticError("a name starting with `<` is reserved")
)
