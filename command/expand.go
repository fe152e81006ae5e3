package command

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/Zhangliubin/commandParser-1.1-sub000/internal/paramfile"
)

// expand replaces every @path token with the tokens of the parameter file at
// path. Files may reference further files; a reference back into the current
// chain, or nesting deeper than MaxExpansionDepth, is an error.
func (p *Parser) expand(tokens []string) ([]string, error) {
	if !p.atSyntax {
		return tokens, nil
	}
	return p.expandChain(tokens, nil)
}

func (p *Parser) expandChain(tokens []string, chain []string) ([]string, error) {
	if !slices.ContainsFunc(tokens, isReference) {
		return tokens, nil
	}

	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if !isReference(tok) {
			out = append(out, tok)
			continue
		}

		path := tok[1:]
		if len(chain) >= p.maxDepth {
			return nil, NewParseError(ErrorTypeParameterFile, tok,
				"parameter file %s exceeds the maximum nesting depth of %d", path, p.maxDepth)
		}
		key, err := filepath.Abs(path)
		if err != nil {
			key = filepath.Clean(path)
		}
		if slices.Contains(chain, key) {
			return nil, NewParseError(ErrorTypeParameterFile, tok,
				"parameter file %s references itself (%s)", path, strings.Join(append(chain, key), " -> "))
		}

		inner, err := paramfile.ReadFile(path)
		if err != nil {
			return nil, fileError(path, err)
		}
		if p.debug {
			p.logger.Debug("%s expands to %q", tok, inner)
		}
		nested, err := p.expandChain(inner, append(slices.Clip(chain), key))
		if err != nil {
			return nil, err
		}
		out = append(out, nested...)
	}
	return out, nil
}

func isReference(token string) bool {
	return len(token) > 1 && token[0] == '@'
}

func fileError(path string, err error) *ParseError {
	return &ParseError{
		Type:    ErrorTypeParameterFile,
		Option:  "@" + path,
		Message: "cannot read parameter file: " + err.Error(),
		Cause:   err,
	}
}
