package scan

import (
	"encoding/hex"
	"go/ast"
	"go/token"
	"strings"

	"github.com/wippyai/endiangen/errors"
	"github.com/wippyai/endiangen/gen"
)

// Prefix starts every directive comment.
const Prefix = "//endian:"

type directiveKind uint8

const (
	dirType directiveKind = iota
	dirVariant
	dirPayload
)

// directive is the parsed content of one //endian: comment.
type directive struct {
	order   *gen.Marker
	repr    *gen.Marker
	disc    *gen.Marker
	union   string
	payload []byte
	pos     token.Position
	kind    directiveKind
}

// word is one directive token and its column offset in the comment.
type word struct {
	text string
	col  int
}

func splitWords(s string, col int) []word {
	var out []word
	start := -1
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ' ' || s[i] == '\t' {
			if start >= 0 {
				out = append(out, word{text: s[start:i], col: col + start})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	return out
}

// findDirective returns the single directive in doc, nil when there is none.
func findDirective(fset *token.FileSet, doc *ast.CommentGroup) (*directive, error) {
	if doc == nil {
		return nil, nil
	}
	var found *directive
	for _, c := range doc.List {
		if !strings.HasPrefix(c.Text, Prefix) {
			continue
		}
		pos := fset.Position(c.Slash)
		if found != nil {
			return nil, errors.New(errors.PhaseGenerate, errors.KindInvalidDirective).
				Pos(pos).
				Detail("only one endian directive is allowed per type").
				Build()
		}
		d, err := parseDirective(c.Text[len(Prefix):], pos)
		if err != nil {
			return nil, err
		}
		found = d
	}
	return found, nil
}

func parseDirective(text string, pos token.Position) (*directive, error) {
	d := &directive{pos: pos}
	words := splitWords(text, len(Prefix))
	at := func(w word) token.Position {
		p := pos
		p.Column += w.col
		p.Offset += w.col
		return p
	}
	invalid := func(format string, args ...any) error {
		return errors.New(errors.PhaseGenerate, errors.KindInvalidDirective).
			Pos(pos).
			Value(text).
			Detail(format, args...).
			Build()
	}

	if len(words) > 0 {
		switch words[0].text {
		case "variant":
			if len(words) != 3 {
				return nil, invalid("expected //endian:variant <Union> <discriminant>")
			}
			d.kind = dirVariant
			d.union = words[1].text
			d.disc = &gen.Marker{Text: words[2].text, Pos: at(words[2])}
			return d, nil

		case "payload":
			if len(words) < 2 {
				return nil, invalid("expected //endian:payload <hex bytes>")
			}
			var sb strings.Builder
			for _, w := range words[1:] {
				sb.WriteString(strings.TrimPrefix(strings.TrimPrefix(w.text, "0x"), "0X"))
			}
			p, err := hex.DecodeString(sb.String())
			if err != nil {
				return nil, errors.New(errors.PhaseGenerate, errors.KindInvalidDirective).
					Pos(pos).
					Value(text).
					Detail("payload is not hex encoded").
					Cause(err).
					Build()
			}
			d.kind = dirPayload
			d.payload = p
			return d, nil
		}
	}

	for i, w := range words {
		key, value, ok := strings.Cut(w.text, "=")
		if !ok {
			if i != 0 {
				return nil, invalid("unexpected %q: the byte order comes first", w.text)
			}
			d.order = &gen.Marker{Text: w.text, Pos: at(w)}
			continue
		}
		switch key {
		case "repr":
			if d.repr != nil {
				return nil, invalid("repr given twice")
			}
			vp := at(w)
			vp.Column += len(key) + 1
			vp.Offset += len(key) + 1
			d.repr = &gen.Marker{Text: value, Pos: vp}
		default:
			return nil, invalid("unknown option %q", key)
		}
	}
	return d, nil
}
