package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilderReturnIsVerbatim(t *testing.T) {
	b := &builder{}
	b.in()
	b.check("w.Flush()", `return fmt.Errorf("100%s done")`)
	b.errBlock(`return nil, fmt.Errorf("%d%%")`)

	want := "\tif err := w.Flush(); err != nil {\n" +
		"\t\treturn fmt.Errorf(\"100%s done\")\n" +
		"\t}\n" +
		"\tif err != nil {\n" +
		"\t\treturn nil, fmt.Errorf(\"%d%%\")\n" +
		"\t}\n"
	assert.Equal(t, want, b.String())
}

func TestBuilderBlankLine(t *testing.T) {
	b := &builder{}
	b.in()
	b.line("a := %d", 1)
	b.line("")
	b.raw("b := 2")

	assert.Equal(t, "\ta := 1\n\n\tb := 2\n", b.String())
}
