package treesitter

import (
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// parserPool recycles tree-sitter parsers so concurrent workers do not pay
// for sitter.NewParser on every file. Safe for concurrent use.
type parserPool struct {
	lang *sitter.Language
	pool sync.Pool
}

func newParserPool(lang *sitter.Language) *parserPool {
	p := &parserPool{lang: lang}
	p.pool = sync.Pool{
		New: func() any {
			sp := sitter.NewParser()
			sp.SetLanguage(lang)
			return sp
		},
	}
	return p
}

// get returns a parser configured for the pool's language.
func (p *parserPool) get() *sitter.Parser {
	sp, _ := p.pool.Get().(*sitter.Parser)
	if sp == nil {
		sp = sitter.NewParser()
	}
	// Reset clears the language on some binding versions.
	sp.SetLanguage(p.lang)
	return sp
}

// put resets sp and returns it to the pool. sp must not be used afterwards.
func (p *parserPool) put(sp *sitter.Parser) {
	if sp == nil {
		return
	}
	sp.Reset()
	p.pool.Put(sp)
}
