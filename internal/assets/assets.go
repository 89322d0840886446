// Package assets resolve as imagens de instrumentos e avaliadores: uma lista ordenada
// de candidatos é testada contra o sistema de arquivos e o primeiro existente vence.
package assets

import (
	"io/fs"
	"net/url"
	"strings"
)

// Placeholder é o texto mostrado quando nenhuma imagem existe.
const Placeholder = "sem imagem"

var (
	instrumentExts = []string{".png", ".jpg", ".jpeg", ".webp"}
	evaluatorExts  = []string{".png", ".jpg"}
)

// InstrumentCandidates devolve os caminhos públicos possíveis para a imagem base.
func InstrumentCandidates(base string) []string {
	return candidates("/instruments/", url.PathEscape(base), instrumentExts)
}

// EvaluatorCandidates devolve os caminhos públicos possíveis para o avaliador.
func EvaluatorCandidates(id string) []string {
	return candidates("/evaluators/", url.PathEscape(id), evaluatorExts)
}

func candidates(dir, name string, exts []string) []string {
	out := make([]string, len(exts))
	for i, ext := range exts {
		out[i] = dir + name + ext
	}
	return out
}

// Resolver testa candidatos contra fsys, cuja raiz corresponde a "/".
type Resolver struct {
	fsys fs.FS
}

func NewResolver(fsys fs.FS) *Resolver {
	return &Resolver{fsys: fsys}
}

// Resolve devolve o primeiro candidato existente.
func (r *Resolver) Resolve(candidates []string) (string, bool) {
	if r.fsys == nil {
		return "", false
	}
	for _, c := range candidates {
		name, err := url.PathUnescape(strings.TrimPrefix(c, "/"))
		if err != nil || !fs.ValidPath(name) {
			continue
		}
		if info, err := fs.Stat(r.fsys, name); err == nil && !info.IsDir() {
			return c, true
		}
	}
	return "", false
}

// Instrument resolve a imagem de um instrumento pela sua base.
func (r *Resolver) Instrument(base string) (string, bool) {
	if base == "" {
		return "", false
	}
	return r.Resolve(InstrumentCandidates(base))
}

func (r *Resolver) Evaluator(id string) (string, bool) {
	return r.Resolve(EvaluatorCandidates(id))
}
