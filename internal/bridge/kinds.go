package bridge

import "github.com/lsbridge/lsbridge/internal/lsp/protocol"

// Service kind strings as reported by the analysis service.
const (
	kindKeyword            = "keyword"
	kindScript             = "script"
	kindModule             = "module"
	kindClass              = "class"
	kindInterface          = "interface"
	kindType               = "type"
	kindEnum               = "enum"
	kindVar                = "var"
	kindLocalVar           = "local var"
	kindFunction           = "function"
	kindLocalFunction      = "local function"
	kindMethod             = "method"
	kindMemberGetter       = "getter"
	kindMemberSetter       = "setter"
	kindProperty           = "property"
	kindConstructor        = "constructor"
	kindCallSignature      = "call"
	kindIndexSignature     = "index"
	kindConstructSignature = "construct"
	kindParameter          = "parameter"
	kindTypeParameter      = "type parameter"
	kindPrimitiveType      = "primitive type"
	kindLabel              = "label"
	kindAlias              = "alias"
	kindConst              = "const"
	kindLet                = "let"
	kindWarning            = "warning"
)

// completionKind maps a service kind string to a presentation kind.
func completionKind(kind string) protocol.CompletionItemKind {
	switch kind {
	case kindKeyword:
		return protocol.CompletionItemKindKeyword
	case kindModule, kindScript:
		return protocol.CompletionItemKindModule
	case kindClass:
		return protocol.CompletionItemKindClass
	case kindInterface:
		return protocol.CompletionItemKindInterface
	case kindType, kindTypeParameter, kindPrimitiveType:
		return protocol.CompletionItemKindTypeParameter
	case kindEnum:
		return protocol.CompletionItemKindEnum
	case kindConst:
		return protocol.CompletionItemKindConstant
	case kindVar, kindLet, kindLocalVar, kindParameter, kindAlias:
		return protocol.CompletionItemKindVariable
	case kindFunction, kindLocalFunction:
		return protocol.CompletionItemKindFunction
	case kindMethod, kindCallSignature, kindIndexSignature, kindConstructSignature:
		return protocol.CompletionItemKindMethod
	case kindMemberGetter, kindMemberSetter, kindProperty:
		return protocol.CompletionItemKindProperty
	case kindConstructor:
		return protocol.CompletionItemKindConstructor
	case kindLabel:
		return protocol.CompletionItemKindReference
	default:
		return protocol.CompletionItemKindText
	}
}

// symbolKind maps a service kind string to an outline symbol kind.
// Unmapped kinds present as Variable.
func symbolKind(kind string) protocol.SymbolKind {
	switch kind {
	case kindScript:
		return protocol.SymbolKindFile
	case kindModule:
		return protocol.SymbolKindModule
	case kindClass:
		return protocol.SymbolKindClass
	case kindInterface:
		return protocol.SymbolKindInterface
	case kindEnum:
		return protocol.SymbolKindEnum
	case kindFunction, kindLocalFunction:
		return protocol.SymbolKindFunction
	case kindMethod, kindCallSignature, kindIndexSignature, kindConstructSignature:
		return protocol.SymbolKindMethod
	case kindMemberGetter, kindMemberSetter, kindProperty:
		return protocol.SymbolKindProperty
	case kindConstructor:
		return protocol.SymbolKindConstructor
	case kindConst:
		return protocol.SymbolKindConstant
	case kindTypeParameter:
		return protocol.SymbolKindTypeParameter
	default:
		return protocol.SymbolKindVariable
	}
}

// functionLike reports whether a fuzzy symbol search result is a
// callable worth synthesizing a cross-file completion candidate for.
func functionLike(kind string) bool {
	switch kind {
	case kindFunction, kindLocalFunction, kindMethod, kindConstructor:
		return true
	default:
		return false
	}
}
