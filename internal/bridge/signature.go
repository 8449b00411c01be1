package bridge

import (
	"context"
	"strings"

	"github.com/lsbridge/lsbridge/internal/analysis"
	"github.com/lsbridge/lsbridge/internal/lsp/protocol"
)

// SignatureProvider shapes the service's signature help into
// human-readable overload labels. Pure shaping, no merge logic.
type SignatureProvider struct {
	svc  analysis.Service
	docs DocumentSource
}

// NewSignatureProvider creates a signature help adapter.
func NewSignatureProvider(svc analysis.Service, docs DocumentSource) *SignatureProvider {
	return &SignatureProvider{svc: svc, docs: docs}
}

// SignatureHelp returns the applicable overloads at a position. The
// active signature and parameter indices pass through verbatim.
func (s *SignatureProvider) SignatureHelp(ctx context.Context, uri string, pos protocol.Position) (*protocol.SignatureHelp, error) {
	mapper, err := mapperFor(s.docs, uri)
	if err != nil {
		return nil, err
	}

	offset := mapper.PositionToOffset(mapper.FromProtocol(pos))
	items, err := s.svc.SignatureHelp(ctx, uri, offset)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logServiceError("signatureHelp", err)
		return nil, nil
	}
	if items == nil || len(items.Items) == 0 {
		return nil, nil
	}

	help := &protocol.SignatureHelp{
		Signatures:      make([]protocol.SignatureInformation, 0, len(items.Items)),
		ActiveSignature: items.SelectedItemIndex,
		ActiveParameter: items.ArgumentIndex,
	}

	for _, item := range items.Items {
		separator := partsToString(item.SeparatorDisplayParts)

		var label strings.Builder
		label.WriteString(partsToString(item.PrefixDisplayParts))

		info := protocol.SignatureInformation{
			Documentation: partsToString(item.Documentation),
			Parameters:    make([]protocol.ParameterInformation, 0, len(item.Parameters)),
		}
		for i, param := range item.Parameters {
			if i > 0 {
				label.WriteString(separator)
			}
			paramLabel := partsToString(param.DisplayParts)
			label.WriteString(paramLabel)
			info.Parameters = append(info.Parameters, protocol.ParameterInformation{
				Label:         paramLabel,
				Documentation: partsToString(param.Documentation),
			})
		}
		label.WriteString(partsToString(item.SuffixDisplayParts))

		info.Label = label.String()
		help.Signatures = append(help.Signatures, info)
	}

	return help, nil
}
