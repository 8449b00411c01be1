package bridge

import (
	"context"

	"github.com/lsbridge/lsbridge/internal/analysis"
	"github.com/lsbridge/lsbridge/internal/lsp/protocol"
)

// Outliner flattens the service's hierarchical symbol tree into the
// flat outline the host consumes.
type Outliner struct {
	svc  analysis.Service
	docs DocumentSource
}

// NewOutliner creates an outline builder.
func NewOutliner(svc analysis.Service, docs DocumentSource) *Outliner {
	return &Outliner{svc: svc, docs: docs}
}

// DocumentSymbols returns the pre-order flattened outline of a
// document. Each node carries its immediate parent's name as
// containerName; sibling order is preserved as returned by the service.
func (o *Outliner) DocumentSymbols(ctx context.Context, uri string) ([]protocol.SymbolInformation, error) {
	mapper, err := mapperFor(o.docs, uri)
	if err != nil {
		return nil, err
	}

	tree, err := o.svc.NavigationTree(ctx, uri)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logServiceError("navigationTree", err)
		return nil, nil
	}
	if tree == nil {
		return nil, nil
	}

	var symbols []protocol.SymbolInformation
	flattenTree(mapper, uri, tree, "", &symbols)
	return symbols, nil
}

func flattenTree(mapper *Mapper, uri string, node *analysis.NavigationTree, containerName string, out *[]protocol.SymbolInformation) {
	if len(node.Spans) > 0 {
		*out = append(*out, protocol.SymbolInformation{
			Name:          node.Text,
			Kind:          symbolKind(node.Kind),
			ContainerName: containerName,
			Location: protocol.Location{
				URI:   uri,
				Range: mapper.SpanToProtocol(node.Spans[0]),
			},
		})
	}
	for i := range node.ChildItems {
		flattenTree(mapper, uri, &node.ChildItems[i], node.Text, out)
	}
}
