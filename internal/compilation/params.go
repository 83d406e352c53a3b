package compilation

import (
	"fmt"
	"strings"

	"velab/internal/constval"
	"velab/internal/source"
	"velab/internal/symbols"
	"velab/internal/syntax"
)

// resolveParams declares def's parameter list into scope in order, binding
// each one's override (program-supplied ParamOverrideNode, then named,
// then positional, then the definition's own default) as it goes so a later
// parameter's default expression can see an earlier one's resolved value
//. instTree/item is the instantiation
// site (syntax overrides live there); defTree is the definition's own tree
// (defaults live there); node is this instance's own position in the
// caller-supplied override tree, or nil if none was supplied.
func (c *Compilation) resolveParams(instTree *syntax.Tree, item *syntax.Item, defTree *syntax.Tree, def *symbols.Definition, scope symbols.ScopeID, node *ParamOverrideNode) []symbols.ParamValue {
	r := symbols.NewResolver(c.Syms, scope, c.Diags)

	byName := make(map[source.StringID]syntax.ExprID, len(item.ParamOverrides))
	var positional []syntax.ExprID
	for _, ov := range item.ParamOverrides {
		if ov.Name != source.NoStringID {
			byName[ov.Name] = ov.Value
		} else {
			positional = append(positional, ov.Value)
		}
	}

	out := make([]symbols.ParamValue, 0, len(def.Parameters))
	for i, pd := range def.Parameters {
		exprTree, exprID := defTree, pd.Default
		if ov, ok := byName[pd.Name]; ok {
			exprTree, exprID = instTree, ov
		} else if i < len(positional) {
			exprTree, exprID = instTree, positional[i]
		}

		loc := symbols.EndOf(c.Syms, r.Current())
		t := c.Types.Builtins().Int
		if pd.Type.IsValid() {
			t = c.bindType(defTree, pd.Type, loc)
		}
		sym := symbols.Symbol{
			Kind: symbols.KindParameter, Name: pd.Name, Span: item.Span,
			Type: t, IsLocal: pd.IsLocal, IsConst: true, ValueSyntax: exprID,
		}
		id, _ := r.Declare(sym, symbols.ScopeInvalid)

		var v constval.Value
		if node != nil && node.Overrides != nil {
			if override, ok := node.Overrides[c.Strings.MustLookup(pd.Name)]; ok {
				v = override
				s := c.Syms.Symbol(id)
				s.Value, s.ValueValid = v, true
				s.Overridden = true
				out = append(out, symbols.ParamValue{Name: pd.Name, Value: v, Type: t})
				continue
			}
		}
		if exprID.IsValid() {
			if resolved, ok := c.bindConst(exprTree, exprID, loc); ok {
				v = resolved
				s := c.Syms.Symbol(id)
				s.Value, s.ValueValid = v, true
				s.Overridden = exprTree == instTree
			}
		}
		out = append(out, symbols.ParamValue{Name: pd.Name, Value: v, Type: t})
	}
	return out
}

// instanceCacheKey builds the (definition, parameter tuple, port-connection
// shape) key that drives instance caching.
func (c *Compilation) instanceCacheKey(defID symbols.DefinitionID, params []symbols.ParamValue, item *syntax.Item) string {
	var b strings.Builder
	fmt.Fprintf(&b, "def#%d|", defID)
	for _, p := range params {
		fmt.Fprintf(&b, "%s=%s;", c.Strings.MustLookup(p.Name), formatConst(p.Value))
	}
	b.WriteString("|ports:")
	for _, pc := range item.PortConns {
		if pc.Unconnected {
			b.WriteString("_,")
			continue
		}
		fmt.Fprintf(&b, "%s,", c.Strings.MustLookup(pc.Name))
	}
	return b.String()
}

func formatConst(v constval.Value) string {
	switch v.Kind {
	case constval.KindInteger:
		return v.Int.String()
	case constval.KindReal:
		return fmt.Sprintf("%g", v.Real)
	case constval.KindString:
		return v.Str
	default:
		return v.Kind.String()
	}
}
