package compilation

import "velab/internal/symbols"

// DesignTreeNode is the read-only view DesignTree produces on demand: it
// is never stored on the Compilation itself, only built by walking the
// already-elaborated InstanceBody/Scope graph.
type DesignTreeNode struct {
	InstanceName string
	DefName      string
	Params       []symbols.ParamValue
	Children     []*DesignTreeNode
}

// DesignTree triggers finalization and builds one DesignTreeNode per
// top-module instance, recursing into every nested KindInstance symbol whose
// body has been realized.
func (c *Compilation) DesignTree() []*DesignTreeNode {
	c.ensureFinalized()
	var roots []*DesignTreeNode
	sc := c.Syms.Scope(c.Syms.Symbol(c.root).OwnScope)
	if sc == nil {
		return nil
	}
	for _, id := range sc.Members() {
		if n := c.designTreeNodeOf(id); n != nil {
			roots = append(roots, n)
		}
	}
	return roots
}

func (c *Compilation) designTreeNodeOf(instID symbols.SymbolID) *DesignTreeNode {
	sym := c.Syms.Symbol(instID)
	if sym == nil || sym.Kind != symbols.KindInstance {
		return nil
	}
	body := c.Insts.Get(sym.InstanceBody)
	n := &DesignTreeNode{InstanceName: c.Strings.MustLookup(sym.Name)}
	if body != nil {
		if def := c.Defs.Get(body.Definition); def != nil {
			n.DefName = c.Strings.MustLookup(def.Name)
		}
		n.Params = body.Params
		if sc := c.Syms.Scope(body.Scope); sc != nil {
			for _, childID := range sc.Members() {
				if child := c.designTreeNodeOf(childID); child != nil {
					n.Children = append(n.Children, child)
				}
			}
		}
	}
	return n
}
