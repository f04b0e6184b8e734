package expr

// node is a boolean expression tree node
type node interface {
	eval(resolve func(id string) bool) bool
	collect(seen map[string]bool, ids []string) []string
}

type identNode struct {
	id string
}

func (n *identNode) eval(resolve func(id string) bool) bool {
	return resolve(n.id)
}

func (n *identNode) collect(seen map[string]bool, ids []string) []string {
	if seen[n.id] {
		return ids
	}
	seen[n.id] = true
	return append(ids, n.id)
}

type notNode struct {
	operand node
}

func (n *notNode) eval(resolve func(id string) bool) bool {
	return !n.operand.eval(resolve)
}

func (n *notNode) collect(seen map[string]bool, ids []string) []string {
	return n.operand.collect(seen, ids)
}

// listNode joins its operands with '&&' or '||'. Chains are kept flat so
// walking "a && b && c ..." does not recurse once per operator.
type listNode struct {
	and      bool
	operands []node
}

// eval visits every operand so every identifier is resolved
func (n *listNode) eval(resolve func(id string) bool) bool {
	result := n.and
	for _, operand := range n.operands {
		v := operand.eval(resolve)
		if n.and {
			result = result && v
		} else {
			result = result || v
		}
	}
	return result
}

func (n *listNode) collect(seen map[string]bool, ids []string) []string {
	for _, operand := range n.operands {
		ids = operand.collect(seen, ids)
	}
	return ids
}
