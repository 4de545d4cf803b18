package xlformula

// recipe formulas: prebuilt combinations of catalog functions registered as
// formula descriptors. Each expands into catalog calls at construction time
// and renders as one continuous formula body.

func (c *Catalog) registerRecipes() {
	// BlankIfBlank returns "" when the referenced value is "", else the
	// fallback value.
	// e.g. A1="" -> "", A1=1 -> [else]
	c.register(NewFormula("BlankIfBlank", []string{"reference", "else"}, nil,
		func(args []Node) ([]Node, error) {
			isBlank, err := Eq(args[0], "")
			if err != nil {
				return nil, err
			}
			conditional, err := c.Call("IF", isBlank, "", args[1])
			if err != nil {
				return nil, err
			}
			return []Node{conditional}, nil
		}))

	// GetColumnLetter extracts the column letter notation of a single cell
	// reference.
	// e.g. $AB$1 -> AB, 'Sheet1'!$ABC$123 -> ABC
	c.register(NewFormula("GetColumnLetter", []string{"reference"}, nil,
		func(args []Node) ([]Node, error) {
			column, err := c.Call("COLUMN", args[0])
			if err != nil {
				return nil, err
			}
			addressRow, err := c.Call("ROW")
			if err != nil {
				return nil, err
			}
			address, err := c.Call("ADDRESS", addressRow, column, 4)
			if err != nil {
				return nil, err
			}
			strippedRow, err := c.Call("ROW")
			if err != nil {
				return nil, err
			}
			substituted, err := c.Call("SUBSTITUTE", address, strippedRow, "")
			if err != nil {
				return nil, err
			}
			return []Node{substituted}, nil
		}))

	// IfModulo returns value_if_true when MOD(logical, modulo) equals the
	// remainder (0 by default), else value_if_false. Base component for
	// IfModuloChain.
	ifModulo := c.register(NewFormula("IfModulo",
		[]string{"logical", "modulo", "value_if_true", "value_if_false"},
		[]string{"if_modulo_equals"},
		func(args []Node) ([]Node, error) {
			var remainder Node
			if len(args) > 4 {
				remainder = args[4]
			} else {
				remainder = NewLiteral(0)
			}
			modulo, err := c.Call("MOD", args[0], args[1])
			if err != nil {
				return nil, err
			}
			matches, err := Eq(modulo, remainder)
			if err != nil {
				return nil, err
			}
			conditional, err := c.Call("IF", matches, args[2], args[3])
			if err != nil {
				return nil, err
			}
			return []Node{conditional}, nil
		}))

	// IfModuloChain performs a modulo check against each branch value and
	// returns the first branch whose remainder matches; if none match, the
	// final value is returned. Intended to facilitate dynamic,
	// two-dimensional table sections that repeat indefinitely.
	c.register(NewFormula("IfModuloChain",
		[]string{"logical_test", "value_if_true1", "value_if_false_final"},
		[]string{"value_if_true2", Unlimited},
		func(args []Node) ([]Node, error) {
			logical := args[0]
			branches := args[1 : len(args)-1]
			finalValue := args[len(args)-1]
			modulo := len(branches)

			// build the chain from the last branch inward so each check
			// falls through to the next
			var chain Node
			for i := modulo - 1; i >= 0; i-- {
				var ifFalse Node
				if i == modulo-1 {
					ifFalse = finalValue
				} else {
					ifFalse = chain
				}
				link, err := ifModulo.Call(logical, modulo, branches[i], ifFalse, i)
				if err != nil {
					return nil, err
				}
				chain = link
			}
			return []Node{chain}, nil
		}))
}
