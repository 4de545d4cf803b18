package xlformula

import "github.com/atotto/clipboard"

// ToClipboard copies the node's compiled formula text to the system
// clipboard for easy pasting into Excel
func ToClipboard(n Node) error {
	return clipboard.WriteAll(n.Render())
}
